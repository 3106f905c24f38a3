package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns the profile file path: $STUDYDECK_PROFILE,
// then $XDG_CONFIG_HOME/studydeck/profile.yaml, then ~/.config.
func DefaultPath() string {
	if p := os.Getenv("STUDYDECK_PROFILE"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studydeck", "profile.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "studydeck-profile.yaml")
	}
	return filepath.Join(home, ".config", "studydeck", "profile.yaml")
}
