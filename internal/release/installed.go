package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/store"
)

const installedKeyPrefix = "release_"

// InstalledKey is the store key holding the release tag last pulled for
// the board and class in loc.
func InstalledKey(loc content.Locator) string {
	return installedKeyPrefix + strings.TrimSuffix(AssetName(loc), ".yaml")
}

// Installed returns the release tag last pulled for loc, or "" if content
// for it was never pulled.
func Installed(ctx context.Context, repo store.ContentRepo, loc content.Locator) (string, error) {
	b, err := repo.Get(ctx, InstalledKey(loc))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read installed release: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// MarkInstalled records tag as the release pulled for loc.
func MarkInstalled(ctx context.Context, repo store.ContentRepo, loc content.Locator, tag string) error {
	if err := repo.Put(ctx, InstalledKey(loc), []byte(tag)); err != nil {
		return fmt.Errorf("record installed release: %w", err)
	}
	return nil
}
