package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studydeck",
	Short: "Terminal study companion for school chapters",
	Long:  "studydeck: read chapter notes, practice questions, and take weekly tests from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or DSN (overrides STUDYDECK_DB env var)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides STUDYDECK_DB_DRIVER)")
	rootCmd.PersistentFlags().String("profile", "", "Learner profile file (overrides STUDYDECK_PROFILE env var)")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDriver returns the --driver flag, then STUDYDECK_DB_DRIVER, then sqlite.
func resolveDriver(cmd *cobra.Command) store.Driver {
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		return store.Driver(d)
	}
	if d := os.Getenv("STUDYDECK_DB_DRIVER"); d != "" {
		return store.Driver(d)
	}
	return store.DriverSQLite
}

// resolveDSN returns the database DSN using --db flag (highest priority),
// then STUDYDECK_DB env var, then the default XDG path for SQLite.
func resolveDSN(cmd *cobra.Command, driver store.Driver) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if driver == store.DriverPostgres {
		if p == "" {
			p = os.Getenv("STUDYDECK_DB")
		}
		if p == "" {
			return "", fmt.Errorf("postgres needs a DSN: pass --db or set STUDYDECK_DB")
		}
		return p, nil
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the content store selected by flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	driver := resolveDriver(cmd)
	dsn, err := resolveDSN(cmd, driver)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(cmd.Context(), driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveProfilePath returns the --profile flag or the default profile path.
func resolveProfilePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// loadProfile reads the learner profile, pointing at "profile set" when it
// does not exist yet.
func loadProfile(cmd *cobra.Command) (config.Profile, error) {
	path := resolveProfilePath(cmd)
	p, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Profile{}, fmt.Errorf("no profile at %s\n\nCreate one with: studydeck profile set --board CBSE --class 10", path)
	}
	if err != nil {
		return config.Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}
