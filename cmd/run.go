package cmd

import (
	"github.com/abhisek/studydeck/internal/app"
	"github.com/spf13/cobra"
)

// runApp loads the profile, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Profile:     profile,
		Content:     st.ContentRepo(),
		SkipWelcome: noSplash,
	})
}
