package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), resolveProfilePath(cmd), p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the learner profile",
	Long: `Write the learner profile. Only the flags given are changed; the rest
keep their current values. A stream is required for classes 11 and 12.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveProfilePath(cmd)

		// An existing profile is the base even when it no longer validates.
		var p config.Profile
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if p, err = config.Parse(data); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("read profile %s: %w", path, err)
		}

		for flag, field := range map[string]*string{
			"name":   &p.Name,
			"board":  &p.Board,
			"class":  &p.Class,
			"stream": &p.Stream,
		} {
			if cmd.Flags().Changed(flag) {
				*field, _ = cmd.Flags().GetString(flag)
			}
		}

		if err := config.Save(path, p); err != nil {
			var verr *config.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", issue.Field, issue.Message)
				}
			}
			return err
		}

		saved, err := config.Load(path)
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), path, saved)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Learner name shown in the header")
	profileSetCmd.Flags().String("board", "", "Education board, e.g. CBSE")
	profileSetCmd.Flags().String("class", "", "Class level 1-12")
	profileSetCmd.Flags().String("stream", "", "Stream for classes 11-12: Science, Commerce, or Arts")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func printProfile(out io.Writer, path string, p config.Profile) {
	fmt.Fprintf(out, "Profile: %s\n", path)
	fmt.Fprintf(out, "  Name:   %s\n", p.DisplayName())
	fmt.Fprintf(out, "  Board:  %s\n", p.Board)
	fmt.Fprintf(out, "  Class:  %s\n", p.ClassLabel())
}
