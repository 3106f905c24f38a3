package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/release"
	"github.com/abhisek/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var contentPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download and import the latest published content for your class",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		var opts pullOptions
		opts.checkOnly, _ = cmd.Flags().GetBool("check")
		opts.tag, _ = cmd.Flags().GetString("tag")
		feed := release.NewFeed(release.WithTimeout(2 * time.Minute))
		return pullContent(ctx, cmd.OutOrStdout(), st.ContentRepo(), feed, p, opts)
	},
}

func init() {
	contentPullCmd.Flags().Bool("check", false, "Only report whether newer content is published")
	contentPullCmd.Flags().String("tag", "", "Pull this release tag instead of the latest")
}

type pullOptions struct {
	checkOnly bool
	tag       string
}

// pullContent imports the bundle published for the learner's class and
// records the release it came from.
func pullContent(ctx context.Context, out io.Writer, repo store.ContentRepo, feed *release.Feed, p config.Profile, opts pullOptions) error {
	loc := p.Locator("", "", "")
	installed, err := release.Installed(ctx, repo, loc)
	if err != nil {
		return err
	}

	var rel *release.Release
	if opts.tag != "" && !opts.checkOnly {
		if rel, err = feed.Tagged(ctx, opts.tag); err != nil {
			return fmt.Errorf("find release %s: %w", opts.tag, err)
		}
	} else {
		result, err := feed.Check(ctx, installed)
		if err != nil {
			return fmt.Errorf("check for content: %w", err)
		}
		if opts.checkOnly {
			if result.UpdateAvailable {
				fmt.Fprintf(out, "New content %s available (installed: %s): %s\n", result.Latest.Tag, installedLabel(installed), result.Latest.URL)
			} else {
				fmt.Fprintf(out, "Content %s is up to date.\n", installed)
			}
			return nil
		}
		if !result.UpdateAvailable {
			fmt.Fprintf(out, "Content %s is up to date.\n", installed)
			return nil
		}
		rel = result.Latest
	}

	name := release.AssetName(loc)
	fmt.Fprintf(out, "Downloading %s from %s...\n", name, rel.Tag)
	data, err := feed.Download(ctx, rel, name)
	if errors.Is(err, release.ErrNoAsset) {
		return fmt.Errorf("%s has no content for %s class %s yet", rel.Tag, p.Board, p.Class)
	}
	if err != nil {
		return err
	}

	b, err := content.ParseBundle(data, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !strings.EqualFold(b.Board, p.Board) || b.Class != p.Class {
		return fmt.Errorf("%s holds %s class %s, not %s class %s", name, b.Board, b.Class, p.Board, p.Class)
	}

	n, err := content.Import(ctx, repo, b)
	if err != nil {
		return err
	}
	if err := release.MarkInstalled(ctx, repo, loc, rel.Tag); err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d entries for %s class %s from %s\n", n, b.Board, b.Class, rel.Tag)
	return nil
}

func installedLabel(tag string) string {
	if tag == "" {
		return "none"
	}
	return tag
}
