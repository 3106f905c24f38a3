package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or JSON content bundle into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return importBundle(cmd.Context(), cmd.OutOrStdout(), st.ContentRepo(), args[0])
	},
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and manage stored content",
}

var contentListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List stored content keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return listContent(cmd.Context(), cmd.OutOrStdout(), st.ContentRepo(), prefix)
	},
}

var contentRmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Delete stored content keys",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return removeContent(cmd.Context(), cmd.OutOrStdout(), st.ContentRepo(), args)
	},
}

func init() {
	contentCmd.AddCommand(contentListCmd)
	contentCmd.AddCommand(contentRmCmd)
	contentCmd.AddCommand(contentPullCmd)
}

func importBundle(ctx context.Context, out io.Writer, repo store.ContentRepo, path string) error {
	b, err := content.LoadBundle(path)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "%s has %d problem(s):\n", path, len(verr.Issues))
			for _, issue := range verr.Issues {
				fmt.Fprintf(out, "  %s: %s\n", issue.Field, issue.Message)
			}
		}
		return err
	}

	n, err := content.Import(ctx, repo, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d entries for %s class %s\n", n, b.Board, b.Class)
	return nil
}

func listContent(ctx context.Context, out io.Writer, repo store.ContentRepo, prefix string) error {
	keys, err := repo.Keys(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}
	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	fmt.Fprintf(out, "\n%d keys\n", len(keys))
	return nil
}

func removeContent(ctx context.Context, out io.Writer, repo store.ContentRepo, keys []string) error {
	for _, k := range keys {
		if err := repo.Delete(ctx, k); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no content stored under %q", k)
			}
			return fmt.Errorf("delete %s: %w", k, err)
		}
		fmt.Fprintf(out, "Deleted %s\n", k)
	}
	return nil
}
