package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/trivia"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and validate the configured trivia source",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		src, err := buildSource(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout(cfg))
		defer cancel()

		items, err := src.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", src.Describe(), err)
		}

		if asJSON {
			raw, err := trivia.Encode(items)
			if err != nil {
				return fmt.Errorf("encode questions: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
			return err
		}

		printItems(cmd.OutOrStdout(), src.Describe(), items)
		return nil
	},
}

func init() {
	fetchCmd.Flags().Bool("json", false, "Print the questions as JSON in the wire format")
}

func printItems(w io.Writer, source string, items []trivia.Item) {
	fmt.Fprintf(w, "%d questions from %s\n", len(items), source)
	for i, it := range items {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, it.Question)
		for j, a := range it.Answers {
			mark := " "
			if a.IsCorrect {
				mark = "✓"
			}
			fmt.Fprintf(w, "   %s %c) %s\n", mark, 'a'+rune(j), a.Text)
		}
	}
}
