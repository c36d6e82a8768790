package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		store, err := openHistory(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		stats, err := store.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		sessions, err := store.Recent(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		printHistory(cmd.OutOrStdout(), stats, sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of sessions to show")
}

func printHistory(w io.Writer, stats history.Stats, sessions []history.SessionRecord) {
	if stats.Sessions == 0 {
		fmt.Fprintln(w, "No quizzes played yet.")
		return
	}

	fmt.Fprintf(w, "Sessions: %d   Answers: %d   Correct: %d (%.0f%%)   Best: %d\n",
		stats.Sessions, stats.AnswersGiven, stats.AnswersCorrect, stats.Accuracy()*100, stats.BestScore)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-19s  %-7s  %-8s  %s\n", "Completed", "Score", "Accuracy", "Source")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, s := range sessions {
		fmt.Fprintf(w, "%-19s  %-7s  %-8s  %s\n",
			s.CompletedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", s.Score, s.Questions),
			fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			s.Source,
		)
	}
}
