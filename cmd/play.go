package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/app"
	"github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/plain"
	"github.com/abhisek/triviaz/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run a trivia quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, true)
	},
}

// runPlay runs a quiz. startQuiz skips the home menu in the TUI.
func runPlay(cmd *cobra.Command, startQuiz bool) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	src, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := []quiz.Option{
		quiz.WithLogger(logger),
		quiz.WithFetchTimeout(loadTimeout(cfg)),
	}

	// History is optional; the quiz runs without it.
	var store *history.Store
	if cfg.History.Enabled {
		store, err = openHistory(cfg.History.Path)
		if err != nil {
			logger.Warn("history unavailable", zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), "History unavailable:", err)
		} else {
			defer store.Close()
			opts = append(opts, history.NewRecorder(store, logger).Options()...)
		}
	}

	ctrl := quiz.New(src, opts...)
	defer ctrl.Close()

	decision, err := resolveUIMode(cfg.UI.Mode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if decision.warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), decision.warning)
	}

	if decision.useTUI {
		return app.Run(app.Options{
			Controller:    ctrl,
			History:       store,
			ProgressWidth: cfg.UI.ProgressWidth,
			StartQuiz:     startQuiz,
			Logger:        logger,
		})
	}

	if err := plain.New(ctrl, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

func openHistory(configured string) (*history.Store, error) {
	path, err := history.ResolvePath(configured)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}
