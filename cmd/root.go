package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/logging"
)

var (
	cfgFile string
	vcfg    = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "triviaz",
	Short: "Terminal trivia quiz",
	Long:  "Triviaz fetches a list of multiple-choice trivia questions and quizzes you on them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	pf.String("source", "", "Trivia source: http, file or llm")
	pf.String("url", "", "Trivia endpoint for the http source")
	pf.String("file", "", "JSON or YAML question file for the file source")
	pf.String("ui", "", "UI mode: auto, tui or plain")
	pf.Duration("timeout", 0, "Bound on a single trivia load")
	pf.String("db", "", "Path to the SQLite history database (overrides TRIVIAZ_DB)")

	bindFlag(vcfg, "source.kind", "source")
	bindFlag(vcfg, "source.url", "url")
	bindFlag(vcfg, "source.path", "file")
	bindFlag(vcfg, "ui.mode", "ui")
	bindFlag(vcfg, "source.timeout", "timeout")
	bindFlag(vcfg, "history.path", "db")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(v *viper.Viper, key, flag string) {
	cobra.CheckErr(v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)))
}

// loadConfig reads the configuration and builds the file logger. The
// returned logger must be synced by the caller.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(vcfg, cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
