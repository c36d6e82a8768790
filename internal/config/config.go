// Package config loads triviaz settings from a YAML file, a .env file and
// TRIVIAZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TRIVIAZ"

// DefaultSourceURL is the trivia endpoint used when none is configured.
const DefaultSourceURL = "https://ymorsi.com/docs/assets/files/api.html"

// Source kinds.
const (
	SourceHTTP = "http"
	SourceFile = "file"
	SourceLLM  = "llm"
)

// UI modes.
const (
	UIAuto  = "auto"
	UITUI   = "tui"
	UIPlain = "plain"
)

// Config holds application configuration.
type Config struct {
	Source  Source  `mapstructure:"source"`
	UI      UI      `mapstructure:"ui"`
	History History `mapstructure:"history"`
	Log     Log     `mapstructure:"log"`
	LLM     LLM     `mapstructure:"llm"`
}

// Source selects and tunes the trivia source.
type Source struct {
	Kind      string        `mapstructure:"kind"`       // http, file or llm
	URL       string        `mapstructure:"url"`        // endpoint for http
	Path      string        `mapstructure:"path"`       // JSON or YAML file for file
	Timeout   time.Duration `mapstructure:"timeout"`    // bound on a single load
	UserAgent string        `mapstructure:"user_agent"` // sent with http requests
	Retry     Retry         `mapstructure:"retry"`
}

// Retry configures retries of transient fetch failures.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// UI configures the presentation layer.
type UI struct {
	Mode          string  `mapstructure:"mode"`           // auto, tui or plain
	ProgressWidth float64 `mapstructure:"progress_width"` // display range for scaled progress
}

// History configures the result database.
type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json or console
}

// LLM configures the generated-question source.
type LLM struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Topic    string        `mapstructure:"topic"`
	Count    int           `mapstructure:"count"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// New returns a viper instance with defaults and environment bindings set.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("source.kind", SourceHTTP)
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.path", "")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("source.user_agent", "triviaz")
	v.SetDefault("source.retry.max_attempts", 3)
	v.SetDefault("source.retry.initial_wait", "500ms")
	v.SetDefault("source.retry.max_wait", "5s")
	v.SetDefault("source.retry.multiplier", 2.0)
	v.SetDefault("ui.mode", UIAuto)
	v.SetDefault("ui.progress_width", 350)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.topic", "general knowledge")
	v.SetDefault("llm.count", 10)
	v.SetDefault("llm.timeout", "60s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Historical name for the history database path.
	_ = v.BindEnv("history.path", EnvPrefix+"_HISTORY_PATH", EnvPrefix+"_DB")

	return v
}

// Load reads .env, the config file and the environment into a Config.
// path selects an explicit config file; when empty, triviaz.yaml is
// looked up in the working directory and $XDG_CONFIG_HOME/triviaz.
// A missing config file is not an error unless path was given.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("triviaz")
		v.AddConfigPath(".")
		if dir := configHome(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "triviaz"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the defaults overlaid with the environment, without
// reading any file.
func Default() *Config {
	var cfg Config
	_ = New().Unmarshal(&cfg)
	cfg.normalize()
	return &cfg
}

func (c *Config) normalize() {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.UI.Mode == "" {
		c.UI.Mode = UIAuto
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.URL == "" {
			errs = append(errs, errors.New("source.url is required for the http source"))
		}
	case SourceFile:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path is required for the file source"))
		}
	case SourceLLM:
		if c.LLM.Count <= 0 {
			errs = append(errs, errors.New("llm.count must be positive"))
		}
		if c.LLM.Timeout <= 0 {
			errs = append(errs, errors.New("llm.timeout must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.kind %q (expected http|file|llm)", c.Source.Kind))
	}

	if c.Source.Timeout <= 0 {
		errs = append(errs, errors.New("source.timeout must be positive"))
	}
	if c.Source.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("source.retry.max_attempts must be at least 1"))
	}

	switch c.UI.Mode {
	case UIAuto, UITUI, UIPlain:
	default:
		errs = append(errs, fmt.Errorf("unknown ui.mode %q (expected auto|tui|plain)", c.UI.Mode))
	}
	if c.UI.ProgressWidth <= 0 {
		errs = append(errs, errors.New("ui.progress_width must be positive"))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q (expected json|console)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}
