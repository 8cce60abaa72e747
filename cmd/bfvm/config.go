package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	configName  = ".bfvm"
	historyName = ".bfvm_history"
)

type config struct {
	LogLevel    zerolog.Level
	NoColor     bool
	StepLimit   int64
	Prompt      string
	History     bool
	HistoryFile string
}

func initConfig() {
	if err := setupViper(viper.GetViper()); err != nil {
		fatal(err)
	}
}

// setupViper registers defaults, environment bindings and the optional
// config file in the user's home directory.
func setupViper(v *viper.Viper) error {
	v.SetDefault("log-level", "warn")
	v.SetDefault("no-color", false)
	v.SetDefault("step-limit", 0)
	v.SetDefault("prompt", "bf> ")
	v.SetDefault("history", true)

	v.SetEnvPrefix("bfvm")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("no-color", "BFVM_NO_COLOR", "NO_COLOR"); err != nil {
		return err
	}

	home, err := homedir.Dir()
	if err != nil {
		// No home directory means no config file and no history.
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func configFromViper(v *viper.Viper) (config, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
	if err != nil {
		return config{}, fmt.Errorf("invalid log-level %q", v.GetString("log-level"))
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	limit := v.GetInt64("step-limit")
	if limit < 0 {
		return config{}, fmt.Errorf("invalid step-limit %d: must be zero or positive", limit)
	}
	cfg := config{
		LogLevel:  level,
		NoColor:   v.GetBool("no-color"),
		StepLimit: limit,
		Prompt:    v.GetString("prompt"),
		History:   v.GetBool("history"),
	}
	if cfg.History {
		if home, err := homedir.Dir(); err == nil {
			cfg.HistoryFile = filepath.Join(home, historyName)
		}
	}
	return cfg, nil
}

// loadConfig reads the global configuration and applies its process-wide
// effects.
func loadConfig() config {
	cfg, err := configFromViper(viper.GetViper())
	if err != nil {
		fatal(err)
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg
}

func newLogger(cfg config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: cfg.NoColor || color.NoColor,
	}).Level(cfg.LogLevel).With().Timestamp().Logger()
}
