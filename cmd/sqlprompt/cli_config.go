package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/sqlprompt/pkg/config"
	"github.com/spf13/pflag"
)

// cliFlags holds raw command-line values.
type cliFlags struct {
	ConfigFile string
	EnvFile    string
	BaseURL    string
	Engine     string
	Preamble   string
	Timeout    time.Duration
	NoSpinner  bool
	Verbose    bool
}

func bindFlags(flagSet *pflag.FlagSet, f *cliFlags) {
	defaults := configpkg.DefaultConfig()
	flagSet.StringVar(&f.ConfigFile, "config", "", "Path to a YAML config file")
	flagSet.StringVar(&f.EnvFile, "env-file", ".env", "Dotenv file loaded at startup (missing file is ignored)")
	flagSet.StringVar(&f.BaseURL, "base-url", defaults.BaseURL, "API base URL")
	flagSet.StringVar(&f.Engine, "engine", defaults.Engine, "Engine identifier used in the endpoint path")
	flagSet.StringVar(&f.Preamble, "preamble", defaults.Preamble, "Text prepended to every prompt")
	flagSet.DurationVar(&f.Timeout, "timeout", defaults.Timeout, "Per-request timeout")
	flagSet.BoolVar(&f.NoSpinner, "no-spinner", false, "Disable the busy indicator and screen clear")
	flagSet.BoolVar(&f.Verbose, "verbose", false, "Verbose request logging")
}

// loadEnvFile loads a dotenv file. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveConfig layers defaults, config file, environment and explicit flags.
func resolveConfig(f cliFlags, changed func(string) bool, getenv func(string) string) (configpkg.Config, error) {
	cfg := configpkg.DefaultConfig()

	if f.ConfigFile != "" {
		loaded, err := configpkg.LoadFile(cfg, f.ConfigFile)
		if err != nil {
			return configpkg.Config{}, err
		}
		cfg = loaded
	}

	cfg = configpkg.ApplyEnv(cfg, getenv)

	if changed("base-url") {
		cfg.BaseURL = f.BaseURL
	}
	if changed("engine") {
		cfg.Engine = f.Engine
	}
	if changed("preamble") {
		cfg.Preamble = f.Preamble
	}
	if changed("timeout") {
		cfg.Timeout = f.Timeout
	}
	cfg.NoSpinner = f.NoSpinner
	cfg.Verbose = f.Verbose

	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return configpkg.Config{}, err
	}
	return cfg, nil
}
