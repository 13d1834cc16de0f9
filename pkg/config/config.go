package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// EnvToken names the variable holding the bearer credential.
	EnvToken   = "OAI_TOKEN"
	EnvBaseURL = "OAI_BASE_URL"
	EnvEngine  = "OAI_ENGINE"

	DefaultBaseURL  = "https://api.openai.com/v1/"
	DefaultEngine   = "text-davinci-001"
	DefaultPreamble = "Generate a Sql code for the given statement"
	DefaultTimeout  = 30 * time.Second
)

// ErrMissingToken is returned when no credential is configured.
var ErrMissingToken = errors.New(EnvToken + " is not set")

// Config holds all runtime configuration for the client.
// It is built once at startup and treated as immutable afterwards.
type Config struct {
	Token    string
	BaseURL  string
	Engine   string
	Preamble string
	Timeout  time.Duration

	Verbose   bool
	NoSpinner bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Engine:   DefaultEngine,
		Preamble: DefaultPreamble,
		Timeout:  DefaultTimeout,
	}
}

// ApplyEnv overlays values read from the environment.
// Unset or blank variables leave the current value in place.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvToken)); v != "" {
		cfg.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvEngine)); v != "" {
		cfg.Engine = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Engine = strings.Trim(strings.TrimSpace(cfg.Engine), "/")

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Validate checks the startup preconditions.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Token) == "" {
		return ErrMissingToken
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base url %q must be http or https", cfg.BaseURL)
	}
	return nil
}

// CompletionsPath is the endpoint path relative to BaseURL.
func (c Config) CompletionsPath() string {
	return "engines/" + c.Engine + "/completions"
}

// Endpoint is the absolute completions URL.
func (c Config) Endpoint() string {
	return c.BaseURL + c.CompletionsPath()
}
