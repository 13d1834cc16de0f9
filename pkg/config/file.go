package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file.
type fileConfig struct {
	BaseURL  string `yaml:"base_url"`
	Engine   string `yaml:"engine"`
	Preamble string `yaml:"preamble"`
	Timeout  string `yaml:"timeout"`
}

// LoadFile overlays values from a YAML file onto cfg.
// The credential is never read from the file.
func LoadFile(cfg Config, path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := strings.TrimSpace(fc.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(fc.Engine); v != "" {
		cfg.Engine = v
	}
	if fc.Preamble != "" {
		cfg.Preamble = fc.Preamble
	}
	if v := strings.TrimSpace(fc.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
