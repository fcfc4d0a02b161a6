// Package config loads the CLI configuration.
//
// Values are resolved in increasing priority:
//
//  1. Built-in defaults
//  2. folio.yaml (when present)
//  3. Environment variables, including those set by a .env file next to the config
//
// Recognised variables: FOLIO_CONTENT_ROOT, FOLIO_ADDR, FOLIO_CACHE,
// FOLIO_LOCALES (comma separated), FOLIO_DEFAULT_LOCALE and FOLIO_WATCH.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project root.
const FileName = "folio.yaml"

// Config is the resolved CLI configuration.
type Config struct {
	ContentRoot   string       `yaml:"content_root"`
	BlogDir       string       `yaml:"blog_dir"`
	PortfolioDir  string       `yaml:"portfolio_dir"`
	Locales       []string     `yaml:"locales"`
	DefaultLocale string       `yaml:"default_locale"`
	Cache         bool         `yaml:"cache"`
	Server        ServerConfig `yaml:"server"`
}

// ServerConfig configures `folio serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	Watch        bool   `yaml:"watch"`
	WatchPattern string `yaml:"watch_pattern"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		ContentRoot:   "content",
		BlogDir:       "blog",
		PortfolioDir:  "portfolio",
		Locales:       []string{"en", "th"},
		DefaultLocale: "en",
		Server: ServerConfig{
			Addr:         ":8080",
			WatchPattern: "**/*.md",
		},
	}
}

// Load resolves the configuration for the project at dir.
//
// dir/folio.yaml is optional; dir/.env is loaded if present and never
// overrides variables already set in the process environment. A relative
// content root is resolved against dir.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", FileName, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.ContentRoot) {
		cfg.ContentRoot = filepath.Join(dir, cfg.ContentRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("FOLIO_CONTENT_ROOT"); v != "" {
		cfg.ContentRoot = v
	}
	if v := os.Getenv("FOLIO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("FOLIO_LOCALES"); v != "" {
		cfg.Locales = splitList(v)
	}
	if v := os.Getenv("FOLIO_DEFAULT_LOCALE"); v != "" {
		cfg.DefaultLocale = v
	}
	if v := os.Getenv("FOLIO_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: "FOLIO_CACHE", Message: fmt.Sprintf("invalid boolean %q", v)}
		}
		cfg.Cache = b
	}
	if v := os.Getenv("FOLIO_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: "FOLIO_WATCH", Message: fmt.Sprintf("invalid boolean %q", v)}
		}
		cfg.Server.Watch = b
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BlogPath is the absolute blog directory.
func (c *Config) BlogPath() string {
	return filepath.Join(c.ContentRoot, c.BlogDir)
}

// PortfolioPath is the absolute portfolio directory.
func (c *Config) PortfolioPath() string {
	return filepath.Join(c.ContentRoot, c.PortfolioDir)
}
