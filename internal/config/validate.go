package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.ContentRoot == "" {
		return &ValidationError{Field: "content_root", Message: "is required"}
	}
	if c.BlogDir == "" {
		return &ValidationError{Field: "blog_dir", Message: "is required"}
	}
	if c.PortfolioDir == "" {
		return &ValidationError{Field: "portfolio_dir", Message: "is required"}
	}
	if err := ValidateLocales(c.Locales); err != nil {
		return err
	}
	if !slices.Contains(c.Locales, c.DefaultLocale) {
		return &ValidationError{Field: "default_locale", Message: fmt.Sprintf("%q is not one of %v", c.DefaultLocale, c.Locales)}
	}
	if c.Server.Addr == "" {
		return &ValidationError{Field: "server.addr", Message: "is required"}
	}
	if c.Server.WatchPattern != "" && !doublestar.ValidatePattern(c.Server.WatchPattern) {
		return &ValidationError{Field: "server.watch_pattern", Message: fmt.Sprintf("invalid glob %q", c.Server.WatchPattern)}
	}
	return nil
}

// ValidateLocales checks that every locale is a well-formed BCP 47 tag usable
// as a directory name, and that none repeats.
func ValidateLocales(locales []string) error {
	if len(locales) == 0 {
		return &ValidationError{Field: "locales", Message: "at least one locale is required"}
	}
	seen := make(map[string]bool, len(locales))
	for _, l := range locales {
		if strings.ContainsAny(l, `/\`) {
			return &ValidationError{Field: "locales", Message: fmt.Sprintf("%q contains a path separator", l)}
		}
		if _, err := language.Parse(l); err != nil {
			return &ValidationError{Field: "locales", Message: fmt.Sprintf("%q is not a valid language tag: %v", l, err)}
		}
		if seen[l] {
			return &ValidationError{Field: "locales", Message: fmt.Sprintf("%q is listed twice", l)}
		}
		seen[l] = true
	}
	return nil
}
