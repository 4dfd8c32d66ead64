// Package wizard asks the operator for askgen settings and produces a config
// file.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/pkg/config"
)

var (
	backends = []string{string(prompt.BackendSurvey), string(prompt.BackendHuh)}
	themes   = []string{string(prompt.ThemeNone), string(prompt.ThemeColorful), string(prompt.ThemeExternal)}
)

// Run walks through the settings, starting from base, and returns the
// edited copy. base is not modified.
func Run(ctx context.Context, d Driver, base *config.Config) (*config.Config, error) {
	if base == nil {
		base = config.Default()
	}
	cfg := *base

	patterns, err := d.Input(ctx, InputConfig{
		Message:   "Packages to scan",
		Default:   strings.Join(cfg.Patterns, " "),
		Help:      "go/packages patterns separated by spaces, e.g. ./...",
		Validator: required,
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: patterns: %w", err)
	}
	cfg.Patterns = strings.Fields(patterns)

	backend, err := d.Select(ctx, SelectConfig{
		Message:      "Prompt library",
		Options:      backends,
		DefaultIndex: slices.Index(backends, cfg.Backend),
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: backend: %w", err)
	}
	cfg.Backend = backends[backend]

	theme, err := d.Select(ctx, SelectConfig{
		Message:      "Default theme",
		Options:      themes,
		DefaultIndex: slices.Index(themes, normalTheme(cfg.Theme)),
		Help:         "records can still pick their own with //ask:theme(...)",
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: theme: %w", err)
	}
	cfg.Theme = themes[theme]

	cfg.Prefix, err = d.Input(ctx, InputConfig{
		Message:   "Method prefix",
		Default:   cfg.Prefix,
		Validator: identifier,
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: prefix: %w", err)
	}

	cfg.Must, err = d.Confirm(ctx, ConfirmConfig{
		Message: "Also generate Must variants?",
		Default: cfg.Must,
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: must: %w", err)
	}

	cfg.Output, err = d.Input(ctx, InputConfig{
		Message: "Output directory",
		Default: cfg.Output,
		Help:    "leave empty to write next to each source file",
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: output: %w", err)
	}
	cfg.Output = strings.TrimSpace(cfg.Output)

	exclude, err := d.Input(ctx, InputConfig{
		Message: "Files to skip",
		Default: strings.Join(cfg.Exclude, " "),
		Help:    "doublestar patterns separated by spaces",
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: exclude: %w", err)
	}
	cfg.Exclude = strings.Fields(exclude)

	return &cfg, nil
}

func normalTheme(name string) string {
	t, err := prompt.ParseTheme(name)
	if err != nil {
		return string(prompt.DefaultTheme)
	}
	return string(t)
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func identifier(s string) error {
	if !token.IsIdentifier(s) {
		return fmt.Errorf("%q is not a Go identifier", s)
	}
	return nil
}
