package wizard

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"

	"github.com/goliatone/go-askgen/pkg/asker"
)

// InputConfig configures a text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// Driver runs individual prompts. Tests substitute a scripted driver.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

// NewDriver returns the driver for backend ("survey" or "huh") styled with
// theme.
func NewDriver(backend string, theme asker.Theme) Driver {
	if backend == "huh" {
		return &huhDriver{theme: theme.Huh()}
	}
	return &surveyDriver{opts: theme.Survey()}
}

type surveyDriver struct {
	opts []survey.AskOpt
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	opts := d.opts
	if cfg.Validator != nil {
		opts = append(opts[:len(opts):len(opts)], survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return cfg.Validator(s)
		}))
	}
	prompt := &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translate(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(prompt, &out, d.opts...); err != nil {
		return false, translate(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	// survey writes the chosen index into int targets.
	if err := survey.AskOne(prompt, &out, d.opts...); err != nil {
		return 0, translate(err)
	}
	return out, nil
}

type huhDriver struct {
	theme *huh.Theme
}

func (d *huhDriver) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(d.theme)
	return translate(form.RunWithContext(ctx))
}

func (d *huhDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	out := cfg.Default
	input := huh.NewInput().Title(cfg.Message).Description(cfg.Help).Value(&out)
	if cfg.Validator != nil {
		input = input.Validate(cfg.Validator)
	}
	if err := d.run(ctx, input); err != nil {
		return "", err
	}
	return out, nil
}

func (d *huhDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	out := cfg.Default
	if err := d.run(ctx, huh.NewConfirm().Title(cfg.Message).Description(cfg.Help).Value(&out)); err != nil {
		return false, err
	}
	return out, nil
}

func (d *huhDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	out := max(cfg.DefaultIndex, 0)
	field := huh.NewSelect[int]().
		Title(cfg.Message).
		Description(cfg.Help).
		Options(asker.IndexOptions(cfg.Options)...).
		Value(&out)
	if err := d.run(ctx, field); err != nil {
		return 0, err
	}
	return out, nil
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted) {
		return asker.ErrAborted
	}
	return err
}
