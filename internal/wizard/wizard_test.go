package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-askgen/pkg/asker"
	"github.com/goliatone/go-askgen/pkg/config"
)

// scripted answers prompts in order and records what it was asked.
type scripted struct {
	inputs   []string
	confirms []bool
	selects  []int
	err      error

	asked    []string
	defaults []any
}

func (s *scripted) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	s.defaults = append(s.defaults, cfg.Default)
	if s.err != nil {
		return "", s.err
	}
	answer := s.inputs[0]
	s.inputs = s.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (s *scripted) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	s.defaults = append(s.defaults, cfg.Default)
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

func (s *scripted) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	s.defaults = append(s.defaults, cfg.DefaultIndex)
	answer := s.selects[0]
	s.selects = s.selects[1:]
	return answer, nil
}

func TestRun_CollectsSettings(t *testing.T) {
	d := &scripted{
		inputs:   []string{"./cmd/... ./internal/...", "Prompt", " gen ", "**/*_legacy.go"},
		confirms: []bool{true},
		selects:  []int{1, 0},
	}
	base := config.Default()

	cfg, err := Run(context.Background(), d, base)
	require.NoError(t, err)

	assert.Equal(t, []string{"./cmd/...", "./internal/..."}, cfg.Patterns)
	assert.Equal(t, "huh", cfg.Backend)
	assert.Equal(t, "none", cfg.Theme)
	assert.Equal(t, "Prompt", cfg.Prefix)
	assert.True(t, cfg.Must)
	assert.Equal(t, "gen", cfg.Output)
	assert.Equal(t, []string{"**/*_legacy.go"}, cfg.Exclude)
	assert.Equal(t, "_ask.go", cfg.Suffix)

	assert.Equal(t, "survey", base.Backend, "base must not change")
	assert.Equal(t, []any{".", 0, 1, "Ask", false, "", ""}, d.defaults)
}

func TestRun_InvalidPrefix(t *testing.T) {
	d := &scripted{
		inputs:  []string{".", "2fast"},
		selects: []int{0, 1},
	}
	_, err := Run(context.Background(), d, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard: prefix")
	assert.Contains(t, err.Error(), `"2fast" is not a Go identifier`)
}

func TestRun_Aborted(t *testing.T) {
	d := &scripted{err: asker.ErrAborted}
	_, err := Run(context.Background(), d, nil)
	assert.ErrorIs(t, err, asker.ErrAborted)
}

func TestNormalTheme(t *testing.T) {
	assert.Equal(t, "colorful", normalTheme("default"))
	assert.Equal(t, "colorful", normalTheme("bogus"))
	assert.Equal(t, "external", normalTheme("external"))
}

func TestTranslate(t *testing.T) {
	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(huhAborted()), asker.ErrAborted)
}

func TestNewDriver(t *testing.T) {
	_, ok := NewDriver("huh", asker.Colorful()).(*huhDriver)
	assert.True(t, ok)
	sd, ok := NewDriver("survey", asker.Colorful()).(*surveyDriver)
	require.True(t, ok)
	assert.NotEmpty(t, sd.opts)
	sd, ok = NewDriver("", asker.Plain()).(*surveyDriver)
	require.True(t, ok)
	assert.Empty(t, sd.opts)
}

func huhAborted() error { return fmt.Errorf("run: %w", huh.ErrUserAborted) }
