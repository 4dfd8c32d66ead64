package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-askgen/internal/wizard"
	"github.com/goliatone/go-askgen/pkg/asker"
	"github.com/goliatone/go-askgen/pkg/config"
	"github.com/goliatone/go-askgen/pkg/testsupport"
)

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "askgen "))
}

func TestOverrides_OnlyChangedFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	require.NoError(t, cmd.ParseFlags([]string{
		"--type", "Profile,Account",
		"--theme", "none",
		"--must",
		"--debounce", "1s",
		"--log-level", "debug",
	}))

	values, err := overrides(cmd, []string{"./internal/..."})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"types":          []string{"Profile", "Account"},
		"theme":          "none",
		"must":           true,
		"watch.debounce": time.Second,
		"log.level":      "debug",
		"patterns":       []string{"./internal/..."},
	}, values)
}

func TestRequestFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Types = []string{"Profile"}
	cfg.Output = "gen"
	cfg.DryRun = true

	req := requestFrom(cfg, "/work")
	assert.Equal(t, "/work", req.Dir)
	assert.Equal(t, []string{"."}, req.Patterns)
	assert.Equal(t, []string{"Profile"}, req.Types)
	assert.Equal(t, "colorful", req.Theme)
	assert.Equal(t, "survey", req.Backend)
	assert.Equal(t, "Ask", req.Prefix)
	assert.Equal(t, "gen", req.OutputDir)
	assert.True(t, req.DryRun)
}

const moduleSource = `package profile

//ask:generate
type Profile struct {
	//ask:select(prompt = "Color", options = ["red", "green"], default = 1)
	Color string
	Admin bool
}
`

func TestRun_GeneratesIntoModule(t *testing.T) {
	dir := testsupport.WriteModule(t, "example.com/profile", map[string]string{
		"profile.go": moduleSource,
	})
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--backend", "huh"})
	require.NoError(t, cmd.Execute(), stderr.String())

	assert.Contains(t, stdout.String(), "wrote ")
	data, err := os.ReadFile(filepath.Join(dir, "profile_ask.go"))
	require.NoError(t, err)
	src := string(data)
	assert.Contains(t, src, "// Code generated by askgen. DO NOT EDIT.")
	assert.Contains(t, src, "func (r *Profile) AskColor() error {")
	assert.Contains(t, src, "func (r *Profile) AskAdmin(prompt string) error {")
	assert.Contains(t, src, `"github.com/charmbracelet/huh"`)

	stdout.Reset()
	cmd = newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--backend", "huh"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "unchanged ")
}

func TestRun_DryRunPrintsSource(t *testing.T) {
	dir := testsupport.WriteModule(t, "example.com/profile", map[string]string{
		"profile.go": moduleSource,
	})
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--dry-run", "--theme", "none"})
	require.NoError(t, cmd.Execute(), stderr.String())

	assert.Contains(t, stdout.String(), "func (r *Profile) AskColor() error {")
	_, err := os.Stat(filepath.Join(dir, "profile_ask.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := testsupport.WriteModule(t, "example.com/profile", map[string]string{
		"profile.go": moduleSource,
	})
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--backend", "tview"})
	require.Error(t, cmd.Execute())
	assert.NotEmpty(t, stderr.String())
}

type answers struct{ inputs []string }

func (a *answers) Input(_ context.Context, cfg wizard.InputConfig) (string, error) {
	if len(a.inputs) == 0 {
		return cfg.Default, nil
	}
	answer := a.inputs[0]
	a.inputs = a.inputs[1:]
	return answer, nil
}

func (a *answers) Confirm(context.Context, wizard.ConfirmConfig) (bool, error) { return true, nil }

func (a *answers) Select(_ context.Context, cfg wizard.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func stubInit(t *testing.T, d wizard.Driver, ready error) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	prevDriver, prevCheck, prevFS := newDriver, checkTerminal, initFS
	newDriver = func(string) wizard.Driver { return d }
	checkTerminal = func() error { return ready }
	initFS = fsys
	t.Cleanup(func() { newDriver, checkTerminal, initFS = prevDriver, prevCheck, prevFS })
	return fsys
}

func TestInit_WritesConfig(t *testing.T) {
	fsys := stubInit(t, &answers{inputs: []string{"./...", "Prompt"}}, nil)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"init", "--env-file", ""})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "wrote .askgen.yaml\n", stdout.String())

	cfg, err := config.Load(context.Background(), config.WithFS(fsys), config.WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"./..."}, cfg.Patterns)
	assert.Equal(t, "Prompt", cfg.Prefix)
	assert.True(t, cfg.Must)
	assert.Equal(t, "colorful", cfg.Theme)

	cmd = newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"init", "--env-file", ""})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_RequiresTerminal(t *testing.T) {
	stubInit(t, &answers{}, asker.ErrNoTerminal)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"init"})
	assert.ErrorIs(t, cmd.Execute(), asker.ErrNoTerminal)
}
