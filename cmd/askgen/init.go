package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-askgen/internal/wizard"
	"github.com/goliatone/go-askgen/pkg/asker"
	"github.com/goliatone/go-askgen/pkg/config"
)

// Overridden in tests.
var (
	newDriver = func(backend string) wizard.Driver {
		return wizard.NewDriver(backend, asker.Colorful())
	}
	checkTerminal = asker.Ready
	initFS        = afero.NewOsFs()
)

func newInitCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an " + config.DefaultFile + " interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultFile
			}
			return runInit(cmd, stdout, path, force)
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, stdout io.Writer, path string, force bool) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	if exists, err := afero.Exists(initFS, path); err != nil {
		return err
	} else if exists && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	base, err := config.Load(cmd.Context(),
		config.WithFS(initFS),
		config.WithEnvFile(envFile),
		config.WithFile(existing(path, force)),
	)
	if err != nil {
		return err
	}

	cfg, err := wizard.Run(cmd.Context(), newDriver(base.Backend), base)
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(initFS, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}

// existing returns path when an overwrite should start from its values.
func existing(path string, force bool) string {
	if !force {
		return ""
	}
	if ok, _ := afero.Exists(initFS, path); ok {
		return path
	}
	return ""
}
