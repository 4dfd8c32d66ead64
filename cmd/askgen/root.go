package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/watch"
	"github.com/goliatone/go-askgen/pkg/config"
	"github.com/goliatone/go-askgen/pkg/logger"
	"github.com/goliatone/go-askgen/pkg/orchestrator"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"type":      "types",
	"theme":     "theme",
	"backend":   "backend",
	"prefix":    "prefix",
	"must":      "must",
	"output":    "output",
	"suffix":    "suffix",
	"exclude":   "exclude",
	"tags":      "build_tags",
	"templates": "templates",
	"watch":     "watch.enabled",
	"debounce":  "watch.debounce",
	"dry-run":   "dry_run",
	"log-level": "log.level",
	"log-json":  "log.json",
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "askgen [packages]",
		Short: "Generate interactive prompt methods for Go structs",
		Long: `askgen reads Go packages, finds structs marked with //ask:generate or
//ask:theme(...) (or named with --type) and writes one <file>_ask.go per
source file with an Ask<Field> method for every field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args, stdout, stderr)
			if err != nil {
				fmt.Fprintln(stderr, err)
			}
			return err
		},
	}

	flags := root.Flags()
	flags.StringSlice("type", nil, "struct types to generate for (default: structs with an //ask: directive)")
	flags.String("theme", "", "default theme: none, colorful or external")
	flags.String("backend", "", "prompt library: survey or huh")
	flags.String("prefix", "", "method name prefix")
	flags.Bool("must", false, "also emit Must<Prefix><Field> methods that panic on failure")
	flags.String("output", "", "write generated files to this directory")
	flags.String("suffix", "", "generated file suffix")
	flags.StringSlice("exclude", nil, "doublestar patterns of source files to skip")
	flags.StringSlice("tags", nil, "build tags used when loading packages")
	flags.String("templates", "", "directory with template overrides")
	flags.Bool("watch", false, "regenerate when sources change")
	flags.Duration("debounce", 0, "quiet period before regenerating in watch mode")
	flags.Bool("dry-run", false, "print what would be generated without writing")

	persistent := root.PersistentFlags()
	persistent.String("config", "", "config file (default .askgen.yaml when present)")
	persistent.String("env-file", ".env", "dotenv file with ASKGEN_* variables")
	persistent.String("log-level", "", "log level: debug, info, warn or error")
	persistent.Bool("log-json", false, "log as JSON")

	root.AddCommand(newVersionCmd(stdout), newInitCmd(stdout))
	return root
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command, args []string) (map[string]any, error) {
	values := make(map[string]any)
	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		switch f.Value.Type() {
		case "stringSlice":
			values[key], err = cmd.Flags().GetStringSlice(f.Name)
		case "bool":
			values[key], err = cmd.Flags().GetBool(f.Name)
		case "duration":
			values[key], err = cmd.Flags().GetDuration(f.Name)
		default:
			values[key] = f.Value.String()
		}
	})
	if len(args) > 0 {
		values["patterns"] = args
	}
	return values, err
}

func run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	values, err := overrides(cmd, args)
	if err != nil {
		return err
	}
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(ctx,
		config.WithFile(configFile),
		config.WithEnvFile(envFile),
		config.WithOverrides(values),
	)
	if err != nil {
		return err
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Output: stderr})
	ctx = logger.ContextWithLogger(ctx, log)

	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	ld := loader.New(loader.WithLogger(log))
	gen := orchestrator.New(
		orchestrator.WithLoader(ld),
		orchestrator.WithLogger(log),
		orchestrator.WithTemplateDir(cfg.Templates),
	)
	req := requestFrom(cfg, dir)

	result, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	report(stdout, result, cfg.DryRun)
	if !cfg.Watch.Enabled {
		return result.Err()
	}
	if err := result.Err(); err != nil {
		log.Warn("initial generation had failures", "error", err)
	}

	return watch.Run(ctx, result.Dirs, watch.Options{
		Debounce: cfg.Watch.Debounce,
		Suffix:   cfg.Suffix,
		Logger:   log,
	}, func(ctx context.Context, changed []string) error {
		log.Info("regenerating", "changed", len(changed))
		ld.Invalidate()
		result, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		report(stdout, result, cfg.DryRun)
		return result.Err()
	})
}

func requestFrom(cfg *config.Config, dir string) orchestrator.Request {
	return orchestrator.Request{
		Dir:       dir,
		Patterns:  cfg.Patterns,
		Types:     cfg.Types,
		Exclude:   cfg.Exclude,
		BuildTags: cfg.BuildTags,
		Theme:     cfg.Theme,
		Backend:   cfg.Backend,
		Prefix:    cfg.Prefix,
		Must:      cfg.Must,
		Suffix:    cfg.Suffix,
		OutputDir: cfg.Output,
		DryRun:    cfg.DryRun,
	}
}

func report(w io.Writer, result *orchestrator.Result, dryRun bool) {
	for _, out := range result.Files {
		switch {
		case dryRun:
			fmt.Fprintf(w, "// %s\n%s\n", out.Path, out.Source)
		case out.Written:
			fmt.Fprintf(w, "wrote %s (%d records)\n", out.Path, len(out.Records))
		default:
			fmt.Fprintf(w, "unchanged %s\n", out.Path)
		}
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "skipped %s\n", failure.Error())
	}
}
