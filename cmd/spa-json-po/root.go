package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/loopcontext/spajsonpo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the raw flag values before they are merged into a Config.
type options struct {
	keys      []string
	output    string
	converter string
	config    string
	verbose   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "spa-json-po [flags] FILES...",
		Short: "Extract strings from SPA-JSON files and output a POT file",
		Long: `Extract strings from SPA-JSON files and output a POT file.

Each input file is converted with spa-json-dump. Values to extract are
addressed by key paths, such as

    /wireplumber.settings.schema/device.restore-routes/name

which corresponds to the value of the key 'name' in the JSON object.
Only string values are supported; array elements are never reached.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), &opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd.Flags(), &opts)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	// StringArray keeps commas inside a regex intact.
	fs.StringArrayVarP(&opts.keys, "key-match", "k", nil, "Regex applied on key path to extract a value (repeatable)")
	fs.StringVarP(&opts.output, "output", "o", "", "Produce output to this file, not stdout")
	fs.StringVar(&opts.converter, "spa-json-dump", spajsonpo.DefaultConverterPath, "Path to spa-json-dump executable (env SPA_JSON_DUMP)")
	fs.StringVar(&opts.config, "config", "", "YAML project file providing key-match, output and spa-json-dump")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log per-file extraction details to stderr")
}

// resolveConfig layers flags over the project file over the environment.
func resolveConfig(fs *pflag.FlagSet, opts *options) (spajsonpo.Config, error) {
	cfg, err := spajsonpo.LoadConfig()
	if err != nil {
		return spajsonpo.Config{}, err
	}
	if opts.config != "" {
		pf, err := spajsonpo.LoadProjectFile(opts.config)
		if err != nil {
			return spajsonpo.Config{}, err
		}
		cfg.ApplyProject(pf)
	}
	if fs.Changed("spa-json-dump") {
		cfg.ConverterPath = opts.converter
	}
	if fs.Changed("output") {
		cfg.Output = opts.output
	}
	if fs.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	cfg.KeyPatterns = append(cfg.KeyPatterns, opts.keys...)
	return cfg, nil
}

func run(ctx context.Context, cfg spajsonpo.Config, files []string, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	patterns, err := spajsonpo.CompilePatterns(cfg.KeyPatterns)
	if err != nil {
		return err
	}
	conv := &spajsonpo.ExecConverter{Path: cfg.ConverterPath, Logger: logger}
	catalog, err := spajsonpo.NewExtractor(conv, patterns, logger).Extract(ctx, files)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return spajsonpo.WriteTemplate(stdout, catalog)
	}
	if err := writeTemplateFile(cfg.Output, catalog); err != nil {
		return err
	}
	logger.Debug("wrote template", "path", cfg.Output, "entries", catalog.Len())
	return nil
}

// writeTemplateFile is only called once extraction has succeeded, so a failed
// run never creates or truncates the output file.
func writeTemplateFile(path string, catalog *spajsonpo.Catalog) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := spajsonpo.WriteTemplate(f, catalog); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
