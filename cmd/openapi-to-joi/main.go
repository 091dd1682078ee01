package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/truepill/openapi-to-joi/internal/config"
	"github.com/truepill/openapi-to-joi/internal/generator"
)

var version = "dev"

type options struct {
	cfgFile          string
	output           string
	prettierConfig   string
	timeout          string
	skipDescriptions bool
	skipUnknowns     bool
	stripHTML        bool
	strict           bool
	interactive      bool
	verbose          bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(surveyPrompter{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(prompt prompter) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:     "openapi-to-joi [source]",
		Short:   "Generate Joi validation schemas from OpenAPI specification",
		Long:    `openapi-to-joi generates Joi schemas for operation parameters and component schemas of an OpenAPI 3.x document.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, prompt)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (openapi-to-joi.json or .yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file")
	flags.StringVar(&opts.prettierConfig, "prettier-config", "", "path to a Prettier configuration")
	flags.StringVar(&opts.timeout, "timeout", config.DefaultTimeout.String(), "timeout for fetching remote documents")
	flags.BoolVar(&opts.skipDescriptions, "skip-descriptions", false, "omit .label() and .description() from generated code")
	flags.BoolVar(&opts.skipUnknowns, "skip-unknowns", false, "do not allow unknown keys in objects")
	flags.BoolVar(&opts.stripHTML, "strip-html", false, "strip HTML markup from descriptions")
	flags.BoolVar(&opts.strict, "strict", false, "fully validate the OpenAPI document")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for missing options")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, opts *options, prompt prompter) error {
	cfg, err := loadConfig(cmd, args, opts)
	if err != nil {
		return err
	}

	if opts.interactive {
		if err := promptMissing(cmd.Context(), prompt, cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	logger.Info("generating schemas", "source", cfg.Source)

	out, err := generator.Run(cmd.Context(), cfg, generator.WithLogger(logger))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Output, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}
	logger.Debug("module written", "output", cfg.Output, "bytes", len(out))

	fmt.Fprintf(cmd.OutOrStdout(), "File created: %s\n", cfg.Output)
	return nil
}

func loadConfig(cmd *cobra.Command, args []string, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(opts.cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// CLI флаги переопределяют конфиг
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("prettier-config") {
		cfg.PrettierConfigPath = opts.prettierConfig
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("skip-descriptions") {
		cfg.SkipDescriptions = opts.skipDescriptions
	}
	if flags.Changed("skip-unknowns") {
		cfg.SkipUnknowns = opts.skipUnknowns
	}
	if flags.Changed("strip-html") {
		cfg.StripHTML = opts.stripHTML
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}

	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
