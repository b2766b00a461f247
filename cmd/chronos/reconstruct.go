package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/chronos/internal/config"
	"github.com/nao1215/chronos/internal/log"
	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/pipeline"
	"github.com/nao1215/chronos/internal/progress"
	"github.com/nao1215/chronos/internal/reconstruct"
	"github.com/nao1215/chronos/internal/report"
	"github.com/nao1215/chronos/internal/search"
)

// progressRuleWidth is the width of the "=" rules between progress stages.
const progressRuleWidth = 50

// NewReconstructCmd creates the reconstruct command.
func NewReconstructCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reconstruct <fragment>",
		Aliases: []string{"dig"},
		Short:   "Reconstruct a text fragment and gather context",
		Long: `Reconstruct expands a fragment of internet slang or archaic text with
Google Gemini, searches the web for contextual sources and prints a report.

The search queries depend on the fragment:
- internet slang (brb, afk, lol, ...): slang dictionaries
- historical words (ancient, scroll, manuscript, ...): historical documents
- anything else: the fragment itself and linguistic analysis

When search credentials are missing or the search API fails, built-in
reference sources are used. A failed reconstruction stops the run.

Examples:
  # Reconstruct internet slang
  chronos reconstruct "brb, gotta afk"

  # Write a Markdown report to a file as well
  chronos reconstruct --markdown -o reports/scroll.md "the ancient scroll reads"

  # Use a different model
  chronos dig --model gemini-1.5-pro "omg ttyl"`,
		Args: cobra.ExactArgs(1),
		RunE: runReconstructCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Settings file path (default: .chronos.yaml in current, XDG config or home directory)")
	cmd.Flags().String("model", config.DefaultModel,
		"Gemini model used for reconstruction")
	cmd.Flags().Duration("search-timeout", config.DefaultSearchTimeout,
		"Time limit for each search request")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the report as Markdown")
	cmd.Flags().StringP("output", "o", "",
		"Also write the report to the specified file (creates directories if needed)")
	cmd.Flags().String("bucket", "",
		"Force the query bucket (slang, historical or general) instead of classifying the fragment")
	cmd.Flags().Bool("log-json", false,
		"Write logs to stderr as JSON")
	cmd.Flags().Bool("show-plan", false,
		"Include the selected search queries in the text report")
	cmd.Flags().Bool("no-color", false,
		"Disable colored progress output")

	return cmd
}

// runReconstructCmd executes the reconstruct command.
func runReconstructCmd(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := buildConfig(cmd, args, os.Getenv)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd.OutOrStdout(), cfg)
	printer.Infof("🔍 Project Chronos - AI Archeologist")
	printer.Rule(progressRuleWidth)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrEmptyFragment) {
			printer.Errorf("Please provide text to reconstruct")
			return reported(err)
		}
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showPlan, err := cmd.Flags().GetBool("show-plan")
	if err != nil {
		return err
	}

	reconstructor, provider := newServices(cfg, logger)
	return runReconstruct(ctx, runDeps{
		cfg:           cfg,
		reconstructor: reconstructor,
		provider:      provider,
		printer:       printer,
		logger:        logger,
		out:           cmd.OutOrStdout(),
		showPlan:      showPlan,
	})
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the settings file, cobra
// flags and the environment, in that order of precedence (last wins for
// flags the user changed).
func buildConfig(cmd *cobra.Command, args []string, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()
	if len(args) > 0 {
		cfg.Fragment = args[0]
	}

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly given settings file must exist; otherwise a missing
	// file just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		if cfg.Model, err = flags.GetString("model"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("search-timeout") {
		if cfg.SearchTimeout, err = flags.GetDuration("search-timeout"); err != nil {
			return nil, err
		}
	}

	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.NoColor, err = flags.GetBool("no-color"); err != nil {
		return nil, err
	}
	if cfg.Bucket, err = flags.GetString("bucket"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Credentials = config.CredentialsFromEnv(getenv)

	return cfg, nil
}

// newPrinter returns the progress printer for cfg.
func newPrinter(out io.Writer, cfg *config.Config) *progress.Printer {
	if cfg.NoColor {
		return progress.NewPrinter(out, progress.WithColor(false))
	}
	return progress.NewPrinter(out)
}

// newLogger returns the secure logger selected by cfg.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// newServices builds the Gemini reconstructor and Google search provider.
func newServices(cfg *config.Config, logger *slog.Logger) (reconstruct.Reconstructor, search.Provider) {
	reconstructor := reconstruct.NewGeminiReconstructor(
		cfg.Credentials.GeminiAPIKey,
		reconstruct.WithModel(cfg.Model),
		reconstruct.WithLogger(logger),
	)
	provider := search.NewGoogleProvider(
		cfg.Credentials.SearchAPIKey,
		cfg.Credentials.SearchEngineID,
		search.WithEndpoint(cfg.SearchEndpoint),
		search.WithTimeout(cfg.SearchTimeout),
		search.WithGoogleLogger(logger),
	)
	return reconstructor, provider
}

// runDeps holds everything a run needs, so tests can inject fakes.
type runDeps struct {
	cfg           *config.Config
	reconstructor reconstruct.Reconstructor
	provider      search.Provider
	printer       *progress.Printer
	logger        *slog.Logger
	out           io.Writer
	showPlan      bool
}

// runReconstruct runs the pipeline and writes the report.
// A failed reconstruction has already been shown as a progress line, so it
// is returned as a reported error and no report is written.
func runReconstruct(ctx context.Context, deps runDeps) error {
	cfg := deps.cfg
	printer := deps.printer

	printer.Infof("📜 Original fragment: '%s'", cfg.Fragment)
	printer.Blank()
	printer.Rule(progressRuleWidth)

	client := search.NewClient(deps.provider,
		search.WithNotifier(printer),
		search.WithLogger(deps.logger),
		search.WithResultsPerQuery(cfg.ResultsPerQuery),
		search.WithResultThreshold(cfg.ResultThreshold),
	)

	var planOpts []pipeline.PlanStepOption
	if bucket, ok := model.ParseBucket(cfg.Bucket); ok {
		planOpts = append(planOpts, pipeline.WithBucket(bucket))
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithStepHook(func(step pipeline.Step, err error) {
			if err == nil && step.Name() != pipeline.StepPlan {
				printer.Blank()
				printer.Rule(progressRuleWidth)
			}
		}),
	}

	p := pipeline.Default(deps.reconstructor, client, printer, deps.logger, pipelineOpts, planOpts...)

	rep := model.NewReport(cfg.Fragment)
	if err := p.Execute(ctx, rep); err != nil {
		if errors.Is(err, pipeline.ErrReconstructionFailed) {
			return reported(err)
		}
		return err
	}

	printer.Infof("📊 Step 3: Generating comprehensive report...")
	printer.Blank()
	return outputReport(cfg, rep, deps.out, deps.showPlan)
}

// outputReport writes the report to out and, when cfg.ReportFile is set,
// to that file as well.
func outputReport(cfg *config.Config, rep *model.Report, out io.Writer, showPlan bool) error {
	newWriter := func(w io.Writer) report.Writer {
		if cfg.MarkdownReport {
			return report.NewMarkdownWriter(w)
		}
		return report.NewSimpleWriter(w, report.WithShowPlan(showPlan))
	}

	writers := []report.Writer{newWriter(out)}

	if cfg.ReportFile != "" {
		if err := ensureDir(cfg.ReportFile); err != nil {
			return err
		}
		// Reports may quote private text, so the file is owner-only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writers = append(writers, newWriter(f))
	}

	if _, err := report.NewMultiWriter(writers...).Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
