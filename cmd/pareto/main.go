// Package main provides the CLI entrypoint for pareto.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pareto/internal/chart"
	"github.com/verte-zerg/pareto/internal/config"
	"github.com/verte-zerg/pareto/internal/generator"
	"github.com/verte-zerg/pareto/internal/model"
	"github.com/verte-zerg/pareto/internal/stats"
	"github.com/verte-zerg/pareto/internal/viewer"
)

const (
	defaultSamples = 1000
	defaultRows    = 12
	maxImageSize   = 8192
	maxRows        = 200
)

var (
	demoCategories  = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	demoFrequencies = []float64{37, 7, 5, 4, 3, 2, 1, 1, 1}
)

var (
	chartSamples     int
	chartSeed        int64
	chartWeights     string
	chartAsc         bool
	chartOut         string
	chartFormat      string
	chartWidth       int
	chartHeight      int
	chartRows        int
	chartTitle       string
	chartInteractive bool
	chartColor       bool

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pareto",
		Short:        "Sample categorical data and draw a Pareto chart",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runChartCmd,
	}

	rootCmd.PersistentFlags().IntVar(&chartSamples, "samples", defaultSamples, "number of samples to draw")
	rootCmd.PersistentFlags().Int64Var(&chartSeed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().StringVar(&chartWeights, "weights", "", "category weights as name=weight,... (default: shuffled demo set A-I)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&chartAsc, "asc", false, "sort categories by ascending count")
	rootCmd.Flags().StringVarP(&chartOut, "out", "o", "", "write the chart to an image file instead of the terminal")
	rootCmd.Flags().StringVar(&chartFormat, "format", "", "image format: png or svg (default: from --out extension)")
	rootCmd.Flags().IntVar(&chartWidth, "width", chart.DefaultWidth, "image width in pixels")
	rootCmd.Flags().IntVar(&chartHeight, "height", chart.DefaultHeight, "image height in pixels")
	rootCmd.Flags().IntVar(&chartRows, "rows", defaultRows, "terminal chart height in rows")
	rootCmd.Flags().StringVar(&chartTitle, "title", chart.DefaultTitle, "chart title")
	rootCmd.Flags().BoolVar(&chartInteractive, "interactive", true, "open the full-screen viewer when stdout is a terminal")
	rootCmd.Flags().BoolVar(&chartColor, "color", false, "force ANSI color in the terminal chart")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx := withLogger(commandContext(cmd), newLogger(cmd.ErrOrStderr(), logLevel()))
	logger := loggerFromContext(ctx)

	samples, err := drawSamples(ctx, cfg)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	report := stats.BuildReport(samples, cfg.Order)
	prog.done(fmt.Sprintf("Grouped %d samples into %d categories", report.Total, len(report.Counts)))

	out := cmd.OutOrStdout()
	if err := stats.RenderTable(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderVitalFew(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Counts) == 0 {
		logger.Warn("no samples drawn; skipping chart")
		return nil
	}
	return renderReport(ctx, out, cfg, report)
}

func renderReport(ctx context.Context, out io.Writer, cfg model.Config, report stats.Report) error {
	logger := loggerFromContext(ctx)
	switch {
	case cfg.Out != "":
		format, err := chart.ParseFormat(cfg.Format, cfg.Out)
		if err != nil {
			return err
		}
		prog := newProgress(logger)
		opts := chart.Options{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height, Format: format}
		if err := chart.RenderFile(cfg.Out, report.Counts, opts); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Wrote %s chart to %s", format, cfg.Out))
		return nil
	case cfg.Interactive && isTerminal(out):
		program := tea.NewProgram(viewer.NewModel(cfg.Title, report), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run chart viewer: %w", err)
		}
		return nil
	default:
		if err := stats.PlotParetoWithColor(out, cfg.Title, report.Counts, 0, cfg.Rows, cfg.Color); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		return nil
	}
}

// drawSamples resolves the weight set and runs the sampler.
func drawSamples(ctx context.Context, cfg model.Config) ([]string, error) {
	logger := loggerFromContext(ctx)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generator.New(seed)
	weights, err := resolveWeights(gen, cfg.Weights)
	if err != nil {
		return nil, err
	}
	logger.Debug("sampling", "seed", seed, "samples", cfg.Samples, "categories", len(weights))
	probs := generator.Distribution(weights)
	for i, w := range weights {
		logger.Debug("category", "name", w.Name, "weight", w.Weight, "p", fmt.Sprintf("%.4f", probs[i]))
	}

	prog := newProgress(logger)
	samples, err := gen.Sample(weights, cfg.Samples)
	if err != nil {
		return nil, fmt.Errorf("failed to sample: %w", err)
	}
	prog.done(fmt.Sprintf("Drew %d samples (seed %d)", len(samples), seed))
	return samples, nil
}

// resolveWeights parses custom weights, or pairs the demo categories with a
// shuffled copy of the demo frequencies.
func resolveWeights(gen *generator.Generator, input string) ([]model.CategoryWeight, error) {
	if strings.TrimSpace(input) != "" {
		weights, err := generator.ParseWeights(input)
		if err != nil {
			return nil, fmt.Errorf("invalid --weights: %w", err)
		}
		return weights, nil
	}
	freqs := append([]float64(nil), demoFrequencies...)
	gen.Shuffle(freqs)
	return generator.Zip(demoCategories, freqs)
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print raw samples, one per line",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx := withLogger(commandContext(cmd), newLogger(cmd.ErrOrStderr(), logLevel()))
	samples, err := drawSamples(ctx, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range samples {
		if _, err := fmt.Fprintln(out, s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// resolveConfig merges the config file into flags the user did not set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	chartCfg := fileCfg.Chart
	applyIntConfig(cmd, "samples", &chartSamples, chartCfg.Samples)
	applyInt64Config(cmd, "seed", &chartSeed, chartCfg.Seed)
	applyStringConfig(cmd, "weights", &chartWeights, chartCfg.Weights)
	applyIntConfig(cmd, "width", &chartWidth, chartCfg.Width)
	applyIntConfig(cmd, "height", &chartHeight, chartCfg.Height)
	applyIntConfig(cmd, "rows", &chartRows, chartCfg.Rows)
	applyStringConfig(cmd, "title", &chartTitle, chartCfg.Title)
	applyStringConfig(cmd, "format", &chartFormat, chartCfg.Format)
	applyBoolConfig(cmd, "interactive", &chartInteractive, chartCfg.Interactive)
	applyBoolConfig(cmd, "color", &chartColor, chartCfg.Color)

	order := model.Descending
	if chartAsc {
		order = model.Ascending
	}
	if chartCfg.Order != nil && !cmd.Flags().Changed("asc") {
		order, err = config.ParseOrder(*chartCfg.Order)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg := model.Config{
		Samples:     chartSamples,
		Seed:        chartSeed,
		Order:       order,
		Weights:     chartWeights,
		Out:         chartOut,
		Format:      chartFormat,
		Width:       chartWidth,
		Height:      chartHeight,
		Rows:        chartRows,
		Title:       chartTitle,
		Interactive: chartInteractive,
		Color:       chartColor,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pareto configuration
# Uncomment a value to enable it. CLI flags override config values.

[chart]
# samples = %d          # Number of samples to draw
# seed = 0               # Random seed (0 picks one from the clock)
# order = "desc"         # Sort order: desc or asc
# weights = "A=37,B=7"   # Category weights (default: shuffled demo set A-I)
# width = %d            # Image width in pixels
# height = %d            # Image height in pixels
# rows = %d               # Terminal chart height in rows
# title = %q
# format = "png"         # Image format when --out has no extension
# interactive = true     # Open the full-screen viewer on a terminal
# color = false          # Force ANSI color in the terminal chart
`,
		defaultSamples,
		chart.DefaultWidth,
		chart.DefaultHeight,
		defaultRows,
		chart.DefaultTitle,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Samples < 0 {
		return fmt.Errorf("--samples must be >= 0")
	}
	if cfg.Width <= 0 || cfg.Width > maxImageSize {
		return fmt.Errorf("--width must be between 1 and %d", maxImageSize)
	}
	if cfg.Height <= 0 || cfg.Height > maxImageSize {
		return fmt.Errorf("--height must be between 1 and %d", maxImageSize)
	}
	if cfg.Rows <= 0 || cfg.Rows > maxRows {
		return fmt.Errorf("--rows must be between 1 and %d", maxRows)
	}
	return nil
}

func logLevel() log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
