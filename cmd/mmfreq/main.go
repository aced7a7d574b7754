// Package main provides the CLI entrypoint for mmfreq.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mmfreq/internal/config"
	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/logging"
	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/report"
	"github.com/verte-zerg/mmfreq/internal/reportui"
	"github.com/verte-zerg/mmfreq/internal/snapshot"
	"github.com/verte-zerg/mmfreq/internal/stats"
	"github.com/verte-zerg/mmfreq/internal/store"
	"github.com/verte-zerg/mmfreq/internal/textio"
)

const (
	defaultNormalize = textio.NormalizeNone
	defaultColor     = colorAuto
)

// ErrMissingArgument is returned when the input or output path is absent.
var ErrMissingArgument = errors.New("missing argument")

var (
	configPath string

	runNormalize   string
	runRecord      bool
	runSnapshot    string
	runMetricsFile string
	runLogLevel    string
	runColor       string
	runQuiet       bool

	viewNormalize string

	historyLast int
	historyRun  int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mmfreq <input> <output>",
		Short:         "Burmese character frequency report",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          rootArgs,
		RunE:          runReportCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.Flags().StringVar(&runNormalize, "normalize", defaultNormalize, "unicode normalization before counting (none, nfc)")
	rootCmd.Flags().BoolVar(&runRecord, "record", false, "store the run in the history database")
	rootCmd.Flags().StringVar(&runSnapshot, "snapshot", "", "write a msgpack snapshot of the run to this path")
	rootCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	rootCmd.Flags().StringVar(&runLogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&runColor, "color", defaultColor, "colorize the run summary (auto, on, off)")
	rootCmd.Flags().BoolVar(&runQuiet, "quiet", false, "do not print the run summary")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newViewCmd())

	return rootCmd
}

func rootArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("%w: input file path", ErrMissingArgument)
	case len(args) == 1:
		return fmt.Errorf("%w: output file path", ErrMissingArgument)
	case len(args) > 2:
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "normalize", &runNormalize, fileCfg.Run.Normalize)
	applyBoolConfig(cmd, "record", &runRecord, fileCfg.Run.Record)
	applyStringConfig(cmd, "color", &runColor, fileCfg.Run.Color)
	applyStringConfig(cmd, "log-level", &runLogLevel, fileCfg.Run.LogLevel)
	applyStringConfig(cmd, "metrics-file", &runMetricsFile, fileCfg.Run.MetricsFile)
	applyBoolConfig(cmd, "quiet", &runQuiet, fileCfg.Run.Quiet)

	cfg := model.RunConfig{
		InputPath:   args[0],
		OutputPath:  args[1],
		Normalize:   runNormalize,
		Record:      runRecord,
		Snapshot:    runSnapshot,
		MetricsFile: runMetricsFile,
		Color:       runColor,
		LogLevel:    runLogLevel,
		Quiet:       runQuiet,
	}
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	res, err := runPipeline(cmd.Context(), cfg, config.DefaultDBPath(), logger)
	if err != nil {
		return err
	}
	if cfg.Quiet {
		return nil
	}
	configureColor(cfg.Color, os.Stdout)
	if err := printSummary(cmd.OutOrStdout(), cfg, res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <input|snapshot>",
		Short: "Browse a report interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewCmd,
	}
	cmd.Flags().StringVar(&viewNormalize, "normalize", defaultNormalize, "unicode normalization for text input (none, nfc)")
	return cmd
}

func runViewCmd(_ *cobra.Command, args []string) error {
	if !textio.ValidNormalize(viewNormalize) {
		return fmt.Errorf("--normalize must be one of none, nfc")
	}
	rep, err := loadReport(args[0], viewNormalize)
	if err != nil {
		return err
	}
	program := tea.NewProgram(reportui.NewModel(filepath.Base(args[0]), rep), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

// loadReport builds a report from a snapshot file or by tallying a text file.
func loadReport(path, normalize string) (report.Report, error) {
	if snapshot.IsSnapshotPath(path) {
		snap, err := snapshot.Load(path)
		if err != nil {
			return report.Report{}, err
		}
		tally, err := snap.Tally()
		if err != nil {
			return report.Report{}, fmt.Errorf("failed to restore snapshot %s: %w", path, err)
		}
		return report.FromTally(tally, snap.Text, snap.Elapsed()), nil
	}
	start := time.Now()
	text, err := textio.ReadText(path, textio.ReadOptions{Normalize: normalize})
	if err != nil {
		return report.Report{}, err
	}
	tally := freq.NewTally()
	tally.ProcessText(text)
	elapsed := time.Since(start)
	tally.Finish()
	return report.FromTally(tally, text, elapsed), nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show the character tables of one run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyRun < 0 {
		return fmt.Errorf("--run must be > 0")
	}
	logger, err := newLogger("")
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if historyRun > 0 {
		run, ok, err := st.GetRun(ctx, historyRun)
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}
		if !ok {
			return fmt.Errorf("run %d not found", historyRun)
		}
		chars, err := st.ListRunChars(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to load run characters: %w", err)
		}
		tally, err := store.RestoreTally(chars)
		if err != nil {
			return fmt.Errorf("failed to restore run %d: %w", run.ID, err)
		}
		if err := stats.RenderRunTables(out, run, tally.Designated.Entries(), tally.Other.Entries()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	runs, err := st.ListRuns(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := stats.RenderRuns(out, runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
	path := configPath
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
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
	return fmt.Sprintf(`# mmfreq configuration
# Uncomment a value to enable it. CLI flags override config values.

[run]
# normalize = %q        # Unicode normalization before counting (none, nfc)
# record = false          # Store every run in the history database
# color = %q            # Colorize the run summary (auto, on, off)
# log-level = %q        # Diagnostic log level (debug, info, warn, error)
# metrics-file = ""       # Write Prometheus textfile metrics to this path
# quiet = false           # Do not print the run summary
`,
		defaultNormalize,
		defaultColor,
		logging.DefaultLevel,
	)
}

func validateRunConfig(cfg model.RunConfig) error {
	if cfg.InputPath == "" {
		return fmt.Errorf("%w: input file path", ErrMissingArgument)
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("%w: output file path", ErrMissingArgument)
	}
	if !textio.ValidNormalize(cfg.Normalize) {
		return fmt.Errorf("--normalize must be one of none, nfc")
	}
	switch cfg.Color {
	case colorAuto, colorOn, colorOff:
	default:
		return fmt.Errorf("--color must be one of auto, on, off")
	}
	return nil
}

func newLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, lvl), nil
}
