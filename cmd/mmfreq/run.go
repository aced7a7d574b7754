package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/metrics"
	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/report"
	"github.com/verte-zerg/mmfreq/internal/snapshot"
	"github.com/verte-zerg/mmfreq/internal/store"
	"github.com/verte-zerg/mmfreq/internal/textio"
)

const (
	colorAuto = "auto"
	colorOn   = "on"
	colorOff  = "off"
)

var (
	summaryLabelColor      = color.New(color.FgCyan, color.Bold)
	summaryDesignatedColor = color.New(color.FgYellow, color.Bold)
	summaryValueColor      = color.New(color.FgGreen)
)

type runResult struct {
	Tally   *freq.Tally
	Text    string
	Elapsed time.Duration
	RunID   int64
}

// runPipeline writes the report for one input file plus any requested artifacts.
// The elapsed time covers reading and tallying only.
func runPipeline(ctx context.Context, cfg model.RunConfig, dbPath string, logger *slog.Logger) (runResult, error) {
	startedAt := time.Now()
	text, err := textio.ReadText(cfg.InputPath, textio.ReadOptions{Normalize: cfg.Normalize})
	if err != nil {
		return runResult{}, err
	}
	tally := freq.NewTally()
	tally.ProcessText(text)
	elapsed := time.Since(startedAt)
	tally.Finish()
	logger.Debug("tallied input", "path", cfg.InputPath, "total", tally.Total, "elapsed", elapsed)

	rep := report.FromTally(tally, text, elapsed)
	if err := textio.WriteFile(cfg.OutputPath, func(w io.Writer) error {
		return report.Render(w, rep)
	}); err != nil {
		return runResult{}, err
	}
	logger.Info("wrote report", "path", cfg.OutputPath)

	res := runResult{Tally: tally, Text: text, Elapsed: elapsed}

	if cfg.Snapshot != "" {
		snap, err := snapshot.New(tally, cfg.InputPath, text, elapsed, time.Now())
		if err != nil {
			return res, fmt.Errorf("failed to build snapshot: %w", err)
		}
		if err := snapshot.Save(cfg.Snapshot, snap); err != nil {
			return res, fmt.Errorf("failed to write snapshot: %w", err)
		}
		logger.Info("wrote snapshot", "path", cfg.Snapshot)
	}

	if cfg.MetricsFile != "" {
		run := metrics.NewRun()
		run.Observe(tally, elapsed, time.Now())
		if err := run.WriteFile(cfg.MetricsFile); err != nil {
			return res, fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Info("wrote metrics", "path", cfg.MetricsFile)
	}

	if cfg.Record {
		id, err := recordRun(ctx, dbPath, tally, cfg, startedAt, elapsed, logger)
		if err != nil {
			return res, err
		}
		res.RunID = id
		logger.Info("recorded run", "id", id, "db", dbPath)
	}
	return res, nil
}

func recordRun(ctx context.Context, dbPath string, tally *freq.Tally, cfg model.RunConfig, startedAt time.Time, elapsed time.Duration, logger *slog.Logger) (int64, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()

	rec := store.NewRecord(tally, cfg)
	rec.StartedAt = startedAt
	rec.DurationMs = elapsed.Milliseconds()
	id, err := st.InsertRun(ctx, rec, store.CharCounts(tally))
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// configureColor sets the global color switch for the run summary.
func configureColor(mode string, out *os.File) {
	switch mode {
	case colorOn:
		color.NoColor = false
	case colorOff:
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(out.Fd()))
	}
}

func printSummary(w io.Writer, cfg model.RunConfig, res runResult) error {
	t := res.Tally
	busiest := report.Busiest(t.Designated.Entries())
	lines := []string{
		fmt.Sprintf("%s %s -> %s", summaryLabelColor.Sprint("Report"), cfg.InputPath, cfg.OutputPath),
		fmt.Sprintf("%s %s characters, %s distinct",
			summaryDesignatedColor.Sprintf("%-8s", report.BucketName),
			summaryValueColor.Sprint(t.Designated.Sum()),
			summaryValueColor.Sprint(t.Designated.Len())),
		fmt.Sprintf("%s %s characters, %s distinct",
			summaryLabelColor.Sprintf("%-8s", "other"),
			summaryValueColor.Sprint(t.Other.Sum()),
			summaryValueColor.Sprint(t.Other.Len())),
		fmt.Sprintf("%s %s in %s ms",
			summaryLabelColor.Sprintf("%-8s", "total"),
			summaryValueColor.Sprint(t.Total),
			summaryValueColor.Sprint(res.Elapsed.Milliseconds())),
	}
	if busiest.Count > 0 {
		lines = append(lines, fmt.Sprintf("%s %s (%d)",
			summaryLabelColor.Sprintf("%-8s", "top"),
			summaryDesignatedColor.Sprint(string(busiest.Char)),
			busiest.Count))
	}
	if res.RunID > 0 {
		lines = append(lines, fmt.Sprintf("%s %d", summaryLabelColor.Sprintf("%-8s", "run"), res.RunID))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
