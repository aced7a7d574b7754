package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/report"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// DesignatedShare returns the percentage of a run's characters that were designated.
func DesignatedShare(run model.RunRecord) float64 {
	if run.Total <= 0 {
		return 0
	}
	return float64(run.DesignatedTotal) / float64(run.Total) * 100
}

// RenderRuns prints recorded runs oldest first, followed by a sparkline of totals.
func RenderRuns(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	headers := []string{"ID", "Started", "Input", "Total", "Burmese", "Other", "Distinct", "Share", "Time (ms)"}
	rows := make([][]string, 0, len(runs))
	totals := make([]float64, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.InputPath,
			fmt.Sprintf("%d", run.Total),
			fmt.Sprintf("%d", run.DesignatedTotal),
			fmt.Sprintf("%d", run.OtherTotal),
			fmt.Sprintf("%d/%d", run.DistinctDesignated, run.DistinctOther),
			fmt.Sprintf("%.1f%%", DesignatedShare(run)),
			fmt.Sprintf("%d", run.DurationMs),
		})
		totals = append(totals, float64(run.Total))
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(runs) > 1 {
		if _, err := fmt.Fprintf(w, "\nTotals: %s\n", Sparkline(totals)); err != nil {
			return err
		}
	}
	return nil
}

// RenderRunTables prints the per-character tables of a single run.
func RenderRunTables(w io.Writer, run model.RunRecord, designated, other []model.FreqEntry) error {
	if _, err := fmt.Fprintf(w, "Run %d: %s (%d characters)\n\n", run.ID, run.InputPath, run.Total); err != nil {
		return err
	}
	sections := []struct {
		title   string
		entries []model.FreqEntry
		summary string
	}{
		{report.BucketName, designated, report.DesignatedSummary(designated)},
		{"Non-" + report.BucketName, other, report.OtherSummary(other)},
	}
	for _, sec := range sections {
		if _, err := fmt.Fprintln(w, sec.title); err != nil {
			return err
		}
		rows := make([][]string, 0, len(sec.entries))
		for _, e := range sec.entries {
			rows = append(rows, []string{
				charLabel(e.Char),
				report.CodePoint(e.Char),
				fmt.Sprintf("%d", e.Count),
				fmt.Sprintf("%.3f%%", e.Frequency),
			})
		}
		if len(rows) == 0 {
			if _, err := fmt.Fprintln(w, "No characters."); err != nil {
				return err
			}
		} else {
			for _, line := range formatTable([]string{"Letter", "Unicode", "Count", "Frequency"}, rows, map[int]bool{2: true, 3: true}) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", sec.summary); err != nil {
			return err
		}
	}
	return nil
}

func charLabel(r rune) string {
	switch r {
	case ' ':
		return "<space>"
	case '\t':
		return "<tab>"
	default:
		return string(r)
	}
}
