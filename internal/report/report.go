// Package report renders the frequency report text.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/model"
)

const (
	rule         = "========================================================"
	columnHeader = "Letter\tUnicode\tCount\tFrequency (%)"
	letterWidth  = 9
	unicodeWidth = 8

	// BucketName is the human name of the designated bucket.
	BucketName = "burmese"
	// Placeholder is reported as the busiest character of an empty table.
	Placeholder = ' '
)

// Report holds everything needed to render one run.
type Report struct {
	Text       string
	Designated []model.FreqEntry
	Other      []model.FreqEntry
	Total      int
	Elapsed    time.Duration
}

// FromTally builds a Report from a finished tally.
func FromTally(t *freq.Tally, text string, elapsed time.Duration) Report {
	return Report{
		Text:       text,
		Designated: t.Designated.Entries(),
		Other:      t.Other.Entries(),
		Total:      t.Total,
		Elapsed:    elapsed,
	}
}

// Render writes the report to w.
func Render(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "Text to be processed:\n%s\n\n\n", r.Text); err != nil {
		return err
	}
	if err := renderSection(w, BucketName+" Character", r.Designated); err != nil {
		return err
	}
	if err := renderSection(w, "Non-"+BucketName+" Character", r.Other); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nRESULT SUMMARY: \n%s\n%s\n%s\n%s\n",
		rule,
		DesignatedSummary(r.Designated),
		OtherSummary(r.Other),
		DurationLine(r.Elapsed),
		TotalLine(r.Total),
	)
	return err
}

func renderSection(w io.Writer, title string, entries []model.FreqEntry) error {
	if _, err := fmt.Fprintf(w, "%s\n/***************%s***************\\\n\n", rule, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, columnHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\n\n", Row(e)); err != nil {
			return err
		}
	}
	return nil
}

// Row formats a single table row without its trailing newline.
func Row(e model.FreqEntry) string {
	letter := runewidth.FillRight(string(e.Char), letterWidth)
	return fmt.Sprintf("%s\t%-*s\t%d\t%.3f%%", letter, unicodeWidth, CodePoint(e.Char), e.Count, e.Frequency)
}

// CodePoint renders r as a literal zero followed by uppercase hex digits.
func CodePoint(r rune) string {
	return fmt.Sprintf("0%X", r)
}

// Busiest returns the entry with the strictly greatest count, or the placeholder with zero.
func Busiest(entries []model.FreqEntry) model.FreqEntry {
	best := model.FreqEntry{Char: Placeholder}
	for _, e := range entries {
		if e.Count > best.Count {
			best = e
		}
	}
	return best
}

// DesignatedSummary names the busiest designated character.
func DesignatedSummary(entries []model.FreqEntry) string {
	best := Busiest(entries)
	return fmt.Sprintf("Most frequent letter in %s is \"%c\" with %d occurrences", BucketName, best.Char, best.Count)
}

// OtherSummary names the busiest character outside the designated range.
func OtherSummary(entries []model.FreqEntry) string {
	best := Busiest(entries)
	return fmt.Sprintf("Most frequent letter that are not %s is \"%c\" with %d occurrences", BucketName, best.Char, best.Count)
}

// DurationLine reports elapsed time in whole milliseconds.
func DurationLine(d time.Duration) string {
	return fmt.Sprintf("Time duration to %d miliseconds", d.Milliseconds())
}

// TotalLine reports the grand total character count.
func TotalLine(total int) string {
	return fmt.Sprintf("Total number of characters %d", total)
}
