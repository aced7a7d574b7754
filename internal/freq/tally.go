package freq

import (
	"strings"

	"github.com/verte-zerg/mmfreq/internal/model"
)

// Tally carries both bucket tables and the running character total for one run.
type Tally struct {
	Designated *Table
	Other      *Table
	Total      int
}

// NewTally returns a tally with empty tables.
func NewTally() *Tally {
	return &Tally{Designated: NewTable(), Other: NewTable()}
}

// Table returns the table backing bucket b.
func (t *Tally) Table(b model.Bucket) *Table {
	if b == model.Designated {
		return t.Designated
	}
	return t.Other
}

// ProcessLine classifies every character of line into its table and returns how many were seen.
// Total is advanced by the same amount.
func (t *Tally) ProcessLine(line string) int {
	n := ProcessLine(line, t.Designated, t.Other)
	t.Total += n
	return n
}

// ProcessText splits text into lines and feeds each one to ProcessLine.
// Line terminators are not counted.
func (t *Tally) ProcessText(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, line := range SplitLines(text) {
		n += t.ProcessLine(line)
	}
	return n
}

// Finish runs the percentage pass on both tables against the grand total.
func (t *Tally) Finish() {
	t.Designated.ApplyPercentages(t.Total)
	t.Other.ApplyPercentages(t.Total)
}

// ProcessLine routes each character of line to designated or other and returns the character count.
func ProcessLine(line string, designated, other *Table) int {
	n := 0
	for _, r := range line {
		if IsDesignated(r) {
			designated.Add(r)
		} else {
			other.Add(r)
		}
		n++
	}
	return n
}

// SplitLines splits on '\n' and drops a trailing '\r' from each line.
// A final terminator does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
