package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/model"
)

func TestRenderMixedInput(t *testing.T) {
	tally := freq.NewTally()
	tally.ProcessText("aကခဂ")
	tally.Finish()

	var buf bytes.Buffer
	if err := Render(&buf, FromTally(tally, "aကခဂ", 7*time.Millisecond+900*time.Microsecond)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := strings.Join([]string{
		"Text to be processed:",
		"aကခဂ",
		"",
		"",
		rule,
		`/***************burmese Character***************\`,
		"",
		"Letter\tUnicode\tCount\tFrequency (%)",
		"က        \t01000   \t1\t25.000%",
		"",
		"ခ        \t01001   \t1\t25.000%",
		"",
		"ဂ        \t01002   \t1\t25.000%",
		"",
		rule,
		`/***************Non-burmese Character***************\`,
		"",
		"Letter\tUnicode\tCount\tFrequency (%)",
		"a        \t061     \t1\t25.000%",
		"",
		rule,
		"RESULT SUMMARY: ",
		`Most frequent letter in burmese is "က" with 1 occurrences`,
		`Most frequent letter that are not burmese is "a" with 1 occurrences`,
		"Time duration to 7 miliseconds",
		"Total number of characters 4",
		"",
	}, "\n")
	if got := buf.String(); got != expected {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", got, expected)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	tally := freq.NewTally()
	tally.ProcessText("")
	tally.Finish()

	var buf bytes.Buffer
	if err := Render(&buf, FromTally(tally, "", 0)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`Most frequent letter in burmese is " " with 0 occurrences`,
		`Most frequent letter that are not burmese is " " with 0 occurrences`,
		"Time duration to 0 miliseconds",
		"Total number of characters 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "NaN") {
		t.Fatalf("unexpected NaN in empty report")
	}
}

func TestRenderSingleDesignatedCharacter(t *testing.T) {
	tally := freq.NewTally()
	tally.ProcessText("ကကကကက")
	tally.Finish()

	var buf bytes.Buffer
	if err := Render(&buf, FromTally(tally, "ကကကကက", time.Second)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\t5\t100.000%") {
		t.Fatalf("expected 100%% row in output:\n%s", out)
	}
	if !strings.Contains(out, `that are not burmese is " " with 0 occurrences`) {
		t.Fatalf("expected placeholder summary for empty other table:\n%s", out)
	}
	if !strings.Contains(out, "Time duration to 1000 miliseconds") {
		t.Fatalf("expected milliseconds line:\n%s", out)
	}
}

func TestBusiestTieBreak(t *testing.T) {
	entries := []model.FreqEntry{
		{Char: 'x', Count: 2},
		{Char: 'y', Count: 3},
		{Char: 'z', Count: 3},
	}
	if got := Busiest(entries); got.Char != 'y' {
		t.Fatalf("expected earliest maximum y, got %c", got.Char)
	}
	if got := Busiest(nil); got.Char != Placeholder || got.Count != 0 {
		t.Fatalf("expected placeholder for empty entries, got %+v", got)
	}
}

func TestRowFormatting(t *testing.T) {
	row := Row(model.FreqEntry{Char: 'ၡ', Count: 12, Frequency: 33.33333})
	if row != "ၡ        \t01061   \t12\t33.333%" {
		t.Fatalf("unexpected row %q", row)
	}
	if got := CodePoint(0x1F600); got != "01F600" {
		t.Fatalf("unexpected code point %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderPropagatesWriteError(t *testing.T) {
	err := Render(failingWriter{}, Report{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}
