package reportui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/report"
)

func sampleReport() report.Report {
	return report.Report{
		Text: "aကက",
		Designated: []model.FreqEntry{
			{Char: 0x1000, Count: 2, Frequency: 200.0 / 3.0},
		},
		Other: []model.FreqEntry{
			{Char: 'a', Count: 1, Frequency: 100.0 / 3.0},
		},
		Total: 3,
	}
}

func TestCharRows(t *testing.T) {
	rows := charRows([]model.FreqEntry{
		{Char: 0x1000, Count: 2, Frequency: 200.0 / 3.0},
		{Char: ' ', Count: 1, Frequency: 100.0 / 3.0},
	})
	got := make([][]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, []string(row))
	}
	want := [][]string{
		{"က", "01000", "2", "66.667%"},
		{"<space>", "020", "1", "33.333%"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := NewModel("sample", sampleReport())
	m.moveTab(-1)
	if m.activeTab != tabSummary {
		t.Fatalf("expected summary tab after wrapping left, got %d", m.activeTab)
	}
	m.moveTab(1)
	if m.activeTab != tabText {
		t.Fatalf("expected text tab after wrapping right, got %d", m.activeTab)
	}
}

func TestUpdateKeys(t *testing.T) {
	m := NewModel("sample", sampleReport())
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight}); cmd != nil {
		t.Fatalf("expected no command for tab switch")
	}
	if m.activeTab != tabDesignated {
		t.Fatalf("expected designated tab, got %d", m.activeTab)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}); cmd != nil {
		t.Fatalf("expected no command for tab switch")
	}
	if m.activeTab != tabText {
		t.Fatalf("expected text tab, got %d", m.activeTab)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestViewNeedsSize(t *testing.T) {
	m := NewModel("sample", sampleReport())
	if out := m.View(); out != "" {
		t.Fatalf("expected empty view before sizing, got %q", out)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, want := range []string{"Text", "Summary", "total=3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestEmptyTableBody(t *testing.T) {
	rep := sampleReport()
	rep.Other = nil
	m := NewModel("sample", rep)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m.moveTab(2)
	if got := m.renderBody(); got != "No characters." {
		t.Fatalf("expected empty table message, got %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(sampleReport())
	for _, want := range []string{
		report.DesignatedSummary(sampleReport().Designated),
		`that are not burmese is "a" with 1 occurrences`,
		"Total number of characters 3",
		"Distinct other characters 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}
