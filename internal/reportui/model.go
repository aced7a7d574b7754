// Package reportui provides the Bubble Tea report viewer.
package reportui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/report"
)

const (
	tabText = iota
	tabDesignated
	tabOther
	tabSummary
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	designatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	otherStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report viewer.
type Model struct {
	title string
	rep   report.Report

	tabs      []string
	activeTab int
	viewports []viewport.Model
	tables    map[int]*table.Model

	width  int
	height int
}

// NewModel constructs a viewer for a finished report.
func NewModel(title string, rep report.Report) *Model {
	m := &Model{
		title: title,
		rep:   rep,
		tabs:  []string{"Text", report.BucketName, "Non-" + report.BucketName, "Summary"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	designated := buildCharTable(rep.Designated, 0, 1)
	other := buildCharTable(rep.Other, 0, 1)
	m.tables = map[int]*table.Model{
		tabDesignated: &designated,
		tabOther:      &other,
	}
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "g", "home":
			if tbl, ok := m.tables[m.activeTab]; ok {
				tbl.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if tbl, ok := m.tables[m.activeTab]; ok {
				tbl.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if tbl, ok := m.tables[m.activeTab]; ok {
				var cmd tea.Cmd
				*tbl, cmd = tbl.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	for _, tbl := range m.tables {
		tbl.SetWidth(m.width)
		tbl.SetHeight(maxInt(1, bodyHeight-1))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	for idx, tbl := range m.tables {
		if idx == m.activeTab {
			tbl.Focus()
		} else {
			tbl.Blur()
		}
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	info := fmt.Sprintf("%s  total=%d  %s=%d  other=%d", m.title, m.rep.Total, report.BucketName, len(m.rep.Designated), len(m.rep.Other))
	return tabs + "\n" + headerStyle.Render(truncateLine(info, m.width))
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q")
}

func (m *Model) renderBody() string {
	if tbl, ok := m.tables[m.activeTab]; ok {
		if len(tbl.Rows()) == 0 {
			return "No characters."
		}
		return tableMutedStyle.Render(tbl.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabText].SetContent(renderText(m.rep.Text, width))
	m.viewports[tabSummary].SetContent(renderSummary(m.rep))
}

func renderText(text string, width int) string {
	if text == "" {
		return "No text."
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapStyledRunes(buildStyledRunes([]rune(strings.TrimSuffix(line, "\r"))), width))
	}
	return strings.Join(out, "\n")
}

func renderSummary(rep report.Report) string {
	lines := []string{
		report.DesignatedSummary(rep.Designated),
		report.OtherSummary(rep.Other),
		report.DurationLine(rep.Elapsed),
		report.TotalLine(rep.Total),
		"",
		fmt.Sprintf("Distinct %s characters %d", report.BucketName, len(rep.Designated)),
		fmt.Sprintf("Distinct other characters %d", len(rep.Other)),
	}
	return strings.Join(lines, "\n")
}

func buildCharTable(entries []model.FreqEntry, width, height int) table.Model {
	t := table.New(
		table.WithColumns(charColumns()),
		table.WithRows(charRows(entries)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(charTableStyles())
	return t
}

func charColumns() []table.Column {
	return []table.Column{
		{Title: "Letter", Width: 8},
		{Title: "Unicode", Width: 9},
		{Title: "Count", Width: 8},
		{Title: "Frequency", Width: 10},
	}
}

func charRows(entries []model.FreqEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			charLabel(e.Char),
			report.CodePoint(e.Char),
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.3f%%", e.Frequency),
		})
	}
	return rows
}

func charTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
