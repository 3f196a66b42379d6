// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/stats"
	"github.com/verte-zerg/scribble/internal/store"
)

const (
	tabOverview = iota
	tabItems
)

var windowSteps = []int{1, 3, 5, 10, 20, 50}

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	items     table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Items"},
		overview: viewport.New(0, 0),
		items:    buildItemTable(nil, 0, 1),
	}
	m.refreshReport()
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
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.Window = stepWindow(m.cfg.Window, 1)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.Window = stepWindow(m.cfg.Window, -1)
			m.refreshReport()
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabItems {
			m.items, cmd = m.items.Update(msg)
			return m, cmd
		}
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight := m.layoutHeights()
	header := fitLines(m.renderTabs()+"\n"+m.renderFilterSummary(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	return strings.Join([]string{header, body, m.renderFooter()}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	bodyHeight = max(1, m.height-headerHeight-1)
	return headerHeight, bodyHeight
}

func (m *Model) updateLayout() {
	_, bodyHeight := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.items = buildItemTable(m.report.Items, m.width, bodyHeight)
	m.syncFocus()
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.syncFocus()
}

func (m *Model) syncFocus() {
	if m.activeTab == tabItems {
		m.items.Focus()
	} else {
		m.items.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.updateLayout()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.Window, width))
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

func (m *Model) renderFilterSummary() string {
	category := m.cfg.Category
	if category == "" {
		category = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: category=%s  since=%s  last=%s  window=%d", category, since, last, m.cfg.Window)
	return headerStyle.Render(runewidth.Truncate(summary, m.width, ""))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Quit: q")
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.activeTab == tabItems {
		if len(m.report.Items) == 0 {
			return "No item stats found."
		}
		return m.items.View()
	}
	return m.overview.View()
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Attempts) == 0 {
		return "No attempts found."
	}
	parts := []string{renderSummaryCards(report.Attempts, width)}
	var buf bytes.Buffer
	if err := stats.RenderCurve(&buf, report.Attempts, window, width); err != nil {
		parts = append(parts, fmt.Sprintf("Failed to render curve: %v", err))
	} else if buf.Len() > 0 {
		parts = append(parts, strings.TrimRight(buf.String(), "\n"))
	}
	if len(report.Weak) > 0 {
		buf.Reset()
		if err := stats.RenderItemTable(&buf, "Needs Practice", report.Weak); err == nil {
			parts = append(parts, strings.TrimRight(buf.String(), "\n"))
		}
	}
	if line := report.MostPracticed(); line != "" {
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(attempts []model.AttemptAggregate, width int) string {
	cards := []string{
		metricCard("Attempts", strconv.Itoa(len(attempts))),
		metricCard("Pass Rate", fmt.Sprintf("%.1f%%", stats.PassRate(attempts)*100)),
	}
	if avg, ok := stats.AverageScore(attempts); ok {
		cards = append(cards, metricCard("Avg Score", fmt.Sprintf("%.1f", avg)))
	}
	if best, ok := stats.BestScore(attempts); ok {
		cards = append(cards, metricCard("Best Score", strconv.Itoa(best)))
	}
	if width < 60 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildItemTable(aggs []model.ItemAggregate, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Category", Width: 10},
		{Title: "Item", Width: max(12, width-50)},
		{Title: "Attempts", Width: 8},
		{Title: "Pass Rate", Width: 9},
		{Title: "Avg Score", Width: 9},
	}
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range stats.SelectWeakItems(aggs, 0) {
		avg := "-"
		if agg.Scored > 0 {
			avg = fmt.Sprintf("%.1f", float64(agg.ScoreSum)/float64(agg.Scored))
		}
		rate := 0.0
		if agg.Attempts > 0 {
			rate = float64(agg.Passed) / float64(agg.Attempts) * 100
		}
		rows = append(rows, table.Row{
			agg.Category,
			agg.Content,
			strconv.Itoa(agg.Attempts),
			fmt.Sprintf("%.1f%%", rate),
			avg,
		})
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, height)),
	)
}

func stepWindow(current, delta int) int {
	idx := 0
	for i, step := range windowSteps {
		if step <= current {
			idx = i
		}
	}
	idx = max(0, min(idx+delta, len(windowSteps)-1))
	return windowSteps[idx]
}

// fitLines pads every line to width and clips or fills to exactly height lines.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
