// Package tui provides the Bubble Tea handwriting practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/generator"
	"github.com/verte-zerg/scribble/internal/glyph"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/session"
	statsPkg "github.com/verte-zerg/scribble/internal/stats"
	"github.com/verte-zerg/scribble/internal/store"
)

// The canvas sits below two header lines and one border row, one border column in.
const (
	headerLines   = 2
	canvasOriginX = 1
	canvasOriginY = headerLines + 1

	weakWindow = 50
	weakTop    = 3
	weakFactor = 4.0
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	inkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AA9E6"))
	guideStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	canvasBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.PracticeConfig
	store   *store.Store
	gen     *generator.Generator
	session *session.Session
	capture *session.Capture
	keys    keyMap
	help    help.Model

	width  int
	height int

	showGuide bool
	status    string

	hasLast   bool
	lastScore int

	allAttempts int
	allPassed   int
	allScoreSum int
	allScored   int
}

// NewModel constructs a practice TUI model. st may be nil when history is disabled.
func NewModel(cfg model.PracticeConfig, st *store.Store, sess *session.Session, gen *generator.Generator) (*Model, error) {
	capture, err := session.NewCapture(sess, model.Surface{
		Width:  float64(cfg.CanvasWidth),
		Height: float64(cfg.CanvasHeight),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	m := &Model{
		config:    cfg,
		store:     st,
		gen:       gen,
		session:   sess,
		capture:   capture,
		keys:      newKeyMap(),
		help:      help.New(),
		showGuide: true,
	}
	m.loadFooterStats()
	return m, nil
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
		m.help.Width = msg.Width
		return m, nil
	case tea.BlurMsg:
		m.capture.Cancel()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Check):
		m.check()
	case key.Matches(msg, m.keys.Clear):
		m.capture.Cancel()
		m.session.ClearStrokes()
		m.status = ""
	case key.Matches(msg, m.keys.Next):
		m.capture.Cancel()
		m.session.NextItem()
		m.status = ""
	case key.Matches(msg, m.keys.NextCat):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCat):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Weak):
		m.pickWeakItem()
	case key.Matches(msg, m.keys.Guide):
		m.showGuide = !m.showGuide
	case key.Matches(msg, m.keys.Cancel):
		m.capture.Cancel()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse feeds left-button gestures inside the canvas to the capture.
// Leaving the canvas mid-gesture lifts the pen.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	cx := msg.X - canvasOriginX
	cy := msg.Y - canvasOriginY
	inside := cx >= 0 && cx < m.config.CanvasWidth && cy >= 0 && cy < m.config.CanvasHeight
	raw := model.Point{X: float64(cx) + 0.5, Y: float64(cy) + 0.5}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.capture.Start(raw)
		}
	case tea.MouseActionMotion:
		if !inside {
			m.capture.Cancel()
			return
		}
		m.capture.Move(raw)
	case tea.MouseActionRelease:
		m.capture.End()
	}
}

func (m *Model) cycleCategory(delta int) {
	cats := m.session.Categories()
	if len(cats) == 0 {
		return
	}
	current := m.session.Position().Category
	idx := 0
	for i, c := range cats {
		if c == current {
			idx = i
			break
		}
	}
	next := cats[(idx+delta+len(cats))%len(cats)]
	m.capture.Cancel()
	if err := m.session.SelectCategory(next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) check() {
	m.capture.End()
	res := m.session.Check()
	m.status = ""
	if res.Score == nil {
		return
	}
	m.hasLast = true
	m.lastScore = *res.Score
	m.allAttempts++
	m.allScored++
	m.allScoreSum += *res.Score
	if res.Passed {
		m.allPassed++
	}
	m.saveAttempt(res)
}

func (m *Model) saveAttempt(res model.Result) {
	if m.store == nil || !m.config.History {
		return
	}
	pos := m.session.Position()
	attempt := model.Attempt{
		AttemptedAt: time.Now(),
		Category:    pos.Category,
		Content:     pos.Content,
		Mode:        res.Mode,
		Score:       res.Score,
		Passed:      res.Passed,
		PointCount:  m.session.PointCount(),
		AvgDistance: res.Distance.Avg,
		MaxDistance: res.Distance.Max,
		Issues:      res.Issues,
		Surface:     m.capture.Surface(),
		Points:      m.session.Strokes(),
	}
	if _, err := m.store.InsertAttempt(context.Background(), attempt); err != nil {
		logErrf("failed to save attempt: %v\n", err)
	}
}

func (m *Model) pickWeakItem() {
	m.capture.Cancel()
	items := m.session.Exercise().Items
	weak := map[string]struct{}{}
	if m.store != nil {
		aggs, err := m.store.ItemAggregates(context.Background(), weakWindow, m.session.Position().Category)
		if err != nil {
			logErrf("failed to load weak items: %v\n", err)
		}
		for _, agg := range statsPkg.SelectWeakItems(aggs, weakTop) {
			if agg.Passed < agg.Attempts {
				weak[agg.Content] = struct{}{}
			}
		}
	}
	if len(weak) == 0 {
		m.status = "No weak items yet; picking at random."
	} else {
		m.status = ""
	}
	if _, err := m.session.JumpTo(m.gen.PickWeighted(items, weak, weakFactor)); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	attempts, err := m.store.ListAttempts(context.Background(), model.StatsConfig{})
	if err != nil {
		logErrf("failed to load attempt stats: %v\n", err)
		return
	}
	for _, a := range attempts {
		m.allAttempts++
		if a.Passed {
			m.allPassed++
		}
		if a.Score != nil {
			m.allScored++
			m.allScoreSum += *a.Score
		}
	}
	if n := len(attempts); n > 0 && attempts[n-1].Score != nil {
		m.hasLast = true
		m.lastScore = *attempts[n-1].Score
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	ex := m.session.Exercise()
	pos := m.session.Position()

	var b strings.Builder
	b.WriteString(titleStyle.Render(ex.Title))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(ex.Description))
	b.WriteByte('\n')
	b.WriteString(mutedStyle.Render("Write: "))
	b.WriteString(promptStyle.Render(pos.Content))
	b.WriteByte('\n')
	b.WriteString(canvasBorder.Render(m.renderCanvas()))
	b.WriteByte('\n')

	textWidth := m.width
	if textWidth <= 0 {
		textWidth = m.config.CanvasWidth + 2
	}
	for _, line := range m.resultLines(textWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if footer := m.renderFooter(); footer != "" {
		b.WriteString(footer)
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) resultLines(width int) []string {
	var lines []string
	if res, ok := m.session.LastResult(); ok {
		if res.Score != nil {
			label := failStyle.Render(fmt.Sprintf("Score %d", *res.Score))
			if res.Passed {
				label = passStyle.Render(fmt.Sprintf("Score %d ✓", *res.Score))
			}
			lines = append(lines, label)
		}
		lines = append(lines, wrapText(res.Feedback, width)...)
	}
	if m.status != "" {
		for _, line := range wrapText(m.status, width) {
			lines = append(lines, mutedStyle.Render(line))
		}
	}
	return lines
}

func (m *Model) renderCanvas() string {
	w, h := m.config.CanvasWidth, m.config.CanvasHeight
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	plot := func(p model.Point, cell string) {
		x, y := int(p.X*float64(w)), int(p.Y*float64(h))
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = cell
		}
	}
	if m.showGuide {
		if tmpl, ok := m.guideTemplate(); ok {
			dot := guideStyle.Render("·")
			for _, p := range tmpl.Points {
				plot(p, dot)
			}
		}
	}
	ink := inkStyle.Render("•")
	for _, p := range m.session.Strokes() {
		plot(p, ink)
	}
	rows := make([]string, h)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) guideTemplate() (model.Template, bool) {
	pos := m.session.Position()
	if pos.Category != catalog.Letters {
		return model.Template{}, false
	}
	return glyph.Lookup(pos.Content)
}

func (m *Model) renderFooter() string {
	pos := m.session.Position()
	total := len(m.session.Exercise().Items)
	if total == 0 {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Item %d/%d", pos.ItemIndex+1, total),
		fmt.Sprintf("Points %d", m.session.PointCount()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d", m.lastScore))
	}
	if m.allScored > 0 {
		avg := float64(m.allScoreSum) / float64(m.allScored)
		rate := float64(m.allPassed) / float64(m.allAttempts) * 100
		segments = append(segments, fmt.Sprintf("All-time avg %.1f · %.1f%% passed", avg, rate))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
