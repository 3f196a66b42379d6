// Package mathui provides the Bubble Tea arithmetic quiz.
package mathui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/scribble/internal/generator"
)

const answerLimit = 7

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(1, 0)
	statStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	gen        *generator.Generator
	kind       generator.Kind
	difficulty generator.Difficulty
	problem    generator.Problem
	tally      generator.Tally
	input      textinput.Model
	feedback   string
}

// NewModel constructs a quiz starting at kind and difficulty.
func NewModel(gen *generator.Generator, kind generator.Kind, difficulty generator.Difficulty) *Model {
	input := textinput.New()
	input.Placeholder = "Enter your answer"
	input.CharLimit = answerLimit
	input.Validate = digitsOnly
	input.Focus()
	m := &Model{gen: gen, kind: kind, difficulty: difficulty, input: input}
	m.newProblem()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.submit()
			return m, nil
		case "tab":
			m.kind = cycleKind(m.kind, 1)
			m.newProblem()
			return m, nil
		case "shift+tab":
			m.kind = cycleKind(m.kind, -1)
			m.newProblem()
			return m, nil
		case "ctrl+d":
			m.difficulty = toggleDifficulty(m.difficulty)
			m.newProblem()
			return m, nil
		case "ctrl+n":
			m.newProblem()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit grades the typed answer. A correct answer moves on to a fresh problem.
func (m *Model) submit() {
	correct, feedback := m.tally.Check(m.problem, m.input.Value())
	m.feedback = feedback
	if correct {
		m.problem = m.gen.Generate(m.kind, m.difficulty)
		m.input.Reset()
	}
}

func (m *Model) newProblem() {
	m.problem = m.gen.Generate(m.kind, m.difficulty)
	m.input.Reset()
	m.feedback = ""
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Math Practice · %s · %s", m.kind.Title(), m.difficulty)))
	b.WriteByte('\n')
	b.WriteString(statStyle.Render(fmt.Sprintf("Score %d  Accuracy %d%%  Streak %d",
		m.tally.Correct, m.tally.Accuracy(), m.tally.Streak)))
	b.WriteByte('\n')
	b.WriteString(questionStyle.Render(m.problem.Question))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	if m.feedback != "" {
		b.WriteString(feedbackStyle.Render(m.feedback))
		b.WriteByte('\n')
	}
	b.WriteString(hintStyle.Render("enter check · tab type · ctrl+d difficulty · ctrl+n new problem · esc quit"))
	return b.String()
}

func cycleKind(k generator.Kind, delta int) generator.Kind {
	kinds := generator.Kinds()
	for i, candidate := range kinds {
		if candidate == k {
			return kinds[(i+delta+len(kinds))%len(kinds)]
		}
	}
	return kinds[0]
}

func toggleDifficulty(d generator.Difficulty) generator.Difficulty {
	if d == generator.Hard {
		return generator.Easy
	}
	return generator.Hard
}

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("answer must be a whole number")
		}
	}
	return nil
}
