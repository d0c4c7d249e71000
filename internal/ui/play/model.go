package play

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"primer/internal/quiz"
	"primer/internal/session"
)

// Options configures the player model.
type Options struct {
	NoColor bool
}

// Model renders a quiz session with Bubble Tea. It is a projection of the
// engine state; every key press maps to one engine operation.
type Model struct {
	session  *session.Session
	keys     keyMap
	help     help.Model
	bar      bprogress.Model
	review   table.Model
	noColor  bool
	width    int
	status   string
	quitting bool
}

// NewModel constructs a player for a session.
func NewModel(s *session.Session, opts Options) Model {
	bar := bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(40))
	review := table.New(
		table.WithColumns(reviewColumns(80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	review.SetStyles(tableStyles(opts.NoColor))
	return Model{
		session: s,
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     bar,
		review:  review,
		noColor: opts.NoColor,
		width:   80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update maps key presses to engine operations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		m.bar.Width = min(max(typed.Width-20, 10), 60)
		m.review.SetColumns(reviewColumns(typed.Width))
		m.review.SetWidth(typed.Width)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// handleKey applies one key press.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.session.Engine()
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Retake):
		if !engine.IsComplete() {
			m.status = "Finish the quiz before retaking it."
			return m, nil
		}
		m.session.Retake()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		option, _ := optionForKey(msg.String())
		m.status = statusFor(engine.SelectAnswer(option))
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if err := engine.GoNext(); err != nil {
			m.status = statusFor(err)
			return m, nil
		}
		if engine.IsComplete() {
			m.review.SetRows(reviewRows(engine.Review(), m.noColor))
			m.review.SetHeight(min(engine.Len()+1, 12))
		}
		return m, nil
	case key.Matches(msg, m.keys.Previous):
		m.status = statusFor(engine.GoPrevious())
		return m, nil
	}
	return m, nil
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// statusFor turns an inert engine operation into a hint line.
func statusFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, quiz.ErrAnswered):
		return "Answer already recorded."
	case errors.Is(err, quiz.ErrOptionRange):
		return "No such option."
	case errors.Is(err, quiz.ErrUnanswered):
		return "Pick an answer first."
	case errors.Is(err, quiz.ErrAtStart):
		return "Already at the first question."
	case errors.Is(err, quiz.ErrComplete):
		return "Quiz complete. Press r to retake or q to quit."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// View renders the current question or the results screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	engine := m.session.Engine()
	var body string
	if engine.IsComplete() {
		body = m.renderResults()
	} else {
		body = m.renderQuestion()
	}
	parts := []string{m.renderHeader(), body}
	if m.status != "" {
		parts = append(parts, stylize(m.status, m.noColor, lipgloss.Color("220")))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
