package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"simplifier/internal/game"
)

// GamePort is the TUI-facing subset of a game round.
type GamePort interface {
	Target() string
	Hints() []string
	Guess(input string) game.Outcome
	Score() int
}

// Model is the Bubble Tea model for the word-guessing game.
type Model struct {
	game     GamePort
	input    textinput.Model
	viewport viewport.Model
	hints    []string
	history  []string
	status   string
	ready    bool
	quitting bool
}

// New creates a new TUI model for round g.
func New(g GamePort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a word, or 'exit' to quit"
	ti.Focus()
	ti.CharLimit = 64
	vp := viewport.New(0, 0)
	return Model{
		game:     g,
		input:    ti,
		viewport: vp,
		hints:    g.Hints(),
		status:   "Guess a word related to the target.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		headerLines := 3 + len(m.hints)
		footerLines := 1
		vh := msg.Height - headerLines - footerLines - ih - 1 - hh
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			m.quitting = true
			m.status = fmt.Sprintf("Game over! Your score: %d", m.game.Score())
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			guess := strings.TrimSpace(m.input.Value())
			if guess == "" {
				return m, nil
			}
			m.input.Reset()
			out := m.game.Guess(guess)
			if out.Quit {
				m.quitting = true
				m.status = fmt.Sprintf("Game over! Your score: %d", m.game.Score())
				return m, tea.Quit
			}
			m.history = append(m.history, describe(out))
			m.status = fmt.Sprintf("Score: %d", m.game.Score())
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the target, hints, guess history and input.
func (m Model) View() string {
	if m.quitting {
		return statusStyle.Render(m.status) + "\n"
	}
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Word Guessing Game") + "\n")
	b.WriteString("Try to guess a word related to: " + targetStyle.Render(m.game.Target()) + "\n")
	b.WriteString(hintStyle.Render("Related words (hints):") + "\n")
	for _, h := range m.hints {
		b.WriteString(hintStyle.Render(" - "+h) + "\n")
	}
	b.WriteString(historyBoxStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()) + "\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No guesses yet."
	}
	return strings.Join(m.history, "\n")
}

func describe(out game.Outcome) string {
	if !out.Valid {
		line := fmt.Sprintf("%s: not in the word list", out.Guess)
		if out.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %s?)", out.Suggestion)
		}
		return invalidStyle.Render(line)
	}
	line := fmt.Sprintf("%s: similarity %.3f", out.Guess, out.Similarity)
	switch {
	case out.Repeat:
		return correctStyle.Render(line + " - correct, already counted")
	case out.Correct:
		return correctStyle.Render(line + " - correct! well done")
	default:
		return line + " - not quite, try again"
	}
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	targetStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	correctStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	invalidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
