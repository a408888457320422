// Package prompt asks the user to approve a pending deletion.
package prompt

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the outcome of a confirmation
type Decision int

const (
	// Undecided means no key has been pressed and there is no default
	Undecided Decision = iota

	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted reports whether the user approved
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Styles holds the lipgloss styles used when rendering the prompt
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model is a single-keystroke y/n confirmation. Esc and Ctrl+C deny.
type Model struct {
	PromptPrefix string
	Prompt       string

	AcceptedDecisionText string
	DeniedDecisionText   string

	// DefaultValue is upper-cased in the placeholder
	DefaultValue Decision

	Styles Styles

	selected Decision
	done     bool
	text     textinput.Model
}

var _ tea.Model = (*Model)(nil)

// New creates a model that defaults to Denied
func New(prompt string) Model {
	return Model{
		PromptPrefix:         "? ",
		Prompt:               prompt,
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected returns the decision, or the default until a key is pressed
func (m *Model) Selected() Decision {
	return m.selected
}

func (m *Model) placeholder() string {
	accept, deny := m.AcceptedDecisionText, m.DeniedDecisionText
	switch m.DefaultValue {
	case Accepted:
		accept = strings.ToUpper(accept)
	case Denied:
		deny = strings.ToUpper(deny)
	}
	return accept + "/" + deny
}

func (m *Model) Init() tea.Cmd {
	m.selected = m.DefaultValue

	input := textinput.New()
	input.Placeholder = m.placeholder()
	input.Prompt = m.Prompt
	if !strings.HasSuffix(input.Prompt, " ") {
		input.Prompt += " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = max(len(m.AcceptedDecisionText), len(m.DeniedDecisionText))
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		return m.decide(m.DefaultValue)
	}

	s := keyMsg.String()
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return m, nil
	}
	switch strings.ToLower(s) {
	case strings.ToLower(m.AcceptedDecisionText[:1]):
		return m.decide(Accepted)
	case strings.ToLower(m.DeniedDecisionText[:1]):
		return m.decide(Denied)
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}

	if m.done {
		// keep the question and the answer on screen
		promptRender := m.Styles.Prompt.Inline(true).Render
		b.WriteString(promptRender(m.Prompt + " "))
		if m.selected == Accepted {
			b.WriteString(m.AcceptedDecisionText)
		} else {
			b.WriteString(m.DeniedDecisionText)
		}
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	return b.String()
}
