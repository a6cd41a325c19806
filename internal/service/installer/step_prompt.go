package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errRequired = errors.New("a value is required")

// PromptStep collects one line of text. Secrets are masked.
type PromptStep struct {
	input textinput.Model
	err   error

	title    string
	optional bool

	// skip is checked before the step is shown
	skip func(state *InstallState) bool
	// placeholder is derived from state when set
	placeholder func(state *InstallState) string
	apply       func(state *InstallState, value string) error
	prepared    bool
}

type promptOptions struct {
	title       string
	placeholder string
	secret      bool
	optional    bool
	skip        func(state *InstallState) bool
	dynamic     func(state *InstallState) string
	apply       func(state *InstallState, value string) error
}

func newPromptStep(o promptOptions) *PromptStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = o.placeholder
	if o.secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}

	return &PromptStep{
		input:       ti,
		title:       o.title,
		optional:    o.optional,
		skip:        o.skip,
		placeholder: o.dynamic,
		apply:       o.apply,
	}
}

func (s *PromptStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return nextMsg{} })
}

func (s *PromptStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.prepared {
		s.prepared = true
		if s.skip != nil && s.skip(state) {
			return nil, nil
		}
		if s.placeholder != nil {
			s.input.Placeholder = s.placeholder(state)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.optional {
			s.err = errRequired
			return s, cmd
		}
		if err := s.apply(state, val); err != nil {
			s.err = err
			return s, cmd
		}
		return nil, nil
	}
	return s, cmd
}

func (s *PromptStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (optional, press enter to skip)"
	}

	view := fmt.Sprintf("%s%s:\n\n%s\n\n", s.title, hint, s.input.View())
	if s.err != nil {
		view += errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
