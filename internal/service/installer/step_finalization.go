package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills derived values before saving
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	Finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

// Finalize applies defaults the runtime expects to find in the saved file.
func Finalize(state *InstallState) {
	if state.Settings.Model == "" {
		state.Settings.Model = DefaultModel(state.Settings.Provider)
	}
	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}
}
