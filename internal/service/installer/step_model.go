package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/truthlens/internal/core"
)

const defaultListTimeout = 30 * time.Second

// ModelLoader lists the models reachable with the collected credentials.
type ModelLoader func(ctx context.Context, state *InstallState) ([]core.Model, error)

type modelsMsg []list.Item
type modelsErrMsg struct{ err error }

// ModelStep lets the user pick a model from the provider's catalogue.
// When listing fails the provider default can be accepted instead.
type ModelStep struct {
	list     list.Model
	loader   ModelLoader
	loading  bool
	fetching bool
	err      error
}

func NewModelStep(loader ModelLoader) Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loader:  loader,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loader == nil {
		state.Settings.Model = DefaultModel(state.Settings.Provider)
		return nil, nil
	}

	// Trigger the fetch once when the step is entered
	if s.loading && !s.fetching {
		s.fetching = true
		return s, s.fetch(state)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case modelsErrMsg:
		s.loading = false
		s.fetching = false
		s.err = msg.err
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
				s.fetching = true
				return s, s.fetch(state)
			case "s":
				if def := DefaultModel(state.Settings.Provider); def != "" {
					state.Settings.Model = def
					return nil, nil
				}
			case "m":
				manual := NewManualModelStep()
				return manual, manual.Init()
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.Settings.Model = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// NewManualModelStep asks for a model id when the catalogue is unavailable.
func NewManualModelStep() Step {
	return newPromptStep(promptOptions{
		title: "Enter the model id",
		dynamic: func(state *InstallState) string {
			if def := DefaultModel(state.Settings.Provider); def != "" {
				return def
			}
			return "provider/model-name"
		},
		apply: func(state *InstallState, value string) error {
			state.Settings.Model = value
			return nil
		},
	})
}

func (s *ModelStep) fetch(state *InstallState) tea.Cmd {
	loader := s.loader
	snapshot := *state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultListTimeout)
		defer cancel()

		models, err := loader(ctx, &snapshot)
		if err != nil {
			return modelsErrMsg{err: err}
		}

		items := make([]list.Item, 0, len(models))
		for _, mod := range models {
			items = append(items, item{
				id:    mod.ID,
				title: mod.Name,
				desc:  "ID: " + mod.ID,
			})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		hint := "(press enter to retry, m to type a model id, ctrl+c to quit)"
		if def := DefaultModel(state.Settings.Provider); def != "" {
			hint = fmt.Sprintf("(press enter to retry, s to use %s, m to type a model id, ctrl+c to quit)", def)
		}
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n" + hint + "\n"
	}
	if s.loading {
		return "Fetching models...\n"
	}
	return s.list.View()
}
