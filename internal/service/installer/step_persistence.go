package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/truthlens/pkg/env"
)

var ErrEnvExists = errors.New(".env file already exists")

// SaveEnvStep writes the collected configuration to the .env file
type SaveEnvStep struct {
	path  string
	err   error
	saved bool
}

func NewSaveEnvStep(path string) Step {
	return &SaveEnvStep{path: path}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := SaveEnv(s.path, &state.Settings); err != nil {
		s.err = err
		return s, func() tea.Msg { return errMsg(err) }
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv writes settings to path with owner-only permissions. An existing file is never overwritten.
func SaveEnv(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w at %s", ErrEnvExists, path)
	}

	content, err := env.MarshalEnv(settings)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w at %s", ErrEnvExists, path)
		}
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
