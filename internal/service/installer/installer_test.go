package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type driver struct {
	t *testing.T
	m model
}

func newDriver(t *testing.T, envPath string, loader ModelLoader) *driver {
	d := &driver{t: t, m: newModel(getSteps(envPath, loader))}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return d
}

func (d *driver) send(msg tea.Msg) tea.Cmd {
	d.t.Helper()
	next, cmd := d.m.Update(msg)
	d.m = next.(model)
	return cmd
}

func (d *driver) key(t tea.KeyType) tea.Cmd {
	return d.send(tea.KeyMsg{Type: t})
}

func (d *driver) typeText(s string) {
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (d *driver) done() bool {
	return d.m.currentStep >= len(d.m.steps)
}

func TestWizard_OpenAIFlow(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "runtime", ".env")
	var listedWith string
	loader := func(_ context.Context, st *InstallState) ([]core.Model, error) {
		listedWith = st.APIKey()
		return []core.Model{{ID: "gpt-4o", Name: "GPT-4o"}, {ID: "gpt-4o-mini", Name: "GPT-4o mini"}}, nil
	}
	d := newDriver(t, envPath, loader)

	d.key(tea.KeyDown)
	d.key(tea.KeyEnter)
	assert.Equal(t, config.ProviderOpenAI, d.m.state.Settings.Provider)

	d.send(nextMsg{}) // custom url skipped

	d.typeText("sk-test")
	d.key(tea.KeyEnter)

	d.send(nextMsg{}) // custom key skipped

	fetch := d.send(nextMsg{})
	require.NotNil(t, fetch)
	d.send(fetch())
	assert.Equal(t, "sk-test", listedWith)
	d.key(tea.KeyEnter)
	assert.Equal(t, "gpt-4o", d.m.state.Settings.Model)

	d.typeText("tvly-123")
	d.key(tea.KeyEnter)

	d.key(tea.KeyEnter) // default origin

	d.typeText("8080")
	d.key(tea.KeyEnter)

	d.send(nextMsg{}) // finalization
	d.send(nextMsg{}) // save
	require.True(t, d.done())
	require.NoError(t, d.m.err)

	values, err := godotenv.Read(envPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"LLM_PROVIDER":    "openai",
		"LLM_MODEL":       "gpt-4o",
		"OPENAI_API_KEY":  "sk-test",
		"TAVILY_API_KEY":  "tvly-123",
		"GEMINI_PORT":     "8080",
		"TRUTHLENS_DEBUG": "0",
	}, values)

	info, err := os.Stat(envPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWizard_ModelListFailureFallsBackToDefault(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	loader := func(context.Context, *InstallState) ([]core.Model, error) {
		return nil, errors.New("401 unauthorized")
	}
	d := newDriver(t, envPath, loader)

	d.key(tea.KeyEnter) // gemini
	d.send(nextMsg{})
	d.typeText("AIza-key")
	d.key(tea.KeyEnter)
	d.send(nextMsg{})

	fetch := d.send(nextMsg{})
	d.send(fetch())
	assert.Contains(t, d.m.View(), "401 unauthorized")

	d.typeText("s")
	assert.Equal(t, "gemini-2.5-flash", d.m.state.Settings.Model)
	assert.Equal(t, "AIza-key", d.m.state.Settings.GoogleAPIKey)
}

func TestWizard_CustomProvider(t *testing.T) {
	d := newDriver(t, filepath.Join(t.TempDir(), ".env"), func(context.Context, *InstallState) ([]core.Model, error) {
		return nil, errors.New("no models endpoint")
	})

	for range 3 {
		d.key(tea.KeyDown)
	}
	d.key(tea.KeyEnter)
	require.Equal(t, config.ProviderCustom, d.m.state.Settings.Provider)

	d.typeText("http://localhost:8000/v1")
	d.key(tea.KeyEnter)
	assert.Equal(t, "http://localhost:8000/v1/", d.m.state.Settings.CustomBaseURL)

	d.send(nextMsg{}) // hosted key step skipped
	d.key(tea.KeyEnter) // no key for the local endpoint
	assert.Empty(t, d.m.state.Settings.CustomAPIKey)

	fetch := d.send(nextMsg{})
	d.send(fetch())

	d.typeText("s") // no default for custom endpoints
	assert.Empty(t, d.m.state.Settings.Model)

	d.typeText("m")
	d.typeText("llama3.1:8b")
	d.key(tea.KeyEnter)
	assert.Equal(t, "llama3.1:8b", d.m.state.Settings.Model)
}

func TestWizard_CtrlC(t *testing.T) {
	d := newDriver(t, filepath.Join(t.TempDir(), ".env"), nil)
	d.send(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, d.m.quitting)
	assert.Equal(t, "Installation cancelled.\n", d.m.View())
}

func TestPromptValidation(t *testing.T) {
	tests := []struct {
		name    string
		step    func() Step
		input   string
		wantErr string
	}{
		{"port range", NewPortStep, "70000", "invalid port"},
		{"port text", NewPortStep, "http", "invalid port"},
		{"origin scheme", NewOriginStep, "localhost:5173", "invalid URL"},
		{"custom url", NewCustomURLStep, "ftp://host", "invalid URL"},
		{"required key", NewAPIKeyStep, "", "a value is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewInstallState()
			state.Settings.Provider = config.ProviderCustom
			if tt.name == "required key" {
				state.Settings.Provider = config.ProviderGemini
			}

			step := tt.step()
			step.Update(nextMsg{}, state, 80, 24)
			if tt.input != "" {
				step.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.input)}, state, 80, 24)
			}
			next, _ := step.Update(tea.KeyMsg{Type: tea.KeyEnter}, state, 80, 24)

			require.NotNil(t, next)
			assert.Contains(t, next.View(state), tt.wantErr)
		})
	}
}

func TestSaveEnv_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KEEP=1\n"), 0o600))

	err := SaveEnv(path, &Settings{Provider: "gemini"})
	assert.ErrorIs(t, err, ErrEnvExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(data))
}

func TestSetAPIKey(t *testing.T) {
	tests := []struct {
		provider string
		get      func(Settings) string
	}{
		{config.ProviderGemini, func(s Settings) string { return s.GoogleAPIKey }},
		{config.ProviderOpenAI, func(s Settings) string { return s.OpenAIAPIKey }},
		{config.ProviderOpenRouter, func(s Settings) string { return s.OpenRouterAPIKey }},
		{config.ProviderCustom, func(s Settings) string { return s.CustomAPIKey }},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			st := NewInstallState()
			st.Settings.Provider = tt.provider
			st.SetAPIKey("k-" + tt.provider)

			assert.Equal(t, "k-"+tt.provider, tt.get(st.Settings))
			assert.Equal(t, "k-"+tt.provider, st.APIKey())
		})
	}
}
