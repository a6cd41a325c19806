package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	c, err := load[AppConfig](map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 5500, c.Port)
	assert.Equal(t, "http://localhost:5173", c.AllowedOrigin)
	assert.Equal(t, 120*time.Second, c.RequestTimeout)
	assert.Equal(t, "25M", c.MaxBody)
	assert.True(t, c.ExposeErrors)
	assert.Equal(t, "0.0.0.0:5500", c.Addr())
}

func TestAppConfig_PortOverride(t *testing.T) {
	c, err := load[AppConfig](map[string]string{"GEMINI_PORT": "8080", "TRUTHLENS_HOST": "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", c.Addr())
}

func TestAppConfig_InvalidPort(t *testing.T) {
	_, err := load[AppConfig](map[string]string{"GEMINI_PORT": "abc"})
	assert.Error(t, err)
}

func TestInferenceConfig_APIKeyAndBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		wantKey string
		wantURL string
	}{
		{
			name:    "gemini prefers GOOGLE_API_KEY",
			environ: map[string]string{"GOOGLE_API_KEY": "g", "GEMINI_API_KEY": "m"},
			wantKey: "g",
			wantURL: GeminiBaseURL,
		},
		{
			name:    "gemini falls back to GEMINI_API_KEY",
			environ: map[string]string{"GEMINI_API_KEY": "m"},
			wantKey: "m",
			wantURL: GeminiBaseURL,
		},
		{
			name:    "openrouter",
			environ: map[string]string{"LLM_PROVIDER": "openrouter", "OPENROUTER_API_KEY": "or", "GOOGLE_API_KEY": "g"},
			wantKey: "or",
			wantURL: OpenRouterBaseURL,
		},
		{
			name:    "custom",
			environ: map[string]string{"LLM_PROVIDER": "custom", "CUSTOM_OPENAI_API_KEY": "c", "CUSTOM_OPENAI_BASE_URL": "http://local:1234/v1"},
			wantKey: "c",
			wantURL: "http://local:1234/v1",
		},
		{
			name:    "missing key is not an error",
			environ: map[string]string{},
			wantKey: "",
			wantURL: GeminiBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := load[InferenceConfig](tt.environ)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, c.GetAPIKey())
			assert.Equal(t, tt.wantURL, c.GetBaseURL())
			assert.Equal(t, "gemini-2.5-flash", c.GetModel())
		})
	}
}

func TestSearchAndAgentDefaults(t *testing.T) {
	s, err := load[SearchConfig](map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.tavily.com", s.GetTavilyBaseURL())
	assert.Equal(t, 20*time.Second, s.GetTimeout())
	assert.Equal(t, 1, s.GetMaxRetries())

	a, err := load[AgentConfig](map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 10, a.GetMaxSteps())
	assert.Equal(t, 4000, a.GetObservationLimit())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("TRUTHLENS_TEST_A=first\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("TRUTHLENS_TEST_A=second\nTRUTHLENS_TEST_B=b\n"), 0o600))

	t.Setenv("TRUTHLENS_TEST_A", "")
	t.Setenv("TRUTHLENS_TEST_B", "")
	os.Unsetenv("TRUTHLENS_TEST_A")
	os.Unsetenv("TRUTHLENS_TEST_B")

	err := LoadDotEnv(context.Background(), filepath.Join(dir, "missing.env"), first, second)
	require.NoError(t, err)

	assert.Equal(t, "first", os.Getenv("TRUTHLENS_TEST_A"))
	assert.Equal(t, "b", os.Getenv("TRUTHLENS_TEST_B"))
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	bad := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(bad, []byte("BAD-KEY=1\n"), 0o600))

	err := LoadDotEnv(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestGetRuntimePath(t *testing.T) {
	t.Setenv("TRUTHLENS_RUNTIME_PATH", "/tmp/tl")
	assert.Equal(t, "/tmp/tl", GetRuntimePath())
	assert.Equal(t, "/tmp/tl/.env", GetEnvPath())
}

func TestGetMCPConfigPath(t *testing.T) {
	t.Setenv("TRUTHLENS_RUNTIME_PATH", "/tmp/tl")
	t.Setenv("TRUTHLENS_MCP_CONFIG", "")
	assert.Equal(t, "/tmp/tl/mcp_servers.json", GetMCPConfigPath())

	t.Setenv("TRUTHLENS_MCP_CONFIG", "/etc/truthlens/servers.json")
	assert.Equal(t, "/etc/truthlens/servers.json", GetMCPConfigPath())
}

func TestLogSwitches(t *testing.T) {
	t.Setenv("TRUTHLENS_DEBUG", "1")
	t.Setenv("TRUTHLENS_LOG_FORMAT", "json")
	assert.True(t, IsDebug())
	assert.True(t, IsJSONLog())

	t.Setenv("TRUTHLENS_DEBUG", "true")
	t.Setenv("TRUTHLENS_LOG_FORMAT", "console")
	assert.False(t, IsDebug())
	assert.False(t, IsJSONLog())
}
