package installer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sandevgo/truthlens/internal/config"
)

func NewAPIKeyStep() Step {
	return newPromptStep(promptOptions{
		title:  "Enter your inference API key",
		secret: true,
		skip:   func(state *InstallState) bool { return state.Settings.Provider == config.ProviderCustom },
		dynamic: func(state *InstallState) string {
			switch state.Settings.Provider {
			case config.ProviderOpenAI:
				return "sk-..."
			case config.ProviderOpenRouter:
				return "sk-or-v1-..."
			default:
				return "AIza..."
			}
		},
		apply: func(state *InstallState, value string) error {
			state.SetAPIKey(value)
			return nil
		},
	})
}

// NewCustomAPIKeyStep replaces the key prompt for custom endpoints, where a key is optional.
func NewCustomAPIKeyStep() Step {
	return newPromptStep(promptOptions{
		title:    "Enter the API key of your endpoint",
		secret:   true,
		optional: true,
		skip:     func(state *InstallState) bool { return state.Settings.Provider != config.ProviderCustom },
		apply: func(state *InstallState, value string) error {
			state.SetAPIKey(value)
			return nil
		},
	})
}

func NewCustomURLStep() Step {
	return newPromptStep(promptOptions{
		title:       "Enter Custom OpenAI Base URL",
		placeholder: "https://api.example.com/v1",
		skip:        func(state *InstallState) bool { return state.Settings.Provider != config.ProviderCustom },
		apply: func(state *InstallState, value string) error {
			if err := validateURL(value); err != nil {
				return err
			}
			if !strings.HasSuffix(value, "/") {
				value += "/"
			}
			state.Settings.CustomBaseURL = value
			return nil
		},
	})
}

func NewTavilyKeyStep() Step {
	return newPromptStep(promptOptions{
		title:       "Enter your Tavily API key (web search)",
		placeholder: "tvly-...",
		secret:      true,
		optional:    true,
		apply: func(state *InstallState, value string) error {
			state.Settings.TavilyAPIKey = value
			return nil
		},
	})
}

func NewOriginStep() Step {
	return newPromptStep(promptOptions{
		title:       "Frontend origin allowed to call the API",
		placeholder: "http://localhost:5173",
		optional:    true,
		apply: func(state *InstallState, value string) error {
			if value == "" {
				return nil
			}
			if err := validateURL(value); err != nil {
				return err
			}
			state.Settings.AllowedOrigin = strings.TrimRight(value, "/")
			return nil
		},
	})
}

func NewPortStep() Step {
	return newPromptStep(promptOptions{
		title:       "Port to listen on",
		placeholder: "5500",
		optional:    true,
		apply: func(state *InstallState, value string) error {
			if value == "" {
				return nil
			}
			port, err := strconv.Atoi(value)
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q", value)
			}
			state.Settings.Port = port
			return nil
		},
	})
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q", raw)
	}
	return nil
}
