package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sandevgo/truthlens/pkg/log"
)

// LoadConfig reads the server list at path. A missing file means no external servers.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.FromCtx(ctx).Debug().Str("path", path).Msg("no mcp server config")
			return &Config{MCPServers: make(map[string]ServerConfig)}, nil
		}
		return nil, fmt.Errorf("failed to read mcp config: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse mcp config: %w", err)
	}
	if config.MCPServers == nil {
		config.MCPServers = make(map[string]ServerConfig)
	}

	for name, srv := range config.MCPServers {
		if _, err := srv.GetTransport(); err != nil {
			return nil, fmt.Errorf("server %s: %w", name, err)
		}
	}
	return config, nil
}
