package mcp

import (
	"fmt"
	"sort"
)

type TransportType string

const (
	TransportHTTP  TransportType = "http"
	TransportSSE   TransportType = "sse"
	TransportStdio TransportType = "stdio"
)

// Config mirrors mcp_servers.json.
type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// ServerConfig describes one external tool server.
type ServerConfig struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`

	// Only "sse" is meaningful; URL servers default to streamable HTTP
	Transport TransportType `json:"transport,omitempty"`
}

func (c *ServerConfig) GetTransport() (TransportType, error) {
	if c.URL != "" {
		if c.Transport == TransportSSE {
			return TransportSSE, nil
		}
		return TransportHTTP, nil
	}
	if c.Command != "" {
		return TransportStdio, nil
	}
	return "", fmt.Errorf("invalid config: neither url nor command provided")
}

// Names returns the configured server names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.MCPServers))
	for name := range c.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
