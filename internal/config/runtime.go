package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("TRUTHLENS_RUNTIME_PATH")
	if path == "" {
		path = ".truthlens"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

// GetMCPConfigPath locates the optional external tool server list.
func GetMCPConfigPath() string {
	if path := os.Getenv("TRUTHLENS_MCP_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(GetRuntimePath(), "mcp_servers.json")
}
