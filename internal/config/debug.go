package config

import "os"

func IsDebug() bool {
	return os.Getenv("TRUTHLENS_DEBUG") == "1"
}

// IsJSONLog reports whether logs should be emitted as JSON lines instead of console text.
func IsJSONLog() bool {
	return os.Getenv("TRUTHLENS_LOG_FORMAT") == "json"
}
