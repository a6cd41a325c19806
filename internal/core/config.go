package core

import "time"

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetAPIKey() string
	GetBaseURL() string
	GetTimeout() time.Duration
	GetMaxRetries() int
}

type SearchConfig interface {
	GetTavilyAPIKey() string
	GetTavilyBaseURL() string
	GetTimeout() time.Duration
	GetMaxRetries() int
}
