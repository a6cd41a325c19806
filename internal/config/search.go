package config

import (
	"context"
	"time"

	"github.com/sandevgo/truthlens/pkg/log"
)

type SearchConfig struct {
	TavilyAPIKey  string        `env:"TAVILY_API_KEY"`
	TavilyBaseURL string        `env:"TAVILY_BASE_URL" envDefault:"https://api.tavily.com"`
	Timeout       time.Duration `env:"TAVILY_TIMEOUT" envDefault:"20s"`
	MaxRetries    int           `env:"TAVILY_MAX_RETRIES" envDefault:"1"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c, err := load[SearchConfig](nil)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}

func (c SearchConfig) GetTavilyAPIKey() string   { return c.TavilyAPIKey }
func (c SearchConfig) GetTavilyBaseURL() string  { return c.TavilyBaseURL }
func (c SearchConfig) GetTimeout() time.Duration { return c.Timeout }
func (c SearchConfig) GetMaxRetries() int        { return c.MaxRetries }
