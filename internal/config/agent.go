package config

import (
	"context"

	"github.com/sandevgo/truthlens/pkg/log"
)

type AgentConfig struct {
	MaxSteps         int `env:"AGENT_MAX_STEPS" envDefault:"10"`
	ObservationLimit int `env:"AGENT_OBSERVATION_LIMIT" envDefault:"4000"`
}

func NewAgentConfig(ctx context.Context) *AgentConfig {
	c, err := load[AgentConfig](nil)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Agent config")
	}
	return c
}

func (c AgentConfig) GetMaxSteps() int         { return c.MaxSteps }
func (c AgentConfig) GetObservationLimit() int { return c.ObservationLimit }
