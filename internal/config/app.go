package config

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/truthlens/pkg/log"
)

type AppConfig struct {
	Host          string `env:"TRUTHLENS_HOST" envDefault:"0.0.0.0"`
	Port          int    `env:"GEMINI_PORT" envDefault:"5500"`
	AllowedOrigin string `env:"TRUTHLENS_ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`

	// Upper bound for one /api/analyze request, inference and search included
	RequestTimeout time.Duration `env:"TRUTHLENS_REQUEST_TIMEOUT" envDefault:"120s"`
	MaxBody        string        `env:"TRUTHLENS_MAX_BODY" envDefault:"25M"`

	// When false, 500 responses carry a generic message and details only go to logs
	ExposeErrors bool `env:"TRUTHLENS_EXPOSE_ERRORS" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := load[AppConfig](nil)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// load parses T from the process environment, or from environ when it is not nil.
func load[T any](environ map[string]string) (*T, error) {
	c := new(T)
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, err
	}
	return c, nil
}
