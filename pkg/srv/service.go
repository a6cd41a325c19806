package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/truthlens/pkg/log"
)

// ShutdownTimeout bounds the graceful stop of every service.
const ShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%s failed to start", name(service))
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse order.
// The stop itself runs on a fresh context so in-flight work can drain.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	logger := log.FromCtx(ctx)
	sctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), ShutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msgf("%s failed to shutdown", name(services[i]))
		}
	}
}

func name(s Service) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
