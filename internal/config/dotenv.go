package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/truthlens/pkg/log"
)

// LoadDotEnv loads every existing file in order. Variables already present in
// the environment are never overridden, so earlier files win over later ones.
// It usually runs before the logger is installed, so failures are returned,
// not logged.
func LoadDotEnv(ctx context.Context, paths ...string) error {
	logger := log.FromCtx(ctx)

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}

		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("loaded .env file")
	}
	return nil
}
