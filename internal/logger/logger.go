// Package logger configures the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds a logger for env and installs it as zap.L().
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "production":
		l, err = zap.NewProduction()
	case "test":
		l = zap.NewNop()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("build %s logger -> %w", env, err)
	}

	zap.ReplaceGlobals(l)
	return nil
}
