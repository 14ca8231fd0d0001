package sdk

import (
	"go.uber.org/zap"
)

// Logger is the minimal logging surface the engine writes state
// transitions to. *zap.SugaredLogger satisfies it.
type Logger interface {
	Infof(template string, args ...any)
}

// DefaultLogger returns the production zap logger the engine falls back to
// when none is injected.
func DefaultLogger() Logger {
	return zap.Must(zap.NewProduction()).Sugar()
}
