// Package log provides the process-wide structured logger used for
// pass-by-pass and registry-lookup trace output.
package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// L returns the process-wide logger, built once on first use and treated
// as an immutable singleton thereafter, the same lifecycle as the
// precedence table and the implementation registry.
func L() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		built, err := cfg.Build()
		if err != nil {
			logger = zap.NewNop()
			return
		}
		logger = built
	})
	return logger
}

// SetForTesting installs l as the singleton logger, for use by tests that
// want to capture log output. Not for production use.
func SetForTesting(l *zap.Logger) {
	once.Do(func() {})
	logger = l
}
