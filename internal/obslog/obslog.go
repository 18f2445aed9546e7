// Package obslog provides the structured logger shared by every CLI driver
// and loader: load warnings, reachability diagnostics, and per-plan results.
package obslog

import "go.uber.org/zap"

// New builds a human-readable, non-production zap logger suited to a CLI
// tool (console encoding, capitalized level names, no sampling). Call Sync before the process exits.
func New() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		// A broken logger configuration is a programmer error, not a
		// runtime condition any caller can recover from.
		panic(err)
	}
	return logger.Sugar()
}
