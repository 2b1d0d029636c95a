package reactors

import (
	"github.com/rs/zerolog"
	"github.com/ygrebnov/reactors/metrics"
)

// config holds Reactor configuration assembled by functional options.
type config[S any] struct {
	name string

	reducer     Reducer[S]
	emitter     Emitter[S]
	initializer Initializer[S]
	backoff     Backoff

	logger          zerolog.Logger
	metricsProvider metrics.Provider // nil unless WithMetrics was used
}

// defaultConfig centralizes default values for config. It is the base that
// New's option application starts from.
func defaultConfig[S any]() config[S] {
	return config[S]{
		name:        NewID(),
		reducer:     identityReducer[S],
		emitter:     emptyEmitter[S],
		initializer: zeroInitializer[S],
		backoff:     DefaultBackoff(),
		logger:      zerolog.Nop(),
	}
}

// buildMetrics resolves the final metricsRecorder once all options (in
// particular WithName) have been applied, so a provider installed before
// WithName still records under the reactor's final name.
func (cfg *config[S]) buildMetrics() metricsRecorder {
	if cfg.metricsProvider == nil {
		return noopMetrics{}
	}
	return newProviderMetrics(cfg.metricsProvider, cfg.name)
}

// validateConfig performs lightweight invariant checks. Reserved for future
// validation expansion; the option constructors already reject nil funcs and
// nil Backoff values at the point of assignment.
func validateConfig[S any](cfg *config[S]) error {
	if cfg.reducer == nil || cfg.emitter == nil || cfg.initializer == nil || cfg.backoff == nil {
		return ErrInvalidConfig
	}
	return nil
}
