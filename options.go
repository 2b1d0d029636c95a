package reactors

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/reactors/metrics"
)

// Option configures a Reactor. Use New(opts...) to construct one.
type Option[S any] func(*config[S])

// WithReducer installs the fold function applied to each publisher message.
func WithReducer[S any](r Reducer[S]) Option[S] {
	return func(c *config[S]) {
		if r == nil {
			panic("reactors: nil reducer")
		}
		c.reducer = r
	}
}

// WithEmitter installs the change-to-messages function. It must be pure: the
// core calls it both for live transitions and for catch-up emissions.
func WithEmitter[S any](e Emitter[S]) Option[S] {
	return func(c *config[S]) {
		if e == nil {
			panic("reactors: nil emitter")
		}
		c.emitter = e
	}
}

// WithInitializer installs the state constructor used on start and reboot.
func WithInitializer[S any](i Initializer[S]) Option[S] {
	return func(c *config[S]) {
		if i == nil {
			panic("reactors: nil initializer")
		}
		c.initializer = i
	}
}

// WithBackoff installs the restart-delay sequence consumed by the
// supervisor. The default is DefaultBackoff().
func WithBackoff[S any](b Backoff) Option[S] {
	return func(c *config[S]) {
		if b == nil {
			panic("reactors: nil backoff")
		}
		c.backoff = b
	}
}

// WithName sets the reactor's name, used in log fields and metric labels.
// Defaults to a generated ID.
func WithName[S any](name string) Option[S] {
	return func(c *config[S]) { c.name = name }
}

// WithLogger installs a zerolog.Logger the reactor logs faults, reboots, and
// teardown to. Defaults to a logger that discards everything.
func WithLogger[S any](logger zerolog.Logger) Option[S] {
	return func(c *config[S]) { c.logger = logger }
}

// WithMetrics installs a metrics.Provider the reactor records restarts,
// faults, publisher/subscriber counts, and emission sizes into. Defaults to
// a no-op provider.
func WithMetrics[S any](provider metrics.Provider) Option[S] {
	return func(c *config[S]) {
		if provider == nil {
			panic("reactors: nil metrics provider")
		}
		c.metricsProvider = provider
	}
}

// New constructs a Reactor from the given options. The reactor is created in
// Created state; call Start to transition it to Running.
func New[S any](opts ...Option[S]) Reactor[S] {
	cfg := defaultConfig[S]()
	for _, opt := range opts {
		if opt == nil {
			panic("reactors: nil option")
		}
		opt(&cfg)
	}

	if err := validateConfig(&cfg); err != nil {
		panic(fmt.Errorf("reactors: invalid config: %w", err))
	}

	return newReactor(&cfg)
}
