package reactors

import "errors"

const Namespace = "reactors"

var (
	// ErrReactionExists is raised during construction when two reactions
	// register under the same key.
	ErrReactionExists = errors.New(Namespace + ": duplicate watch reaction key")

	// ErrBackoffExhausted marks the fault that triggers implosion when the
	// backoff sequence yields no further delay.
	ErrBackoffExhausted = errors.New(Namespace + ": backoff sequence exhausted")

	// ErrInvalidConfig is returned when a required configuration field is
	// nil (reducer, emitter, initializer, or backoff).
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	// ErrExplicitReboot is the fault raised by Reboot: an unconditional
	// failure that takes the normal supervised-recovery path.
	ErrExplicitReboot = errors.New(Namespace + ": explicit reboot requested")
)
