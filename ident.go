package reactors

import "github.com/google/uuid"

// ID identifies a publisher, subscriber, or destructor attached to a reactor.
// It is opaque to the core: callers choose their own scheme, or use NewID.
type ID = string

// NewID returns a fresh, randomly generated identifier suitable for a
// publisher, subscriber, or destructor that has no natural name of its own.
func NewID() ID {
	return uuid.NewString()
}
