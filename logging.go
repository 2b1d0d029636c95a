package reactors

import "github.com/rs/zerolog"

// componentLogger mirrors cuemby-warren's log.WithComponent convention: each
// internal collaborator logs through its own child logger, tagged with the
// reactor's name and its own component, so a process hosting many reactors
// can filter logs per instance and per subsystem.
func componentLogger(base zerolog.Logger, name, component string) zerolog.Logger {
	return base.With().Str("reactor", name).Str("component", component).Logger()
}
