package reactors

import (
	"errors"
	"fmt"
)

// Stage names the kind of action that raised a fault.
type Stage string

const (
	StageReducer     Stage = "reducer"
	StageInitializer Stage = "initializer"
	StageEmitter     Stage = "emitter"
	StageExplicit    Stage = "explicit-reboot"
)

// FaultMetaError exposes correlation metadata for a reactor fault: which
// stage raised it and how many reboots the reactor had already performed.
type FaultMetaError interface {
	error
	Unwrap() error
	FaultStage() Stage
	FaultRestarts() uint64
}

type faultError struct {
	err      error
	stage    Stage
	restarts uint64
}

func newFaultError(err error, stage Stage, restarts uint64) error {
	if err == nil {
		return nil
	}
	return &faultError{err: err, stage: stage, restarts: restarts}
}

func (e *faultError) Error() string { return fmt.Sprintf("%s: %s", e.stage, e.err) }
func (e *faultError) Unwrap() error { return e.err }

func (e *faultError) FaultStage() Stage     { return e.stage }
func (e *faultError) FaultRestarts() uint64 { return e.restarts }

// ExtractFaultStage returns the stage that raised err, if err (or one it
// wraps) carries fault metadata.
func ExtractFaultStage(err error) (Stage, bool) {
	var fme FaultMetaError
	if errors.As(err, &fme) {
		return fme.FaultStage(), true
	}
	return "", false
}

// ExtractFaultRestarts returns the restart count at the time err was raised,
// if err (or one it wraps) carries fault metadata.
func ExtractFaultRestarts(err error) (uint64, bool) {
	var fme FaultMetaError
	if errors.As(err, &fme) {
		return fme.FaultRestarts(), true
	}
	return 0, false
}
