package reactors

// Reducer folds one publisher message into the reactor's state. id is the
// identifier of the publisher the message arrived on.
type Reducer[S any] func(state S, id ID, message any) S

// Emitter computes the ordered sequence of messages to broadcast to
// subscribers for a state transition from oldState to newState. It must be
// pure: the core may call it with ({}, state) to compute catch-up emissions
// independently of when the real transition happened.
type Emitter[S any] func(oldState, newState S) []any

// Initializer constructs the state used on start and after every reboot.
type Initializer[S any] func() S

// identityReducer is the default reducer: it ignores incoming messages.
func identityReducer[S any](state S, _ ID, _ any) S {
	return state
}

// emptyEmitter is the default emitter: it never emits anything.
func emptyEmitter[S any](_, _ S) []any {
	return nil
}

// zeroInitializer is the default initializer: it returns the zero value of S.
func zeroInitializer[S any]() S {
	var zero S
	return zero
}
