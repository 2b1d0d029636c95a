package reactors

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Reactor is a supervised, single-writer state container with dynamic
// fan-in (publishers) and fan-out (subscribers). All methods besides the
// synchronous accessors enqueue work and return immediately; effects are
// visible only after a subsequent Await.
type Reactor[S any] interface {
	// Start enqueues initialization and blocks until the mailbox drains, so
	// the initial emission (if any) has completed before Start returns.
	Start() Reactor[S]

	// Await blocks until no actions remain outstanding on this reactor,
	// including actions that watch reactions enqueued while draining.
	Await() Reactor[S]

	// Update enqueues state <- f(state) on the non-blocking queue.
	Update(f func(S) S) Reactor[S]

	// UpdateBlocking enqueues state <- f(state) on the blocking queue.
	UpdateBlocking(f func(S) S) Reactor[S]

	// Reboot enqueues an unconditional fault, triggering supervised
	// recovery through the configured backoff.
	Reboot() Reactor[S]

	// State returns a snapshot of the currently-visible state.
	State() S

	// PublisherIdents returns the identifiers of currently-attached
	// publishers, sorted ascending.
	PublisherIdents() []ID

	// SubscriberIdents returns the identifiers of currently-attached
	// subscribers, sorted ascending.
	SubscriberIdents() []ID

	// SetReducer replaces the fold function.
	SetReducer(Reducer[S]) Reactor[S]
	// SetEmitter replaces the change-to-messages function.
	SetEmitter(Emitter[S]) Reactor[S]
	// SetInitializer replaces the state constructor.
	SetInitializer(Initializer[S]) Reactor[S]
	// SetBackoff replaces the restart-delay sequence.
	SetBackoff(Backoff) Reactor[S]

	// AddPublishers attaches the given channels under their identifiers.
	AddPublishers(map[ID]chan any) Reactor[S]
	// RemovePublishers detaches the named publisher channels. Once the
	// reactor has started, their channels are also closed.
	RemovePublishers(ids ...ID) Reactor[S]

	// AddSubscribers attaches the given channels under their identifiers.
	AddSubscribers(map[ID]chan any) Reactor[S]
	// RemoveSubscribers detaches the named subscriber channels. Once the
	// reactor has started, their channels are also closed.
	RemoveSubscribers(ids ...ID) Reactor[S]

	// AddDestructors registers zero-argument teardown callbacks.
	AddDestructors(map[ID]func()) Reactor[S]
	// RemoveDestructors unregisters the named destructors.
	RemoveDestructors(ids ...ID) Reactor[S]
}

// phase tracks the reactor's coarse lifecycle state for internal gating. It
// is informational only; callers observe lifecycle through State, the
// idents accessors, and whether operations still have any effect.
type phase int32

const (
	phaseCreated phase = iota
	phaseRunning
	phaseFaulted
	phaseRebooting
	phaseImploded
)

type reactorImpl[S any] struct {
	name string

	logActor      zerolog.Logger
	logSupervisor zerolog.Logger
	logPump       zerolog.Logger
	logFanout     zerolog.Logger
	logWatch      zerolog.Logger

	metrics metricsRecorder

	mu      sync.RWMutex
	current *record[S]

	phase atomic.Int32

	aw *awaiter

	genMu      sync.RWMutex
	generation chan struct{}
	nonBlock   *actionQueue[S]
	block      *actionQueue[S]

	startOnce   sync.Once
	implodeOnce sync.Once

	// pumps tracks which publisher IDs currently have a running pump task, so
	// startPump does not launch a second one for the same channel.
	pumpMu sync.Mutex
	pumps  map[ID]struct{}

	reactions []reaction[S]
}

func newReactor[S any](cfg *config[S]) *reactorImpl[S] {
	r := &reactorImpl[S]{
		name:          cfg.name,
		logActor:      componentLogger(cfg.logger, cfg.name, "actor"),
		logSupervisor: componentLogger(cfg.logger, cfg.name, "supervisor"),
		logPump:       componentLogger(cfg.logger, cfg.name, "pump"),
		logFanout:     componentLogger(cfg.logger, cfg.name, "fanout"),
		logWatch:      componentLogger(cfg.logger, cfg.name, "watch"),
		metrics:       cfg.buildMetrics(),
		current:       newRecord(cfg),
		aw:            newAwaiter(),
		generation:    make(chan struct{}),
		pumps:         make(map[ID]struct{}),
	}
	r.nonBlock = newActionQueue[S](64)
	r.block = newActionQueue[S](64)
	r.reactions = defaultReactions[S]()
	if err := checkUniqueReactions(r.reactions); err != nil {
		panic(err)
	}
	go r.runIncarnation(r.nonBlock, r.block)
	return r
}

func (r *reactorImpl[S]) snapshot() *record[S] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *reactorImpl[S]) State() S {
	return r.snapshot().state
}

func (r *reactorImpl[S]) PublisherIdents() []ID {
	return identsOf(r.snapshot().publishers)
}

func (r *reactorImpl[S]) SubscriberIdents() []ID {
	return identsOf(r.snapshot().subscribers)
}

// imploded reports whether implosion has already run. Once true, every
// enqueue operation silently no-ops instead of reaching a dead actor.
func (r *reactorImpl[S]) imploded() bool {
	return phase(r.phase.Load()) == phaseImploded
}
