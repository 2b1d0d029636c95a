package reactors

import "github.com/ygrebnov/reactors/metrics"

// metricsRecorder is the narrow surface the reactor internals need from a
// metrics.Provider. Keeping it separate from metrics.Provider lets callers
// supply any provider (including their own) via WithMetrics without the core
// depending on instrument names or labels.
type metricsRecorder interface {
	restartInc()
	faultInc(stage Stage)
	publisherGauge(n int)
	subscriberGauge(n int)
	emitObserve(messages int)
}

// noopMetrics is the default: all recordings are discarded.
type noopMetrics struct{}

func (noopMetrics) restartInc()         {}
func (noopMetrics) faultInc(Stage)      {}
func (noopMetrics) publisherGauge(int)  {}
func (noopMetrics) subscriberGauge(int) {}
func (noopMetrics) emitObserve(int)     {}

// providerMetrics adapts a metrics.Provider into a metricsRecorder, naming
// and labeling the instruments a reactor exercises.
type providerMetrics struct {
	restarts    metrics.Counter
	faults      metrics.Counter
	publishers  metrics.UpDownCounter
	subscribers metrics.UpDownCounter
	emitted     metrics.Histogram
}

// newProviderMetrics builds the fixed set of instruments a reactor named
// name records into provider.
func newProviderMetrics(provider metrics.Provider, name string) metricsRecorder {
	attrs := metrics.WithAttributes(map[string]string{"reactor": name})
	return &providerMetrics{
		restarts:    provider.Counter("reactor_restarts_total", attrs),
		faults:      provider.Counter("reactor_faults_total", attrs),
		publishers:  provider.UpDownCounter("reactor_publishers", attrs),
		subscribers: provider.UpDownCounter("reactor_subscribers", attrs),
		emitted:     provider.Histogram("reactor_emitted_messages", attrs),
	}
}

func (m *providerMetrics) restartInc()         { m.restarts.Add(1) }
func (m *providerMetrics) faultInc(_ Stage)    { m.faults.Add(1) }
func (m *providerMetrics) publisherGauge(n int) {
	m.publishers.Add(int64(n))
}
func (m *providerMetrics) subscriberGauge(n int) {
	m.subscribers.Add(int64(n))
}
func (m *providerMetrics) emitObserve(messages int) {
	m.emitted.Record(float64(messages))
}
