package admingate

import "sync/atomic"

// MetricID identifies a counter in the in-process metrics system.
type MetricID uint16

const (
	// MetricLoginSuccess counts fully completed interactive logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected credential exchanges.
	MetricLoginFailure
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricRevalidateSuccess counts background profile refreshes that landed.
	MetricRevalidateSuccess
	// MetricSelfHealLogout counts sessions cleared by a failed revalidation.
	MetricSelfHealLogout
	// MetricRefreshSuccess counts explicit token renewals.
	MetricRefreshSuccess
	// MetricRefreshFailure counts rejected token renewals.
	MetricRefreshFailure
	// MetricGuardAllow counts navigations allowed unchanged.
	MetricGuardAllow
	// MetricGuardRedirectLogin counts navigations rewritten to the login page.
	MetricGuardRedirectLogin
	// MetricGuardRedirectHome counts admins bounced off the login page.
	MetricGuardRedirectHome
	// MetricGuardRedirectFallback counts non-admins sent to the landing page.
	MetricGuardRedirectFallback
	// MetricStorageFailure counts swallowed durable-storage errors.
	MetricStorageFailure
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds cache-line-padded atomic counters. When disabled, every
// operation is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled bool
}

// NewMetrics creates a [Metrics] instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are recording.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc atomically increments the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current counter value.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || !m.enabled || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot deep-copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
