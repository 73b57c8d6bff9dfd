package extdata

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts store activity. A nil *Metrics records nothing.
type Metrics struct {
	created *prometheus.CounterVec
	deleted prometheus.Counter
	swept   prometheus.Counter
	records prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workbench",
			Subsystem: "extdata",
			Name:      "records_created_total",
			Help:      "Extended bill records created, by construction path.",
		}, []string{"path"}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workbench",
			Subsystem: "extdata",
			Name:      "records_deleted_total",
			Help:      "Extended bill records removed because their bill was destroyed.",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workbench",
			Subsystem: "extdata",
			Name:      "records_swept_total",
			Help:      "Stale extended bill records removed by the sweep.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "workbench",
			Subsystem: "extdata",
			Name:      "records",
			Help:      "Extended bill records currently held.",
		}),
	}
	reg.MustRegister(m.created, m.deleted, m.swept, m.records)
	return m
}

func (m *Metrics) observeCreated(s Strategy, size int) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(s.String()).Inc()
	m.records.Set(float64(size))
}

func (m *Metrics) observeDeleted(n, size int) {
	if m == nil {
		return
	}
	m.deleted.Add(float64(n))
	m.records.Set(float64(size))
}

func (m *Metrics) observeSwept(n, size int) {
	if m == nil {
		return
	}
	m.swept.Add(float64(n))
	m.records.Set(float64(size))
}

func (m *Metrics) observeSize(size int) {
	if m == nil {
		return
	}
	m.records.Set(float64(size))
}
