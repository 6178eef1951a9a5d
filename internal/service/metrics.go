package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts candidate lifecycle events. A nil *Metrics records nothing.
type Metrics struct {
	created        prometheus.Counter
	deleted        prometheus.Counter
	removeFailures prometheus.Counter
}

// NewMetrics registers the candidate counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candidates_created_total",
			Help: "Total number of candidates created.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candidates_deleted_total",
			Help: "Total number of candidates deleted.",
		}),
		removeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candidate_file_remove_failures_total",
			Help: "Resume files that could not be removed when their candidate was deleted.",
		}),
	}
	for _, c := range []prometheus.Collector{m.created, m.deleted, m.removeFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) incCreated() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) incDeleted() {
	if m != nil {
		m.deleted.Inc()
	}
}

func (m *Metrics) incRemoveFailure() {
	if m != nil {
		m.removeFailures.Inc()
	}
}
