package catalog

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK         = "ok"
	resultNotFound   = "not_found"
	resultInvalid    = "invalid"
	resultBadRequest = "bad_request"
)

// UpdateMetrics counts update outcomes. A nil *UpdateMetrics records nothing.
type UpdateMetrics struct {
	total *prometheus.CounterVec
}

func NewUpdateMetrics(reg prometheus.Registerer) *UpdateMetrics {
	m := &UpdateMetrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_updates_total",
				Help: "Product update requests by outcome",
			},
			[]string{"result"},
		),
	}
	for _, res := range []string{resultOK, resultNotFound, resultInvalid, resultBadRequest} {
		m.total.WithLabelValues(res)
	}

	reg.MustRegister(m.total)
	return m
}

func (m *UpdateMetrics) observe(result string) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(result).Inc()
}
