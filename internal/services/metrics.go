package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instruments for the calculation service.
type Metrics struct {
	CalculationsTotal *prometheus.CounterVec
	ValuesParsedTotal prometheus.Counter
}

// NewMetrics creates and registers the calculation metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cpk",
			Name:      "calculations_total",
			Help:      "Number of calculations performed, by input source and Cpk outcome.",
		}, []string{"source", "outcome"}),
		ValuesParsedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cpk",
			Name:      "values_parsed_total",
			Help:      "Total measurement values accepted by the parser.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.CalculationsTotal, m.ValuesParsedTotal)
	}
	return m
}

// observe records one finished calculation.
func (m *Metrics) observe(source string, result *CalculationResult) {
	if m == nil {
		return
	}
	outcome := "undefined"
	if result.Cpk != nil {
		outcome = "defined"
	}
	m.CalculationsTotal.WithLabelValues(source, outcome).Inc()
	m.ValuesParsedTotal.Add(float64(result.Summary.Count))
}
