package playground

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered per server so tests can build several routers.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	todos    prometheus.GaugeFunc
}

func NewMetrics(svc *Service) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todos_playground_requests_total",
				Help: "Total number of playground API requests",
			},
			[]string{"route", "code"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todos_playground_request_duration_seconds",
				Help:    "Duration of playground API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		todos: f.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "todos_playground_todos",
				Help: "Number of todos currently stored",
			},
			func() float64 { return float64(svc.TodoCount()) },
		),
	}
}
