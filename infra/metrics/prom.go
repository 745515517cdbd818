package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/opendensity/density/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewPromSink registers prediction metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "density_predictions_total",
		Help: "Total number of prediction calls",
	}, []string{"floor", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "density_prediction_duration_seconds",
		Help:    "Time spent loading history and computing a prediction",
		Buckets: prometheus.DefBuckets,
	}, []string{"floor"})

	if err := reg.Register(predictions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predictions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{predictions: predictions, duration: duration}, nil
}

// RecordPrediction increments the call counter and observes the duration.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.Floor, ev.Outcome).Inc()
	s.duration.WithLabelValues(ev.Floor).Observe(ev.Duration.Seconds())
	return nil
}
