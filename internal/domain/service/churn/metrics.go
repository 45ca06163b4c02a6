package churn

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"telco_churn/internal/domain/entity"
)

type metrics struct {
	predictions   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	unknownValues *prometheus.CounterVec
	cacheHits     prometheus.Counter
	probability   prometheus.Histogram
	duration      prometheus.Histogram
	modelLoaded   prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(registerer)

	return &metrics{
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "predictions_total",
			Help:      "Predictions served by verdict and risk level.",
		}, []string{"prediction", "risk_level"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "failures_total",
			Help:      "Prediction pipeline failures by error code.",
		}, []string{"code"}),
		unknownValues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "unknown_values_total",
			Help:      "Binary field values outside the persisted vocabulary.",
		}, []string{"field"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "cache_hits_total",
			Help:      "Predictions served from the cache.",
		}),
		probability: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "probability",
			Help:      "Distribution of predicted churn probabilities.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent producing a prediction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		modelLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "churn",
			Name:      "model_loaded",
			Help:      "1 when model artifacts are loaded.",
		}),
	}
}

func (m *metrics) observe(p entity.Prediction, elapsed time.Duration) {
	m.predictions.WithLabelValues(p.Verdict.String(), p.RiskLevel.String()).Inc()
	m.probability.Observe(p.Probability)
	m.duration.Observe(elapsed.Seconds())
}
