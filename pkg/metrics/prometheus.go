package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the predictor's metrics sink using Prometheus.
type Recorder struct {
	predictions   *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	probability   prometheus.Histogram
	latency       *prometheus.HistogramVec
	artifactReady *prometheus.GaugeVec
}

// New creates a Prometheus recorder registered on reg. A nil reg means the
// default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fraudguard",
				Name:      "predictions_total",
				Help:      "Predictions served, by risk level",
			},
			[]string{"risk_level"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fraudguard",
				Name:      "errors_total",
				Help:      "Prediction failures by kind",
			},
			[]string{"kind"},
		),
		probability: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fraudguard",
				Name:      "fraud_probability",
				Help:      "Distribution of returned fraud probabilities",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1},
			},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fraudguard",
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		artifactReady: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "fraudguard",
				Name:      "artifact_loaded",
				Help:      "1 when the startup artifact was loaded, 0 otherwise",
			},
			[]string{"artifact"},
		),
	}
}

// RecordPrediction records a served prediction.
func (r *Recorder) RecordPrediction(riskLevel string, probability float64) {
	r.predictions.WithLabelValues(riskLevel).Inc()
	r.probability.Observe(probability)
}

// RecordError records a failed prediction.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordArtifact exposes whether a startup artifact is available.
func (r *Recorder) RecordArtifact(name string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1
	}
	r.artifactReady.WithLabelValues(name).Set(v)
}
