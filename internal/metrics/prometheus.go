package metrics

import (
	"net/http"
	"time"

	"cropupgrad-backend/internal/classifier"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Request path metrics
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropupgrad_predictions_total",
			Help: "Total number of served crop predictions",
		},
		[]string{"crop"},
	)

	PredictionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropupgrad_prediction_errors_total",
			Help: "Total number of failed crop predictions",
		},
		[]string{"kind"}, // kind: not_ready|inference|missing_range|internal
	)

	Suggestions = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cropupgrad_suggestions_per_prediction",
			Help:    "Number of improvement suggestions returned per prediction",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7},
		},
	)

	JournalErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cropupgrad_journal_errors_total",
			Help: "Total number of predictions that could not be journaled",
		},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropupgrad_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropupgrad_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"path", "method"},
	)

	// Model metrics
	ModelTestAccuracy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropupgrad_model_test_accuracy",
			Help: "Accuracy of the loaded model on its held-out split",
		},
	)

	ModelTestLogLoss = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropupgrad_model_test_logloss",
			Help: "Multi-class log-loss of the loaded model on its held-out split",
		},
	)

	ModelTrainingSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropupgrad_model_training_seconds",
			Help: "Wall time spent training the loaded model",
		},
	)

	ModelClasses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropupgrad_model_classes",
			Help: "Number of crops the loaded model can predict",
		},
	)

	ModelReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropupgrad_model_ready",
			Help: "1 once the model is trained and serving",
		},
	)
)

func init() {
	prometheus.MustRegister(
		Predictions,
		PredictionErrors,
		Suggestions,
		JournalErrors,
		HTTPRequests,
		HTTPLatency,
		ModelTestAccuracy,
		ModelTestLogLoss,
		ModelTrainingSeconds,
		ModelClasses,
		ModelReady,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveModel publishes the training report of the serving model.
func ObserveModel(r classifier.Report) {
	ModelTestAccuracy.Set(r.TestAccuracy)
	ModelTestLogLoss.Set(r.TestLogLoss)
	ModelTrainingSeconds.Set(r.TrainingSeconds)
	ModelClasses.Set(float64(len(r.Classes)))
	ModelReady.Set(1)
}

// ObserveRequest records one HTTP request.
func ObserveRequest(path, method, status string, latency time.Duration) {
	HTTPRequests.WithLabelValues(path, method, status).Inc()
	HTTPLatency.WithLabelValues(path, method).Observe(latency.Seconds())
}
