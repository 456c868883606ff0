// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// RPC metrics
	RPCCallLatency *prometheus.HistogramVec
	RPCErrors      *prometheus.CounterVec

	// Transaction metrics
	TransactionsSubmitted *prometheus.CounterVec
	ConfirmationLatency   *prometheus.HistogramVec

	// Deployment metrics
	TokensDeployed      prometheus.Counter
	LastDeployTimestamp prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "spl_token"
	}
	factory := promauto.With(reg)

	return &Metrics{
		RPCCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_latency_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RPCErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_errors_total",
			Help:      "Total number of failed Solana RPC calls",
		}, []string{"method"}),

		TransactionsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "submitted_total",
			Help:      "Total number of token transactions by operation and status",
		}, []string{"operation", "status"}),
		ConfirmationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "confirmation_latency_seconds",
			Help:      "Time from submission to confirmation in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90},
		}, []string{"operation"}),

		TokensDeployed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deploy",
			Name:      "tokens_deployed_total",
			Help:      "Total number of token mints deployed",
		}),
		LastDeployTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "deploy",
			Name:      "last_success_timestamp",
			Help:      "Unix timestamp of the last successful deployment",
		}),
	}
}

// WriteTextfile writes all default-registry metrics to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordRPCCall records RPC call latency and failures.
func RecordRPCCall(method string, seconds float64, err error) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
	if err != nil {
		DefaultMetrics.RPCErrors.WithLabelValues(method).Inc()
	}
}

// RecordTransaction records the outcome of a submitted transaction.
func RecordTransaction(operation string, confirmSeconds float64, err error) {
	status := "confirmed"
	if err != nil {
		status = "failed"
	} else {
		DefaultMetrics.ConfirmationLatency.WithLabelValues(operation).Observe(confirmSeconds)
	}
	DefaultMetrics.TransactionsSubmitted.WithLabelValues(operation, status).Inc()
}

// RecordDeployment records a successful deployment.
func RecordDeployment(unixSeconds float64) {
	DefaultMetrics.TokensDeployed.Inc()
	DefaultMetrics.LastDeployTimestamp.Set(unixSeconds)
}
