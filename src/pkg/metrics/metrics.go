package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "customer_service"

var (
	// Registry holds the service collectors; /metrics serves only this registry.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	httpRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	registrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customer_registrations_total",
			Help:      "Completed customer registrations by source prefix.",
		},
		[]string{"source"},
	)

	ledgerOperations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "ledger_operations_total",
			Help:      "Wallet credits and debits by kind and outcome.",
		},
		[]string{"operation", "kind", "status"},
	)

	referralCreditFailures = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "referral_credit_failures_total",
			Help:      "Referrer credits that failed after the referred customer was registered.",
		},
	)

	tokenValidations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_validations_total",
			Help:      "Session token validations by result kind.",
		},
		[]string{"result"},
	)

	loginFailures = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Rejected serial/PIN logins.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, route string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

func RecordRegistration(sourcePrefix string) {
	if sourcePrefix == "" {
		sourcePrefix = "unknown"
	}
	registrations.WithLabelValues(sourcePrefix).Inc()
}

// RecordLedger counts a credit or debit; status is "ok" or the error kind.
func RecordLedger(operation, kind, status string) {
	ledgerOperations.WithLabelValues(operation, kind, status).Inc()
}

func RecordReferralCreditFailure() {
	referralCreditFailures.Inc()
}

func RecordTokenValidation(result string) {
	tokenValidations.WithLabelValues(result).Inc()
}

func RecordLoginFailure() {
	loginFailures.Inc()
}
