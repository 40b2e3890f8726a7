// Package metrics registers the checkout Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "policy_checkout"

var (
	CheckoutOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_outcomes_total",
		Help:      "Checkout attempts by final result.",
	}, []string{"result"})

	FraudDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fraud_decisions_total",
		Help:      "Fraud screening decisions by action.",
	}, []string{"action"})

	GatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_calls_total",
		Help:      "Payment gateway create calls by provider and result.",
	}, []string{"provider", "result"})

	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Payment gateway create call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})

	QuotesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_expired_total",
		Help:      "Quotes moved to expired by the watchdog or on read.",
	})

	IssuanceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issuance_failures_total",
		Help:      "Paid policies whose issuance hand-off failed.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
