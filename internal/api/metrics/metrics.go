// Package metrics defines the custom Prometheus metrics for the library
// API. It is the single source of truth for metric names, labels, and help
// strings; request-level latency/throughput metrics come from the
// echoprometheus middleware registered in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "failure", "disabled", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful account registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// AuthRejectionsTotal counts requests the access guard turned away. The
// reason label is internal only; clients always see an undifferentiated 401.
// Labels:
//   - reason: "missing_header", "bad_token", "unknown_principal", "inactive_principal"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the access guard, by reason.",
	},
	[]string{"reason"},
)

// LoansCreatedTotal counts book checkouts.
var LoansCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_created_total",
		Help:      "Total number of loans created.",
	},
)
