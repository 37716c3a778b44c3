// Package metrics defines and registers all custom Prometheus metrics for
// the cinevault catalog API. It is the single source of truth for metric
// names, labels, and help strings. HTTP-level metrics come from the
// echoprometheus middleware; here live only the authorization-specific ones.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinevault"

// AuthzDecisionsTotal counts guard evaluations at the route edge.
// Labels:
//   - guard: the route guard name (e.g. "admin", "movie_write")
//   - result: "allow", "deny", "unauthenticated", "identity_missing", "error"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of guard evaluations, labelled by guard and outcome.",
	},
	[]string{"guard", "result"},
)

// RegistrationGateTotal counts pre-registration allow-list decisions.
// Label:
//   - result: "allowed" or "denied"
var RegistrationGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_gate_total",
		Help:      "Total number of registration allow-list gate decisions.",
	},
	[]string{"result"},
)
