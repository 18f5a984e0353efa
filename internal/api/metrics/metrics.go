// Package metrics defines and registers the custom Prometheus metrics of the
// characters API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "characters"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts every decision taken by the request gates.
// Labels:
//   - gate: "authenticate" or "authorize"
//   - outcome: "allowed", "missing_credential", "revoked", "invalid", "lookup_failed", "insufficient_role"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authentication and authorization gate decisions.",
	},
	[]string{"gate", "outcome"},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through public registration.
// Label:
//   - role: role assigned at creation
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// TokensRevokedTotal counts access tokens added to the revocation registry.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of access tokens revoked.",
	},
)
