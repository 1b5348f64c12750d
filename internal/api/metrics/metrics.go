// Package metrics defines and registers all custom Prometheus metrics for the
// event server. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "events"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful signups.
// Label:
//   - role: the role the account was created with (e.g. "ATTENDEE")
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - stage: "login" (bad credentials) or "token" (missing/invalid bearer token)
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by stage.",
	},
	[]string{"stage"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsCreatedTotal counts created events.
// Label:
//   - approved: "true" when the creator was an admin, "false" otherwise
var EventsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created, by approval outcome.",
	},
	[]string{"approved"},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// WSConnections tracks the number of currently registered live connections.
var WSConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Current number of live websocket connections.",
	},
)

// BroadcastMessagesTotal counts fan-out messages by frame type.
// Label:
//   - type: "EVENT_CREATED", "EVENT_UPDATE", or "RSVP_UPDATE"
var BroadcastMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_messages_total",
		Help:      "Total number of messages broadcast to realtime clients, by type.",
	},
	[]string{"type"},
)

// BroadcastFailuresTotal counts per-connection delivery failures. Each failure
// also prunes the affected connection from the registry.
var BroadcastFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_failures_total",
		Help:      "Total number of failed per-connection deliveries (connection pruned).",
	},
)
