package realtime

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/event-server/internal/api/metrics"
	"github.com/eventhub/event-server/internal/core/domain"
)

// Message types pushed over the realtime channel.
const (
	TypeWelcome      = "WELCOME"
	TypeEventCreated = "EVENT_CREATED"
	TypeEventUpdate  = "EVENT_UPDATE"
	TypeRSVPUpdate   = "RSVP_UPDATE"
)

// ActionCreated is the action tag for freshly created events.
const ActionCreated = "CREATED"

type welcomeEnvelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type eventEnvelope struct {
	Type      string        `json:"type"`
	Action    string        `json:"action,omitempty"`
	Event     *domain.Event `json:"event"`
	Timestamp string        `json:"timestamp"`
}

type rsvpEnvelope struct {
	Type      string       `json:"type"`
	Action    string       `json:"action"`
	RSVP      *domain.RSVP `json:"rsvp"`
	Timestamp string       `json:"timestamp"`
}

// Broadcaster fans messages out to the registry's live connections. Delivery
// is best-effort: a connection that fails a write is pruned and closed, and
// the broadcast continues for the rest. No method returns an error.
type Broadcaster struct {
	registry *Registry
	log      zerolog.Logger
}

func NewBroadcaster(registry *Registry, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{registry: registry, log: log}
}

// Broadcast serializes the payload once and delivers it to every registered
// connection.
func (b *Broadcaster) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.log.Error().Err(err).Msg("broadcast: marshal payload")
		return
	}
	for _, m := range b.registry.Snapshot() {
		b.deliver(m, data)
	}
}

// BroadcastToUser delivers only to connections bound to the given user.
// Unbound connections never receive user-targeted messages.
func (b *Broadcaster) BroadcastToUser(userID string, payload any) {
	if userID == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		b.log.Error().Err(err).Msg("broadcast: marshal payload")
		return
	}
	for _, m := range b.registry.Snapshot() {
		if m.UserID == userID {
			b.deliver(m, data)
		}
	}
}

// BroadcastEventUpdate announces an event state change to all connections.
// Creation gets its own frame type; every other action is a generic update.
func (b *Broadcaster) BroadcastEventUpdate(event *domain.Event, action string) {
	typ := TypeEventUpdate
	if action == ActionCreated {
		typ = TypeEventCreated
	}
	metrics.BroadcastMessagesTotal.WithLabelValues(typ).Inc()
	b.Broadcast(eventEnvelope{
		Type:      typ,
		Action:    action,
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// BroadcastRSVPUpdate announces an RSVP change to all connections.
func (b *Broadcaster) BroadcastRSVPUpdate(rsvp *domain.RSVP, action string) {
	metrics.BroadcastMessagesTotal.WithLabelValues(TypeRSVPUpdate).Inc()
	b.Broadcast(rsvpEnvelope{
		Type:      TypeRSVPUpdate,
		Action:    action,
		RSVP:      rsvp,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// deliver writes to one connection, pruning it on failure.
func (b *Broadcaster) deliver(m Member, data []byte) {
	if err := m.Conn.Send(data); err != nil {
		b.log.Debug().Err(err).Str("connection_id", m.Conn.ID()).Msg("pruning dead connection")
		b.registry.Remove(m.Conn.ID())
		_ = m.Conn.Close()
		metrics.BroadcastFailuresTotal.Inc()
		metrics.WSConnections.Set(float64(b.registry.Len()))
	}
}
