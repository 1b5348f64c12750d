package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/event-server/internal/core/domain"
)

type stubBroadcaster struct {
	mu     sync.Mutex
	events []string // "<id>:<action>"
	rsvps  []string
	done   chan struct{}
}

func newStubBroadcaster() *stubBroadcaster {
	return &stubBroadcaster{done: make(chan struct{}, 16)}
}

func (b *stubBroadcaster) BroadcastEventUpdate(event *domain.Event, action string) {
	b.mu.Lock()
	b.events = append(b.events, event.ID+":"+action)
	b.mu.Unlock()
	b.done <- struct{}{}
}

func (b *stubBroadcaster) BroadcastRSVPUpdate(rsvp *domain.RSVP, action string) {
	b.mu.Lock()
	b.rsvps = append(b.rsvps, rsvp.ID+":"+action)
	b.mu.Unlock()
	b.done <- struct{}{}
}

func (b *stubBroadcaster) eventCalls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	copy(out, b.events)
	return out
}

type stubDeduper struct {
	mu     sync.Mutex
	seen   map[string]bool
	err    error
	marked []string
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) IsDuplicate(_ context.Context, id, action string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	return d.seen[id+":"+action], nil
}

func (d *stubDeduper) Mark(_ context.Context, id, action string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[id+":"+action] = true
	d.marked = append(d.marked, id+":"+action)
	return nil
}

func awaitBroadcast(t *testing.T, b *stubBroadcaster) {
	t.Helper()
	select {
	case <-b.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("broadcast never happened")
	}
}

func TestDispatcher_BroadcastsEventNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newStubBroadcaster()
	d := NewDispatcher(2, b, newStubDeduper(), zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{Event: &domain.Event{ID: "e1"}, Action: ActionCreated})
	awaitBroadcast(t, b)

	calls := b.eventCalls()
	if len(calls) != 1 || calls[0] != "e1:CREATED" {
		t.Fatalf("unexpected broadcasts: %v", calls)
	}
}

func TestDispatcher_SkipsDuplicates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newStubBroadcaster()
	dedup := newStubDeduper()
	d := NewDispatcher(1, b, dedup, zerolog.Nop())
	d.Start(ctx)

	n := Notification{Event: &domain.Event{ID: "e1"}, Action: ActionCreated}
	d.Enqueue(n)
	awaitBroadcast(t, b)

	// Same notification again: the dedup mark set by the first pass wins.
	d.Enqueue(n)
	d.Enqueue(Notification{Event: &domain.Event{ID: "e2"}, Action: ActionCreated})
	awaitBroadcast(t, b)

	calls := b.eventCalls()
	if len(calls) != 2 || calls[1] != "e2:CREATED" {
		t.Fatalf("duplicate was rebroadcast: %v", calls)
	}
}

func TestDispatcher_DedupErrorStillBroadcasts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newStubBroadcaster()
	dedup := newStubDeduper()
	dedup.err = errors.New("redis down")
	d := NewDispatcher(1, b, dedup, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{Event: &domain.Event{ID: "e1"}, Action: ActionCreated})
	awaitBroadcast(t, b)

	if calls := b.eventCalls(); len(calls) != 1 {
		t.Fatalf("dedup failure suppressed the broadcast: %v", calls)
	}
}

func TestDispatcher_RSVPNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newStubBroadcaster()
	d := NewDispatcher(1, b, newStubDeduper(), zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{RSVP: &domain.RSVP{ID: "r1", EventID: "e1"}, Action: ActionCreated})
	awaitBroadcast(t, b)

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.rsvps) != 1 || b.rsvps[0] != "r1:CREATED" {
		t.Fatalf("unexpected rsvp broadcasts: %v", b.rsvps)
	}
}
