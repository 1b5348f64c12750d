package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/eventhub/event-server/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActionCreated tags a notification announcing a freshly created aggregate.
const ActionCreated = "CREATED"

// Notification is one realtime announcement waiting for fan-out.
type Notification struct {
	Event  *domain.Event
	RSVP   *domain.RSVP
	Action string
}

// key identifies the aggregate the notification concerns; used for sharding
// and deduplication.
func (n Notification) key() string {
	if n.Event != nil {
		return n.Event.ID
	}
	if n.RSVP != nil {
		return n.RSVP.ID
	}
	return ""
}

// Deduper abstracts the at-most-once store (Redis). A hit means this exact
// notification already went out and must not be re-broadcast.
type Deduper interface {
	IsDuplicate(ctx context.Context, id, action string) (bool, error)
	Mark(ctx context.Context, id, action string) error
}

// Broadcaster is the realtime fan-out the dispatcher drives.
type Broadcaster interface {
	BroadcastEventUpdate(event *domain.Event, action string)
	BroadcastRSVPUpdate(rsvp *domain.RSVP, action string)
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the aggregate id, keeping per-aggregate ordering while taking
// fan-out off the HTTP request path.
type Dispatcher struct {
	workers     []chan Notification
	broadcaster Broadcaster
	dedup       Deduper
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, broadcaster Broadcaster, dedup Deduper, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:     make([]chan Notification, numWorkers),
		broadcaster: broadcaster,
		dedup:       dedup,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its aggregate.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n Notification) {
	d.workers[d.shardIndex(n.key())] <- n
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, n)
		}
	}
}

// process fans one notification out, at most once per aggregate+action.
// Dedup store errors are logged and the notification goes out anyway: a
// duplicate frame beats a silently dropped one.
func (d *Dispatcher) process(ctx context.Context, workerID int, n Notification) {
	key := n.key()
	if key == "" {
		return
	}

	if d.dedup != nil {
		isDup, err := d.dedup.IsDuplicate(ctx, key, n.Action)
		if err != nil {
			d.log.Warn().Err(err).Str("id", key).Msg("dedup check failed, broadcasting anyway")
		} else if isDup {
			d.log.Debug().Str("id", key).Str("action", n.Action).Msg("duplicate notification skipped")
			return
		}
		if markErr := d.dedup.Mark(ctx, key, n.Action); markErr != nil {
			d.log.Warn().Err(markErr).Str("id", key).Msg("failed to set dedup key")
		}
	}

	switch {
	case n.Event != nil:
		d.broadcaster.BroadcastEventUpdate(n.Event, n.Action)
	case n.RSVP != nil:
		d.broadcaster.BroadcastRSVPUpdate(n.RSVP, n.Action)
	}

	d.log.Debug().
		Str("id", key).
		Str("action", n.Action).
		Int("worker_id", workerID).
		Msg("notification dispatched")
}
