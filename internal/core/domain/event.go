package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// Event is the core aggregate. Approved is decided exactly once at creation:
// true iff the creating user is an admin. A viewer sees an event iff it is
// approved or the viewer is its organizer.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	OrganizerID string    `json:"organizer_id"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisibleTo applies the approval-visibility rule for a requesting user.
func (e *Event) VisibleTo(userID string) bool {
	return e.Approved || e.OrganizerID == userID
}

// RSVP is a stub aggregate: the realtime layer can announce RSVP changes, but
// no server-side RSVP endpoints exist yet.
type RSVP struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}
