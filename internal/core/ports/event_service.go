package ports

import (
	"context"

	"github.com/eventhub/event-server/internal/core/domain"
)

// EventInput is the service DTO for event creation.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
}

type EventService interface {
	// Create stores a new event owned by the organizer. Approval is decided
	// here, once: admins publish immediately, everyone else starts unapproved.
	Create(ctx context.Context, in EventInput, organizerID, organizerRole string) (*domain.Event, error)
	// List returns the events visible to the requester, in creation order.
	List(ctx context.Context, requesterID string) ([]domain.Event, error)
	// ListAll returns every event in creation order, for the admin surface.
	ListAll(ctx context.Context) ([]domain.Event, error)
}
