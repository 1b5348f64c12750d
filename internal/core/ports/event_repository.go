package ports

import (
	"context"

	"github.com/eventhub/event-server/internal/core/domain"
)

// EventRepository defines the interface for event persistence.
// List returns every stored event in creation order; visibility filtering is
// the service's concern.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}
