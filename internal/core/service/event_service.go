package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/event-server/internal/core/domain"
	"github.com/eventhub/event-server/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

// Create validates and stores a new event. Approval is decided here exactly
// once: admin submissions are published immediately, everything else waits
// unapproved. There is no recomputation after creation.
func (s *eventService) Create(ctx context.Context, in ports.EventInput, organizerID, organizerRole string) (*domain.Event, error) {
	if in.Title == "" || in.Date == "" {
		return nil, domain.ErrInvalidInput
	}
	if organizerID == "" {
		return nil, domain.ErrUnauthorized
	}

	event := &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		OrganizerID: organizerID,
		Approved:    organizerRole == domain.RoleAdmin,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().
		Str("event_id", created.ID).
		Str("organizer_id", organizerID).
		Bool("approved", created.Approved).
		Msg("event created")

	return created, nil
}

// List returns the events the requester may see, in creation order: approved
// events plus the requester's own unapproved submissions.
func (s *eventService) List(ctx context.Context, requesterID string) ([]domain.Event, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	visible := make([]domain.Event, 0, len(all))
	for _, e := range all {
		if e.VisibleTo(requesterID) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// ListAll returns every event unfiltered. Callers gate this behind the admin
// role.
func (s *eventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return all, nil
}
