package ports

import (
	"context"

	"github.com/eventhub/event-server/internal/core/domain"
)

type UserService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
