package ports

import (
	"context"

	"github.com/eventhub/event-server/internal/core/domain"
)

// UserRepository defines the interface for account persistence. Create must
// enforce email uniqueness and return domain.ErrUserExists on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
