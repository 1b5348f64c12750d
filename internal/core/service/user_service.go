package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/event-server/internal/core/domain"
	"github.com/eventhub/event-server/internal/core/ports"
)

// UserService implements registration and credential verification.
type UserService struct {
	repo   ports.UserRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, mailer ports.Mailer, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, mailer: mailer, log: log}
}

// Register creates a new account. The role defaults to attendee when empty.
func (s *UserService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if !strings.Contains(email, "@") || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleAttendee
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Welcome mail is a side channel: it runs off the request path and a
	// failure never fails the signup.
	if s.mailer != nil {
		go s.sendWelcome(created.Email)
	}

	return created, nil
}

func (s *UserService) sendWelcome(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	name, _, _ := strings.Cut(email, "@")
	if err := s.mailer.SendWelcome(ctx, email, name); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to send welcome email")
	}
}

// Authenticate verifies credentials. An unknown email and a wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Profile resolves the account behind a verified token.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, userID)
}
