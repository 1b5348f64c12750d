package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/event-server/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.seq++
	copy.ID = "u" + strconv.Itoa(r.seq)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newUserSvc(repo *stubUserRepo) *UserService {
	return NewUserService(repo, nil, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)

	user, err := svc.Register(context.Background(), "alice@example.com", "pass123", domain.RoleOrganizer)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleOrganizer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestUserService_Register_DefaultsToAttendee(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	user, err := svc.Register(context.Background(), "bob@example.com", "pass", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAttendee {
		t.Fatalf("expected default role %s, got %s", domain.RoleAttendee, user.Role)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "no-at-sign", "pass", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "ok@example.com", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "ok@example.com", "pass", "WIZARD"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)

	first, err := svc.Register(context.Background(), "bob@example.com", "original", "")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "bob@example.com", "other", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// The first registration's data is unchanged.
	stored, err := repo.FindByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.PasswordHash != first.PasswordHash {
		t.Fatalf("first registration was mutated by the duplicate attempt")
	}
}

func TestUserService_Authenticate_Success(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Email != "carol@example.com" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "dave@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Authenticate(context.Background(), "dave@example.com", "badpass")
	_, unknownEmail := svc.Authenticate(context.Background(), "ghost@example.com", "anything")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("failure causes are distinguishable: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestUserService_Profile(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	created, err := svc.Register(context.Background(), "erin@example.com", "pass", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "erin@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
