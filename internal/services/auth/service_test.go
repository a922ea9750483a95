package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"restaurant-storefront/internal/logger"
)

type stubUserStore struct {
	users map[string]string
}

func (s *stubUserStore) PasswordHash(ctx context.Context, username string) (string, error) {
	hash, ok := s.users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return hash, nil
}

func (s *stubUserStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	if _, ok := s.users[username]; ok {
		return nil
	}
	s.users[username] = passwordHash
	return nil
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	store := &stubUserStore{users: map[string]string{"admin": string(hash)}}
	service := NewService(store, logger.New("test"))

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "admin", "secret", nil},
		{"wrong password", "admin", "wrong", ErrInvalidCredentials},
		{"unknown user", "ghost", "secret", ErrInvalidCredentials},
		{"empty username", "", "secret", ErrInvalidCredentials},
		{"empty password", "admin", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Login(context.Background(), tt.username, tt.password, "req-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := &stubUserStore{users: map[string]string{}}
	service := NewService(store, logger.New("test"))

	if err := service.EnsureAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if err := service.Login(context.Background(), "admin", "secret", "req-1"); err != nil {
		t.Errorf("seeded admin cannot log in: %v", err)
	}

	// A second run must not replace the existing hash
	first := store.users["admin"]
	if err := service.EnsureAdmin(context.Background(), "admin", "different"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if store.users["admin"] != first {
		t.Error("EnsureAdmin overwrote an existing account")
	}
}
