package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"restaurant-storefront/internal/logger"
)

// ErrInvalidCredentials indicates a failed login attempt. Unknown usernames
// and wrong passwords both map here so responses don't leak which it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the persistence surface the auth service needs
type UserStore interface {
	PasswordHash(ctx context.Context, username string) (string, error)
	CreateUser(ctx context.Context, username, passwordHash string) error
}

// Service verifies admin logins against bcrypt password hashes
type Service struct {
	store  UserStore
	logger *logger.Logger
}

// NewService creates an auth service
func NewService(store UserStore, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// Login checks the username and password against the stored hash
func (s *Service) Login(ctx context.Context, username, password string, requestID string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	hash, err := s.store.PasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("login_failed", "Unknown username", requestID, map[string]interface{}{
				"username": username,
			})
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.logger.Warn("login_failed", "Password mismatch", requestID, map[string]interface{}{
			"username": username,
		})
		return ErrInvalidCredentials
	}

	s.logger.Info("login_succeeded", "Admin logged in", requestID, map[string]interface{}{
		"username": username,
	})
	return nil
}

// EnsureAdmin seeds the configured admin account on startup. Existing
// accounts are left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		return err
	}
	s.logger.Debug("admin_seeded", "Admin account ensured", "", map[string]interface{}{
		"username": username,
	})
	return nil
}
