package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-storefront/internal/database"
)

// ErrUserNotFound indicates no account exists for the username
var ErrUserNotFound = errors.New("user not found")

// Store persists admin accounts
type Store struct {
	db *database.DB
}

// NewStore creates an auth store
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// PasswordHash returns the stored bcrypt hash for the username
func (s *Store) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.db.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	return hash, nil
}

// CreateUser inserts an account if the username is free
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	err := s.db.Exec(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		username, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
