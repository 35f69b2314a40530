package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

var (
	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when inserting a username that is already taken.
	ErrUserExists = errors.New("username already exists")
)

// CredentialStore persists registered users keyed by username.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed credential store.
func NewUserRepository(pool *pgxpool.Pool) CredentialStore {
	return &userRepository{pool: pool}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, role)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO NOTHING`

	cmd, err := conn(ctx, r.pool).Exec(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserExists
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT username, password_hash, role
        FROM users WHERE username=$1`

	var user domain.User
	if err := conn(ctx, r.pool).QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
