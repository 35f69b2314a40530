package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

const userKeyPrefix = "bookseller:user:"

type redisUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

type redisUserRepository struct {
	client redis.UniversalClient
}

// NewRedisUserRepository returns a credential store keeping one JSON record per user.
func NewRedisUserRepository(client redis.UniversalClient) CredentialStore {
	return &redisUserRepository{client: client}
}

func (r *redisUserRepository) Insert(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(redisUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	})
	if err != nil {
		return err
	}
	created, err := r.client.SetNX(ctx, userKeyPrefix+user.Username, payload, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return ErrUserExists
	}
	return nil
}

func (r *redisUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, userKeyPrefix+username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var stored redisUser
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	return &domain.User{
		Username:     stored.Username,
		PasswordHash: stored.PasswordHash,
		Role:         domain.Role(stored.Role),
	}, nil
}
