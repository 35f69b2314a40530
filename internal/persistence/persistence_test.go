package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/bookseller-api/internal/config"
)

func TestNewRedis_DisabledWithoutAddr(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())

	assert.Nil(t, r)
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	assert.NotPanics(t, r.Close)
}

func TestPostgres_NilIsNotReady(t *testing.T) {
	var pg *Postgres

	assert.Error(t, pg.Ping(context.Background()))
	assert.Nil(t, pg.PoolHandle())
	assert.NotPanics(t, pg.Close)
}
