// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/config"
)

func TestNewRedisWithoutURL(t *testing.T) {
	t.Parallel()

	r, err := NewRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, r)

	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	assert.NoError(t, r.Close())
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(context.Background(), config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}
