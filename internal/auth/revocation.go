// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "blacklist:"

// RevocationStore remembers revoked token ids until the token would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewRevocationStore shares revocations through Redis when a client is
// configured and keeps them in process otherwise.
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	if rdb == nil {
		return &memoryRevocations{
			entries: cache.New(cache.NoExpiration, 10*time.Minute),
		}
	}
	return &redisRevocations{client: rdb}
}

type redisRevocations struct {
	client *redis.Client
}

func (r *redisRevocations) Revoke(
	ctx context.Context,
	jti string,
	until time.Time,
) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (r *redisRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists > 0, nil
}

type memoryRevocations struct {
	entries *cache.Cache
}

func (m *memoryRevocations) Revoke(
	_ context.Context,
	jti string,
	until time.Time,
) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	m.entries.Set(jti, struct{}{}, ttl)
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := m.entries.Get(jti)
	return found, nil
}
