package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// RevocationStore remembers logged-out session token ids until the tokens
// would have expired anyway.
type RevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore returns a store backed by rdb. A nil client gives a
// store that revokes nothing.
func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

// Enabled reports whether revocations are persisted.
func (s *RevocationStore) Enabled() bool {
	return s != nil && s.rdb != nil
}

// Revoke blacklists jti until expiresAt.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !s.Enabled() || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti has been blacklisted.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
