package token

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in redis; expiry is enforced by the key TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Issue(ctx context.Context, c Claims) (string, error) {
	tok := uuid.NewString()
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+tok, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return tok, nil
}

func (s *RedisStore) Validate(ctx context.Context, tok string) (*Claims, error) {
	b, err := s.rdb.Get(ctx, keyPrefix+tok).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	var c Claims
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

func (s *RedisStore) Revoke(ctx context.Context, tok string) error {
	return s.rdb.Del(ctx, keyPrefix+tok).Err()
}

var _ Store = (*RedisStore)(nil)
