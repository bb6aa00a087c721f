package watttime

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
)

const (
	defaultTokenTTL = 30 * time.Minute
	tokenTTLMargin  = time.Minute
)

// TokenStore はログインで得たトークンを保持します。
// Get はトークンが無い場合に空文字列と nil を返します。
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// RedisTokenStore keeps the WattTime token under a single redis key.
type RedisTokenStore struct {
	rdb *redis.Client
	key string
}

func NewRedisTokenStore(rdb *redis.Client, username string) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, key: "watttime:token:" + username}
}

func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *RedisTokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key, token, ttl).Err()
}

func (s *RedisTokenStore) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

// tokenTTL はトークンの exp クレームからキャッシュ期間を決めます。
// 署名は検証しない（発行元は WattTime）。
func tokenTTL(token string, now time.Time) time.Duration {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil || claims.ExpiresAt == 0 {
		return defaultTokenTTL
	}
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(now) - tokenTTLMargin
	if ttl <= 0 {
		return 0
	}
	return ttl
}
