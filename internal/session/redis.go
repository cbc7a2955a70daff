package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stockroom/apiserver/config"
)

const redisKeyPrefix = "session:"

// RedisManager stores sessions in Redis so multiple server processes can
// share one session table. Expiry rides on the key TTL.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisManager(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisManager{client: client, ttl: ttl}, nil
}

func (m *RedisManager) Create(ctx context.Context, userID int) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, redisKeyPrefix+token, userID, m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (m *RedisManager) Resolve(ctx context.Context, token string) (int, error) {
	value, err := m.client.Get(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrNotFound
	}
	return userID, nil
}

func (m *RedisManager) Destroy(ctx context.Context, token string) error {
	return m.client.Del(ctx, redisKeyPrefix+token).Err()
}

func (m *RedisManager) Close() error {
	return m.client.Close()
}
