package query

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore compartilha o cache de leitura entre réplicas do console
type RedisStore struct {
	R      *redis.Client
	Prefix string // ex: "backoffice:q:"
}

func NewRedisStore(r *redis.Client, prefix string) *RedisStore {
	return &RedisStore{R: r, Prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.R.Get(ctx, s.Prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.R.Set(ctx, s.Prefix+key, val, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.R.Del(ctx, s.Prefix+key).Err()
}

// DeletePrefix apaga a chave exata e tudo abaixo dela (SCAN, sem KEYS)
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	keys := []string{s.Prefix + prefix}
	iter := s.R.Scan(ctx, 0, s.Prefix+prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.R.Del(ctx, keys...).Err()
}
