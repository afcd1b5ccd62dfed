// Package redisstore is a db.KeyValueStore backed by Redis, for sharing one
// session between several machines
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jakechorley/shifttrack/pkg/db"
)

const keyPrefix = "shifttrack:"

// Store keeps values as plain Redis strings under a common prefix
type Store struct {
	client *redis.Client
	prefix string
}

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	// Namespace separates environments sharing one Redis instance
	Namespace string
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	prefix := keyPrefix
	if opts.Namespace != "" {
		prefix += opts.Namespace + ":"
	}
	return &Store{client: client, prefix: prefix}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client
func (s *Store) Close() error {
	return s.client.Close()
}
