// Package redisstore provides a Redis-backed implementation of the storage.Store interface.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/bistro/pkg/models"
	"github.com/mmynk/bistro/internal/storage"
)

var _ storage.Store = (*RedisStore)(nil)

// RedisStore keeps each collection as a single string value under a namespaced key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New connects to Redis from a redis:// URL or a host:port address.
// prefix namespaces the keys so several installations can share one server.
func New(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// LoadBills reads and decodes the stored bill collection.
func (s *RedisStore) LoadBills(ctx context.Context) ([]*models.Bill, error) {
	data, err := s.get(ctx, storage.BillsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*models.Bill{}, nil
	}

	bills, err := storage.DecodeBills(data)
	if err != nil {
		slog.Warn("Stored bills could not be decoded, starting empty", "key", s.key(storage.BillsKey), "error", err)
		return []*models.Bill{}, nil
	}
	return bills, nil
}

// SaveBills encodes and replaces the stored bill collection.
func (s *RedisStore) SaveBills(ctx context.Context, bills []*models.Bill) error {
	data, err := storage.EncodeBills(bills)
	if err != nil {
		return err
	}
	return s.set(ctx, storage.BillsKey, data)
}

// LoadMenuItems reads and decodes the stored menu.
func (s *RedisStore) LoadMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	data, err := s.get(ctx, storage.MenuItemsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*models.MenuItem{}, nil
	}

	items, err := storage.DecodeMenuItems(data)
	if err != nil {
		slog.Warn("Stored menu could not be decoded, starting empty", "key", s.key(storage.MenuItemsKey), "error", err)
		return []*models.MenuItem{}, nil
	}
	return items, nil
}

// SaveMenuItems encodes and replaces the stored menu.
func (s *RedisStore) SaveMenuItems(ctx context.Context, items []*models.MenuItem) error {
	data, err := storage.EncodeMenuItems(items)
	if err != nil {
		return err
	}
	return s.set(ctx, storage.MenuItemsKey, data)
}

func (s *RedisStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

func (s *RedisStore) get(ctx context.Context, name string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key(name), err)
	}
	return raw, nil
}

func (s *RedisStore) set(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key(name), err)
	}
	return nil
}
