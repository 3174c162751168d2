// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/bistro/pkg/models"
	"github.com/mmynk/bistro/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using a single SQLite key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// LoadBills reads and decodes the stored bill collection.
func (s *SQLiteStore) LoadBills(ctx context.Context) ([]*models.Bill, error) {
	data, err := s.get(ctx, storage.BillsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*models.Bill{}, nil
	}

	bills, err := storage.DecodeBills(data)
	if err != nil {
		slog.Warn("Stored bills could not be decoded, starting empty", "key", storage.BillsKey, "error", err)
		return []*models.Bill{}, nil
	}
	return bills, nil
}

// SaveBills encodes and replaces the stored bill collection.
func (s *SQLiteStore) SaveBills(ctx context.Context, bills []*models.Bill) error {
	data, err := storage.EncodeBills(bills)
	if err != nil {
		return err
	}
	return s.set(ctx, storage.BillsKey, data)
}

// LoadMenuItems reads and decodes the stored menu.
func (s *SQLiteStore) LoadMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	data, err := s.get(ctx, storage.MenuItemsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*models.MenuItem{}, nil
	}

	items, err := storage.DecodeMenuItems(data)
	if err != nil {
		slog.Warn("Stored menu could not be decoded, starting empty", "key", storage.MenuItemsKey, "error", err)
		return []*models.MenuItem{}, nil
	}
	return items, nil
}

// SaveMenuItems encodes and replaces the stored menu.
func (s *SQLiteStore) SaveMenuItems(ctx context.Context, items []*models.MenuItem) error {
	data, err := storage.EncodeMenuItems(items)
	if err != nil {
		return err
	}
	return s.set(ctx, storage.MenuItemsKey, data)
}

// get returns nil data when the key does not exist.
func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) set(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
