// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/bistro/pkg/models"
)

// Keys under which collections are stored by key/value backends.
const (
	BillsKey     = "restaurantAppBills"
	MenuItemsKey = "restaurantAppMenuItems"
)

// Store defines the persistence operations used by the ledger and the menu catalog.
// Collections are written whole: every save replaces the previously stored collection.
// This abstraction allows swapping storage backends (SQLite, Redis, etc.)
// without changing the service layer.
type Store interface {
	// LoadBills returns the stored bill collection in its stored order.
	// It returns an empty collection when nothing is stored or the stored
	// data cannot be decoded; an error is returned only when the backend
	// itself cannot be read.
	LoadBills(ctx context.Context) ([]*models.Bill, error)

	// SaveBills replaces the stored bill collection.
	SaveBills(ctx context.Context, bills []*models.Bill) error

	// LoadMenuItems returns the stored menu with the same semantics as LoadBills.
	LoadMenuItems(ctx context.Context) ([]*models.MenuItem, error)

	// SaveMenuItems replaces the stored menu.
	SaveMenuItems(ctx context.Context, items []*models.MenuItem) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
