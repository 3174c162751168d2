// Package catalog manages the restaurant menu: item CRUD, search, and the
// lookups the ledger uses to price new bill lines.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/internal/apperror"
	"github.com/mmynk/bistro/pkg/models"
)

// MenuStore is the persistence collaborator for the menu.
type MenuStore interface {
	LoadMenuItems(ctx context.Context) ([]*models.MenuItem, error)
	SaveMenuItems(ctx context.Context, items []*models.MenuItem) error
}

// MenuItemInput holds the operator-editable fields of a new item.
// A nil IsAvailable means available.
type MenuItemInput struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	IsAvailable *bool
}

// FailureRecorder counts failed saves.
type FailureRecorder interface {
	PersistenceFailed(collection string)
}

type nopRecorder struct{}

func (nopRecorder) PersistenceFailed(string) {}

// Catalog is the in-memory menu, written through to a MenuStore on every change.
type Catalog struct {
	mu       sync.RWMutex
	store    MenuStore
	logger   *slog.Logger
	recorder FailureRecorder
	items    []*models.MenuItem
	saveErr  error
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// WithRecorder sets the recorder for failed saves.
func WithRecorder(r FailureRecorder) Option {
	return func(c *Catalog) { c.recorder = r }
}

// New loads the stored menu. A store that cannot be read is logged and the
// catalog starts empty.
func New(ctx context.Context, store MenuStore, opts ...Option) *Catalog {
	c := &Catalog{store: store, logger: slog.Default(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(c)
	}

	items, err := store.LoadMenuItems(ctx)
	if err != nil {
		c.logger.Warn("Failed to load menu, starting empty", "error", err)
		items = nil
	}
	c.items = items
	c.logger.Info("Menu loaded", "items", len(c.items))
	return c
}

// Add validates input and appends a new item.
func (c *Catalog) Add(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if err := asError(validateItem(in.Name, in.Category, in.Price)); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	name := strings.TrimSpace(in.Name)
	item := &models.MenuItem{
		ID:          uuid.New().String(),
		Name:        name,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		IsAvailable: available,
		ImageURL:    placeholderImage(name),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	c.persist(ctx)

	c.logger.Info("Menu item added", "menu_item_id", item.ID, "name", item.Name)
	clone := *item
	return &clone, nil
}

// Update replaces the editable fields of an existing item. An empty ImageURL
// keeps the current picture.
func (c *Catalog) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if err := asError(validateItem(item.Name, item.Category, item.Price)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(item.ID)
	if i < 0 {
		return nil, apperror.NotFound("menu item %s", item.ID)
	}

	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Description = strings.TrimSpace(item.Description)
	if item.ImageURL == "" {
		item.ImageURL = c.items[i].ImageURL
	}
	c.items[i] = &item
	c.persist(ctx)

	clone := item
	return &clone, nil
}

// Delete removes an item. Bills that already reference it keep their snapshot.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return apperror.NotFound("menu item %s", id)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.persist(ctx)

	c.logger.Info("Menu item deleted", "menu_item_id", id)
	return nil
}

// Get returns a copy of one item.
func (c *Catalog) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, apperror.NotFound("menu item %s", id)
	}
	clone := *c.items[i]
	return &clone, nil
}

// Resolve implements ledger.Catalog.
func (c *Catalog) Resolve(ctx context.Context, id string) (models.MenuItem, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
	}
	return *item, nil
}

// List returns all items in insertion order.
func (c *Catalog) List(ctx context.Context) []*models.MenuItem {
	return c.Search(ctx, "", "")
}

// Available returns the items that can be added to bills.
func (c *Catalog) Available(ctx context.Context) []*models.MenuItem {
	var out []*models.MenuItem
	for _, item := range c.List(ctx) {
		if item.IsAvailable {
			out = append(out, item)
		}
	}
	return out
}

// Search matches term case-insensitively against name and description and
// filters by exact category. Empty arguments match everything.
func (c *Catalog) Search(ctx context.Context, term, category string) []*models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*models.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if category != "" && item.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Name), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories(ctx context.Context) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out
}

// PersistenceWarning returns the last save error, or nil after a successful save.
func (c *Catalog) PersistenceWarning() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveErr
}

func (c *Catalog) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the menu through to the store. Callers hold c.mu.
func (c *Catalog) persist(ctx context.Context) {
	if err := c.store.SaveMenuItems(ctx, c.items); err != nil {
		c.logger.Warn("Failed to persist menu; changes exist only in memory", "error", err)
		c.saveErr = err
		c.recorder.PersistenceFailed("menu")
		return
	}
	c.saveErr = nil
}

func placeholderImage(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/300", strings.Join(strings.Fields(name), ""))
}
