package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/internal/apperror"
	"github.com/mmynk/bistro/pkg/models"
)

type memStore struct {
	items   []*models.MenuItem
	saves   int
	saveErr error
}

func (s *memStore) LoadMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	out := make([]*models.MenuItem, len(s.items))
	for i, item := range s.items {
		clone := *item
		out[i] = &clone
	}
	return out, nil
}

func (s *memStore) SaveMenuItems(ctx context.Context, items []*models.MenuItem) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items = make([]*models.MenuItem, len(items))
	for i, item := range items {
		clone := *item
		s.items[i] = &clone
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func boolPtr(b bool) *bool { return &b }

func newTestCatalog(t *testing.T) (*Catalog, *memStore) {
	t.Helper()
	store := &memStore{}
	return New(context.Background(), store), store
}

func TestAdd(t *testing.T) {
	c, store := newTestCatalog(t)
	ctx := context.Background()

	item, err := c.Add(ctx, MenuItemInput{Name: " Paneer Tikka ", Price: dec("120.00"), Category: "Starters"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.ID == "" {
		t.Error("Expected generated id")
	}
	if item.Name != "Paneer Tikka" {
		t.Errorf("Name = %q, want trimmed", item.Name)
	}
	if !item.IsAvailable {
		t.Error("Expected item to default to available")
	}
	if item.ImageURL != "https://picsum.photos/seed/PaneerTikka/400/300" {
		t.Errorf("ImageURL = %q", item.ImageURL)
	}
	if store.saves != 1 || len(store.items) != 1 {
		t.Errorf("Expected one write-through save, got saves=%d items=%d", store.saves, len(store.items))
	}

	hidden, err := c.Add(ctx, MenuItemInput{Name: "Kulfi", Price: dec("60"), Category: "Desserts", IsAvailable: boolPtr(false)})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if hidden.IsAvailable {
		t.Error("Expected explicit unavailable flag to be kept")
	}
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input MenuItemInput
	}{
		{"missing name", MenuItemInput{Name: "  ", Price: dec("10"), Category: "Mains"}},
		{"missing category", MenuItemInput{Name: "Dal", Price: dec("10")}},
		{"negative price", MenuItemInput{Name: "Dal", Price: dec("-1"), Category: "Mains"}},
		{"too many decimals", MenuItemInput{Name: "Dal", Price: dec("10.005"), Category: "Mains"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestCatalog(t)
			_, err := c.Add(context.Background(), tt.input)
			if !errors.Is(err, apperror.ErrInvalidInput) {
				t.Errorf("Add() error = %v, want InvalidInput", err)
			}
			if store.saves != 0 {
				t.Errorf("Invalid input must not be persisted")
			}
		})
	}

	t.Run("trailing zeros are fine", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		if _, err := c.Add(context.Background(), MenuItemInput{Name: "Dal", Price: dec("10.500"), Category: "Mains"}); err != nil {
			t.Errorf("Add() error = %v", err)
		}
	})
}

func TestUpdateAndDelete(t *testing.T) {
	c, store := newTestCatalog(t)
	ctx := context.Background()

	item, err := c.Add(ctx, MenuItemInput{Name: "Dal", Price: dec("80"), Category: "Mains"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	edited := *item
	edited.Price = dec("90")
	edited.ImageURL = ""
	updated, err := c.Update(ctx, edited)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Price.Equal(dec("90")) {
		t.Errorf("Price = %s, want 90", updated.Price)
	}
	if updated.ImageURL != item.ImageURL {
		t.Errorf("Empty ImageURL should keep the existing picture, got %q", updated.ImageURL)
	}

	edited.Name = ""
	if _, err := c.Update(ctx, edited); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("Update() with empty name error = %v, want InvalidInput", err)
	}

	if _, err := c.Update(ctx, models.MenuItem{ID: "missing", Name: "x", Category: "y"}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() of missing item error = %v, want NotFound", err)
	}

	if err := c.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.items) != 0 {
		t.Errorf("Expected delete to be persisted, store has %d items", len(store.items))
	}
	if err := c.Delete(ctx, item.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Second Delete() error = %v, want NotFound", err)
	}
	if _, err := c.Resolve(ctx, item.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Resolve() after delete error = %v, want NotFound", err)
	}
}

func TestQueries(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	for _, in := range []MenuItemInput{
		{Name: "Masala Dosa", Price: dec("95"), Category: "Mains", Description: "Crisp rice crepe"},
		{Name: "Mango Lassi", Price: dec("60"), Category: "Drinks", Description: "Sweet yogurt drink"},
		{Name: "Filter Coffee", Price: dec("30"), Category: "Drinks", IsAvailable: boolPtr(false)},
	} {
		if _, err := c.Add(ctx, in); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"everything", "", "", []string{"Masala Dosa", "Mango Lassi", "Filter Coffee"}},
		{"by name, case insensitive", "DOSA", "", []string{"Masala Dosa"}},
		{"by description", "yogurt", "", []string{"Mango Lassi"}},
		{"by category", "", "Drinks", []string{"Mango Lassi", "Filter Coffee"}},
		{"term and category", "masala", "Drinks", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(ctx, tt.term, tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("Search() returned %d items, want %d", len(got), len(tt.want))
			}
			for i, item := range got {
				if item.Name != tt.want[i] {
					t.Errorf("Search()[%d] = %q, want %q", i, item.Name, tt.want[i])
				}
			}
		})
	}

	if got := c.Categories(ctx); len(got) != 2 || got[0] != "Drinks" || got[1] != "Mains" {
		t.Errorf("Categories() = %v, want [Drinks Mains]", got)
	}
	if got := c.Available(ctx); len(got) != 2 {
		t.Errorf("Available() returned %d items, want 2", len(got))
	}

	listed := c.List(ctx)
	listed[0].Name = "mutated"
	if c.List(ctx)[0].Name != "Masala Dosa" {
		t.Error("List() must return copies")
	}
}

func TestPersistenceWarning(t *testing.T) {
	c, store := newTestCatalog(t)
	ctx := context.Background()

	store.saveErr = errors.New("disk full")
	if _, err := c.Add(ctx, MenuItemInput{Name: "Dal", Price: dec("80"), Category: "Mains"}); err != nil {
		t.Fatalf("Add should succeed in memory: %v", err)
	}
	if c.PersistenceWarning() == nil {
		t.Error("Expected persistence warning")
	}

	store.saveErr = nil
	if _, err := c.Add(ctx, MenuItemInput{Name: "Roti", Price: dec("20"), Category: "Breads"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if c.PersistenceWarning() != nil {
		t.Error("Warning should clear after a successful save")
	}
	if len(store.items) != 2 {
		t.Errorf("Expected full collection after recovery, got %d", len(store.items))
	}
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	seed := `items:
  - name: Paneer Tikka
    price: "120.00"
    category: Starters
    description: Grilled cottage cheese
  - name: Butter Naan
    price: "50"
    category: Breads
    available: false
`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, _ := newTestCatalog(t)
	ctx := context.Background()

	n, err := c.Seed(ctx, path)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("Seed() = %d, want 2", n)
	}
	items := c.List(ctx)
	if !items[0].Price.Equal(dec("120")) || !items[0].IsAvailable {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	if items[1].IsAvailable {
		t.Error("Expected Butter Naan to be unavailable")
	}

	n, err = c.Seed(ctx, path)
	if err != nil || n != 0 {
		t.Errorf("Second Seed() = %d, %v; want 0, nil", n, err)
	}

	t.Run("invalid price", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(bad, []byte("items:\n  - name: X\n    price: abc\n    category: Y\n"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		fresh, _ := newTestCatalog(t)
		if _, err := fresh.Seed(ctx, bad); err == nil {
			t.Error("Expected error for invalid price")
		}
	})
}
