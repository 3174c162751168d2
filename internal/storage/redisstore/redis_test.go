package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/pkg/models"
)

// newTestStore connects to the server named by BISTRO_TEST_REDIS_URL and
// skips the test when it is unset. Each test gets its own key prefix.
func newTestStore(t *testing.T) *RedisStore {
	t.Helper()

	url := os.Getenv("BISTRO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BISTRO_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	prefix := "bistro-test-" + uuid.NewString()
	store, err := New(ctx, url, prefix)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.client.Del(ctx, store.key("restaurantAppBills"), store.key("restaurantAppMenuItems"))
		store.Close()
	})
	return store
}

func TestRedisStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bills, err := store.LoadBills(ctx)
	if err != nil {
		t.Fatalf("LoadBills failed: %v", err)
	}
	if len(bills) != 0 {
		t.Fatalf("Expected empty collection, got %d", len(bills))
	}

	original := []*models.Bill{{
		ID: "BILL-1", Status: models.StatusOpen, CustomerName: "Ravi",
		Items: []models.BillLine{
			{MenuItemID: "m1", Name: "Chai", Price: decimal.RequireFromString("15"), Quantity: 2, TotalPrice: decimal.RequireFromString("30")},
		},
		Subtotal: decimal.RequireFromString("30"), TaxAmount: decimal.RequireFromString("1.5"), GrandTotal: decimal.RequireFromString("31.5"),
	}}
	if err := store.SaveBills(ctx, original); err != nil {
		t.Fatalf("SaveBills failed: %v", err)
	}

	bills, err = store.LoadBills(ctx)
	if err != nil {
		t.Fatalf("LoadBills failed: %v", err)
	}
	if len(bills) != 1 || bills[0].CustomerName != "Ravi" || !bills[0].GrandTotal.Equal(decimal.RequireFromString("31.5")) {
		t.Errorf("Unexpected bills: %+v", bills)
	}

	if err := store.SaveMenuItems(ctx, []*models.MenuItem{{ID: "m1", Name: "Chai", Price: decimal.RequireFromString("15")}}); err != nil {
		t.Fatalf("SaveMenuItems failed: %v", err)
	}
	items, err := store.LoadMenuItems(ctx)
	if err != nil {
		t.Fatalf("LoadMenuItems failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Chai" {
		t.Errorf("Unexpected menu: %+v", items)
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	s := &RedisStore{prefix: "shop1"}
	if got := s.key("restaurantAppBills"); got != "shop1:restaurantAppBills" {
		t.Errorf("key() = %q", got)
	}
	s.prefix = ""
	if got := s.key("restaurantAppBills"); got != "restaurantAppBills" {
		t.Errorf("key() = %q", got)
	}
}
