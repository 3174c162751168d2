package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/pkg/models"
)

// Bill list filters.
const (
	FilterAll     = "all"
	FilterOpen    = "open"
	FilterHistory = "history"
)

// BillResponse is returned by every call that yields a single bill. Warning
// is set when the change could not be persisted.
type BillResponse struct {
	Bill    *models.Bill `json:"bill"`
	Display BillDisplay  `json:"display"`
	Warning string       `json:"warning,omitempty"`
}

// BillDisplay holds the bill totals rounded to cents with the currency symbol.
type BillDisplay struct {
	SubTotal   string `json:"subTotal"`
	TaxAmount  string `json:"taxAmount"`
	GrandTotal string `json:"grandTotal"`
}

type CreateBillRequest struct {
	CustomerName string `json:"customerName,omitempty"`
	TableNumber  string `json:"tableNumber,omitempty"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type ListBillsRequest struct {
	// Filter is one of all, open, history. Empty means all.
	Filter string `json:"filter,omitempty"`
}

type ListBillsResponse struct {
	Bills   []*models.Bill `json:"bills"`
	Warning string         `json:"warning,omitempty"`
}

type AddItemRequest struct {
	BillID     string `json:"billId"`
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type SetLineQuantityRequest struct {
	BillID     string `json:"billId"`
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type RemoveItemRequest struct {
	BillID     string `json:"billId"`
	MenuItemID string `json:"menuItemId"`
}

type FinalizeBillRequest struct {
	BillID string            `json:"billId"`
	Status models.BillStatus `json:"status"`
}

// ReopenBillRequest needs a supervisor token; the actor comes from it.
type ReopenBillRequest struct {
	BillID string `json:"billId"`
	Reason string `json:"reason"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	IsAvailable *bool           `json:"isAvailable,omitempty"`
}

type UpdateMenuItemRequest struct {
	Item models.MenuItem `json:"item"`
}

type MenuItemRequest struct {
	ID string `json:"id"`
}

type MenuItemResponse struct {
	Item    *models.MenuItem `json:"item"`
	Warning string           `json:"warning,omitempty"`
}

type DeleteMenuItemResponse struct {
	Warning string `json:"warning,omitempty"`
}

type ListMenuItemsRequest struct {
	Search        string `json:"search,omitempty"`
	Category      string `json:"category,omitempty"`
	AvailableOnly bool   `json:"availableOnly,omitempty"`
}

type ListMenuItemsResponse struct {
	Items []*models.MenuItem `json:"items"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type SuggestDishNameRequest struct {
	Prompt  string `json:"prompt"`
	Cuisine string `json:"cuisine,omitempty"`
}

type GenerateDescriptionRequest struct {
	DishName       string `json:"dishName"`
	DishType       string `json:"dishType"`
	KeyIngredients string `json:"keyIngredients"`
}

type SuggestionResponse struct {
	Text string `json:"text"`
}

type SupervisorLoginRequest struct {
	Actor string `json:"actor"`
	PIN   string `json:"pin"`
}

type SupervisorLoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
