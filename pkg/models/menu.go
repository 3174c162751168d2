package models

import "github.com/shopspring/decimal"

// MenuItem represents a dish, drink or any offerable product.
type MenuItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name shown on the menu and copied onto bill lines.
	Name string `json:"name"`

	// Price is the non-negative unit price with at most two decimal places.
	Price decimal.Decimal `json:"price"`

	// Category groups items on the menu (e.g. "Starters", "Breads").
	Category string `json:"category"`

	// Description is free text shown under the name.
	Description string `json:"description"`

	// IsAvailable controls whether the item can be added to new bill lines.
	IsAvailable bool `json:"isAvailable"`

	// ImageURL is a placeholder picture derived from the item name.
	ImageURL string `json:"imageUrl,omitempty"`
}
