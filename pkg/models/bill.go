package models

import (
	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	// StatusOpen is the initial state. Only open bills accept line changes.
	StatusOpen BillStatus = "Open"

	// StatusPaid marks a settled bill.
	StatusPaid BillStatus = "Paid"

	// StatusCancelled marks an abandoned bill.
	StatusCancelled BillStatus = "Cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s BillStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a closing status (Paid or Cancelled).
func (s BillStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Bill represents one customer or table order session.
// Totals are always derived from Items and must never be edited directly.
type Bill struct {
	// ID is the unique identifier for the bill (BILL-<unix ms>-<suffix>).
	ID string `json:"id"`

	// Items are the bill lines in insertion order, which is also display order.
	// At most one line exists per menu item id.
	Items []BillLine `json:"items"`

	// Subtotal is the sum of all line totals.
	Subtotal decimal.Decimal `json:"subTotal"`

	// TaxAmount is Subtotal multiplied by the flat tax rate.
	TaxAmount decimal.Decimal `json:"taxAmount"`

	// GrandTotal is Subtotal plus TaxAmount.
	GrandTotal decimal.Decimal `json:"grandTotal"`

	// CreatedAt is the Unix timestamp in milliseconds when the bill was created.
	CreatedAt int64 `json:"createdAt"`

	// Status is the lifecycle state. Bills start Open.
	Status BillStatus `json:"status"`

	// CustomerName is optional.
	CustomerName string `json:"customerName,omitempty"`

	// TableNumber is an optional free-form table label (e.g. "T4", "Patio 2").
	TableNumber string `json:"tableNumber,omitempty"`

	// ReopenHistory records every supervisor override that moved the bill
	// from a closed status back to Open.
	ReopenHistory []ReopenRecord `json:"reopenHistory,omitempty"`
}

// BillLine represents a single menu item on a bill.
// Name and Price are snapshots taken when the item was first added;
// later menu edits do not change them.
type BillLine struct {
	// MenuItemID references the catalog item this line was created from.
	MenuItemID string `json:"menuItemId"`

	// Name is the item name at the time it was added.
	Name string `json:"name"`

	// Price is the unit price at the time it was added.
	Price decimal.Decimal `json:"price"`

	// Quantity is always positive.
	Quantity int `json:"quantity"`

	// TotalPrice is Price × Quantity, recomputed on every mutation.
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// ReopenRecord is the audit entry for a supervisor override.
type ReopenRecord struct {
	// At is the Unix timestamp in milliseconds of the override.
	At int64 `json:"at"`

	// Actor identifies the supervisor who approved the override.
	Actor string `json:"actor"`

	// Reason is the operator-supplied justification.
	Reason string `json:"reason"`

	// PreviousStatus is the closed status the bill held before reopening.
	PreviousStatus BillStatus `json:"previousStatus"`
}

// Line returns the line for menuItemID and its index, or -1 if absent.
func (b *Bill) Line(menuItemID string) (BillLine, int) {
	for i, line := range b.Items {
		if line.MenuItemID == menuItemID {
			return line, i
		}
	}
	return BillLine{}, -1
}

// Clone returns a deep copy of the bill so callers can never mutate
// ledger-owned state through a returned value.
func (b *Bill) Clone() *Bill {
	if b == nil {
		return nil
	}
	c := *b
	if b.Items != nil {
		c.Items = make([]BillLine, len(b.Items))
		copy(c.Items, b.Items)
	}
	if b.ReopenHistory != nil {
		c.ReopenHistory = make([]ReopenRecord, len(b.ReopenHistory))
		copy(c.ReopenHistory, b.ReopenHistory)
	}
	return &c
}
