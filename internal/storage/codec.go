package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/internal/calculator"
	"github.com/mmynk/bistro/pkg/models"
)

// SchemaVersion is the version written into every stored envelope.
const SchemaVersion = 1

// ErrCorrupt is returned when stored data cannot be decoded or fails validation.
var ErrCorrupt = errors.New("stored data is corrupt")

// legacyTaxPlaces strips binary floating point noise from tax amounts
// written by the unversioned format.
const legacyTaxPlaces = 10

type billsEnvelope struct {
	SchemaVersion int            `json:"schemaVersion"`
	Bills         []*models.Bill `json:"bills"`
}

type menuEnvelope struct {
	SchemaVersion int                `json:"schemaVersion"`
	MenuItems     []*models.MenuItem `json:"menuItems"`
}

// EncodeBills serializes bills into a versioned envelope.
func EncodeBills(bills []*models.Bill) ([]byte, error) {
	if bills == nil {
		bills = []*models.Bill{}
	}
	data, err := json.Marshal(billsEnvelope{SchemaVersion: SchemaVersion, Bills: bills})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bills: %w", err)
	}
	return data, nil
}

// DecodeBills parses stored bills. Both the versioned envelope and the
// legacy bare array are accepted. Records must be structurally valid; line
// totals, subtotal and grand total are recomputed from the lines rather than
// trusted, since the legacy format stored float sums.
func DecodeBills(data []byte) ([]*models.Bill, error) {
	var bills []*models.Bill
	legacy := isLegacyArray(data)
	if legacy {
		if err := json.Unmarshal(data, &bills); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	} else {
		var env billsEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if env.SchemaVersion < 1 || env.SchemaVersion > SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported schema version %d", ErrCorrupt, env.SchemaVersion)
		}
		bills = env.Bills
	}

	seen := make(map[string]bool, len(bills))
	for i, bill := range bills {
		if err := validateBill(bill); err != nil {
			return nil, fmt.Errorf("%w: bill %d: %v", ErrCorrupt, i, err)
		}
		if seen[bill.ID] {
			return nil, fmt.Errorf("%w: duplicate bill id %s", ErrCorrupt, bill.ID)
		}
		seen[bill.ID] = true
		normalizeTotals(bill, legacy)
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	return bills, nil
}

// EncodeMenuItems serializes the menu into a versioned envelope.
func EncodeMenuItems(items []*models.MenuItem) ([]byte, error) {
	if items == nil {
		items = []*models.MenuItem{}
	}
	data, err := json.Marshal(menuEnvelope{SchemaVersion: SchemaVersion, MenuItems: items})
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu items: %w", err)
	}
	return data, nil
}

// DecodeMenuItems parses a stored menu, accepting the legacy bare array.
func DecodeMenuItems(data []byte) ([]*models.MenuItem, error) {
	var items []*models.MenuItem
	if isLegacyArray(data) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	} else {
		var env menuEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if env.SchemaVersion < 1 || env.SchemaVersion > SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported schema version %d", ErrCorrupt, env.SchemaVersion)
		}
		items = env.MenuItems
	}

	for i, item := range items {
		if item == nil || item.ID == "" {
			return nil, fmt.Errorf("%w: menu item %d has no id", ErrCorrupt, i)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: menu item %s has negative price", ErrCorrupt, item.ID)
		}
	}
	if items == nil {
		items = []*models.MenuItem{}
	}
	return items, nil
}

func isLegacyArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func validateBill(bill *models.Bill) error {
	if bill == nil {
		return errors.New("null record")
	}
	if bill.ID == "" {
		return errors.New("missing id")
	}
	if !bill.Status.IsValid() {
		return fmt.Errorf("unknown status %q", bill.Status)
	}

	lines := make(map[string]bool, len(bill.Items))
	for _, line := range bill.Items {
		if line.MenuItemID == "" {
			return errors.New("line without menu item id")
		}
		if lines[line.MenuItemID] {
			return fmt.Errorf("duplicate line for %s", line.MenuItemID)
		}
		lines[line.MenuItemID] = true
		if line.Quantity <= 0 {
			return fmt.Errorf("line %s has non-positive quantity", line.MenuItemID)
		}
		if line.Price.IsNegative() {
			return fmt.Errorf("line %s has negative price", line.MenuItemID)
		}
	}
	if bill.TaxAmount.IsNegative() {
		return errors.New("negative tax amount")
	}
	return nil
}

// normalizeTotals derives line totals and subtotal from price × quantity.
// The stored tax is kept because the rate it was computed with is not stored.
func normalizeTotals(bill *models.Bill, legacy bool) {
	for i := range bill.Items {
		bill.Items[i].TotalPrice = calculator.LineTotal(bill.Items[i].Price, bill.Items[i].Quantity)
	}
	bill.Subtotal = calculator.CalculateTotals(bill.Items, decimal.Zero).Subtotal
	if legacy {
		bill.TaxAmount = bill.TaxAmount.Round(legacyTaxPlaces)
	}
	bill.GrandTotal = bill.Subtotal.Add(bill.TaxAmount)
}
