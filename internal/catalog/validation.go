package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/internal/apperror"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateItem checks the fields an operator can edit.
func validateItem(name, category string, price decimal.Decimal) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(category) == "" {
		errs = append(errs, ValidationError{Field: "category", Message: "category is required"})
	}
	if price.IsNegative() {
		errs = append(errs, ValidationError{Field: "price", Message: "price cannot be negative"})
	}
	if price.Exponent() < -2 && !price.Equal(price.Round(2)) {
		errs = append(errs, ValidationError{Field: "price", Message: "price cannot have more than two decimal places"})
	}
	return errs
}

// asError folds validation errors into a single InvalidInput error.
func asError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return apperror.InvalidInput("%s", strings.Join(parts, "; "))
}
