package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"invalid state", InvalidState("bill %s is %s", "B1", "Paid"), KindInvalidState},
		{"invalid input", InvalidInput("quantity %d", 0), KindInvalidInput},
		{"not found", NotFound("bill %s", "B2"), KindNotFound},
		{"wrapped twice", fmt.Errorf("service: %w", NotFound("line")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	err := InvalidState("bill %s is %s", "B1", "Paid")
	if got, want := err.Error(), "invalid state: bill B1 is Paid"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if KindInvalidInput.String() != "InvalidInput" {
		t.Errorf("String() = %q", KindInvalidInput.String())
	}
}
