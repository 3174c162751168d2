// Package events publishes bill lifecycle notifications for other systems
// (kitchen displays, reporting). Publishing is best effort and never
// affects ledger state.
package events

import (
	"context"
	"time"
)

const (
	// BillsSubject is the subject all bill events are published on.
	BillsSubject = "billing.bills"

	EventBillFinalized = "bill.finalized"
	EventBillReopened  = "bill.reopened"
)

// BillEvent is the JSON payload published for a lifecycle transition.
type BillEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	BillID      string    `json:"bill_id"`
	Status      string    `json:"status"`
	TableNumber string    `json:"table_number,omitempty"`
	GrandTotal  string    `json:"grand_total"`
	Actor       string    `json:"actor,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// Publisher sends bill events.
type Publisher interface {
	Publish(ctx context.Context, event BillEvent) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, BillEvent) error { return nil }
func (Noop) Close() error { return nil }
