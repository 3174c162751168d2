package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), BillEvent{EventType: EventBillFinalized}); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// TestNATSPublisher runs against a live server named by BISTRO_TEST_NATS_URL.
func TestNATSPublisher(t *testing.T) {
	url := os.Getenv("BISTRO_TEST_NATS_URL")
	if url == "" {
		t.Skip("BISTRO_TEST_NATS_URL not set")
	}

	sub, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("failed to connect subscriber: %v", err)
	}
	defer sub.Close()
	msgs := make(chan *nats.Msg, 1)
	if _, err := sub.ChanSubscribe(BillsSubject, msgs); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	if err := sub.Flush(); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}

	p, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("NewNATSPublisher failed: %v", err)
	}
	defer p.Close()

	event := BillEvent{
		EventType:  EventBillReopened,
		OccurredAt: time.Now().UTC(),
		BillID:     "BILL-1-abcd1234",
		Status:     "Open",
		GrandTotal: "52.50",
		Actor:      "manager",
		Reason:     "wrong table",
	}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-msgs:
		var got BillEvent
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if got.BillID != event.BillID || got.EventType != EventBillReopened || got.Actor != "manager" {
			t.Errorf("received %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
