package api_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/pkg/api"
	"github.com/mmynk/bistro/pkg/models"
)

func TestCodec_BillResponse(t *testing.T) {
	bill := &models.Bill{
		ID: "BILL-1",
		Items: []models.BillLine{
			{MenuItemID: "m1", Name: "Soup", Price: decimal.RequireFromString("4.50"), Quantity: 2, TotalPrice: decimal.RequireFromString("9")},
		},
		Subtotal:   decimal.RequireFromString("9"),
		TaxAmount:  decimal.RequireFromString("0.45"),
		GrandTotal: decimal.RequireFromString("9.45"),
		CreatedAt:  1700000000000,
		Status:     models.StatusPaid,
		ReopenHistory: []models.ReopenRecord{
			{At: 1700000001000, Actor: "manager", Reason: "wrong table", PreviousStatus: models.StatusCancelled},
		},
	}
	codec := api.Codec{}

	data, err := codec.Marshal(&api.BillResponse{Bill: bill, Warning: "disk full"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"subTotal"`, `"menuItemId"`, `"reopenHistory"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("payload %s missing %s", data, key)
		}
	}

	var got api.BillResponse
	if err := codec.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Bill == nil || got.Bill.ID != bill.ID || got.Bill.Status != models.StatusPaid {
		t.Fatalf("bill = %+v", got.Bill)
	}
	if !got.Bill.GrandTotal.Equal(bill.GrandTotal) || !got.Bill.Items[0].Price.Equal(bill.Items[0].Price) {
		t.Errorf("amounts changed: %+v", got.Bill)
	}
	if len(got.Bill.ReopenHistory) != 1 || got.Bill.ReopenHistory[0].PreviousStatus != models.StatusCancelled {
		t.Errorf("reopen history = %+v", got.Bill.ReopenHistory)
	}
	if got.PersistenceWarning() != "disk full" {
		t.Errorf("warning = %q", got.PersistenceWarning())
	}
}

func TestCodec_EmptyPayload(t *testing.T) {
	req := api.GetBillRequest{BillID: "keep"}
	if err := (api.Codec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if req.BillRef() != "keep" {
		t.Errorf("empty payload overwrote request: %+v", req)
	}
}

func TestCodec_Malformed(t *testing.T) {
	var req api.AddItemRequest
	if err := (api.Codec{}).Unmarshal([]byte(`{"quantity":"two"}`), &req); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
