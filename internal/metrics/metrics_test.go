package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/bistro/pkg/models"
)

func TestCounters(t *testing.T) {
	m := New()

	m.BillCreated()
	m.BillCreated()
	m.BillFinalized(models.StatusPaid)
	m.BillFinalized(models.StatusCancelled)
	m.BillFinalized(models.StatusPaid)
	m.BillReopened()
	m.PersistenceFailed("bills")

	if got := testutil.ToFloat64(m.billsCreated); got != 2 {
		t.Errorf("bills_created_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.billsFinalized.WithLabelValues("Paid")); got != 2 {
		t.Errorf("bills_finalized_total{status=Paid} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.billsReopened); got != 1 {
		t.Errorf("bills_reopened_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.persistenceFailed.WithLabelValues("bills")); got != 1 {
		t.Errorf("persistence_failures_total{collection=bills} = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPC("/bistro.v1.BillingService/CreateBill", "ok", 5*time.Millisecond)
	m.SuggestionRequested("name", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"bistro_rpc_duration_seconds_count",
		`procedure="/bistro.v1.BillingService/CreateBill"`,
		`bistro_suggestion_requests_total{kind="name",outcome="ok"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
