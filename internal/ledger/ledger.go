// Package ledger owns the bill collection and enforces the billing rules:
// totals always derived from lines, one line per menu item, and no mutation
// of a bill once it is closed except through a supervised reopen.
//
// Every mutating operation persists the whole collection before returning
// (write-through). Persistence failures are logged and surfaced through
// PersistenceWarning; the in-memory collection stays authoritative.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/internal/apperror"
	"github.com/mmynk/bistro/internal/calculator"
	"github.com/mmynk/bistro/internal/events"
	"github.com/mmynk/bistro/pkg/models"
)

// DefaultTaxRate is the flat rate applied when none is configured.
var DefaultTaxRate = decimal.RequireFromString("0.05")

// MaxLineQuantity caps the quantity of a single bill line.
const MaxLineQuantity = 9999

// Catalog resolves menu items for new bill lines.
type Catalog interface {
	// Resolve returns the current catalog entry or an apperror.ErrNotFound error.
	Resolve(ctx context.Context, menuItemID string) (models.MenuItem, error)
}

// BillStore is the persistence collaborator.
type BillStore interface {
	LoadBills(ctx context.Context) ([]*models.Bill, error)
	SaveBills(ctx context.Context, bills []*models.Bill) error
}

// Recorder receives ledger metrics.
type Recorder interface {
	BillCreated()
	BillFinalized(status models.BillStatus)
	BillReopened()
	PersistenceFailed(collection string)
}

type nopRecorder struct{}

func (nopRecorder) BillCreated() {}
func (nopRecorder) BillFinalized(models.BillStatus) {}
func (nopRecorder) BillReopened() {}
func (nopRecorder) PersistenceFailed(string) {}

// Override carries the supervisor approval required to reopen a closed bill.
type Override struct {
	Actor  string
	Reason string
}

// Ledger holds all bills. It is safe for concurrent use.
type Ledger struct {
	mu sync.Mutex

	catalog   Catalog
	store     BillStore
	publisher events.Publisher
	recorder  Recorder
	logger    *slog.Logger
	taxRate   decimal.Decimal
	now       func() time.Time
	suffix    func() string

	bills   []*models.Bill
	index   map[string]int
	saveErr error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithTaxRate sets the flat tax rate.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(l *Ledger) { l.taxRate = rate }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) { l.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// withSuffix replaces the random id suffix generator. Tests only.
func withSuffix(fn func() string) Option {
	return func(l *Ledger) { l.suffix = fn }
}

// New loads the stored bills and returns a ready ledger. A store that cannot
// be read is logged and the ledger starts empty.
func New(ctx context.Context, catalog Catalog, store BillStore, opts ...Option) *Ledger {
	l := &Ledger{
		catalog:   catalog,
		store:     store,
		publisher: events.Noop{},
		recorder:  nopRecorder{},
		logger:    slog.Default(),
		taxRate:   DefaultTaxRate,
		now:       time.Now,
		suffix:    func() string { return uuid.NewString()[:8] },
		index:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}

	bills, err := store.LoadBills(ctx)
	if err != nil {
		l.logger.Warn("Failed to load bills, starting empty", "error", err)
		bills = nil
	}
	for _, b := range bills {
		// Closed bills keep their frozen totals; open ones follow the current rate.
		if b.Status == models.StatusOpen {
			calculator.Apply(b, l.taxRate)
		}
		l.index[b.ID] = len(l.bills)
		l.bills = append(l.bills, b)
	}
	l.logger.Info("Ledger loaded", "bills", len(l.bills), "tax_rate", l.taxRate.String())
	return l
}

// TaxRate returns the configured flat tax rate.
func (l *Ledger) TaxRate() decimal.Decimal {
	return l.taxRate
}

// PersistenceWarning returns the error from the most recent failed save, or
// nil once a later save succeeds. A non-nil value means recent changes exist
// only in memory.
func (l *Ledger) PersistenceWarning() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveErr
}

// CreateBill allocates a new open bill with no lines and persists it.
func (l *Ledger) CreateBill(ctx context.Context, customerName, tableNumber string) *models.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bill := &models.Bill{
		ID:           l.newID(now),
		Items:        []models.BillLine{},
		Subtotal:     decimal.Zero,
		TaxAmount:    decimal.Zero,
		GrandTotal:   decimal.Zero,
		CreatedAt:    now.UnixMilli(),
		Status:       models.StatusOpen,
		CustomerName: strings.TrimSpace(customerName),
		TableNumber:  strings.TrimSpace(tableNumber),
	}

	l.index[bill.ID] = len(l.bills)
	l.bills = append(l.bills, bill)
	l.recorder.BillCreated()
	l.logger.Info("Bill created", "bill_id", bill.ID, "table", bill.TableNumber)

	l.persist(ctx)
	return bill.Clone()
}

// newID returns BILL-<unix ms>-<suffix>, regenerating the suffix until the
// id is unused.
func (l *Ledger) newID(now time.Time) string {
	for {
		id := fmt.Sprintf("BILL-%d-%s", now.UnixMilli(), l.suffix())
		if _, exists := l.index[id]; !exists {
			return id
		}
	}
}

// AddItem adds quantity units of a menu item. An existing line for the item
// has its quantity increased and keeps its original snapshot; otherwise a
// new line is appended with the catalog's current name and price.
func (l *Ledger) AddItem(ctx context.Context, billID, menuItemID string, quantity int) (*models.Bill, error) {
	return l.mutate(ctx, billID, func(bill *models.Bill) error {
		if quantity <= 0 {
			return apperror.InvalidInput("quantity must be positive, got %d", quantity)
		}
		if menuItemID == "" {
			return apperror.InvalidInput("menu item id is required")
		}

		if line, i := bill.Line(menuItemID); i >= 0 {
			if quantity > MaxLineQuantity-line.Quantity {
				return apperror.InvalidInput("line for %s would exceed %d units", menuItemID, MaxLineQuantity)
			}
			bill.Items[i].Quantity += quantity
			return nil
		}
		if quantity > MaxLineQuantity {
			return apperror.InvalidInput("quantity %d exceeds %d units", quantity, MaxLineQuantity)
		}

		item, err := l.catalog.Resolve(ctx, menuItemID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return apperror.InvalidInput("menu item %s does not exist", menuItemID)
			}
			return fmt.Errorf("failed to resolve menu item %s: %w", menuItemID, err)
		}
		if !item.IsAvailable {
			return apperror.InvalidInput("menu item %s is not available", menuItemID)
		}

		bill.Items = append(bill.Items, models.BillLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   quantity,
		})
		return nil
	})
}

// SetLineQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line.
func (l *Ledger) SetLineQuantity(ctx context.Context, billID, menuItemID string, quantity int) (*models.Bill, error) {
	return l.mutate(ctx, billID, func(bill *models.Bill) error {
		_, i := bill.Line(menuItemID)
		if i < 0 {
			return apperror.NotFound("bill %s has no line for menu item %s", billID, menuItemID)
		}
		if quantity <= 0 {
			bill.Items = append(bill.Items[:i], bill.Items[i+1:]...)
			return nil
		}
		if quantity > MaxLineQuantity {
			return apperror.InvalidInput("quantity %d exceeds %d units", quantity, MaxLineQuantity)
		}
		bill.Items[i].Quantity = quantity
		return nil
	})
}

// RemoveItem deletes the line for a menu item. Removing an absent line fails
// with NotFound.
func (l *Ledger) RemoveItem(ctx context.Context, billID, menuItemID string) (*models.Bill, error) {
	return l.SetLineQuantity(ctx, billID, menuItemID, 0)
}

// Finalize closes an open bill as Paid or Cancelled, freezing its lines and totals.
func (l *Ledger) Finalize(ctx context.Context, billID string, status models.BillStatus) (*models.Bill, error) {
	bill, err := l.mutate(ctx, billID, func(bill *models.Bill) error {
		if !status.IsTerminal() {
			return apperror.InvalidInput("cannot finalize to status %q", status)
		}
		bill.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.recorder.BillFinalized(status)
	l.logger.Info("Bill finalized", "bill_id", bill.ID, "status", status, "grand_total", calculator.Round(bill.GrandTotal).String())
	l.publish(ctx, events.EventBillFinalized, bill, Override{})
	return bill, nil
}

// Reopen moves a closed bill back to Open. This is the only mutation allowed
// on a closed bill; it requires an approving actor and a reason, and appends
// an entry to the bill's reopen history.
func (l *Ledger) Reopen(ctx context.Context, billID string, override Override) (*models.Bill, error) {
	out, err := l.reopen(ctx, billID, override)
	if err != nil {
		return nil, err
	}
	last := out.ReopenHistory[len(out.ReopenHistory)-1]
	l.publish(ctx, events.EventBillReopened, out, Override{Actor: last.Actor, Reason: last.Reason})
	return out, nil
}

func (l *Ledger) reopen(ctx context.Context, billID string, override Override) (*models.Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, err := l.find(billID)
	if err != nil {
		return nil, err
	}
	if stored.Status == models.StatusOpen {
		return nil, apperror.InvalidState("bill %s is already open", billID)
	}
	actor := strings.TrimSpace(override.Actor)
	reason := strings.TrimSpace(override.Reason)
	if actor == "" || reason == "" {
		return nil, apperror.InvalidInput("reopening a closed bill requires an approving actor and a reason")
	}

	bill := stored.Clone()
	bill.ReopenHistory = append(bill.ReopenHistory, models.ReopenRecord{
		At:             l.now().UnixMilli(),
		Actor:          actor,
		Reason:         reason,
		PreviousStatus: bill.Status,
	})
	bill.Status = models.StatusOpen
	l.bills[l.index[billID]] = bill

	l.recorder.BillReopened()
	l.logger.Warn("Closed bill reopened by override",
		"bill_id", billID,
		"previous_status", bill.ReopenHistory[len(bill.ReopenHistory)-1].PreviousStatus,
		"actor", actor,
		"reason", reason,
	)

	l.persist(ctx)
	return bill.Clone(), nil
}

// Get returns a copy of the bill.
func (l *Ledger) Get(billID string) (*models.Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bill, err := l.find(billID)
	if err != nil {
		return nil, err
	}
	return bill.Clone(), nil
}

// List returns copies of all bills in creation order.
func (l *Ledger) List() []*models.Bill {
	return l.filter(func(*models.Bill) bool { return true })
}

// OpenBills returns copies of the open bills in creation order.
func (l *Ledger) OpenBills() []*models.Bill {
	return l.filter(func(b *models.Bill) bool { return b.Status == models.StatusOpen })
}

// History returns copies of the closed bills, newest first.
func (l *Ledger) History() []*models.Bill {
	closed := l.filter(func(b *models.Bill) bool { return b.Status != models.StatusOpen })
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].CreatedAt > closed[j].CreatedAt
	})
	return closed
}

func (l *Ledger) filter(keep func(*models.Bill) bool) []*models.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*models.Bill, 0, len(l.bills))
	for _, b := range l.bills {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// mutate applies fn to a copy of an open bill. The stored bill is replaced
// only when fn succeeds, so a failed operation leaves it untouched.
func (l *Ledger) mutate(ctx context.Context, billID string, fn func(*models.Bill) error) (*models.Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, err := l.find(billID)
	if err != nil {
		return nil, err
	}
	if stored.Status != models.StatusOpen {
		return nil, apperror.InvalidState("bill %s is %s", billID, stored.Status)
	}

	bill := stored.Clone()
	if err := fn(bill); err != nil {
		return nil, err
	}
	calculator.Apply(bill, l.taxRate)
	l.bills[l.index[billID]] = bill

	l.persist(ctx)
	return bill.Clone(), nil
}

func (l *Ledger) find(billID string) (*models.Bill, error) {
	i, ok := l.index[billID]
	if !ok {
		return nil, apperror.NotFound("bill %s", billID)
	}
	return l.bills[i], nil
}

// persist writes the collection through to the store. Failures are recorded,
// not returned. Callers hold l.mu.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.SaveBills(ctx, l.bills); err != nil {
		if l.saveErr == nil {
			l.logger.Warn("Failed to persist bills; changes exist only in memory", "error", err)
		}
		l.saveErr = err
		l.recorder.PersistenceFailed("bills")
		return
	}
	if l.saveErr != nil {
		l.logger.Info("Bill persistence recovered")
	}
	l.saveErr = nil
}

func (l *Ledger) publish(ctx context.Context, eventType string, bill *models.Bill, override Override) {
	event := events.BillEvent{
		EventType:   eventType,
		OccurredAt:  l.now().UTC(),
		BillID:      bill.ID,
		Status:      string(bill.Status),
		TableNumber: bill.TableNumber,
		GrandTotal:  bill.GrandTotal.StringFixed(2),
		Actor:       override.Actor,
		Reason:      override.Reason,
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("Failed to publish bill event", "event", eventType, "bill_id", bill.ID, "error", err)
	}
}
