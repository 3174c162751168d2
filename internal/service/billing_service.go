package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/bistro/internal/auth"
	"github.com/mmynk/bistro/internal/calculator"
	"github.com/mmynk/bistro/internal/ledger"
	"github.com/mmynk/bistro/internal/middleware"
	"github.com/mmynk/bistro/pkg/models"
	"github.com/mmynk/bistro/pkg/api"
)

var (
	errSupervisorRequired = errors.New("reopening a closed bill requires a supervisor login")
	errInvalidFilter      = errors.New("filter must be one of all, open, history")
)

// BillingService exposes the bill ledger over Connect.
type BillingService struct {
	ledger         *ledger.Ledger
	currencySymbol string
	logger         *slog.Logger
}

// NewBillingService creates a BillingService backed by l. currencySymbol
// prefixes the display totals.
func NewBillingService(l *ledger.Ledger, currencySymbol string, logger *slog.Logger) *BillingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BillingService{ledger: l, currencySymbol: currencySymbol, logger: logger}
}

// Handler returns the mount path and handler for the service.
func (s *BillingService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.BillingCreateBillProcedure, connect.NewUnaryHandler(api.BillingCreateBillProcedure, s.CreateBill, opts...))
	mux.Handle(api.BillingGetBillProcedure, connect.NewUnaryHandler(api.BillingGetBillProcedure, s.GetBill, opts...))
	mux.Handle(api.BillingListBillsProcedure, connect.NewUnaryHandler(api.BillingListBillsProcedure, s.ListBills, opts...))
	mux.Handle(api.BillingAddItemProcedure, connect.NewUnaryHandler(api.BillingAddItemProcedure, s.AddItem, opts...))
	mux.Handle(api.BillingSetLineQuantityProcedure, connect.NewUnaryHandler(api.BillingSetLineQuantityProcedure, s.SetLineQuantity, opts...))
	mux.Handle(api.BillingRemoveItemProcedure, connect.NewUnaryHandler(api.BillingRemoveItemProcedure, s.RemoveItem, opts...))
	mux.Handle(api.BillingFinalizeBillProcedure, connect.NewUnaryHandler(api.BillingFinalizeBillProcedure, s.FinalizeBill, opts...))
	mux.Handle(api.BillingReopenBillProcedure, connect.NewUnaryHandler(api.BillingReopenBillProcedure, s.ReopenBill, opts...))
	return "/" + api.BillingServiceName + "/", mux
}

func (s *BillingService) billResponse(bill *models.Bill) *connect.Response[api.BillResponse] {
	return connect.NewResponse(&api.BillResponse{
		Bill: bill,
		Display: api.BillDisplay{
			SubTotal:   calculator.Format(s.currencySymbol, bill.Subtotal),
			TaxAmount:  calculator.Format(s.currencySymbol, bill.TaxAmount),
			GrandTotal: calculator.Format(s.currencySymbol, bill.GrandTotal),
		},
		Warning: warningText(s.ledger.PersistenceWarning()),
	})
}

// CreateBill opens a new empty bill.
func (s *BillingService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill := s.ledger.CreateBill(ctx, req.Msg.CustomerName, req.Msg.TableNumber)
	return s.billResponse(bill), nil
}

// GetBill returns one bill.
func (s *BillingService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ledger.Get(req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}

// ListBills returns all, open, or closed bills. History is newest first.
func (s *BillingService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	var bills []*models.Bill
	switch req.Msg.Filter {
	case "", api.FilterAll:
		bills = s.ledger.List()
	case api.FilterOpen:
		bills = s.ledger.OpenBills()
	case api.FilterHistory:
		bills = s.ledger.History()
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errInvalidFilter)
	}

	return connect.NewResponse(&api.ListBillsResponse{
		Bills:   bills,
		Warning: warningText(s.ledger.PersistenceWarning()),
	}), nil
}

// AddItem adds units of a menu item to an open bill.
func (s *BillingService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ledger.AddItem(ctx, req.Msg.BillID, req.Msg.MenuItemID, req.Msg.Quantity)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}

// SetLineQuantity changes a line's quantity; zero or less removes it.
func (s *BillingService) SetLineQuantity(ctx context.Context, req *connect.Request[api.SetLineQuantityRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ledger.SetLineQuantity(ctx, req.Msg.BillID, req.Msg.MenuItemID, req.Msg.Quantity)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}

// RemoveItem deletes a line.
func (s *BillingService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ledger.RemoveItem(ctx, req.Msg.BillID, req.Msg.MenuItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}

// FinalizeBill closes a bill as Paid or Cancelled.
func (s *BillingService) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ledger.Finalize(ctx, req.Msg.BillID, req.Msg.Status)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}

// ReopenBill reopens a closed bill. The caller must hold a supervisor token;
// the token's actor is recorded in the bill's reopen history.
func (s *BillingService) ReopenBill(ctx context.Context, req *connect.Request[api.ReopenBillRequest]) (*connect.Response[api.BillResponse], error) {
	actor := middleware.GetActor(ctx)
	if actor == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errSupervisorRequired)
	}
	if middleware.GetRole(ctx) != auth.RoleSupervisor {
		s.logger.Warn("Reopen denied", "bill_id", req.Msg.BillID, "actor", actor)
		return nil, connect.NewError(connect.CodePermissionDenied, errSupervisorRequired)
	}

	bill, err := s.ledger.Reopen(ctx, req.Msg.BillID, ledger.Override{Actor: actor, Reason: req.Msg.Reason})
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.billResponse(bill), nil
}
