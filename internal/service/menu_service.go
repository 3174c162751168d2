package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/bistro/internal/catalog"
	"github.com/mmynk/bistro/pkg/api"
)

// MenuService exposes the menu catalog over Connect.
type MenuService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewMenuService creates a MenuService backed by c.
func NewMenuService(c *catalog.Catalog, logger *slog.Logger) *MenuService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuService{catalog: c, logger: logger}
}

// Handler returns the mount path and handler for the service.
func (s *MenuService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.MenuCreateMenuItemProcedure, connect.NewUnaryHandler(api.MenuCreateMenuItemProcedure, s.CreateMenuItem, opts...))
	mux.Handle(api.MenuUpdateMenuItemProcedure, connect.NewUnaryHandler(api.MenuUpdateMenuItemProcedure, s.UpdateMenuItem, opts...))
	mux.Handle(api.MenuDeleteMenuItemProcedure, connect.NewUnaryHandler(api.MenuDeleteMenuItemProcedure, s.DeleteMenuItem, opts...))
	mux.Handle(api.MenuGetMenuItemProcedure, connect.NewUnaryHandler(api.MenuGetMenuItemProcedure, s.GetMenuItem, opts...))
	mux.Handle(api.MenuListMenuItemsProcedure, connect.NewUnaryHandler(api.MenuListMenuItemsProcedure, s.ListMenuItems, opts...))
	mux.Handle(api.MenuListCategoriesProcedure, connect.NewUnaryHandler(api.MenuListCategoriesProcedure, s.ListCategories, opts...))
	return "/" + api.MenuServiceName + "/", mux
}

// CreateMenuItem adds an item to the menu.
func (s *MenuService) CreateMenuItem(ctx context.Context, req *connect.Request[api.CreateMenuItemRequest]) (*connect.Response[api.MenuItemResponse], error) {
	item, err := s.catalog.Add(ctx, catalog.MenuItemInput{
		Name:        req.Msg.Name,
		Price:       req.Msg.Price,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		IsAvailable: req.Msg.IsAvailable,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MenuItemResponse{
		Item:    item,
		Warning: warningText(s.catalog.PersistenceWarning()),
	}), nil
}

// UpdateMenuItem replaces an item's editable fields.
func (s *MenuService) UpdateMenuItem(ctx context.Context, req *connect.Request[api.UpdateMenuItemRequest]) (*connect.Response[api.MenuItemResponse], error) {
	item, err := s.catalog.Update(ctx, req.Msg.Item)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MenuItemResponse{
		Item:    item,
		Warning: warningText(s.catalog.PersistenceWarning()),
	}), nil
}

// DeleteMenuItem removes an item. Existing bill lines keep their snapshot.
func (s *MenuService) DeleteMenuItem(ctx context.Context, req *connect.Request[api.MenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error) {
	if err := s.catalog.Delete(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteMenuItemResponse{
		Warning: warningText(s.catalog.PersistenceWarning()),
	}), nil
}

// GetMenuItem returns one item.
func (s *MenuService) GetMenuItem(ctx context.Context, req *connect.Request[api.MenuItemRequest]) (*connect.Response[api.MenuItemResponse], error) {
	item, err := s.catalog.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MenuItemResponse{Item: item}), nil
}

// ListMenuItems searches the menu.
func (s *MenuService) ListMenuItems(ctx context.Context, req *connect.Request[api.ListMenuItemsRequest]) (*connect.Response[api.ListMenuItemsResponse], error) {
	items := s.catalog.Search(ctx, req.Msg.Search, req.Msg.Category)
	if req.Msg.AvailableOnly {
		available := items[:0]
		for _, item := range items {
			if item.IsAvailable {
				available = append(available, item)
			}
		}
		items = available
	}
	return connect.NewResponse(&api.ListMenuItemsResponse{Items: items}), nil
}

// ListCategories returns the distinct menu categories.
func (s *MenuService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: s.catalog.Categories(ctx)}), nil
}
