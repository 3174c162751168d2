package api

import (
	"connectrpc.com/connect"
)

// BillingClient calls bistro.v1.BillingService.
type BillingClient struct {
	CreateBill      *connect.Client[CreateBillRequest, BillResponse]
	GetBill         *connect.Client[GetBillRequest, BillResponse]
	ListBills       *connect.Client[ListBillsRequest, ListBillsResponse]
	AddItem         *connect.Client[AddItemRequest, BillResponse]
	SetLineQuantity *connect.Client[SetLineQuantityRequest, BillResponse]
	RemoveItem      *connect.Client[RemoveItemRequest, BillResponse]
	FinalizeBill    *connect.Client[FinalizeBillRequest, BillResponse]
	ReopenBill      *connect.Client[ReopenBillRequest, BillResponse]
}

// NewBillingClient builds a client for the service at baseURL.
func NewBillingClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillingClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &BillingClient{
		CreateBill:      connect.NewClient[CreateBillRequest, BillResponse](httpClient, baseURL+BillingCreateBillProcedure, opts...),
		GetBill:         connect.NewClient[GetBillRequest, BillResponse](httpClient, baseURL+BillingGetBillProcedure, opts...),
		ListBills:       connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+BillingListBillsProcedure, opts...),
		AddItem:         connect.NewClient[AddItemRequest, BillResponse](httpClient, baseURL+BillingAddItemProcedure, opts...),
		SetLineQuantity: connect.NewClient[SetLineQuantityRequest, BillResponse](httpClient, baseURL+BillingSetLineQuantityProcedure, opts...),
		RemoveItem:      connect.NewClient[RemoveItemRequest, BillResponse](httpClient, baseURL+BillingRemoveItemProcedure, opts...),
		FinalizeBill:    connect.NewClient[FinalizeBillRequest, BillResponse](httpClient, baseURL+BillingFinalizeBillProcedure, opts...),
		ReopenBill:      connect.NewClient[ReopenBillRequest, BillResponse](httpClient, baseURL+BillingReopenBillProcedure, opts...),
	}
}

// MenuClient calls bistro.v1.MenuService.
type MenuClient struct {
	CreateMenuItem *connect.Client[CreateMenuItemRequest, MenuItemResponse]
	UpdateMenuItem *connect.Client[UpdateMenuItemRequest, MenuItemResponse]
	DeleteMenuItem *connect.Client[MenuItemRequest, DeleteMenuItemResponse]
	GetMenuItem    *connect.Client[MenuItemRequest, MenuItemResponse]
	ListMenuItems  *connect.Client[ListMenuItemsRequest, ListMenuItemsResponse]
	ListCategories *connect.Client[ListCategoriesRequest, ListCategoriesResponse]
}

// NewMenuClient builds a client for the service at baseURL.
func NewMenuClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MenuClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &MenuClient{
		CreateMenuItem: connect.NewClient[CreateMenuItemRequest, MenuItemResponse](httpClient, baseURL+MenuCreateMenuItemProcedure, opts...),
		UpdateMenuItem: connect.NewClient[UpdateMenuItemRequest, MenuItemResponse](httpClient, baseURL+MenuUpdateMenuItemProcedure, opts...),
		DeleteMenuItem: connect.NewClient[MenuItemRequest, DeleteMenuItemResponse](httpClient, baseURL+MenuDeleteMenuItemProcedure, opts...),
		GetMenuItem:    connect.NewClient[MenuItemRequest, MenuItemResponse](httpClient, baseURL+MenuGetMenuItemProcedure, opts...),
		ListMenuItems:  connect.NewClient[ListMenuItemsRequest, ListMenuItemsResponse](httpClient, baseURL+MenuListMenuItemsProcedure, opts...),
		ListCategories: connect.NewClient[ListCategoriesRequest, ListCategoriesResponse](httpClient, baseURL+MenuListCategoriesProcedure, opts...),
	}
}

// SuggestClient calls bistro.v1.SuggestService.
type SuggestClient struct {
	SuggestDishName     *connect.Client[SuggestDishNameRequest, SuggestionResponse]
	GenerateDescription *connect.Client[GenerateDescriptionRequest, SuggestionResponse]
}

// NewSuggestClient builds a client for the service at baseURL.
func NewSuggestClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SuggestClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &SuggestClient{
		SuggestDishName:     connect.NewClient[SuggestDishNameRequest, SuggestionResponse](httpClient, baseURL+SuggestDishNameProcedure, opts...),
		GenerateDescription: connect.NewClient[GenerateDescriptionRequest, SuggestionResponse](httpClient, baseURL+SuggestDescriptionProcedure, opts...),
	}
}

// AuthClient calls bistro.v1.AuthService.
type AuthClient struct {
	SupervisorLogin *connect.Client[SupervisorLoginRequest, SupervisorLoginResponse]
}

// NewAuthClient builds a client for the service at baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &AuthClient{
		SupervisorLogin: connect.NewClient[SupervisorLoginRequest, SupervisorLoginResponse](httpClient, baseURL+AuthSupervisorLoginProcedure, opts...),
	}
}
