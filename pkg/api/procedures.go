package api

const (
	BillingServiceName = "bistro.v1.BillingService"
	MenuServiceName    = "bistro.v1.MenuService"
	SuggestServiceName = "bistro.v1.SuggestService"
	AuthServiceName    = "bistro.v1.AuthService"
)

const (
	BillingCreateBillProcedure      = "/" + BillingServiceName + "/CreateBill"
	BillingGetBillProcedure         = "/" + BillingServiceName + "/GetBill"
	BillingListBillsProcedure       = "/" + BillingServiceName + "/ListBills"
	BillingAddItemProcedure         = "/" + BillingServiceName + "/AddItem"
	BillingSetLineQuantityProcedure = "/" + BillingServiceName + "/SetLineQuantity"
	BillingRemoveItemProcedure      = "/" + BillingServiceName + "/RemoveItem"
	BillingFinalizeBillProcedure    = "/" + BillingServiceName + "/FinalizeBill"
	BillingReopenBillProcedure      = "/" + BillingServiceName + "/ReopenBill"

	MenuCreateMenuItemProcedure = "/" + MenuServiceName + "/CreateMenuItem"
	MenuUpdateMenuItemProcedure = "/" + MenuServiceName + "/UpdateMenuItem"
	MenuDeleteMenuItemProcedure = "/" + MenuServiceName + "/DeleteMenuItem"
	MenuGetMenuItemProcedure    = "/" + MenuServiceName + "/GetMenuItem"
	MenuListMenuItemsProcedure  = "/" + MenuServiceName + "/ListMenuItems"
	MenuListCategoriesProcedure = "/" + MenuServiceName + "/ListCategories"

	SuggestDishNameProcedure     = "/" + SuggestServiceName + "/SuggestDishName"
	SuggestDescriptionProcedure  = "/" + SuggestServiceName + "/GenerateDescription"
	AuthSupervisorLoginProcedure = "/" + AuthServiceName + "/SupervisorLogin"
)
