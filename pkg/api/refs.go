package api

// Identifiers surfaced to request logging.

func (r *GetBillRequest) BillRef() string { return r.BillID }
func (r *AddItemRequest) BillRef() string { return r.BillID }
func (r *SetLineQuantityRequest) BillRef() string { return r.BillID }
func (r *RemoveItemRequest) BillRef() string { return r.BillID }
func (r *FinalizeBillRequest) BillRef() string { return r.BillID }
func (r *ReopenBillRequest) BillRef() string { return r.BillID }

func (r *AddItemRequest) MenuItemRef() string { return r.MenuItemID }
func (r *SetLineQuantityRequest) MenuItemRef() string { return r.MenuItemID }
func (r *RemoveItemRequest) MenuItemRef() string { return r.MenuItemID }
func (r *MenuItemRequest) MenuItemRef() string { return r.ID }
func (r *UpdateMenuItemRequest) MenuItemRef() string { return r.Item.ID }

func (r *BillResponse) PersistenceWarning() string { return r.Warning }
func (r *ListBillsResponse) PersistenceWarning() string { return r.Warning }
func (r *MenuItemResponse) PersistenceWarning() string { return r.Warning }
func (r *DeleteMenuItemResponse) PersistenceWarning() string { return r.Warning }
