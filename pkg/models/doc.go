// Package models defines the core domain models for Bistro.
//
// # Models
//
//   - MenuItem: an offerable dish or drink held by the menu catalog
//   - Bill: one customer/table order session with its lines and totals
//   - BillLine: a priced, quantified entry on a bill
//   - ReopenRecord: audit entry written when a closed bill is reopened
//
// # Design Principles
//
// 1. **Exact money**: all amounts are decimal.Decimal, never float64
// 2. **Snapshots**: bill lines copy name and price from the menu at the moment they are added
// 3. **Derived totals**: subtotal, tax and grand total are always recomputed from the lines
// 4. **Stable JSON**: field names match the persisted layout so stored collections round-trip
package models
