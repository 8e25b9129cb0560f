// Package models defines the core domain models for the store ledger.
//
// # Entities
//
//   - Customer: a registered buyer with login credentials
//   - Product: a catalog entry carrying a price and a stock count
//   - Order: a customer's order, owning its items and payments
//   - OrderItem: a line on an order with a frozen unit-price snapshot
//   - Payment: money recorded against an order
//   - Debt: the per-order settlement record, derived from items and payments
//
// # Design Principles
//
//  1. **Exact money**: all currency fields are decimal.Decimal, never floats.
//     Settlement is decided by exact comparison of a balance with zero, which
//     float arithmetic cannot be trusted with.
//  2. **Snapshots over joins**: OrderItem.UnitPrice is copied from the product
//     at creation time so historical totals survive catalog price changes.
//  3. **Derived state is recomputed, not authored**: Debt rows are written only
//     by the reconciler; nothing else assigns balance, is_paid, or paid_at.
//  4. **Avoid circular references**: entities reference each other by ID string.
package models
