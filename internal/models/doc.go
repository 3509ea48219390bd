// Package models defines the core domain models for billbook.
//
// # Models
//
//   - Customer: the person a bill is issued to, identified by (name, phone)
//   - Bill: a purchase record for one customer with an ordered item list
//   - LineItem: a (name, quantity, unit price) triple within a bill
//
// Line items are not persisted on their own. They are stored as a serialized
// list inside the bill record (see package billing).
//
// Amounts use decimal.Decimal so that totals never drift the way float
// accumulation does.
package models
