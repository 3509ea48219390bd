// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDatabase marks every failure coming from the relational store:
// connectivity, syntax or constraint violations. Implementations wrap the
// driver error so that errors.Is(err, ErrDatabase) holds and the cause stays
// reachable.
var ErrDatabase = errors.New("database error")

// BillRow is a bills row joined with its customer.
type BillRow struct {
	ID         int64
	CustomerID int64
	Name       string
	Email      string
	Phone      string
	Items      string // serialized line items
	Total      decimal.Decimal
	CreatedAt  time.Time
}

// Store defines the persistence gateway for customers and bills.
// This abstraction allows swapping storage backends (SQLite, MySQL)
// without changing the registry.
//
// Every mutating call commits on its own; there are no multi-statement
// transactions.
type Store interface {
	// EnsureSchema creates the customers and bills tables if they are absent.
	// It is idempotent and meant to run once at startup.
	EnsureSchema(ctx context.Context) error

	// AddCustomer returns the id of the customer matching (name, phone),
	// inserting one first if none exists. A differing email on an existing
	// customer is ignored.
	AddCustomer(ctx context.Context, name, email, phone string) (int64, error)

	// AddBill inserts a bill and returns its id and creation time.
	AddBill(ctx context.Context, customerID int64, items string, total decimal.Decimal) (int64, time.Time, error)

	// UpdateBill overwrites a bill's items and total. Updating an id that
	// does not exist affects no rows and is not an error.
	UpdateBill(ctx context.Context, id int64, items string, total decimal.Decimal) error

	// DeleteBill removes a bill.
	DeleteBill(ctx context.Context, id int64) error

	// GetAllBills returns every bill joined with its customer, newest first.
	GetAllBills(ctx context.Context) ([]BillRow, error)

	// Close releases any resources held by the store.
	Close() error
}
