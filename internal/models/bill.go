package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a purchase record for one customer.
type Bill struct {
	// ID is the store-assigned identifier.
	ID int64

	// Customer is the owning customer as joined from the store.
	Customer Customer

	// Items are the ordered line items of the bill.
	Items []LineItem

	// Total is the sum of all line totals. It is derived from Items and
	// stored redundantly; writers keep the two in sync.
	Total decimal.Decimal

	// CreatedAt is assigned by the store when the bill is inserted and
	// never changes afterwards.
	CreatedAt time.Time
}

// LineItem is a single row of a bill.
type LineItem struct {
	// Name is the item name (e.g., "Pen", "Notebook"). Never empty.
	Name string

	// Quantity is the number of units. Always positive.
	Quantity int

	// Price is the unit price with at most two decimal places.
	Price decimal.Decimal
}

// LineTotal returns Quantity × Price.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Stats are the dashboard figures derived from a list of bills.
type Stats struct {
	// Count is the number of bills.
	Count int

	// Revenue is the sum of all bill totals.
	Revenue decimal.Decimal
}
