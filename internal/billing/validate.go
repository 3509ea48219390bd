// Package billing holds the pure bill aggregate logic: item validation,
// totals, money formatting and the item list encoding. Nothing here does I/O.
package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billbook/internal/models"
)

const (
	MaxQuantity = 9999
	// pricePlaces is the number of decimal places a unit price may carry.
	pricePlaces = 2
)

// MaxPrice is the largest accepted unit price.
var MaxPrice = decimal.RequireFromString("999999.99")

// Row is one raw, unparsed row of the item table as typed by the user.
type Row struct {
	Name     string
	Quantity string
	Price    string
}

// ValidateItems parses rows into line items. The first invalid row aborts
// validation with a *ValidationError naming its 1-based index.
//
// An empty row set is valid here; callers that persist a bill must reject it
// themselves (see ErrNoItems).
func ValidateItems(rows []Row) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(rows))
	for i, row := range rows {
		item, err := parseRow(row)
		if err != nil {
			err.Row = i + 1
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseRow(row Row) (models.LineItem, *ValidationError) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return models.LineItem{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}

	qty, err := parseQuantity(row.Quantity)
	if err != nil {
		return models.LineItem{}, &ValidationError{Field: "quantity", Err: err}
	}

	price, err := parsePrice(row.Price)
	if err != nil {
		return models.LineItem{}, &ValidationError{Field: "price", Err: err}
	}

	return models.LineItem{Name: name, Quantity: qty, Price: price}, nil
}

func parseQuantity(s string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || qty < 1 || qty > MaxQuantity {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || price.IsNegative() || price.GreaterThan(MaxPrice) {
		return decimal.Zero, ErrInvalidPrice
	}
	if !price.Equal(price.Truncate(pricePlaces)) {
		return decimal.Zero, ErrPricePrecision
	}
	return price, nil
}
