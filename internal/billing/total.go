package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billbook/internal/models"
)

// ComputeTotal returns the sum of quantity × price over items. It is zero for
// an empty slice.
func ComputeTotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// PreviewTotal is the running total shown while a bill is being typed in.
// Rows whose quantity or price do not parse are skipped rather than
// reported, so a half-filled table still shows a figure.
func PreviewTotal(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		qty, err := parseQuantity(row.Quantity)
		if err != nil {
			continue
		}
		price, err := parsePrice(row.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Revenue sums the totals of bills.
func Revenue(bills []*models.Bill) decimal.Decimal {
	revenue := decimal.Zero
	for _, b := range bills {
		revenue = revenue.Add(b.Total)
	}
	return revenue
}

// FormatMoney renders amount with two decimals behind symbol, e.g. "Rs.65.50".
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(pricePlaces)
}
