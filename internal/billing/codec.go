package billing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billbook/internal/models"
)

// Serialize encodes items as a JSON array of [name, quantity, price]
// triples, e.g. [["Pen",2,10.00],["Notebook",1,45.50]]. Prices are written
// with exactly two decimals.
func Serialize(items []models.LineItem) (string, error) {
	triples := make([][3]any, len(items))
	for i, item := range items {
		triples[i] = [3]any{item.Name, item.Quantity, json.Number(item.Price.StringFixed(pricePlaces))}
	}
	b, err := json.Marshal(triples)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(b), nil
}

// Deserialize decodes the encoding produced by Serialize. Any JSON number is
// accepted for the price, so lists written as [["Pen",2,10.0]] decode too.
func Deserialize(text string) ([]models.LineItem, error) {
	var triples [][]json.RawMessage
	if err := json.Unmarshal([]byte(text), &triples); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]models.LineItem, 0, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("item %d: expected 3 fields, got %d", i+1, len(t))
		}
		var item models.LineItem
		if err := json.Unmarshal(t[0], &item.Name); err != nil {
			return nil, fmt.Errorf("item %d: bad name: %w", i+1, err)
		}
		if err := json.Unmarshal(t[1], &item.Quantity); err != nil {
			return nil, fmt.Errorf("item %d: bad quantity: %w", i+1, err)
		}
		var price json.Number
		if err := json.Unmarshal(t[2], &price); err != nil {
			return nil, fmt.Errorf("item %d: bad price: %w", i+1, err)
		}
		p, err := decimal.NewFromString(price.String())
		if err != nil {
			return nil, fmt.Errorf("item %d: bad price: %w", i+1, err)
		}
		item.Price = p
		items = append(items, item)
	}
	return items, nil
}
