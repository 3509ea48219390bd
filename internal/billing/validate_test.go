package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Row
		wantErr error
		wantRow int
	}{
		{
			name: "valid rows",
			rows: []Row{
				{Name: "Pen", Quantity: "2", Price: "10.00"},
				{Name: "  Notebook ", Quantity: " 1", Price: "45.5"},
			},
		},
		{
			name: "empty row set is accepted",
			rows: nil,
		},
		{
			name:    "zero quantity",
			rows:    []Row{{Name: "Pen", Quantity: "0", Price: "10"}},
			wantErr: ErrInvalidQuantity,
			wantRow: 1,
		},
		{
			name: "negative quantity on second row",
			rows: []Row{
				{Name: "Pen", Quantity: "1", Price: "10"},
				{Name: "Ink", Quantity: "-1", Price: "10"},
			},
			wantErr: ErrInvalidQuantity,
			wantRow: 2,
		},
		{
			name:    "quantity above limit",
			rows:    []Row{{Name: "Pen", Quantity: "10000", Price: "1"}},
			wantErr: ErrInvalidQuantity,
			wantRow: 1,
		},
		{
			name:    "fractional quantity",
			rows:    []Row{{Name: "Pen", Quantity: "1.5", Price: "1"}},
			wantErr: ErrInvalidQuantity,
			wantRow: 1,
		},
		{
			name: "unparseable price",
			rows: []Row{
				{Name: "Pen", Quantity: "1", Price: "1"},
				{Name: "Ink", Quantity: "1", Price: "2"},
				{Name: "Pad", Quantity: "1", Price: "abc"},
			},
			wantErr: ErrInvalidPrice,
			wantRow: 3,
		},
		{
			name:    "negative price",
			rows:    []Row{{Name: "Pen", Quantity: "1", Price: "-0.01"}},
			wantErr: ErrInvalidPrice,
			wantRow: 1,
		},
		{
			name:    "too many decimals",
			rows:    []Row{{Name: "Pen", Quantity: "1", Price: "1.234"}},
			wantErr: ErrPricePrecision,
			wantRow: 1,
		},
		{
			name:    "whitespace name",
			rows:    []Row{{Name: "   ", Quantity: "1", Price: "1"}},
			wantErr: ErrEmptyName,
			wantRow: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ValidateItems(tt.rows)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Len(t, items, len(tt.rows))
				return
			}

			require.Error(t, err)
			assert.Nil(t, items)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantRow, ve.Row)
			assert.Contains(t, err.Error(), "row ")
			assert.True(t, IsValidation(err))
		})
	}
}

func TestValidateItems_TrimsAndParses(t *testing.T) {
	items, err := ValidateItems([]Row{{Name: " Notebook ", Quantity: "3", Price: "45.50"}})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Notebook", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("45.5")))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Row: 4, Field: "price", Err: ErrInvalidPrice}
	assert.Equal(t, "row 4: price: "+ErrInvalidPrice.Error(), err.Error())

	err = &ValidationError{Field: "email", Err: ErrInvalidEmail}
	assert.Equal(t, "email: "+ErrInvalidEmail.Error(), err.Error())

	err = &ValidationError{Err: ErrNoItems}
	assert.Equal(t, ErrNoItems.Error(), err.Error())
}
