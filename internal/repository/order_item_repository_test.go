package repository

import (
	"testing"

	"ecoshop/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumItems(t *testing.T) {
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name  string
		items []models.OrderItem
		want  string
	}{
		{
			name:  "no items sums to zero",
			items: nil,
			want:  "0",
		},
		{
			name: "single item",
			items: []models.OrderItem{
				{Quantity: 2, UnitPrice: price("10.00")},
			},
			want: "20.00",
		},
		{
			name: "multiple items",
			items: []models.OrderItem{
				{Quantity: 2, UnitPrice: price("10.00")},
				{Quantity: 1, UnitPrice: price("5.50")},
			},
			want: "25.50",
		},
		{
			name: "no floating point drift",
			items: []models.OrderItem{
				{Quantity: 3, UnitPrice: price("0.10")},
				{Quantity: 1, UnitPrice: price("0.20")},
			},
			want: "0.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumItems(tt.items)
			assert.True(t, got.Equal(price(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSumItemsIdempotent(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 7, UnitPrice: decimal.RequireFromString("19.99")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("0.01")},
	}

	first := SumItems(items)
	second := SumItems(items)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}
