package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/models"
)

func TestItemsTotal(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, UnitPrice: 10.00},
		{Quantity: 1, UnitPrice: 25.00},
	}
	require.InDelta(t, 45.00, ItemsTotal(items), 0.001)
	require.Zero(t, ItemsTotal(nil))
}

func TestWithinTolerance(t *testing.T) {
	require.True(t, WithinTolerance(45.00, 45.00))
	require.True(t, WithinTolerance(45.00, 45.009))
	require.True(t, WithinTolerance(45.009, 45.00))
	require.False(t, WithinTolerance(45.00, 45.02))
}

func TestVerifyTotal(t *testing.T) {
	o := &models.Order{
		TotalAmount: 45.00,
		Items: []models.OrderItem{
			{Quantity: 2, UnitPrice: 10.00},
			{Quantity: 1, UnitPrice: 25.00},
		},
	}
	require.True(t, VerifyTotal(o))

	o.TotalAmount = 44.50
	require.False(t, VerifyTotal(o))
}
