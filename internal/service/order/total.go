package order

import (
	"math"

	"github.com/shopfusion/backend/internal/models"
)

// amountTolerance absorbs float drift when comparing recomputed totals
// against persisted ones.
const amountTolerance = 0.01

// ItemsTotal sums quantity x unit price over the line items. The same
// function serves checkout (fed live prices) and the stored-order invariant
// check (fed persisted items).
func ItemsTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}

func WithinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= amountTolerance
}

// VerifyTotal checks the stored total against its own line items. It never
// rewrites the total; a mismatch is the caller's problem to surface.
func VerifyTotal(o *models.Order) bool {
	return WithinTolerance(o.TotalAmount, ItemsTotal(o.Items))
}
