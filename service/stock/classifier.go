// Package stock holds the read-side stock services: the classifier, the
// inventory listing, the cached summary, and bulk import.
package stock

// Status classifies a ledger row's stock level.
type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
)

// Classify derives the stock status from quantity and reorder point. Pure;
// this is the single implementation used by the listing, the summary, the
// GraphQL layer, and the report job — call sites must not re-derive it.
func Classify(quantity, reorderPoint int64) Status {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= reorderPoint:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
