package domain

// Order is a row of the orders table. CustomerID and BookID are nulled when
// the referenced rows are deleted.
type Order struct {
	ID         int64
	Date       *string
	Value      *float64
	CustomerID *int64
	BookID     *int64
}

// OrderFields is the writable column set. Nil pointers are stored as NULL.
type OrderFields struct {
	Date       *string
	Value      *float64
	CustomerID *int64
	BookID     *int64
}

// MergeOrder overlays supplied fields on an existing row.
func MergeOrder(existing Order, patch OrderFields) OrderFields {
	merged := OrderFields{
		Date:       existing.Date,
		Value:      existing.Value,
		CustomerID: existing.CustomerID,
		BookID:     existing.BookID,
	}
	if patch.Date != nil {
		merged.Date = patch.Date
	}
	if patch.Value != nil {
		merged.Value = patch.Value
	}
	if patch.CustomerID != nil {
		merged.CustomerID = patch.CustomerID
	}
	if patch.BookID != nil {
		merged.BookID = patch.BookID
	}
	return merged
}
