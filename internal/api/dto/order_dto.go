package dto

import "github.com/spec-kit/bookseller-api/internal/domain"

// OrderCreateRequest payload for POST /orders.
type OrderCreateRequest struct {
	Date       string  `json:"order_Date" validate:"required,datetime=2006-01-02"`
	Value      float64 `json:"order_Value" validate:"required"`
	CustomerID int64   `json:"customer_ID" validate:"required"`
	BookID     int64   `json:"book_ID" validate:"required"`
}

// OrderUpdateRequest payload for PUT /orders/:id.
type OrderUpdateRequest struct {
	Date       string  `json:"order_Date" validate:"required_without_all=Value CustomerID BookID,omitempty,datetime=2006-01-02"`
	Value      float64 `json:"order_Value" validate:"required_without_all=Date CustomerID BookID"`
	CustomerID int64   `json:"customer_ID" validate:"required_without_all=Date Value BookID"`
	BookID     int64   `json:"book_ID" validate:"required_without_all=Date Value CustomerID"`
}

// Fields converts the payload to the columns written on insert.
func (r OrderCreateRequest) Fields() domain.OrderFields {
	return domain.OrderFields{
		Date:       optionalString(r.Date),
		Value:      optionalFloat(r.Value),
		CustomerID: optionalID(r.CustomerID),
		BookID:     optionalID(r.BookID),
	}
}

// Fields converts the payload to the columns written on update.
func (r OrderUpdateRequest) Fields() domain.OrderFields {
	return domain.OrderFields{
		Date:       optionalString(r.Date),
		Value:      optionalFloat(r.Value),
		CustomerID: optionalID(r.CustomerID),
		BookID:     optionalID(r.BookID),
	}
}

// OrderResponse is one row of GET /orders.
type OrderResponse struct {
	ID         int64    `json:"order_ID"`
	Date       *string  `json:"order_Date"`
	Value      *float64 `json:"order_Value"`
	CustomerID *int64   `json:"customer_ID"`
	BookID     *int64   `json:"book_ID"`
}

// NewOrderResponse renders a stored row.
func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		Date:       o.Date,
		Value:      o.Value,
		CustomerID: o.CustomerID,
		BookID:     o.BookID,
	}
}
