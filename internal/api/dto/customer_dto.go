package dto

import "github.com/spec-kit/bookseller-api/internal/domain"

// CustomerCreateRequest payload for POST /customers.
type CustomerCreateRequest struct {
	Name  string `json:"customer_Name" validate:"required"`
	Phone string `json:"customer_Phone" validate:"required"`
	Email string `json:"customer_Email"`
}

// CustomerUpdateRequest payload for PUT /customers/:id.
type CustomerUpdateRequest struct {
	Name  string `json:"customer_Name" validate:"required_without_all=Phone Email"`
	Phone string `json:"customer_Phone" validate:"required_without_all=Name Email"`
	Email string `json:"customer_Email" validate:"required_without_all=Name Phone"`
}

// Fields converts the payload to the columns written on insert.
func (r CustomerCreateRequest) Fields() domain.CustomerFields {
	return domain.CustomerFields{Name: r.Name, Phone: r.Phone, Email: r.Email}
}

// Fields converts the payload to the columns written on update.
func (r CustomerUpdateRequest) Fields() domain.CustomerFields {
	return domain.CustomerFields{Name: r.Name, Phone: r.Phone, Email: r.Email}
}

// CustomerResponse is one row of GET /customers.
type CustomerResponse struct {
	ID    int64  `json:"customer_ID"`
	Name  string `json:"customer_Name"`
	Phone string `json:"customer_Phone"`
	Email string `json:"customer_Email"`
}

// NewCustomerResponse renders a stored row.
func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}
