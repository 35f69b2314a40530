package domain

// Customer is a row of the customers table.
type Customer struct {
	ID    int64
	Name  string
	Phone string
	Email string
}

// CustomerFields is the writable column set.
type CustomerFields struct {
	Name  string
	Phone string
	Email string
}

// MergeCustomer overlays supplied fields on an existing row.
func MergeCustomer(existing Customer, patch CustomerFields) CustomerFields {
	merged := CustomerFields{Name: existing.Name, Phone: existing.Phone, Email: existing.Email}
	if patch.Name != "" {
		merged.Name = patch.Name
	}
	if patch.Phone != "" {
		merged.Phone = patch.Phone
	}
	if patch.Email != "" {
		merged.Email = patch.Email
	}
	return merged
}
