package domain

// Author is a row of the authors table.
type Author struct {
	ID        int64
	FirstName string
	LastName  string
}

// AuthorFields is the writable column set. Empty strings mean "not supplied".
type AuthorFields struct {
	FirstName string
	LastName  string
}

// MergeAuthor overlays supplied fields on an existing row.
func MergeAuthor(existing Author, patch AuthorFields) AuthorFields {
	merged := AuthorFields{FirstName: existing.FirstName, LastName: existing.LastName}
	if patch.FirstName != "" {
		merged.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		merged.LastName = patch.LastName
	}
	return merged
}
