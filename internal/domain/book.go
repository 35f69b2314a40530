package domain

// Book is a row of the books table. AuthorID is nil once the author is deleted.
type Book struct {
	ID              int64
	Title           string
	AuthorID        *int64
	ISBN            string
	PublicationDate *string
}

// BookFields is the writable column set. Nil pointers are stored as NULL.
type BookFields struct {
	Title           string
	AuthorID        *int64
	ISBN            string
	PublicationDate *string
}

// MergeBook overlays supplied fields on an existing row.
func MergeBook(existing Book, patch BookFields) BookFields {
	merged := BookFields{
		Title:           existing.Title,
		AuthorID:        existing.AuthorID,
		ISBN:            existing.ISBN,
		PublicationDate: existing.PublicationDate,
	}
	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.AuthorID != nil {
		merged.AuthorID = patch.AuthorID
	}
	if patch.ISBN != "" {
		merged.ISBN = patch.ISBN
	}
	if patch.PublicationDate != nil {
		merged.PublicationDate = patch.PublicationDate
	}
	return merged
}
