package dto

import "github.com/spec-kit/bookseller-api/internal/domain"

// BookCreateRequest payload for POST /books.
type BookCreateRequest struct {
	Title           string `json:"book_Title" validate:"required"`
	ISBN            string `json:"ISBN" validate:"required"`
	AuthorID        int64  `json:"author_ID"`
	PublicationDate string `json:"publication_Date" validate:"omitempty,datetime=2006-01-02"`
}

// BookUpdateRequest payload for PUT /books/:id.
type BookUpdateRequest struct {
	Title           string `json:"book_Title" validate:"required_without_all=ISBN AuthorID PublicationDate"`
	ISBN            string `json:"ISBN" validate:"required_without_all=Title AuthorID PublicationDate"`
	AuthorID        int64  `json:"author_ID" validate:"required_without_all=Title ISBN PublicationDate"`
	PublicationDate string `json:"publication_Date" validate:"required_without_all=Title ISBN AuthorID,omitempty,datetime=2006-01-02"`
}

// Fields converts the payload to the columns written on insert.
func (r BookCreateRequest) Fields() domain.BookFields {
	return domain.BookFields{
		Title:           r.Title,
		AuthorID:        optionalID(r.AuthorID),
		ISBN:            r.ISBN,
		PublicationDate: optionalString(r.PublicationDate),
	}
}

// Fields converts the payload to the columns written on update.
func (r BookUpdateRequest) Fields() domain.BookFields {
	return domain.BookFields{
		Title:           r.Title,
		AuthorID:        optionalID(r.AuthorID),
		ISBN:            r.ISBN,
		PublicationDate: optionalString(r.PublicationDate),
	}
}

// BookResponse is one row of GET /books.
type BookResponse struct {
	ID              int64   `json:"book_ID"`
	Title           string  `json:"book_Title"`
	AuthorID        *int64  `json:"author_ID"`
	ISBN            string  `json:"ISBN"`
	PublicationDate *string `json:"publication_Date"`
}

// NewBookResponse renders a stored row.
func NewBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		AuthorID:        b.AuthorID,
		ISBN:            b.ISBN,
		PublicationDate: b.PublicationDate,
	}
}

// optionalID maps the absent value 0 to NULL.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// optionalString maps the absent value "" to NULL.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalFloat maps the absent value 0 to NULL.
func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
