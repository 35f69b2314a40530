package dto

import "github.com/spec-kit/bookseller-api/internal/domain"

// AuthorCreateRequest payload for POST /authors.
type AuthorCreateRequest struct {
	FirstName string `json:"author_FirstName" validate:"required"`
	LastName  string `json:"author_LastName" validate:"required"`
}

// AuthorUpdateRequest payload for PUT /authors/:id.
type AuthorUpdateRequest struct {
	FirstName string `json:"author_FirstName" validate:"required_without_all=LastName"`
	LastName  string `json:"author_LastName" validate:"required_without_all=FirstName"`
}

// Fields converts the payload to the columns written on insert.
func (r AuthorCreateRequest) Fields() domain.AuthorFields {
	return domain.AuthorFields{FirstName: r.FirstName, LastName: r.LastName}
}

// Fields converts the payload to the columns written on update.
func (r AuthorUpdateRequest) Fields() domain.AuthorFields {
	return domain.AuthorFields{FirstName: r.FirstName, LastName: r.LastName}
}

// AuthorResponse is one row of GET /authors.
type AuthorResponse struct {
	ID        int64  `json:"author_ID"`
	FirstName string `json:"author_FirstName"`
	LastName  string `json:"author_LastName"`
}

// NewAuthorResponse renders a stored row.
func NewAuthorResponse(a domain.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}
}
