package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookseller-api/internal/api/dto"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	return de
}

func TestValidate_CreateMode(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     any
		message string
	}{
		{
			name:    "author empty",
			req:     &dto.AuthorCreateRequest{},
			message: "Missing required fields: author_FirstName and author_LastName are mandatory",
		},
		{
			name:    "author one missing",
			req:     &dto.AuthorCreateRequest{FirstName: "A"},
			message: "Missing required field: author_LastName is mandatory",
		},
		{
			name:    "book empty",
			req:     &dto.BookCreateRequest{},
			message: "Missing required fields: book_Title and ISBN are mandatory",
		},
		{
			name:    "customer empty",
			req:     &dto.CustomerCreateRequest{Email: "c@example.com"},
			message: "Missing required fields: customer_Name and customer_Phone are mandatory",
		},
		{
			name:    "order empty",
			req:     &dto.OrderCreateRequest{},
			message: "Missing required fields: order_Date, order_Value, customer_ID, and book_ID are mandatory",
		},
		{
			name:    "register empty",
			req:     &dto.RegisterRequest{},
			message: "Missing required fields: username, password, and role are mandatory",
		},
		{
			name:    "login empty",
			req:     &dto.LoginRequest{},
			message: "Missing required fields: username and password are mandatory",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			de := domainErr(t, v.Validate(Create, tc.req))
			assert.Equal(t, tc.message, de.Message)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)
		})
	}
}

func TestValidate_CreateModeAccepts(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(Create, &dto.AuthorCreateRequest{FirstName: "A", LastName: "B"}))
	assert.NoError(t, v.Validate(Create, &dto.BookCreateRequest{Title: "T", ISBN: "1"}))
	assert.NoError(t, v.Validate(Create, &dto.OrderCreateRequest{Date: "2024-01-01", Value: 9.5, CustomerID: 1, BookID: 2}))
}

func TestValidate_UpdateMode(t *testing.T) {
	v := New()

	de := domainErr(t, v.Validate(Update, &dto.AuthorUpdateRequest{}))
	assert.Equal(t, "At least one of 'author_FirstName' or 'author_LastName' must be provided", de.Message)

	de = domainErr(t, v.Validate(Update, &dto.BookUpdateRequest{}))
	assert.Equal(t, "At least one of 'book_Title', 'ISBN', 'author_ID', or 'publication_Date' must be provided", de.Message)
	assert.Equal(t, []string{"book_Title", "ISBN", "author_ID", "publication_Date"}, de.Details["fields"])

	de = domainErr(t, v.Validate(Update, &dto.CustomerUpdateRequest{}))
	assert.Equal(t, "At least one of 'customer_Name', 'customer_Phone', or 'customer_Email' must be provided", de.Message)

	de = domainErr(t, v.Validate(Update, &dto.OrderUpdateRequest{}))
	assert.Equal(t, "At least one of 'order_Date', 'order_Value', 'customer_ID', or 'book_ID' must be provided", de.Message)

	assert.NoError(t, v.Validate(Update, &dto.BookUpdateRequest{Title: "only title"}))
	assert.NoError(t, v.Validate(Update, &dto.OrderUpdateRequest{BookID: 3}))
}

func TestValidate_DateFormat(t *testing.T) {
	v := New()

	de := domainErr(t, v.Validate(Create, &dto.BookCreateRequest{Title: "T", ISBN: "1", PublicationDate: "01/02/2024"}))
	assert.Equal(t, "publication_Date must be a date in YYYY-MM-DD format", de.Message)

	de = domainErr(t, v.Validate(Update, &dto.OrderUpdateRequest{Date: "yesterday"}))
	assert.Equal(t, "order_Date must be a date in YYYY-MM-DD format", de.Message)
}

func TestJoinFields(t *testing.T) {
	assert.Equal(t, "", joinFields(nil, "and"))
	assert.Equal(t, "a", joinFields([]string{"a"}, "and"))
	assert.Equal(t, "a or b", joinFields([]string{"a", "b"}, "or"))
	assert.Equal(t, "a, b, and c", joinFields([]string{"a", "b", "c"}, "and"))
}
