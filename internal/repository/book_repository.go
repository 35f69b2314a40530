package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

// BookRepository manages book persistence.
type BookRepository interface {
	List(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, fields domain.BookFields) (int64, error)
	Update(ctx context.Context, id int64, fields domain.BookFields) error
	Delete(ctx context.Context, id int64) error
	// ClearAuthor nulls author_id on every book written by authorID.
	ClearAuthor(ctx context.Context, authorID int64) (int64, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository builds the repository.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `book_id, title, author_id, isbn, to_char(publication_date, 'YYYY-MM-DD')`

func scanBook(row pgx.Row) (domain.Book, error) {
	var book domain.Book
	err := row.Scan(&book.ID, &book.Title, &book.AuthorID, &book.ISBN, &book.PublicationDate)
	return book, err
}

func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+bookColumns+` FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, book)
	}
	return result, rows.Err()
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return r.getByID(ctx, id, false)
}

func (r *bookRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	return r.getByID(ctx, id, true)
}

func (r *bookRepository) getByID(ctx context.Context, id int64, lock bool) (*domain.Book, error) {
	query := forUpdate(`SELECT `+bookColumns+` FROM books WHERE book_id=$1`, lock)
	book, err := scanBook(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Create(ctx context.Context, fields domain.BookFields) (int64, error) {
	const query = `
        INSERT INTO books (title, author_id, isbn, publication_date)
        VALUES ($1,$2,$3,$4)
        RETURNING book_id`
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		fields.Title,
		fields.AuthorID,
		fields.ISBN,
		fields.PublicationDate,
	).Scan(&id)
	return id, err
}

// Update writes every column; unsupplied fields land as "" or NULL.
func (r *bookRepository) Update(ctx context.Context, id int64, fields domain.BookFields) error {
	const query = `
        UPDATE books SET title=$1, author_id=$2, isbn=$3, publication_date=$4
        WHERE book_id=$5`
	cmd, err := conn(ctx, r.pool).Exec(ctx, query,
		fields.Title,
		fields.AuthorID,
		fields.ISBN,
		fields.PublicationDate,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, conn(ctx, r.pool), `DELETE FROM books WHERE book_id=$1`, id)
}

func (r *bookRepository) ClearAuthor(ctx context.Context, authorID int64) (int64, error) {
	return detach(ctx, conn(ctx, r.pool), `UPDATE books SET author_id = NULL WHERE author_id=$1`, authorID)
}
