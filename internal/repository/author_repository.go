package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

// AuthorRepository manages author persistence.
type AuthorRepository interface {
	List(ctx context.Context) ([]domain.Author, error)
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Author, error)
	Create(ctx context.Context, fields domain.AuthorFields) (int64, error)
	Update(ctx context.Context, id int64, fields domain.AuthorFields) error
	Delete(ctx context.Context, id int64) error
}

type authorRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorRepository builds the repository.
func NewAuthorRepository(pool *pgxpool.Pool) AuthorRepository {
	return &authorRepository{pool: pool}
}

func (r *authorRepository) List(ctx context.Context) ([]domain.Author, error) {
	const query = `SELECT author_id, first_name, last_name FROM authors`
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Author
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.FirstName, &author.LastName); err != nil {
			return nil, err
		}
		result = append(result, author)
	}
	return result, rows.Err()
}

func (r *authorRepository) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	return r.getByID(ctx, id, false)
}

func (r *authorRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Author, error) {
	return r.getByID(ctx, id, true)
}

func (r *authorRepository) getByID(ctx context.Context, id int64, lock bool) (*domain.Author, error) {
	const query = `
        SELECT author_id, first_name, last_name
        FROM authors WHERE author_id=$1`
	var author domain.Author
	if err := conn(ctx, r.pool).QueryRow(ctx, forUpdate(query, lock), id).Scan(
		&author.ID,
		&author.FirstName,
		&author.LastName,
	); err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) Create(ctx context.Context, fields domain.AuthorFields) (int64, error) {
	const query = `
        INSERT INTO authors (first_name, last_name)
        VALUES ($1,$2)
        RETURNING author_id`
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		fields.FirstName,
		fields.LastName,
	).Scan(&id)
	return id, err
}

// Update writes every column; unsupplied fields land as their empty value.
func (r *authorRepository) Update(ctx context.Context, id int64, fields domain.AuthorFields) error {
	const query = `
        UPDATE authors SET first_name=$1, last_name=$2
        WHERE author_id=$3`
	cmd, err := conn(ctx, r.pool).Exec(ctx, query,
		fields.FirstName,
		fields.LastName,
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

func (r *authorRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, conn(ctx, r.pool), `DELETE FROM authors WHERE author_id=$1`, id)
}

func deleteByID(ctx context.Context, db DBTX, query string, id int64) error {
	cmd, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// detach nulls a foreign key column on every row pointing at parentID.
func detach(ctx context.Context, db DBTX, query string, parentID int64) (int64, error) {
	cmd, err := db.Exec(ctx, query, parentID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
