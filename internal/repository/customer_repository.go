package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

// CustomerRepository manages customer persistence.
type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, fields domain.CustomerFields) (int64, error)
	Update(ctx context.Context, id int64, fields domain.CustomerFields) error
	Delete(ctx context.Context, id int64) error
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository builds the repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT customer_id, name, phone, email FROM customers`
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getByID(ctx, id, false)
}

func (r *customerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getByID(ctx, id, true)
}

func (r *customerRepository) getByID(ctx context.Context, id int64, lock bool) (*domain.Customer, error) {
	const query = `
        SELECT customer_id, name, phone, email
        FROM customers WHERE customer_id=$1`
	var c domain.Customer
	if err := conn(ctx, r.pool).QueryRow(ctx, forUpdate(query, lock), id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, fields domain.CustomerFields) (int64, error) {
	const query = `
        INSERT INTO customers (name, phone, email)
        VALUES ($1,$2,$3)
        RETURNING customer_id`
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		fields.Name,
		fields.Phone,
		fields.Email,
	).Scan(&id)
	return id, err
}

func (r *customerRepository) Update(ctx context.Context, id int64, fields domain.CustomerFields) error {
	const query = `
        UPDATE customers SET name=$1, phone=$2, email=$3
        WHERE customer_id=$4`
	cmd, err := conn(ctx, r.pool).Exec(ctx, query,
		fields.Name,
		fields.Phone,
		fields.Email,
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

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, conn(ctx, r.pool), `DELETE FROM customers WHERE customer_id=$1`, id)
}
