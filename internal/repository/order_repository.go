package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

// OrderRepository manages order persistence.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, fields domain.OrderFields) (int64, error)
	Update(ctx context.Context, id int64, fields domain.OrderFields) error
	Delete(ctx context.Context, id int64) error
	ClearCustomer(ctx context.Context, customerID int64) (int64, error)
	ClearBook(ctx context.Context, bookID int64) (int64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository builds the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `order_id, to_char(order_date, 'YYYY-MM-DD'), order_value::float8, customer_id, book_id`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.Date, &o.Value, &o.CustomerID, &o.BookID)
	return o, err
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+orderColumns+` FROM orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, false)
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, true)
}

func (r *orderRepository) getByID(ctx context.Context, id int64, lock bool) (*domain.Order, error) {
	query := forUpdate(`SELECT `+orderColumns+` FROM orders WHERE order_id=$1`, lock)
	o, err := scanOrder(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, fields domain.OrderFields) (int64, error) {
	const query = `
        INSERT INTO orders (order_date, order_value, customer_id, book_id)
        VALUES ($1,$2,$3,$4)
        RETURNING order_id`
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		fields.Date,
		fields.Value,
		fields.CustomerID,
		fields.BookID,
	).Scan(&id)
	return id, err
}

func (r *orderRepository) Update(ctx context.Context, id int64, fields domain.OrderFields) error {
	const query = `
        UPDATE orders SET order_date=$1, order_value=$2, customer_id=$3, book_id=$4
        WHERE order_id=$5`
	cmd, err := conn(ctx, r.pool).Exec(ctx, query,
		fields.Date,
		fields.Value,
		fields.CustomerID,
		fields.BookID,
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

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, conn(ctx, r.pool), `DELETE FROM orders WHERE order_id=$1`, id)
}

func (r *orderRepository) ClearCustomer(ctx context.Context, customerID int64) (int64, error) {
	return detach(ctx, conn(ctx, r.pool), `UPDATE orders SET customer_id = NULL WHERE customer_id=$1`, customerID)
}

func (r *orderRepository) ClearBook(ctx context.Context, bookID int64) (int64, error) {
	return detach(ctx, conn(ctx, r.pool), `UPDATE orders SET book_id = NULL WHERE book_id=$1`, bookID)
}
