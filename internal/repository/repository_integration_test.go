package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

const testSchema = `
DROP TABLE IF EXISTS users, authors, books, customers, orders;
CREATE TABLE users     (username TEXT PRIMARY KEY, password_hash TEXT NOT NULL, role TEXT NOT NULL);
CREATE TABLE authors   (author_id SERIAL PRIMARY KEY, first_name TEXT NOT NULL DEFAULT '', last_name TEXT NOT NULL DEFAULT '');
CREATE TABLE books     (book_id SERIAL PRIMARY KEY, title TEXT NOT NULL DEFAULT '', author_id INT, isbn TEXT NOT NULL DEFAULT '', publication_date DATE);
CREATE TABLE customers (customer_id SERIAL PRIMARY KEY, name TEXT NOT NULL DEFAULT '', phone TEXT NOT NULL DEFAULT '', email TEXT NOT NULL DEFAULT '');
CREATE TABLE orders    (order_id SERIAL PRIMARY KEY, order_date DATE, order_value NUMERIC(10,2), customer_id INT, book_id INT);
`

// setupPool connects to BOOKSELLER_TEST_DATABASE_URL and recreates the schema.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("BOOKSELLER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BOOKSELLER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, testSchema)
	require.NoError(t, err)
	return pool
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func TestUserRepository(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)

	_, err := users.FindByUsername(ctx, "ann")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, users.Insert(ctx, &domain.User{Username: "ann", PasswordHash: "hash", Role: "staff"}))
	assert.ErrorIs(t, users.Insert(ctx, &domain.User{Username: "ann", PasswordHash: "other", Role: "admin"}), ErrUserExists)

	found, err := users.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{Username: "ann", PasswordHash: "hash", Role: "staff"}, found)
}

func TestAuthorDelete_DetachesBooksInOneTransaction(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	authors := NewAuthorRepository(pool)
	books := NewBookRepository(pool)
	tx := NewTransactor(pool)

	authorID, err := authors.Create(ctx, domain.AuthorFields{FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	bookID, err := books.Create(ctx, domain.BookFields{Title: "T", AuthorID: &authorID, ISBN: "123", PublicationDate: strPtr("2024-01-01")})
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := books.ClearAuthor(ctx, authorID); err != nil {
			return err
		}
		return authors.Delete(ctx, authorID)
	})
	require.NoError(t, err)

	book, err := books.GetByID(ctx, bookID)
	require.NoError(t, err)
	assert.Nil(t, book.AuthorID)
	assert.Equal(t, "2024-01-01", *book.PublicationDate)

	list, err := authors.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAuthorDelete_MissingParentRollsBackDetach(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	authors := NewAuthorRepository(pool)
	books := NewBookRepository(pool)
	tx := NewTransactor(pool)

	bookID, err := books.Create(ctx, domain.BookFields{Title: "Orphan", AuthorID: int64Ptr(999), ISBN: "9"})
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := books.ClearAuthor(ctx, 999); err != nil {
			return err
		}
		return authors.Delete(ctx, 999)
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	book, err := books.GetByID(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, book.AuthorID)
	assert.Equal(t, int64(999), *book.AuthorID)
}

func TestAuthorGetByIDForUpdate_LocksRow(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	authors := NewAuthorRepository(pool)
	tx := NewTransactor(pool)

	id, err := authors.Create(ctx, domain.AuthorFields{FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(txCtx context.Context) error {
		locked, err := authors.GetByIDForUpdate(txCtx, id)
		require.NoError(t, err)
		assert.Equal(t, "A", locked.FirstName)

		_, err = pool.Exec(ctx, `SELECT 1 FROM authors WHERE author_id=$1 FOR UPDATE NOWAIT`, id)
		assert.Error(t, err, "row should be locked by the open transaction")
		return nil
	})
	require.NoError(t, err)

	_, err = authors.GetByIDForUpdate(ctx, id+100)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestBookUpdate_OverwritesUnsuppliedColumns(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	books := NewBookRepository(pool)

	id, err := books.Create(ctx, domain.BookFields{Title: "Old", AuthorID: int64Ptr(1), ISBN: "111", PublicationDate: strPtr("2020-05-06")})
	require.NoError(t, err)

	require.NoError(t, books.Update(ctx, id, domain.BookFields{Title: "New"}))

	book, err := books.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", book.Title)
	assert.Equal(t, "", book.ISBN)
	assert.Nil(t, book.AuthorID)
	assert.Nil(t, book.PublicationDate)

	assert.ErrorIs(t, books.Update(ctx, id+100, domain.BookFields{Title: "x"}), pgx.ErrNoRows)
}

func TestOrderAndCustomerRepositories(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	customers := NewCustomerRepository(pool)
	orders := NewOrderRepository(pool)

	customerID, err := customers.Create(ctx, domain.CustomerFields{Name: "Cy", Phone: "555"})
	require.NoError(t, err)
	value := 19.99
	orderID, err := orders.Create(ctx, domain.OrderFields{Date: strPtr("2024-02-03"), Value: &value, CustomerID: &customerID, BookID: int64Ptr(7)})
	require.NoError(t, err)

	cleared, err := orders.ClearCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
	require.NoError(t, customers.Delete(ctx, customerID))

	_, err = orders.ClearBook(ctx, 7)
	require.NoError(t, err)

	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orderID, list[0].ID)
	assert.InDelta(t, 19.99, *list[0].Value, 0.001)
	assert.Nil(t, list[0].CustomerID)
	assert.Nil(t, list[0].BookID)

	assert.ErrorIs(t, customers.Delete(ctx, customerID), pgx.ErrNoRows)
	require.NoError(t, orders.Delete(ctx, orderID))
}

func TestRedisUserRepository(t *testing.T) {
	addr := os.Getenv("BOOKSELLER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BOOKSELLER_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Del(ctx, userKeyPrefix+"ann").Err())

	users := NewRedisUserRepository(client)

	_, err := users.FindByUsername(ctx, "ann")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, users.Insert(ctx, &domain.User{Username: "ann", PasswordHash: "hash", Role: "staff"}))
	assert.ErrorIs(t, users.Insert(ctx, &domain.User{Username: "ann", PasswordHash: "x", Role: "x"}), ErrUserExists)

	found, err := users.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, domain.Role("staff"), found.Role)
}
