package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxConnIface) {
	t.Helper()
	mock, err := pgxmock.NewConn(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mock.Close(context.Background())
	})
	return New(mock, nil), mock
}

func ptr[T any](v T) *T { return &v }

var customerCols = []string{"id", "firstname", "lastname", "street", "city", "state", "zip"}

func TestInitialize_RunsResetStatementsInOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	stmts, err := database.ResetStatements()
	require.NoError(t, err)

	// twice: the reset is idempotent and issues the same statements each time
	for range 2 {
		for _, stmt := range stmts {
			mock.ExpectExec(stmt).WillReturnResult(pgxmock.NewResult("DDL", 0))
		}
	}

	require.NoError(t, repo.Initialize(ctx))
	require.NoError(t, repo.Initialize(ctx))
}

func TestInitialize_PropagatesStoreError(t *testing.T) {
	repo, mock := newMockRepo(t)

	stmts, err := database.ResetStatements()
	require.NoError(t, err)

	boom := errors.New("connection refused")
	mock.ExpectExec(stmts[0]).WillReturnError(boom)

	err = repo.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestGetCustomers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		pgxmock.NewRows(customerCols).
			AddRow(int64(1), "A", "B", "S", "C", "ST", 10001).
			AddRow(int64(2), "Ada", "Lovelace", "1 Analytical Way", "London", "LD", 12345),
	)

	customers, err := repo.GetCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, model.Customer{ID: 1, FirstName: "A", LastName: "B", Street: "S", City: "C", State: "ST", Zip: 10001}, customers[0])
	assert.Equal(t, "Lovelace", customers[1].LastName)
}

func TestGetCustomers_EmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectCustomers).WillReturnRows(pgxmock.NewRows(customerCols))

	customers, err := repo.GetCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestGetCustomers_RejectsUnexpectedColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		pgxmock.NewRows([]string{"id", "firstname"}).AddRow(int64(1), "A"),
	)

	_, err := repo.GetCustomers(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedColumns)
}

func TestGetCustomer(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectCustomerByID).WithArgs(int64(7)).WillReturnRows(
		pgxmock.NewRows(customerCols).AddRow(int64(7), "A", "B", "S", "C", "ST", 10001),
	)

	c, err := repo.GetCustomer(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, 10001, c.Zip)
}

func TestGetCustomer_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectCustomerByID).WithArgs(int64(404)).WillReturnRows(pgxmock.NewRows(customerCols))

	_, err := repo.GetCustomer(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customers", nf.TableName())
	assert.Equal(t, int64(404), nf.ID)
	assert.Contains(t, err.Error(), "table:customers:")
}

func TestUpsertCustomer(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := model.Customer{ID: 99, FirstName: "A", LastName: "B", Street: "S", City: "C", State: "ST", Zip: 10001}

	// the second insert of the same tuple hits the constraint and affects nothing
	mock.ExpectExec(insertCustomer).WithArgs("A", "B", "S", "C", "ST", 10001).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertCustomer).WithArgs("A", "B", "S", "C", "ST", 10001).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.UpsertCustomer(context.Background(), c))
	require.NoError(t, repo.UpsertCustomer(context.Background(), c))
}

func TestUpsertCustomer_StoreError(t *testing.T) {
	repo, mock := newMockRepo(t)

	pgErr := &pgconn.PgError{Code: "23502", TableName: "customers", ColumnName: "zip"}
	mock.ExpectExec(insertCustomer).WithArgs("A", "B", "S", "C", "ST", 0).WillReturnError(pgErr)

	err := repo.UpsertCustomer(context.Background(), model.Customer{FirstName: "A", LastName: "B", Street: "S", City: "C", State: "ST"})
	require.Error(t, err)

	var got *pgconn.PgError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "23502", got.Code)
}

func TestDeleteCustomer_AbsentIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(deleteCustomer).WithArgs(int64(12)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.DeleteCustomer(context.Background(), 12))
}
