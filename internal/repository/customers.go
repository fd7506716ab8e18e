package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
)

const customerColumns = 7

const (
	selectCustomers = `SELECT id, firstName, lastName, street, city, state, zip FROM customers`

	selectCustomerByID = selectCustomers + ` WHERE customers.id = $1`

	// Identical customers are silently skipped, never updated.
	insertCustomer = `INSERT INTO customers (firstName, lastName, street, city, state, zip)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT ON CONSTRAINT same_customer DO NOTHING`

	deleteCustomer = `DELETE FROM customers WHERE customers.id = $1`
)

func scanCustomer(row pgx.Rows) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Street, &c.City, &c.State, &c.Zip)
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

// GetCustomers returns every customer in the store's scan order.
func (r *Repository) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, selectCustomers)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
	}
	return collect(rows, customerColumns, scanCustomer)
}

// GetCustomer returns the customer with the given id, or a *NotFoundError.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	rows, err := r.db.Query(ctx, selectCustomerByID, id)
	if err != nil {
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	customers, err := collect(rows, customerColumns, scanCustomer)
	if err != nil {
		return model.Customer{}, err
	}
	if len(customers) == 0 {
		return model.Customer{}, &NotFoundError{Table: "customers", ID: id}
	}
	return customers[0], nil
}

// UpsertCustomer inserts c. A customer with the same name and address
// already on file makes this a no-op. c.ID is ignored.
func (r *Repository) UpsertCustomer(ctx context.Context, c model.Customer) error {
	return r.exec(ctx, "upsert customer", insertCustomer,
		c.FirstName, c.LastName, c.Street, c.City, c.State, c.Zip)
}

// DeleteCustomer removes the customer if present. Orders referencing it keep
// their row with a null customer reference.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete customer", deleteCustomer, id)
}
