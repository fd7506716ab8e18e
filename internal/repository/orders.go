package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	orderColumns         = 4
	expandedOrderColumns = orderColumns + customerColumns + productColumns
)

const (
	// One round trip for all orders: the references are resolved with outer
	// joins, so an order whose customer or product was deleted still shows up.
	selectOrdersExpanded = `SELECT o.id, o.customerId, o.productId, o.date,
       c.id, c.firstName, c.lastName, c.street, c.city, c.state, c.zip,
       p.id, p.name, p.price
FROM orders o
LEFT JOIN customers c ON c.id = o.customerId
LEFT JOIN products p ON p.id = o.productId
ORDER BY o.id`

	selectOrderByID = `SELECT id, customerId, productId, date FROM orders WHERE orders.id = $1`

	// Orders have no natural key: the same customer may buy the same product
	// twice on one day.
	insertOrder = `INSERT INTO orders (customerId, productId, date) VALUES ($1, $2, $3)`

	deleteOrder = `DELETE FROM orders WHERE orders.id = $1`
)

func scanOrder(row pgx.Rows) (model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Date); err != nil {
		return model.Order{}, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

// expandedOrderRow holds one joined row; every joined column may be null.
type expandedOrderRow struct {
	order model.Order

	customerID                               *int64
	firstName, lastName, street, city, state *string
	zip                                      *int

	productID *int64
	name      *string
	price     *float32
}

func scanExpandedOrder(row pgx.Rows) (model.Order, error) {
	var r expandedOrderRow
	err := row.Scan(
		&r.order.ID, &r.order.CustomerID, &r.order.ProductID, &r.order.Date,
		&r.customerID, &r.firstName, &r.lastName, &r.street, &r.city, &r.state, &r.zip,
		&r.productID, &r.name, &r.price,
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("scan order: %w", err)
	}

	o := r.order
	if r.customerID != nil {
		o.Customer = &model.Customer{
			ID:        *r.customerID,
			FirstName: deref(r.firstName),
			LastName:  deref(r.lastName),
			Street:    deref(r.street),
			City:      deref(r.city),
			State:     deref(r.state),
			Zip:       deref(r.zip),
		}
	}
	if r.productID != nil {
		o.Product = &model.Product{
			ID:    *r.productID,
			Name:  deref(r.name),
			Price: float4Price(deref(r.price)),
		}
	}
	return o, nil
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// GetOrders returns every order with its customer and product embedded.
// A reference nulled by a deletion leaves the embedded record nil.
func (r *Repository) GetOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, selectOrdersExpanded)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return collect(rows, expandedOrderColumns, scanExpandedOrder)
}

// GetOrder returns the order with the given id without expanding its
// references, or a *NotFoundError.
func (r *Repository) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	rows, err := r.db.Query(ctx, selectOrderByID, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	orders, err := collect(rows, orderColumns, scanOrder)
	if err != nil {
		return model.Order{}, err
	}
	if len(orders) == 0 {
		return model.Order{}, &NotFoundError{Table: "orders", ID: id}
	}
	return orders[0], nil
}

// UpsertOrder always inserts a new order. o.ID and the embedded records are ignored.
func (r *Repository) UpsertOrder(ctx context.Context, o model.Order) error {
	return r.exec(ctx, "upsert order", insertOrder, o.CustomerID, o.ProductID, o.Date)
}

// DeleteOrder removes the order if present.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete order", deleteOrder, id)
}
