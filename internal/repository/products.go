package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
)

const productColumns = 3

const (
	selectProducts = `SELECT id, name, price FROM products`

	selectProductByID = selectProducts + ` WHERE products.id = $1`

	// The name is the natural key; a known name only gets its price replaced.
	upsertProduct = `INSERT INTO products (name, price)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET price = excluded.price`

	deleteProduct = `DELETE FROM products WHERE products.id = $1`
)

func scanProduct(row pgx.Rows) (model.Product, error) {
	var (
		p     model.Product
		price float32
	)
	if err := row.Scan(&p.ID, &p.Name, &price); err != nil {
		return model.Product{}, fmt.Errorf("scan product: %w", err)
	}
	p.Price = float4Price(price)
	return p, nil
}

// GetProducts returns every product.
func (r *Repository) GetProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return collect(rows, productColumns, scanProduct)
}

// EachProduct streams products to fn as they are read from the connection,
// without materializing the result. Returning an error from fn stops the
// iteration and is returned as is.
func (r *Repository) EachProduct(ctx context.Context, fn func(model.Product) error) error {
	rows, err := r.db.Query(ctx, selectProducts)
	if err != nil {
		return fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	if err := checkColumns(rows, productColumns); err != nil {
		return err
	}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return rows.Err()
}

// GetProduct returns the product with the given id, or a *NotFoundError.
func (r *Repository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	rows, err := r.db.Query(ctx, selectProductByID, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}
	products, err := collect(rows, productColumns, scanProduct)
	if err != nil {
		return model.Product{}, err
	}
	if len(products) == 0 {
		return model.Product{}, &NotFoundError{Table: "products", ID: id}
	}
	return products[0], nil
}

// UpsertProduct inserts p, or updates the price of the product that already
// has p.Name. p.ID is ignored.
func (r *Repository) UpsertProduct(ctx context.Context, p model.Product) error {
	return r.exec(ctx, "upsert product", upsertProduct, p.Name, p.Price)
}

// DeleteProduct removes the product if present. Orders referencing it keep
// their row with a null product reference.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete product", deleteProduct, id)
}
