package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
)

const salesReportColumns = 4

// The inner join drops products nobody ordered. max(date) compares text, which
// matches chronological order for ISO-8601 dates only.
const selectSalesReport = `SELECT products.id, count(orders.id), products.price, max(orders.date)
FROM products
JOIN orders ON products.id = orders.productId
GROUP BY products.id
ORDER BY products.id`

func scanSalesReportEntry(row pgx.Rows) (model.SalesReportEntry, error) {
	var (
		e     model.SalesReportEntry
		price *float32
		last  *string
	)
	if err := row.Scan(&e.ID, &e.TotalSales, &price, &last); err != nil {
		return model.SalesReportEntry{}, fmt.Errorf("scan sales report: %w", err)
	}
	// Revenue uses today's price for every past order.
	e.GrossRevenue = float64(e.TotalSales) * float4Price(deref(price))
	e.LastOrderDate = deref(last)
	return e, nil
}

// SalesReport aggregates orders per product in a single query.
func (r *Repository) SalesReport(ctx context.Context) ([]model.SalesReportEntry, error) {
	rows, err := r.db.Query(ctx, selectSalesReport)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	return collect(rows, salesReportColumns, scanSalesReportEntry)
}
