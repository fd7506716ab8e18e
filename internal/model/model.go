// Package model defines the records exchanged between the repository,
// the service layer and HTTP clients.
//
// The JSON field names follow the wire shape clients already depend on
// (camelCase for entities, snake_case for the sales report).
package model

// Customer is a row of the customers table.
//
// The tuple (FirstName, LastName, Street, City, State, Zip) is unique in the store.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       int    `json:"zip"`
}

// Product is a row of the products table. Name is globally unique.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order is a row of the orders table.
//
// CustomerID and ProductID are nil once the referenced row was deleted
// (ON DELETE SET NULL). Customer and Product are only populated by listings
// that expand the references.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID *int64    `json:"customerId"`
	ProductID  *int64    `json:"productId"`
	Date       string    `json:"date"`
	Customer   *Customer `json:"customer,omitempty"`
	Product    *Product  `json:"product,omitempty"`
}

// SalesReportEntry aggregates the orders placed for one product.
//
// GrossRevenue is TotalSales multiplied by the product's current price;
// historical prices are not tracked.
type SalesReportEntry struct {
	ID            int64   `json:"id"`
	TotalSales    int64   `json:"total_sales"`
	GrossRevenue  float64 `json:"gross_revenue"`
	LastOrderDate string  `json:"last_order_date"`
}
