package handler

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

// Store is the part of service.StoreService the HTTP layer uses.
type Store interface {
	Ping(ctx context.Context, timeout time.Duration) error

	GetCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)
	UpsertCustomer(ctx context.Context, c model.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	GetProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	UpsertProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	GetOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	UpsertOrder(ctx context.Context, o model.Order) error
	DeleteOrder(ctx context.Context, id int64) error

	SalesReport(ctx context.Context) ([]model.SalesReportEntry, error)
}

var _ Store = (*service.StoreService)(nil)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health    *HealthHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Reports   *ReportHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return newHandlers(s, services.Store)
}

func newHandlers(s *server.Server, store Store) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s, store),
		Customers: NewCustomerHandler(s, store),
		Products:  NewProductHandler(s, store),
		Orders:    NewOrderHandler(s, store),
		Reports:   NewReportHandler(s, store),
	}
}
