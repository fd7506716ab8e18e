package service

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/rs/zerolog"
)

// Repository is the data access StoreService drives; *repository.Repository
// implements it.
type Repository interface {
	Initialize(ctx context.Context) error

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

// Pinger checks the store connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreService serializes access to the storefront repository.
//
// The repository shares one connection that does not support concurrent
// use, while HTTP requests arrive concurrently; every call below holds mu
// for its whole round trip.
//
// Calls run detached from the caller's cancellation. pgx closes a connection
// whose query is interrupted by its context, and the process has only one.
type StoreService struct {
	mu     sync.Mutex
	repo   Repository
	pinger Pinger
	log    *zerolog.Logger
}

// NewStoreService wraps repo. pinger may be nil, in which case Ping always succeeds.
func NewStoreService(repo Repository, pinger Pinger, logger *zerolog.Logger) *StoreService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &StoreService{repo: repo, pinger: pinger, log: logger}
}

func locked[T any](s *StoreService, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithoutCancel(ctx))
}

func (s *StoreService) write(ctx context.Context, op string, fn func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	s.log.Debug().Str("op", op).Msg("store write committed")
	return nil
}

// Ping checks the database connection under the same lock as queries.
// timeout starts once the lock is held, so waiting behind a slow query does
// not count against it. A non-positive timeout means none.
func (s *StoreService) Ping(ctx context.Context, timeout time.Duration) error {
	if s.pinger == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pingCtx := context.WithoutCancel(ctx)
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(pingCtx, timeout)
		defer cancel()
	}
	return s.pinger.Ping(pingCtx)
}

// Initialize resets the schema, destroying all data.
func (s *StoreService) Initialize(ctx context.Context) error {
	return s.write(ctx, "initialize", s.repo.Initialize)
}

func (s *StoreService) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	return locked(s, ctx, s.repo.GetCustomers)
}

func (s *StoreService) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	return locked(s, ctx, func(ctx context.Context) (model.Customer, error) { return s.repo.GetCustomer(ctx, id) })
}

func (s *StoreService) UpsertCustomer(ctx context.Context, c model.Customer) error {
	return s.write(ctx, "upsert_customer", func(ctx context.Context) error { return s.repo.UpsertCustomer(ctx, c) })
}

func (s *StoreService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.write(ctx, "delete_customer", func(ctx context.Context) error { return s.repo.DeleteCustomer(ctx, id) })
}

func (s *StoreService) GetProducts(ctx context.Context) ([]model.Product, error) {
	return locked(s, ctx, s.repo.GetProducts)
}

func (s *StoreService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return locked(s, ctx, func(ctx context.Context) (model.Product, error) { return s.repo.GetProduct(ctx, id) })
}

func (s *StoreService) UpsertProduct(ctx context.Context, p model.Product) error {
	return s.write(ctx, "upsert_product", func(ctx context.Context) error { return s.repo.UpsertProduct(ctx, p) })
}

func (s *StoreService) DeleteProduct(ctx context.Context, id int64) error {
	return s.write(ctx, "delete_product", func(ctx context.Context) error { return s.repo.DeleteProduct(ctx, id) })
}

func (s *StoreService) GetOrders(ctx context.Context) ([]model.Order, error) {
	return locked(s, ctx, s.repo.GetOrders)
}

func (s *StoreService) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	return locked(s, ctx, func(ctx context.Context) (model.Order, error) { return s.repo.GetOrder(ctx, id) })
}

func (s *StoreService) UpsertOrder(ctx context.Context, o model.Order) error {
	return s.write(ctx, "upsert_order", func(ctx context.Context) error { return s.repo.UpsertOrder(ctx, o) })
}

func (s *StoreService) DeleteOrder(ctx context.Context, id int64) error {
	return s.write(ctx, "delete_order", func(ctx context.Context) error { return s.repo.DeleteOrder(ctx, id) })
}

func (s *StoreService) SalesReport(ctx context.Context) ([]model.SalesReportEntry, error) {
	return locked(s, ctx, s.repo.SalesReport)
}
