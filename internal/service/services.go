package service

import (
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
)

var _ Repository = (*repository.Repository)(nil)

// Services groups the business services handed to the HTTP layer.
type Services struct {
	Store *StoreService
}

// NewServices builds the services over the server's database connection.
func NewServices(s *server.Server, repo *repository.Repository) (*Services, error) {
	return &Services{
		Store: NewStoreService(repo, s.DB, s.Logger),
	}, nil
}
