package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Handler
	store Store
}

func NewCustomerHandler(s *server.Server, store Store) *CustomerHandler {
	return &CustomerHandler{Handler: NewHandler(s), store: store}
}

func (h *CustomerHandler) ListCustomers(c echo.Context, _ *ListRequest) ([]model.Customer, error) {
	return h.store.GetCustomers(c.Request().Context())
}

func (h *CustomerHandler) GetCustomer(c echo.Context, req *IDRequest) (model.Customer, error) {
	return h.store.GetCustomer(c.Request().Context(), req.ID)
}

// UpsertCustomer inserts the customer unless an identical one exists.
func (h *CustomerHandler) UpsertCustomer(c echo.Context, req *UpsertCustomerRequest) error {
	return h.store.UpsertCustomer(c.Request().Context(), req.Customer())
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context, req *IDRequest) error {
	return h.store.DeleteCustomer(c.Request().Context(), req.ID)
}
