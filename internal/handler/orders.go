package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	store Store
}

func NewOrderHandler(s *server.Server, store Store) *OrderHandler {
	return &OrderHandler{Handler: NewHandler(s), store: store}
}

// ListOrders returns every order with its customer and product embedded.
func (h *OrderHandler) ListOrders(c echo.Context, _ *ListRequest) ([]model.Order, error) {
	return h.store.GetOrders(c.Request().Context())
}

func (h *OrderHandler) GetOrder(c echo.Context, req *IDRequest) (model.Order, error) {
	return h.store.GetOrder(c.Request().Context(), req.ID)
}

// CreateOrder always inserts a new order.
func (h *OrderHandler) CreateOrder(c echo.Context, req *UpsertOrderRequest) error {
	return h.store.UpsertOrder(c.Request().Context(), req.Order())
}

func (h *OrderHandler) DeleteOrder(c echo.Context, req *IDRequest) error {
	return h.store.DeleteOrder(c.Request().Context(), req.ID)
}
