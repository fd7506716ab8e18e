package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Handler
	store Store
}

func NewProductHandler(s *server.Server, store Store) *ProductHandler {
	return &ProductHandler{Handler: NewHandler(s), store: store}
}

func (h *ProductHandler) ListProducts(c echo.Context, _ *ListRequest) ([]model.Product, error) {
	return h.store.GetProducts(c.Request().Context())
}

func (h *ProductHandler) GetProduct(c echo.Context, req *IDRequest) (model.Product, error) {
	return h.store.GetProduct(c.Request().Context(), req.ID)
}

// UpsertProduct creates the product or, when the name is taken, reprices it.
func (h *ProductHandler) UpsertProduct(c echo.Context, req *UpsertProductRequest) error {
	return h.store.UpsertProduct(c.Request().Context(), req.Product())
}

func (h *ProductHandler) DeleteProduct(c echo.Context, req *IDRequest) error {
	return h.store.DeleteProduct(c.Request().Context(), req.ID)
}
