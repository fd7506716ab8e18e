package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	Handler
	store Store
}

func NewReportHandler(s *server.Server, store Store) *ReportHandler {
	return &ReportHandler{Handler: NewHandler(s), store: store}
}

// SalesReport lists, for each product with at least one order, the order
// count, gross revenue at the current price and the latest order date.
func (h *ReportHandler) SalesReport(c echo.Context, _ *ListRequest) ([]model.SalesReportEntry, error) {
	return h.store.SalesReport(c.Request().Context())
}
