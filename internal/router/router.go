// Package router builds the Echo instance: global middleware, the error
// handler and the route table.
package router

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerStoreRoutes(v1, h)

	return router
}

func registerStoreRoutes(g *echo.Group, h *handler.Handlers) {
	customers := g.Group("/customers")
	customers.GET("", handler.Handle(h.Customers.Handler, h.Customers.ListCustomers, http.StatusOK, &handler.ListRequest{}))
	customers.GET("/:id", handler.Handle(h.Customers.Handler, h.Customers.GetCustomer, http.StatusOK, &handler.IDRequest{}))
	customers.POST("", handler.HandleNoContent(h.Customers.Handler, h.Customers.UpsertCustomer, http.StatusNoContent, &handler.UpsertCustomerRequest{}))
	customers.DELETE("/:id", handler.HandleNoContent(h.Customers.Handler, h.Customers.DeleteCustomer, http.StatusNoContent, &handler.IDRequest{}))

	products := g.Group("/products")
	products.GET("", handler.Handle(h.Products.Handler, h.Products.ListProducts, http.StatusOK, &handler.ListRequest{}))
	products.GET("/:id", handler.Handle(h.Products.Handler, h.Products.GetProduct, http.StatusOK, &handler.IDRequest{}))
	products.POST("", handler.HandleNoContent(h.Products.Handler, h.Products.UpsertProduct, http.StatusNoContent, &handler.UpsertProductRequest{}))
	products.DELETE("/:id", handler.HandleNoContent(h.Products.Handler, h.Products.DeleteProduct, http.StatusNoContent, &handler.IDRequest{}))

	orders := g.Group("/orders")
	orders.GET("", handler.Handle(h.Orders.Handler, h.Orders.ListOrders, http.StatusOK, &handler.ListRequest{}))
	orders.GET("/:id", handler.Handle(h.Orders.Handler, h.Orders.GetOrder, http.StatusOK, &handler.IDRequest{}))
	orders.POST("", handler.HandleNoContent(h.Orders.Handler, h.Orders.CreateOrder, http.StatusNoContent, &handler.UpsertOrderRequest{}))
	orders.DELETE("/:id", handler.HandleNoContent(h.Orders.Handler, h.Orders.DeleteOrder, http.StatusNoContent, &handler.IDRequest{}))

	g.GET("/reports/sales", handler.Handle(h.Reports.Handler, h.Reports.SalesReport, http.StatusOK, &handler.ListRequest{}))
}
