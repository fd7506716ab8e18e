// Package middleware holds the Echo middleware shared by every storefront
// route: request ids, the request-scoped logger, New Relic transactions,
// CORS, request logging, panic recovery and the global error handler.
package middleware
