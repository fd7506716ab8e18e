// Package handler exposes the storefront store over HTTP.
//
// Every route goes through the same typed pipeline (Handle, HandleNoContent):
// bind and validate the request, call the store, write the response, with
// logging and New Relic attributes along the way. Errors are returned to
// Echo and rendered by the global error handler.
package handler
