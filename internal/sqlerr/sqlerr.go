// Package sqlerr translates Postgres driver errors into application errors.
//
// Raw SQLSTATE codes are mapped to a small Code enum and then to
// errs.HTTPError values with messages a client can show, e.g. a unique
// violation on products.name becomes a 400 "A product with this name already exists".
package sqlerr
