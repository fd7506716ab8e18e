// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP boundary is rendered as an HTTPError,
// optionally carrying field-level validation errors.
package errs
