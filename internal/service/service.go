// Package service sits between the HTTP handlers and the repository.
//
// It owns the rule that only one repository call touches the shared
// database connection at a time.
package service
