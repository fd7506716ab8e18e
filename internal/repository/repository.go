// Package repository is the data-access layer of the storefront.
//
// It holds the raw SQL for customers, products and orders, maps rows into
// the records of package model, and runs the aggregate sales report. Every
// call is a fresh round trip; nothing is cached.
package repository
