package handler

import (
	"reflect"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/validation"
)

// newRequest returns a fresh zero value shaped like template so concurrent
// requests never bind into the same struct.
func newRequest[Req any](template Req) Req {
	t := reflect.TypeOf(template)
	if t == nil || t.Kind() != reflect.Pointer {
		return template
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// ListRequest carries no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

// IDRequest addresses a single row by its :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

type UpsertCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Street    string `json:"street" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=255"`
	State     string `json:"state" validate:"required,max=255"`
	Zip       int    `json:"zip" validate:"gte=0"`
}

func (r *UpsertCustomerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpsertCustomerRequest) Customer() model.Customer {
	return model.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
	}
}

type UpsertProductRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (r *UpsertProductRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpsertProductRequest) Product() model.Product {
	return model.Product{Name: r.Name, Price: r.Price}
}

// UpsertOrderRequest dates orders as YYYY-MM-DD so the latest order date in
// the sales report can be found by string comparison.
type UpsertOrderRequest struct {
	CustomerID *int64 `json:"customerId" validate:"required,gt=0"`
	ProductID  *int64 `json:"productId" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (r *UpsertOrderRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpsertOrderRequest) Order() model.Order {
	return model.Order{CustomerID: r.CustomerID, ProductID: r.ProductID, Date: r.Date}
}
