package model

import (
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/pkg/validation"
)

type AddressRequest struct {
	Street string `json:"street" mod:"trim" validate:"required"`
	Number int    `json:"number" validate:"required,gt=0"`
	Zip    string `json:"zip" mod:"trim" validate:"required"`
	City   string `json:"city" mod:"trim" validate:"required"`
} // @name model.AddressRequest

func (r *AddressRequest) ToDomain() customer.Address {
	return customer.Address{Street: r.Street, Number: r.Number, Zip: r.Zip, City: r.City}
}

type CreateCustomerRequest struct {
	ID      string          `json:"id" mod:"trim"`
	Name    string          `json:"name" mod:"trim" validate:"required,max=255"`
	Address *AddressRequest `json:"address"`
} // @name model.CreateCustomerRequest

func (r *CreateCustomerRequest) Validate() error {
	return validation.Struct(r)
}

type ChangeAddressRequest struct {
	ID string `json:"-" param:"id" validate:"required"`
	AddressRequest
} // @name model.ChangeAddressRequest

func (r *ChangeAddressRequest) Validate() error {
	return validation.Struct(r)
}

type ListCustomersResponse struct {
	Customers  []customer.Customer `json:"customers"`
	NextCursor string              `json:"next_cursor"`
} // @name model.ListCustomersResponse

type ImportCustomersResponse struct {
	Customers []customer.Customer `json:"customers"`
} // @name model.ImportCustomersResponse
