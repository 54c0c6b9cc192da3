package model

import (
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/validation"
)

type CreateProductRequest struct {
	ID          string  `json:"id" mod:"trim"`
	Name        string  `json:"name" mod:"trim" validate:"required,max=255"`
	Description string  `json:"description" mod:"trim"`
	Price       float64 `json:"price" validate:"gte=0"`
} // @name model.CreateProductRequest

func (r *CreateProductRequest) Validate() error {
	return validation.Struct(r)
}

type ChangePriceRequest struct {
	ID    string  `json:"-" param:"id" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
} // @name model.ChangePriceRequest

func (r *ChangePriceRequest) Validate() error {
	return validation.Struct(r)
}

type ListProductsResponse struct {
	Products   []product.Product `json:"products"`
	NextCursor string            `json:"next_cursor"`
} // @name model.ListProductsResponse
