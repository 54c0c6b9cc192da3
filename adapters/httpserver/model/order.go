package model

import (
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/pkg/validation"
)

type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
} // @name model.OrderLineRequest

type PlaceOrderRequest struct {
	ID         string             `json:"id" mod:"trim"`
	CustomerID string             `json:"customer_id" mod:"trim" validate:"required"`
	Items      []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
} // @name model.PlaceOrderRequest

func (r *PlaceOrderRequest) Validate() error {
	return validation.Struct(r)
}

func (r *PlaceOrderRequest) Lines() []order.LineRequest {
	lines := make([]order.LineRequest, len(r.Items))
	for i, item := range r.Items {
		lines[i] = order.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	return lines
}

type OrderResponse struct {
	*order.Order
	Total float64 `json:"total"`
} // @name model.OrderResponse

func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{Order: o, Total: o.Total()}
}

type ListOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor"`
} // @name model.ListOrdersResponse
