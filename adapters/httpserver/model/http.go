package model

import "github.com/storefront/backend/pkg/validation"

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
} // @name model.SuccessResponse

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Info    string `json:"info"`
} // @name model.ErrorResponse

type PagingRequest struct {
	Cursor string `query:"cursor" mod:"trim"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
} // @name model.PagingRequest

func (r *PagingRequest) Validate() error {
	return validation.Struct(r)
}
