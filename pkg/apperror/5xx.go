package apperror

import "net/http"

const (
	InternalServerCode = "500001"
	EventDeliveryCode  = "500002"
)

// 500 Internal Server Error
func ErrInternalServer(err error) Error {
	return NewError(err, http.StatusInternalServerError, InternalServerCode, "Internal Server Error")
}

func ErrEventDelivery(err error) Error {
	return NewError(err, http.StatusInternalServerError, EventDeliveryCode, "Entity saved but event delivery failed")
}
