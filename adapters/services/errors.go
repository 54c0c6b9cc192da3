package services

import "errors"

// ErrEventDelivery marks a change that was saved but whose event handlers
// failed.
var ErrEventDelivery = errors.New("event delivery failed")

// ErrInvalidCSV marks an upload that is not readable as CSV, including an
// empty one.
var ErrInvalidCSV = errors.New("invalid csv")
