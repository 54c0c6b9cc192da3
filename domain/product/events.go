package product

import "time"

const CreatedEventName = "ProductCreatedEvent"

type EventData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type ProductCreatedEvent struct {
	occurredAt time.Time
	data       EventData
}

func NewProductCreatedEvent(data EventData) ProductCreatedEvent {
	return ProductCreatedEvent{occurredAt: time.Now(), data: data}
}

func (e ProductCreatedEvent) EventName() string     { return CreatedEventName }
func (e ProductCreatedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e ProductCreatedEvent) Data() EventData       { return e.data }
