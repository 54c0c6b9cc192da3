package customer

import "time"

const (
	CreatedEventName        = "CustomerCreatedEvent"
	AddressChangedEventName = "CustomerAddressChangedEvent"
)

type EventData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func NewEventData(c *Customer) EventData {
	return EventData{ID: c.ID, Name: c.Name, Address: c.AddressLine()}
}

type CustomerCreatedEvent struct {
	occurredAt time.Time
	data       EventData
}

func NewCustomerCreatedEvent(data EventData) CustomerCreatedEvent {
	return CustomerCreatedEvent{occurredAt: time.Now(), data: data}
}

func (e CustomerCreatedEvent) EventName() string     { return CreatedEventName }
func (e CustomerCreatedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e CustomerCreatedEvent) Data() EventData       { return e.data }

type CustomerAddressChangedEvent struct {
	occurredAt time.Time
	data       EventData
}

func NewCustomerAddressChangedEvent(data EventData) CustomerAddressChangedEvent {
	return CustomerAddressChangedEvent{occurredAt: time.Now(), data: data}
}

func (e CustomerAddressChangedEvent) EventName() string     { return AddressChangedEventName }
func (e CustomerAddressChangedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e CustomerAddressChangedEvent) Data() EventData       { return e.data }
