package domain

import (
	"context"
	"time"
)

// BaseDomainEvent is an immutable record of something that happened.
// EventName is constant per concrete type and is the dispatch key.
type BaseDomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

type EventHandler interface {
	Handle(ctx context.Context, event BaseDomainEvent) error
}

// EventHandlerFunc adapts a plain function to EventHandler. Func values
// cannot be compared, so a bare EventHandlerFunc cannot be unregistered.
type EventHandlerFunc func(ctx context.Context, event BaseDomainEvent) error

func (f EventHandlerFunc) Handle(ctx context.Context, event BaseDomainEvent) error {
	return f(ctx, event)
}

// NewEventHandlerFunc boxes fn behind a pointer. Each call returns a new
// handler identity that Unregister can match.
func NewEventHandlerFunc(fn func(ctx context.Context, event BaseDomainEvent) error) *EventHandlerFunc {
	f := EventHandlerFunc(fn)
	return &f
}

type EventDispatcher interface {
	Register(eventName string, handler EventHandler)
	Unregister(eventName string, handler EventHandler)
	UnregisterAll()
	Notify(ctx context.Context, event BaseDomainEvent) error
}
