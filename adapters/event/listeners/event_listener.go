package listeners

import "github.com/storefront/backend/domain"

type EventListener interface {
	domain.EventHandler
	EventName() string
}

// Register binds every listener to the event it is written for.
func Register(dispatcher domain.EventDispatcher, listeners ...EventListener) {
	for _, l := range listeners {
		dispatcher.Register(l.EventName(), l)
	}
}
