package event

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/storefront/backend/domain"
	"go.uber.org/zap"
)

type Option func(ed *eventDispatcher)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(ed *eventDispatcher) {
		ed.logger = logger
	}
}

// registration is one Register call. Its address identifies it, so a
// subscription removes exactly the entry it added.
type registration struct {
	handler domain.EventHandler
}

type eventDispatcher struct {
	handlers map[string][]*registration
	mutex    sync.RWMutex
	logger   *zap.SugaredLogger
}

func NewEventDispatcher(options ...Option) *eventDispatcher {
	ed := &eventDispatcher{
		handlers: make(map[string][]*registration),
		logger:   zap.NewNop().Sugar(),
	}

	for _, fn := range options {
		fn(ed)
	}

	return ed
}

// Register appends handler to the handlers of eventName. Registering the
// same handler twice makes it run twice.
func (ed *eventDispatcher) Register(eventName string, handler domain.EventHandler) {
	ed.add(eventName, handler)
}

// Subscribe registers handler like Register and returns a function that
// removes this registration only. Calling it more than once is a no-op.
func (ed *eventDispatcher) Subscribe(eventName string, handler domain.EventHandler) func() {
	reg := ed.add(eventName, handler)

	return func() {
		ed.remove(eventName, func(r *registration) bool { return r == reg })
	}
}

// Unregister removes the first occurrence of handler from eventName. The
// key stays registered even when no handler is left. Plain function values
// have no identity and are never removed; wrap them with
// domain.NewEventHandlerFunc or use Subscribe.
func (ed *eventDispatcher) Unregister(eventName string, handler domain.EventHandler) {
	ed.remove(eventName, func(r *registration) bool { return sameHandler(r.handler, handler) })
}

func (ed *eventDispatcher) add(eventName string, handler domain.EventHandler) *registration {
	ed.mutex.Lock()
	defer ed.mutex.Unlock()

	reg := &registration{handler: handler}
	ed.handlers[eventName] = append(ed.handlers[eventName], reg)

	return reg
}

func (ed *eventDispatcher) remove(eventName string, match func(r *registration) bool) {
	ed.mutex.Lock()
	defer ed.mutex.Unlock()

	regs, ok := ed.handlers[eventName]
	if !ok {
		return
	}

	for i, r := range regs {
		if match(r) {
			// copy so snapshots taken by an in-flight Notify stay intact
			next := make([]*registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			ed.handlers[eventName] = append(next, regs[i+1:]...)

			return
		}
	}
}

func (ed *eventDispatcher) UnregisterAll() {
	ed.mutex.Lock()
	defer ed.mutex.Unlock()

	ed.handlers = make(map[string][]*registration)
}

// Notify runs every handler registered for the event name, in registration
// order, on the calling goroutine. It stops at the first handler error and
// returns it; handlers after the failing one are not called. Panics are not
// recovered.
func (ed *eventDispatcher) Notify(ctx context.Context, event domain.BaseDomainEvent) error {
	eventName := event.EventName()

	ed.mutex.RLock()
	regs := ed.handlers[eventName]
	ed.mutex.RUnlock()

	if len(regs) == 0 {
		ed.logger.Debugw("no handlers for event", zap.String("event", eventName))
		return nil
	}

	for i, r := range regs {
		if err := r.handler.Handle(ctx, event); err != nil {
			ed.logger.Errorw("event handler failed",
				zap.String("event", eventName),
				zap.Int("handler", i),
				zap.Int("skipped", len(regs)-i-1),
				zap.Error(err),
			)

			return fmt.Errorf("handle %s: %w", eventName, err)
		}
	}

	ed.logger.Debugw("event delivered", zap.String("event", eventName), zap.Int("handlers", len(regs)))

	return nil
}

// EventHandlers returns a copy of the registry. Changing it has no effect
// on the dispatcher.
func (ed *eventDispatcher) EventHandlers() map[string][]domain.EventHandler {
	ed.mutex.RLock()
	defer ed.mutex.RUnlock()

	result := make(map[string][]domain.EventHandler, len(ed.handlers))
	for name, regs := range ed.handlers {
		result[name] = handlersOf(regs)
	}

	return result
}

// HandlersFor reports the handlers of eventName and whether the key exists,
// which tells an emptied key apart from one that was never registered.
func (ed *eventDispatcher) HandlersFor(eventName string) ([]domain.EventHandler, bool) {
	ed.mutex.RLock()
	defer ed.mutex.RUnlock()

	regs, ok := ed.handlers[eventName]
	if !ok {
		return nil, false
	}

	return handlersOf(regs), true
}

func handlersOf(regs []*registration) []domain.EventHandler {
	handlers := make([]domain.EventHandler, len(regs))
	for i, r := range regs {
		handlers[i] = r.handler
	}

	return handlers
}

// sameHandler compares handlers with ==, only when both dynamic values are
// comparable all the way down. Funcs, maps and slices never match.
func sameHandler(a, b domain.EventHandler) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}
