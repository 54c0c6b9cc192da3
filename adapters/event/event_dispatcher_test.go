package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/storefront/backend/adapters/event"
	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyHandler struct {
	name  string
	calls int
	trace *[]string
	err   error
}

func (h *spyHandler) Handle(_ context.Context, _ domain.BaseDomainEvent) error {
	h.calls++
	if h.trace != nil {
		*h.trace = append(*h.trace, h.name)
	}

	return h.err
}

// valueHandler is a handler passed by value. Its interface field may hold
// an uncomparable value.
type valueHandler struct {
	payload interface{}
}

func (valueHandler) Handle(context.Context, domain.BaseDomainEvent) error { return nil }

func productCreated() product.ProductCreatedEvent {
	return product.NewProductCreatedEvent(product.EventData{
		Name:        "Product 1",
		Description: "Product 1 description",
		Price:       10.0,
	})
}

func TestRegister(t *testing.T) {
	t.Run("it should register an event handler", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}

		ed.Register(product.CreatedEventName, h)

		handlers, ok := ed.HandlersFor(product.CreatedEventName)
		require.True(t, ok)
		require.Len(t, handlers, 1)
		assert.Same(t, h, handlers[0])
	})

	t.Run("it should keep registration order", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h1, h2 := &spyHandler{}, &spyHandler{}

		ed.Register(customer.CreatedEventName, h1)
		ed.Register(customer.CreatedEventName, h2)

		handlers, ok := ed.HandlersFor(customer.CreatedEventName)
		require.True(t, ok)
		require.Len(t, handlers, 2)
		assert.Same(t, h1, handlers[0])
		assert.Same(t, h2, handlers[1])
	})

	t.Run("it should append duplicates and run them twice", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}

		ed.Register(product.CreatedEventName, h)
		ed.Register(product.CreatedEventName, h)

		require.NoError(t, ed.Notify(context.Background(), productCreated()))

		handlers, _ := ed.HandlersFor(product.CreatedEventName)
		assert.Len(t, handlers, 2)
		assert.Equal(t, 2, h.calls)
	})
}

func TestUnregister(t *testing.T) {
	t.Run("it should unregister an event handler and keep the key", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}

		ed.Register(product.CreatedEventName, h)
		ed.Unregister(product.CreatedEventName, h)

		handlers, ok := ed.HandlersFor(product.CreatedEventName)
		assert.True(t, ok)
		assert.Len(t, handlers, 0)

		all := ed.EventHandlers()
		assert.Contains(t, all, product.CreatedEventName)
	})

	t.Run("it should remove by identity only", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h1, h2 := &spyHandler{name: "same"}, &spyHandler{name: "same"}

		ed.Register(customer.CreatedEventName, h1)
		ed.Register(customer.CreatedEventName, h2)
		ed.Unregister(customer.CreatedEventName, h1)

		handlers, _ := ed.HandlersFor(customer.CreatedEventName)
		require.Len(t, handlers, 1)
		assert.Same(t, h2, handlers[0])
	})

	t.Run("it should remove only the first occurrence", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h, other := &spyHandler{}, &spyHandler{}

		ed.Register(customer.CreatedEventName, h)
		ed.Register(customer.CreatedEventName, other)
		ed.Register(customer.CreatedEventName, h)
		ed.Unregister(customer.CreatedEventName, h)

		handlers, _ := ed.HandlersFor(customer.CreatedEventName)
		require.Len(t, handlers, 2)
		assert.Same(t, other, handlers[0])
		assert.Same(t, h, handlers[1])
	})

	t.Run("it should ignore handlers that were never registered", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h, stranger := &spyHandler{}, &spyHandler{}

		ed.Register(customer.CreatedEventName, h)
		ed.Unregister(customer.CreatedEventName, stranger)

		handlers, _ := ed.HandlersFor(customer.CreatedEventName)
		require.Len(t, handlers, 1)
		assert.Same(t, h, handlers[0])
	})

	t.Run("it should ignore unknown event names", func(t *testing.T) {
		ed := event.NewEventDispatcher()

		ed.Unregister("UnknownEvent", &spyHandler{})

		_, ok := ed.HandlersFor("UnknownEvent")
		assert.False(t, ok)
	})

	t.Run("it should remove boxed closures from one factory by identity", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		var calls []string
		newRecorder := func(name string) domain.EventHandler {
			return domain.NewEventHandlerFunc(func(context.Context, domain.BaseDomainEvent) error {
				calls = append(calls, name)
				return nil
			})
		}
		first, second := newRecorder("first"), newRecorder("second")

		ed.Register(product.CreatedEventName, first)
		ed.Register(product.CreatedEventName, second)
		ed.Unregister(product.CreatedEventName, second)

		require.NoError(t, ed.Notify(context.Background(), productCreated()))
		assert.Equal(t, []string{"first"}, calls)
	})

	t.Run("it should never remove bare function values", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		var calls []string
		for _, name := range []string{"first", "second"} {
			name := name
			ed.Register(product.CreatedEventName, domain.EventHandlerFunc(func(context.Context, domain.BaseDomainEvent) error {
				calls = append(calls, name)
				return nil
			}))
		}

		handlers, _ := ed.HandlersFor(product.CreatedEventName)
		ed.Unregister(product.CreatedEventName, handlers[1])

		require.NoError(t, ed.Notify(context.Background(), productCreated()))
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("it should not panic on handlers holding uncomparable values", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}
		ed.Register(product.CreatedEventName, valueHandler{payload: []int{1}})
		ed.Register(product.CreatedEventName, h)

		assert.NotPanics(t, func() {
			ed.Unregister(product.CreatedEventName, valueHandler{payload: []int{1}})
		})

		handlers, _ := ed.HandlersFor(product.CreatedEventName)
		assert.Len(t, handlers, 2)

		ed.Unregister(product.CreatedEventName, h)
		handlers, _ = ed.HandlersFor(product.CreatedEventName)
		assert.Len(t, handlers, 1)
	})

	t.Run("it should match comparable value handlers with equal fields", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		ed.Register(product.CreatedEventName, valueHandler{payload: "a"})
		ed.Register(product.CreatedEventName, valueHandler{payload: "b"})

		ed.Unregister(product.CreatedEventName, valueHandler{payload: "b"})

		handlers, _ := ed.HandlersFor(product.CreatedEventName)
		require.Len(t, handlers, 1)
		assert.Equal(t, valueHandler{payload: "a"}, handlers[0])
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("it should remove only its own registration", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		var calls []string
		newRecorder := func(name string) domain.EventHandlerFunc {
			return func(context.Context, domain.BaseDomainEvent) error {
				calls = append(calls, name)
				return nil
			}
		}

		ed.Subscribe(product.CreatedEventName, newRecorder("first"))
		cancel := ed.Subscribe(product.CreatedEventName, newRecorder("second"))
		cancel()

		require.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, []string{"first"}, calls)
	})

	t.Run("it should remove one of two duplicate registrations", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}
		ed.Register(product.CreatedEventName, h)
		cancel := ed.Subscribe(product.CreatedEventName, h)

		cancel()
		cancel()

		require.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 1, h.calls)

		handlers, ok := ed.HandlersFor(product.CreatedEventName)
		assert.True(t, ok)
		assert.Len(t, handlers, 1)
	})

	t.Run("it should be a no-op after UnregisterAll", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		cancel := ed.Subscribe(product.CreatedEventName, &spyHandler{})
		ed.UnregisterAll()

		assert.NotPanics(t, cancel)
		_, ok := ed.HandlersFor(product.CreatedEventName)
		assert.False(t, ok)
	})
}

func TestUnregisterAll(t *testing.T) {
	ed := event.NewEventDispatcher()
	ed.Register(product.CreatedEventName, &spyHandler{})
	ed.Register(customer.CreatedEventName, &spyHandler{})
	ed.Unregister(customer.CreatedEventName, &spyHandler{})

	ed.UnregisterAll()

	_, ok := ed.HandlersFor(product.CreatedEventName)
	assert.False(t, ok)
	_, ok = ed.HandlersFor(customer.CreatedEventName)
	assert.False(t, ok)
	assert.Empty(t, ed.EventHandlers())
}

func TestEventHandlers(t *testing.T) {
	ed := event.NewEventDispatcher()
	h := &spyHandler{}
	ed.Register(product.CreatedEventName, h)

	snapshot := ed.EventHandlers()
	snapshot[product.CreatedEventName][0] = &spyHandler{}
	snapshot[product.CreatedEventName] = append(snapshot[product.CreatedEventName], &spyHandler{})
	delete(snapshot, product.CreatedEventName)
	snapshot["Other"] = nil

	handlers, ok := ed.HandlersFor(product.CreatedEventName)
	require.True(t, ok)
	require.Len(t, handlers, 1)
	assert.Same(t, h, handlers[0])

	_, ok = ed.HandlersFor("Other")
	assert.False(t, ok)
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("it should notify all event handlers", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}
		ed.Register(product.CreatedEventName, h)

		require.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 1, h.calls)
	})

	t.Run("it should only notify handlers of the event name", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		a, b := &spyHandler{}, &spyHandler{}
		ed.Register(customer.CreatedEventName, a)
		ed.Register(customer.AddressChangedEventName, b)

		require.NoError(t, ed.Notify(ctx, customer.NewCustomerCreatedEvent(customer.EventData{ID: "1"})))

		assert.Equal(t, 1, a.calls)
		assert.Equal(t, 0, b.calls)
	})

	t.Run("it should run handlers in registration order", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		var trace []string
		h1 := &spyHandler{name: "h1", trace: &trace}
		h2 := &spyHandler{name: "h2", trace: &trace}
		ed.Register(product.CreatedEventName, h1)
		ed.Register(product.CreatedEventName, h2)

		require.NoError(t, ed.Notify(ctx, productCreated()))

		assert.Equal(t, []string{"h1", "h2"}, trace)
	})

	t.Run("it should do nothing for an unknown event name", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}
		ed.Register(customer.CreatedEventName, h)

		assert.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 0, h.calls)
	})

	t.Run("it should do nothing for an emptied event name", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		h := &spyHandler{}
		ed.Register(product.CreatedEventName, h)
		ed.Unregister(product.CreatedEventName, h)

		assert.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 0, h.calls)
	})

	t.Run("it should stop at the first failing handler", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		errBoom := errors.New("boom")
		var trace []string
		h1 := &spyHandler{name: "h1", trace: &trace}
		h2 := &spyHandler{name: "h2", trace: &trace, err: errBoom}
		h3 := &spyHandler{name: "h3", trace: &trace}
		ed.Register(product.CreatedEventName, h1)
		ed.Register(product.CreatedEventName, h2)
		ed.Register(product.CreatedEventName, h3)

		err := ed.Notify(ctx, productCreated())

		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), product.CreatedEventName)
		assert.Equal(t, []string{"h1", "h2"}, trace)
		assert.Equal(t, 0, h3.calls)
	})

	t.Run("it should let handler panics propagate", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		after := &spyHandler{}
		ed.Register(product.CreatedEventName, domain.EventHandlerFunc(func(context.Context, domain.BaseDomainEvent) error {
			panic("handler exploded")
		}))
		ed.Register(product.CreatedEventName, after)

		assert.PanicsWithValue(t, "handler exploded", func() {
			_ = ed.Notify(ctx, productCreated())
		})
		assert.Equal(t, 0, after.calls)
	})

	t.Run("it should pass the event through untouched", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		var got domain.BaseDomainEvent
		ed.Register(product.CreatedEventName, domain.EventHandlerFunc(func(_ context.Context, e domain.BaseDomainEvent) error {
			got = e
			return nil
		}))

		sent := productCreated()
		require.NoError(t, ed.Notify(ctx, sent))

		received, ok := got.(product.ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, sent.Data(), received.Data())
		assert.Equal(t, sent.OccurredAt(), received.OccurredAt())
	})

	t.Run("it should allow handlers to change the registry", func(t *testing.T) {
		ed := event.NewEventDispatcher()
		late := &spyHandler{}
		var self domain.EventHandler
		self = domain.NewEventHandlerFunc(func(context.Context, domain.BaseDomainEvent) error {
			ed.Unregister(product.CreatedEventName, self)
			ed.Register(product.CreatedEventName, late)
			return nil
		})
		ed.Register(product.CreatedEventName, self)

		require.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 0, late.calls)

		require.NoError(t, ed.Notify(ctx, productCreated()))
		assert.Equal(t, 1, late.calls)
	})
}

func TestCustomerScenario(t *testing.T) {
	ctx := context.Background()
	ed := event.NewEventDispatcher()

	h1, h2, h3 := &spyHandler{}, &spyHandler{}, &spyHandler{}
	ed.Register(customer.CreatedEventName, h1)
	ed.Register(customer.CreatedEventName, h2)
	ed.Register(customer.AddressChangedEventName, h3)

	created, _ := ed.HandlersFor(customer.CreatedEventName)
	assert.Len(t, created, 2)
	changed, _ := ed.HandlersFor(customer.AddressChangedEventName)
	require.Len(t, changed, 1)
	assert.Same(t, h3, changed[0])

	c, err := customer.New("1", "John")
	require.NoError(t, err)

	require.NoError(t, ed.Notify(ctx, customer.NewCustomerCreatedEvent(customer.EventData{ID: "1", Name: "John", Address: "X"})))
	assert.Equal(t, 1, h1.calls)
	assert.Equal(t, 1, h2.calls)
	assert.Equal(t, 0, h3.calls)

	require.NoError(t, c.ChangeAddress(customer.Address{Street: "Rua José Bonifacio", Number: 1222, Zip: "09898-092", City: "SP"}))
	require.NoError(t, ed.Notify(ctx, customer.NewCustomerAddressChangedEvent(customer.NewEventData(c))))

	assert.Equal(t, 1, h1.calls)
	assert.Equal(t, 1, h2.calls)
	assert.Equal(t, 1, h3.calls)
}

func TestConcurrentUse(t *testing.T) {
	ctx := context.Background()
	ed := event.NewEventDispatcher()

	var (
		mu    sync.Mutex
		calls int
	)
	counter := domain.EventHandlerFunc(func(context.Context, domain.BaseDomainEvent) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})
	ed.Register(product.CreatedEventName, counter)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = ed.Notify(ctx, productCreated())
		}()
		go func() {
			defer wg.Done()
			h := &spyHandler{}
			ed.Register(customer.CreatedEventName, h)
			ed.Unregister(customer.CreatedEventName, h)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, calls)
	handlers, ok := ed.HandlersFor(customer.CreatedEventName)
	assert.True(t, ok)
	assert.Empty(t, handlers)
}
