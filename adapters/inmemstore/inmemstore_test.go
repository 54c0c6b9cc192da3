package inmemstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/storefront/backend/adapters/inmemstore"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenConnection(t *testing.T) {
	t.Run("it should open new connection", func(t *testing.T) {
		db, err := inmemstore.NewConnection()

		assert.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, db.Close())
	})
}

func TestCustomerStore(t *testing.T) {
	ctx := context.Background()
	db, err := inmemstore.NewConnection()
	require.NoError(t, err)
	store := inmemstore.NewCustomerStore(db)

	c, err := customer.New("1", "John")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, c))
	assert.False(t, c.CreatedAt.IsZero())

	t.Run("it should reject duplicate ids", func(t *testing.T) {
		dup, _ := customer.New("1", "Jane")
		assert.ErrorIs(t, store.Create(ctx, dup), customer.ErrAlreadyExists)
	})

	t.Run("it should update a customer", func(t *testing.T) {
		require.NoError(t, c.ChangeAddress(customer.Address{Street: "Street 1", Number: 1, Zip: "Zip 1", City: "City 1"}))
		require.NoError(t, c.Activate())
		require.NoError(t, store.Update(ctx, c))

		got, err := store.Find(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, c.Address, got.Address)
		assert.True(t, got.Active)
	})

	t.Run("it should isolate stored values from callers", func(t *testing.T) {
		got, err := store.Find(ctx, "1")
		require.NoError(t, err)
		got.Address.City = "Elsewhere"

		again, err := store.Find(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "City 1", again.Address.City)
	})

	t.Run("it should report missing customers", func(t *testing.T) {
		_, err := store.Find(ctx, "missing")
		assert.ErrorIs(t, err, customer.ErrNotFound)

		ghost, _ := customer.New("missing", "Ghost")
		assert.ErrorIs(t, store.Update(ctx, ghost), customer.ErrNotFound)
	})
}

func TestFindAllPaging(t *testing.T) {
	ctx := context.Background()
	db, err := inmemstore.NewConnection()
	require.NoError(t, err)
	store := inmemstore.NewProductStore(db)

	for _, id := range []string{"p3", "p1", "p2"} {
		p, err := product.New(id, "Product "+id, 10)
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, p))
	}

	cursor := pagination.NewCursor("", 2)
	first, err := store.FindAll(ctx, cursor)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "p1", first[0].ID)
	assert.Equal(t, "p2", first[1].ID)
	require.NotEmpty(t, cursor.NextToken)

	next := pagination.NewCursor(cursor.NextToken, 2)
	second, err := store.FindAll(ctx, next)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "p3", second[0].ID)
	assert.Empty(t, next.NextToken)

	_, err = store.FindAll(ctx, pagination.NewCursor("%%%", 2))
	assert.Error(t, err)
}

func TestOrderStore(t *testing.T) {
	ctx := context.Background()
	db, err := inmemstore.NewConnection()
	require.NoError(t, err)
	store := inmemstore.NewOrderStore(db)

	item, err := order.NewItem("i1", "Product 1", 10, "p1", 2)
	require.NoError(t, err)
	o, err := order.New("o1", "c1", []order.Item{item})
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, o))

	extra, err := order.NewItem("i2", "Product 2", 5, "p2", 1)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(extra))
	require.NoError(t, store.Update(ctx, o))

	got, err := store.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 25.0, got.Total())

	_, err = store.Find(ctx, "o2")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestConcurrentReadsOnEmptyDB(t *testing.T) {
	ctx := context.Background()
	db, err := inmemstore.NewConnection()
	require.NoError(t, err)

	customers := inmemstore.NewCustomerStore(db)
	products := inmemstore.NewProductStore(db)
	orders := inmemstore.NewOrderStore(db)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_, err := customers.Find(ctx, "missing")
			assert.ErrorIs(t, err, customer.ErrNotFound)
		}()
		go func() {
			defer wg.Done()
			_, err := products.Find(ctx, "missing")
			assert.ErrorIs(t, err, product.ErrNotFound)
		}()
		go func() {
			defer wg.Done()
			_, err := orders.Find(ctx, "missing")
			assert.ErrorIs(t, err, order.ErrNotFound)
		}()
		go func() {
			defer wg.Done()
			page, err := customers.FindAll(ctx, pagination.NewCursor("", 10))
			assert.NoError(t, err)
			assert.Empty(t, page)
		}()
	}
	wg.Wait()

	c, err := customer.New("1", "John")
	require.NoError(t, err)
	require.NoError(t, customers.Create(ctx, c))

	got, err := customers.Find(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "John", got.Name)
}
