package inmemstore

import (
	"context"
	"fmt"

	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/pkg/pagination"
)

const ordersTable = "orders"

type OrderStore struct {
	db *DB
}

func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(_ context.Context, o *order.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(ordersTable)
	if _, ok := t[o.ID]; ok {
		return order.ErrAlreadyExists
	}

	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	t[o.ID] = copyOrder(o)

	return nil
}

func (s *OrderStore) Update(_ context.Context, o *order.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(ordersTable)
	stored, ok := t[o.ID]
	if !ok {
		return order.ErrNotFound
	}

	o.CreatedAt = stored.(*order.Order).CreatedAt
	o.UpdatedAt = now()
	t[o.ID] = copyOrder(o)

	return nil
}

func (s *OrderStore) Find(_ context.Context, id string) (*order.Order, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	stored, ok := s.db.lookup(ordersTable)[id]
	if !ok {
		return nil, order.ErrNotFound
	}

	return copyOrder(stored.(*order.Order)), nil
}

func (s *OrderStore) FindAll(_ context.Context, cursor *pagination.Cursor) ([]order.Order, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rows, err := s.db.page(ordersTable, cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	orders := make([]order.Order, len(rows))
	for i, row := range rows {
		orders[i] = *copyOrder(row.(*order.Order))
	}

	return orders, nil
}

func copyOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)

	return &cp
}
