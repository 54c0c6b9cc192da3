package inmemstore

import (
	"context"
	"fmt"

	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/pkg/pagination"
)

const customersTable = "customers"

type CustomerStore struct {
	db *DB
}

func NewCustomerStore(db *DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(_ context.Context, c *customer.Customer) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(customersTable)
	if _, ok := t[c.ID]; ok {
		return customer.ErrAlreadyExists
	}

	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	t[c.ID] = copyCustomer(c)

	return nil
}

func (s *CustomerStore) Update(_ context.Context, c *customer.Customer) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(customersTable)
	stored, ok := t[c.ID]
	if !ok {
		return customer.ErrNotFound
	}

	c.CreatedAt = stored.(*customer.Customer).CreatedAt
	c.UpdatedAt = now()
	t[c.ID] = copyCustomer(c)

	return nil
}

func (s *CustomerStore) Find(_ context.Context, id string) (*customer.Customer, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	stored, ok := s.db.lookup(customersTable)[id]
	if !ok {
		return nil, customer.ErrNotFound
	}

	return copyCustomer(stored.(*customer.Customer)), nil
}

func (s *CustomerStore) FindAll(_ context.Context, cursor *pagination.Cursor) ([]customer.Customer, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rows, err := s.db.page(customersTable, cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	customers := make([]customer.Customer, len(rows))
	for i, row := range rows {
		customers[i] = *copyCustomer(row.(*customer.Customer))
	}

	return customers, nil
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	cp := *c
	if c.Address != nil {
		addr := *c.Address
		cp.Address = &addr
	}

	return &cp
}
