package inmemstore

import (
	"context"
	"fmt"

	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/pagination"
)

const productsTable = "products"

type ProductStore struct {
	db *DB
}

func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(_ context.Context, p *product.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(productsTable)
	if _, ok := t[p.ID]; ok {
		return product.ErrAlreadyExists
	}

	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	t[p.ID] = &cp

	return nil
}

func (s *ProductStore) Update(_ context.Context, p *product.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t := s.db.table(productsTable)
	stored, ok := t[p.ID]
	if !ok {
		return product.ErrNotFound
	}

	p.CreatedAt = stored.(*product.Product).CreatedAt
	p.UpdatedAt = now()
	cp := *p
	t[p.ID] = &cp

	return nil
}

func (s *ProductStore) Find(_ context.Context, id string) (*product.Product, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	stored, ok := s.db.lookup(productsTable)[id]
	if !ok {
		return nil, product.ErrNotFound
	}

	cp := *stored.(*product.Product)

	return &cp, nil
}

func (s *ProductStore) FindAll(_ context.Context, cursor *pagination.Cursor) ([]product.Product, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rows, err := s.db.page(productsTable, cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	products := make([]product.Product, len(rows))
	for i, row := range rows {
		products[i] = *row.(*product.Product)
	}

	return products, nil
}
