package postgrestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/pagination"
)

type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, p *product.Product) error {
	row := s.db.QueryRowxContext(ctx, `
		INSERT INTO products (id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Price)

	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return product.ErrAlreadyExists
		}

		return fmt.Errorf("cannot create product: %w", err)
	}

	return nil
}

func (s *ProductStore) Update(ctx context.Context, p *product.Product) error {
	row := s.db.QueryRowxContext(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Price)

	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		return fmt.Errorf("cannot update product '%s': %w", p.ID, err)
	}

	return nil
}

func (s *ProductStore) Find(ctx context.Context, id string) (*product.Product, error) {
	var schema ProductSchema
	err := s.db.GetContext(ctx, &schema, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("cannot get product '%s': %w", id, err)
	}

	return schema.ToDomainProduct(), nil
}

func (s *ProductStore) FindAll(ctx context.Context, cursor *pagination.Cursor) ([]product.Product, error) {
	after, err := pagination.DecodeToken[pagination.KeysetCursor](cursor.Token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	var schemas []ProductSchema
	err = s.db.SelectContext(ctx, &schemas,
		`SELECT * FROM products WHERE id > $1 ORDER BY id LIMIT $2`, after.After, cursor.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("cannot list products: %w", err)
	}

	if len(schemas) > cursor.Limit {
		schemas = schemas[:cursor.Limit]
		cursor.SetNextToken(pagination.EncodeToken(pagination.KeysetCursor{After: schemas[cursor.Limit-1].ID}))
	}

	products := make([]product.Product, len(schemas))
	for i := range schemas {
		products[i] = *schemas[i].ToDomainProduct()
	}

	return products, nil
}
