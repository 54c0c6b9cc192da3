package postgrestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/pkg/pagination"
)

type CustomerStore struct {
	db *sqlx.DB
}

func NewCustomerStore(db *sqlx.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	schema := NewCustomerSchema(c)

	row := s.db.QueryRowxContext(ctx, `
		INSERT INTO customers (id, name, street, number, zip, city, active, reward_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		schema.ID, schema.Name, schema.Street, schema.Number, schema.Zip, schema.City,
		schema.Active, schema.RewardPoints)

	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return customer.ErrAlreadyExists
		}

		return fmt.Errorf("cannot create customer: %w", err)
	}

	return nil
}

func (s *CustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	schema := NewCustomerSchema(c)

	row := s.db.QueryRowxContext(ctx, `
		UPDATE customers
		SET name = $2, street = $3, number = $4, zip = $5, city = $6,
		    active = $7, reward_points = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		schema.ID, schema.Name, schema.Street, schema.Number, schema.Zip, schema.City,
		schema.Active, schema.RewardPoints)

	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customer.ErrNotFound
		}

		return fmt.Errorf("cannot update customer '%s': %w", c.ID, err)
	}

	return nil
}

func (s *CustomerStore) Find(ctx context.Context, id string) (*customer.Customer, error) {
	var schema CustomerSchema
	err := s.db.GetContext(ctx, &schema, `SELECT * FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("cannot get customer '%s': %w", id, err)
	}

	return schema.ToDomainCustomer(), nil
}

func (s *CustomerStore) FindAll(ctx context.Context, cursor *pagination.Cursor) ([]customer.Customer, error) {
	after, err := pagination.DecodeToken[pagination.KeysetCursor](cursor.Token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	var schemas []CustomerSchema
	err = s.db.SelectContext(ctx, &schemas,
		`SELECT * FROM customers WHERE id > $1 ORDER BY id LIMIT $2`, after.After, cursor.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("cannot list customers: %w", err)
	}

	if len(schemas) > cursor.Limit {
		schemas = schemas[:cursor.Limit]
		cursor.SetNextToken(pagination.EncodeToken(pagination.KeysetCursor{After: schemas[cursor.Limit-1].ID}))
	}

	customers := make([]customer.Customer, len(schemas))
	for i := range schemas {
		customers[i] = *schemas[i].ToDomainCustomer()
	}

	return customers, nil
}
