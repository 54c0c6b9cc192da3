package postgrestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/pkg/pagination"
)

type OrderStore struct {
	db *sqlx.DB
}

func NewOrderStore(db *sqlx.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, o *order.Order) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		row := tx.QueryRowxContext(ctx, `
			INSERT INTO orders (id, customer_id, total) VALUES ($1, $2, $3)
			RETURNING created_at, updated_at`,
			o.ID, o.CustomerID, o.Total())

		if err := row.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return order.ErrAlreadyExists
			}

			return fmt.Errorf("cannot create order: %w", err)
		}

		return insertItems(ctx, tx, o)
	})
}

// Update rewrites the order row and replaces its items.
func (s *OrderStore) Update(ctx context.Context, o *order.Order) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		row := tx.QueryRowxContext(ctx, `
			UPDATE orders SET customer_id = $2, total = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at`,
			o.ID, o.CustomerID, o.Total())

		if err := row.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return order.ErrNotFound
			}

			return fmt.Errorf("cannot update order '%s': %w", o.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
			return fmt.Errorf("cannot clear order items: %w", err)
		}

		return insertItems(ctx, tx, o)
	})
}

func (s *OrderStore) Find(ctx context.Context, id string) (*order.Order, error) {
	var schema OrderSchema
	err := s.db.GetContext(ctx, &schema, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("cannot get order '%s': %w", id, err)
	}

	var items []OrderItemSchema
	err = s.db.SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get items of order '%s': %w", id, err)
	}

	return schema.ToDomainOrder(items), nil
}

func (s *OrderStore) FindAll(ctx context.Context, cursor *pagination.Cursor) ([]order.Order, error) {
	after, err := pagination.DecodeToken[pagination.KeysetCursor](cursor.Token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}

	var schemas []OrderSchema
	err = s.db.SelectContext(ctx, &schemas,
		`SELECT * FROM orders WHERE id > $1 ORDER BY id LIMIT $2`, after.After, cursor.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}

	if len(schemas) > cursor.Limit {
		schemas = schemas[:cursor.Limit]
		cursor.SetNextToken(pagination.EncodeToken(pagination.KeysetCursor{After: schemas[cursor.Limit-1].ID}))
	}

	if len(schemas) == 0 {
		return []order.Order{}, nil
	}

	ids := make([]string, len(schemas))
	for i, schema := range schemas {
		ids[i] = schema.ID
	}

	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("cannot build items query: %w", err)
	}

	var items []OrderItemSchema
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("cannot list order items: %w", err)
	}

	byOrder := make(map[string][]OrderItemSchema, len(schemas))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]order.Order, len(schemas))
	for i := range schemas {
		orders[i] = *schemas[i].ToDomainOrder(byOrder[schemas[i].ID])
	}

	return orders, nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, o *order.Order) error {
	items := NewOrderItemSchemas(o)
	if len(items) == 0 {
		return nil
	}

	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
		VALUES (:id, :order_id, :product_id, :name, :price, :quantity)`, items)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate item id", order.ErrInvalidOrder)
		}

		return fmt.Errorf("cannot insert order items: %w", err)
	}

	return nil
}

func (s *OrderStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit transaction: %w", err)
	}

	return nil
}
