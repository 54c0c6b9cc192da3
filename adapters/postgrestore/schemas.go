package postgrestore

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/domain/product"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type CustomerSchema struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Street       sql.NullString `db:"street"`
	Number       sql.NullInt64  `db:"number"`
	Zip          sql.NullString `db:"zip"`
	City         sql.NullString `db:"city"`
	Active       bool           `db:"active"`
	RewardPoints int            `db:"reward_points"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func NewCustomerSchema(c *customer.Customer) CustomerSchema {
	s := CustomerSchema{
		ID:           c.ID,
		Name:         c.Name,
		Active:       c.Active,
		RewardPoints: c.RewardPoints,
	}

	if c.Address != nil {
		s.Street = sql.NullString{String: c.Address.Street, Valid: true}
		s.Number = sql.NullInt64{Int64: int64(c.Address.Number), Valid: true}
		s.Zip = sql.NullString{String: c.Address.Zip, Valid: true}
		s.City = sql.NullString{String: c.Address.City, Valid: true}
	}

	return s
}

func (s *CustomerSchema) ToDomainCustomer() *customer.Customer {
	if s == nil {
		return nil
	}

	c := &customer.Customer{
		ID:           s.ID,
		Name:         s.Name,
		Active:       s.Active,
		RewardPoints: s.RewardPoints,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	if s.Street.Valid {
		c.Address = &customer.Address{
			Street: s.Street.String,
			Number: int(s.Number.Int64),
			Zip:    s.Zip.String,
			City:   s.City.String,
		}
	}

	return c
}

type ProductSchema struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (s *ProductSchema) ToDomainProduct() *product.Product {
	if s == nil {
		return nil
	}

	return &product.Product{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type OrderSchema struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	Total      float64   `db:"total"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type OrderItemSchema struct {
	ID        string  `db:"id"`
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Quantity  int     `db:"quantity"`
}

func NewOrderItemSchemas(o *order.Order) []OrderItemSchema {
	items := make([]OrderItemSchema, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemSchema{
			ID:        item.ID,
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return items
}

func (s *OrderSchema) ToDomainOrder(items []OrderItemSchema) *order.Order {
	o := &order.Order{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Items:      make([]order.Item, len(items)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}

	for i, item := range items {
		o.Items[i] = order.Item{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return o
}
