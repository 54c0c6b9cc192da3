package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/pkg/pagination"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrAlreadyExists  = errors.New("product already exists")
	ErrInvalidProduct = errors.New("invalid product")
)

type Store interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context, cursor *pagination.Cursor) ([]Product, error)
}

type Service interface {
	Create(ctx context.Context, id, name, description string, price float64) (*Product, error)
	ChangePrice(ctx context.Context, id string, price float64) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, cursor *pagination.Cursor) ([]Product, error)
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
} // @name product.Product

func New(id, name string, price float64) (*Product, error) {
	p := &Product{ID: id, Name: name, Price: price}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) WithDescription(description string) *Product {
	p.Description = description

	return p
}

func (p *Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	return nil
}

func (p *Product) ChangeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}

	p.Name = name

	return nil
}

func (p *Product) ChangePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	p.Price = price

	return nil
}
