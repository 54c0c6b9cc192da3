package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/pkg/pagination"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrAlreadyExists = errors.New("order already exists")
	ErrInvalidOrder  = errors.New("invalid order")
	ErrItemsRequired = errors.New("order must have at least one item")
)

type Store interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	FindAll(ctx context.Context, cursor *pagination.Cursor) ([]Order, error)
}

// LineRequest is what a caller orders: a product and how many.
type LineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Service interface {
	Place(ctx context.Context, id, customerID string, lines []LineRequest) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, cursor *pagination.Cursor) ([]Order, error)
}

type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
} // @name order.Order

func New(id, customerID string, items []Item) (*Order, error) {
	o := &Order{ID: id, CustomerID: customerID, Items: items}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidOrder)
	}

	if o.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidOrder)
	}

	if len(o.Items) == 0 {
		return ErrItemsRequired
	}

	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Total()
	}

	return total
}

func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	o.Items = append(o.Items, item)

	return nil
}
