package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/storefront/backend/pkg/pagination"
)

var (
	ErrNotFound        = errors.New("customer not found")
	ErrAlreadyExists   = errors.New("customer already exists")
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrAddressRequired = errors.New("address is mandatory to activate a customer")
)

type Store interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Find(ctx context.Context, id string) (*Customer, error)
	FindAll(ctx context.Context, cursor *pagination.Cursor) ([]Customer, error)
}

type Service interface {
	Create(ctx context.Context, id, name string, address *Address) (*Customer, error)
	ChangeAddress(ctx context.Context, id string, address Address) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, cursor *pagination.Cursor) ([]Customer, error)
	Import(ctx context.Context, r io.Reader) ([]Customer, error)
}

type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      *Address  `json:"address,omitempty"`
	Active       bool      `json:"active"`
	RewardPoints int       `json:"reward_points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
} // @name customer.Customer

func New(id, name string) (*Customer, error) {
	c := &Customer{ID: id, Name: name}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCustomer)
	}

	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}

	if c.Address != nil {
		return c.Address.Validate()
	}

	return nil
}

func (c *Customer) ChangeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}

	c.Name = name

	return nil
}

func (c *Customer) ChangeAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.Address = &address

	return nil
}

func (c *Customer) Activate() error {
	if c.Address == nil {
		return ErrAddressRequired
	}

	c.Active = true

	return nil
}

func (c *Customer) Deactivate() {
	c.Active = false
}

func (c *Customer) AddRewardPoints(points int) {
	c.RewardPoints += points
}

// AddressLine is the address as carried by customer events, empty when the
// customer has none yet.
func (c *Customer) AddressLine() string {
	if c.Address == nil {
		return ""
	}

	return c.Address.String()
}
