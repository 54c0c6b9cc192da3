package services

import (
	"context"
	"fmt"
	"io"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/pkg/pagination"
	"go.uber.org/zap"
)

type CustomerService struct {
	store      customer.Store
	dispatcher domain.EventDispatcher
	csv        *CSVService
	logger     *zap.SugaredLogger
}

func NewCustomerService(store customer.Store, dispatcher domain.EventDispatcher, logger *zap.SugaredLogger) *CustomerService {
	return &CustomerService{
		store:      store,
		dispatcher: dispatcher,
		csv:        NewCSVService(),
		logger:     logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, id, name string, address *customer.Address) (*customer.Customer, error) {
	c, err := customer.New(id, name)
	if err != nil {
		return nil, err
	}

	if address != nil {
		if err := c.ChangeAddress(*address); err != nil {
			return nil, err
		}
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debugw("customer created", zap.String("customer_id", c.ID))

	if err := s.dispatcher.Notify(ctx, customer.NewCustomerCreatedEvent(customer.NewEventData(c))); err != nil {
		return c, fmt.Errorf("%w: %w", ErrEventDelivery, err)
	}

	return c, nil
}

func (s *CustomerService) ChangeAddress(ctx context.Context, id string, address customer.Address) (*customer.Customer, error) {
	c, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.ChangeAddress(address); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Notify(ctx, customer.NewCustomerAddressChangedEvent(customer.NewEventData(c))); err != nil {
		return c, fmt.Errorf("%w: %w", ErrEventDelivery, err)
	}

	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*customer.Customer, error) {
	return s.store.Find(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, cursor *pagination.Cursor) ([]customer.Customer, error) {
	return s.store.FindAll(ctx, cursor)
}

// Import creates one customer per CSV row. It stops at the first row that
// fails and returns the customers created so far.
func (s *CustomerService) Import(ctx context.Context, r io.Reader) ([]customer.Customer, error) {
	rows, err := s.csv.CsvToEntities(r, customerRowMapper)
	if err != nil {
		return nil, err
	}

	created := make([]customer.Customer, 0, len(rows))
	for i, row := range rows {
		req := row.(customerRow)
		if req.err != nil {
			return created, fmt.Errorf("row %d: %w", i+1, req.err)
		}

		c, err := s.Create(ctx, req.id, req.name, req.address)
		if err != nil {
			return created, fmt.Errorf("row %d: %w", i+1, err)
		}

		created = append(created, *c)
	}

	return created, nil
}
