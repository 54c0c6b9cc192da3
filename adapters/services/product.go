package services

import (
	"context"
	"fmt"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/pagination"
	"go.uber.org/zap"
)

type ProductService struct {
	store      product.Store
	dispatcher domain.EventDispatcher
	logger     *zap.SugaredLogger
}

func NewProductService(store product.Store, dispatcher domain.EventDispatcher, logger *zap.SugaredLogger) *ProductService {
	return &ProductService{store: store, dispatcher: dispatcher, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, id, name, description string, price float64) (*product.Product, error) {
	p, err := product.New(id, name, price)
	if err != nil {
		return nil, err
	}

	p.WithDescription(description)

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debugw("product created", zap.String("product_id", p.ID))

	e := product.NewProductCreatedEvent(product.EventData{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	})
	if err := s.dispatcher.Notify(ctx, e); err != nil {
		return p, fmt.Errorf("%w: %w", ErrEventDelivery, err)
	}

	return p, nil
}

func (s *ProductService) ChangePrice(ctx context.Context, id string, price float64) (*product.Product, error) {
	p, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.ChangePrice(price); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*product.Product, error) {
	return s.store.Find(ctx, id)
}

func (s *ProductService) List(ctx context.Context, cursor *pagination.Cursor) ([]product.Product, error) {
	return s.store.FindAll(ctx, cursor)
}
