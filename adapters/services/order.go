package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/pagination"
	"go.uber.org/zap"
)

type OrderService struct {
	orders    order.Store
	customers customer.Store
	products  product.Store
	logger    *zap.SugaredLogger
}

func NewOrderService(orders order.Store, customers customer.Store, products product.Store, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{orders: orders, customers: customers, products: products, logger: logger}
}

// Place prices every line from the current product catalog and stores the
// order. An empty id gets a generated one.
func (s *OrderService) Place(ctx context.Context, id, customerID string, lines []order.LineRequest) (*order.Order, error) {
	if id == "" {
		id = uuid.NewString()
	}

	if _, err := s.customers.Find(ctx, customerID); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p, err := s.products.Find(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product '%s': %w", line.ProductID, err)
		}

		item, err := order.NewItem(uuid.NewString(), p.Name, p.Price, p.ID, line.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	o, err := order.New(id, customerID, items)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Debugw("order placed", zap.String("order_id", o.ID), zap.Float64("total", o.Total()))

	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.orders.Find(ctx, id)
}

func (s *OrderService) List(ctx context.Context, cursor *pagination.Cursor) ([]order.Order, error) {
	return s.orders.FindAll(ctx, cursor)
}
