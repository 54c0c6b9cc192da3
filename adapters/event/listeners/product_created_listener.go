package listeners

import (
	"context"
	"fmt"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/mail"
	"github.com/storefront/backend/domain/product"
	"go.uber.org/zap"
)

type ProductCreatedEmailListener struct {
	sender mail.Sender
	from   string
	to     string
	logger *zap.SugaredLogger
}

func NewProductCreatedEmailListener(sender mail.Sender, from, to string, logger *zap.SugaredLogger) *ProductCreatedEmailListener {
	return &ProductCreatedEmailListener{sender: sender, from: from, to: to, logger: logger}
}

func (l *ProductCreatedEmailListener) EventName() string {
	return product.CreatedEventName
}

func (l *ProductCreatedEmailListener) Handle(ctx context.Context, event domain.BaseDomainEvent) error {
	e, ok := event.(product.ProductCreatedEvent)
	if !ok {
		unexpected(l.logger, l.EventName(), event)
		return nil
	}

	data := e.Data()
	msg := mail.Message{
		From:    l.from,
		To:      l.to,
		Subject: fmt.Sprintf("New product: %s", data.Name),
		Body: fmt.Sprintf("Product %q (%s) was created at %s with price %.2f.\n\n%s",
			data.Name, data.ID, e.OccurredAt().Format("2006-01-02 15:04:05"), data.Price, data.Description),
	}

	if err := l.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("cannot send product created email: %w", err)
	}

	l.logger.Infow("product created email sent", zap.String("product_id", data.ID), zap.String("to", l.to))

	return nil
}
