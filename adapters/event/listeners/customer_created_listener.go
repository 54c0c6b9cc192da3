package listeners

import (
	"context"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/customer"
	"go.uber.org/zap"
)

type CustomerCreatedFirstLogListener struct {
	logger *zap.SugaredLogger
}

func NewCustomerCreatedFirstLogListener(logger *zap.SugaredLogger) *CustomerCreatedFirstLogListener {
	return &CustomerCreatedFirstLogListener{logger: logger}
}

func (l *CustomerCreatedFirstLogListener) EventName() string {
	return customer.CreatedEventName
}

func (l *CustomerCreatedFirstLogListener) Handle(_ context.Context, event domain.BaseDomainEvent) error {
	e, ok := event.(customer.CustomerCreatedEvent)
	if !ok {
		unexpected(l.logger, l.EventName(), event)
		return nil
	}

	l.logger.Infow("this is the first log of the event: CustomerCreated",
		zap.String("customer_id", e.Data().ID),
		zap.Time("occurred_at", e.OccurredAt()),
	)

	return nil
}

type CustomerCreatedSecondLogListener struct {
	logger *zap.SugaredLogger
}

func NewCustomerCreatedSecondLogListener(logger *zap.SugaredLogger) *CustomerCreatedSecondLogListener {
	return &CustomerCreatedSecondLogListener{logger: logger}
}

func (l *CustomerCreatedSecondLogListener) EventName() string {
	return customer.CreatedEventName
}

func (l *CustomerCreatedSecondLogListener) Handle(_ context.Context, event domain.BaseDomainEvent) error {
	e, ok := event.(customer.CustomerCreatedEvent)
	if !ok {
		unexpected(l.logger, l.EventName(), event)
		return nil
	}

	l.logger.Infow("this is the second log of the event: CustomerCreated",
		zap.String("customer_id", e.Data().ID),
		zap.Time("occurred_at", e.OccurredAt()),
	)

	return nil
}

func unexpected(logger *zap.SugaredLogger, want string, event domain.BaseDomainEvent) {
	logger.Warnw("listener received an unexpected event",
		zap.String("want", want),
		zap.String("got", event.EventName()),
	)
}
