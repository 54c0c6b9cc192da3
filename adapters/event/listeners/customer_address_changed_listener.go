package listeners

import (
	"context"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/domain/customer"
	"go.uber.org/zap"
)

type CustomerAddressChangedLogListener struct {
	logger *zap.SugaredLogger
}

func NewCustomerAddressChangedLogListener(logger *zap.SugaredLogger) *CustomerAddressChangedLogListener {
	return &CustomerAddressChangedLogListener{logger: logger}
}

func (l *CustomerAddressChangedLogListener) EventName() string {
	return customer.AddressChangedEventName
}

func (l *CustomerAddressChangedLogListener) Handle(_ context.Context, event domain.BaseDomainEvent) error {
	e, ok := event.(customer.CustomerAddressChangedEvent)
	if !ok {
		unexpected(l.logger, l.EventName(), event)
		return nil
	}

	data := e.Data()
	l.logger.Infof("address of customer %s, %s changed to: %s", data.ID, data.Name, data.Address)

	return nil
}
