package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storefront/backend/domain/mail"
	"github.com/storefront/backend/domain/pubsub"
)

// PubSubMailer hands mails over to the mailer worker through a pubsub
// channel.
type PubSubMailer struct {
	pubsub  pubsub.Service
	channel string
}

func NewPubSubMailer(ps pubsub.Service, channel string) *PubSubMailer {
	return &PubSubMailer{pubsub: ps, channel: channel}
}

func (m *PubSubMailer) Send(ctx context.Context, msg mail.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("cannot encode mail: %w", err)
	}

	if err := m.pubsub.Publish(ctx, m.channel, string(payload)); err != nil {
		return fmt.Errorf("cannot publish mail to %s: %w", m.channel, err)
	}

	return nil
}

func DecodeMail(payload string) (mail.Message, error) {
	var msg mail.Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return mail.Message{}, fmt.Errorf("cannot decode mail: %w", err)
	}

	return msg, nil
}
