package pubsub

import "context"

type Message struct {
	Channel string
	Payload string
}

// PubSub is a live subscription. ReceiveMessage blocks until a message
// arrives or ctx is done.
type PubSub interface {
	ReceiveMessage(ctx context.Context) (Message, error)
	Close() error
}

type Service interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (PubSub, error)
}
