package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/storefront/backend/adapters/redisstore"
	"github.com/storefront/backend/adapters/services"
	"github.com/storefront/backend/domain/mail"
	"github.com/storefront/backend/domain/pubsub"
	"github.com/storefront/backend/pkg/config"
	"github.com/storefront/backend/pkg/logger"
	"github.com/storefront/backend/pkg/sentry"
	"go.uber.org/zap"
)

type worker struct {
	applog        *zap.SugaredLogger
	pubsubService pubsub.Service
	channel       string
}

func main() {
	applog, err := logger.NewAppLogger()
	if err != nil {
		log.Fatalf("cannot load config: %v\n", err)
	}
	defer logger.Sync(applog)

	cfg, err := config.LoadConfig()
	if err != nil {
		applog.Fatal(err)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		applog.Fatalf("cannot init sentry: %v", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redis, err := redisstore.NewConnection(ctx, redisstore.ParseFromConfig(cfg))
	if err != nil {
		applog.Fatalf("cannot connect to redis: %v", err)
	}
	defer redis.Close()

	w := &worker{
		applog:        applog,
		pubsubService: redisstore.NewRedisClient(redis),
		channel:       cfg.Mail.Channel,
	}

	if err := w.run(ctx); err != nil {
		sentrygo.CaptureException(err)
		applog.Errorf("mailer stopped: %v", err)
	}
}

// run consumes the mail channel until ctx is done. A payload that cannot be
// decoded is logged and skipped.
func (w *worker) run(ctx context.Context) error {
	ps, err := w.pubsubService.Subscribe(ctx, w.channel)
	if err != nil {
		return err
	}
	defer ps.Close()

	w.applog.Infof("listening for mails on %s", w.channel)

	for {
		msg, err := ps.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		}

		m, err := services.DecodeMail(msg.Payload)
		if err != nil {
			w.applog.Warnw("cannot decode mail", zap.String("payload", msg.Payload), zap.Error(err))
			continue
		}

		w.deliver(m)
	}
}

func (w *worker) deliver(m mail.Message) {
	w.applog.Infow("mail delivered",
		zap.String("from", m.From),
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
		zap.Int("body_length", len(m.Body)),
	)
}
