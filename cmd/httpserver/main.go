package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"github.com/storefront/backend/adapters/event"
	"github.com/storefront/backend/adapters/event/listeners"
	"github.com/storefront/backend/adapters/httpserver"
	"github.com/storefront/backend/adapters/postgrestore"
	"github.com/storefront/backend/adapters/redisstore"
	"github.com/storefront/backend/adapters/services"
	"github.com/storefront/backend/pkg/config"
	"github.com/storefront/backend/pkg/logger"
	"github.com/storefront/backend/pkg/sentry"
)

// @title Storefront APIs
// @version 1.0

// @BasePath /api
// @schemes http https

// @description Customer, product and order API.
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

	db, err := postgrestore.NewConnection(postgrestore.ParseFromConfig(cfg))
	if err != nil {
		applog.Fatal(err)
	}
	defer db.Close()

	n, err := postgrestore.Migrate(db)
	if err != nil {
		applog.Fatalf("cannot migrate db: %v", err)
	}
	applog.Infof("applied %d migrations", n)

	redis, err := redisstore.NewConnection(context.Background(), redisstore.ParseFromConfig(cfg))
	if err != nil {
		applog.Fatal(err)
	}
	defer redis.Close()

	// event bus
	dispatcher := event.NewEventDispatcher(event.WithLogger(applog))
	mailer := services.NewPubSubMailer(redisstore.NewRedisClient(redis), cfg.Mail.Channel)
	listeners.Register(dispatcher,
		listeners.NewCustomerCreatedFirstLogListener(applog),
		listeners.NewCustomerCreatedSecondLogListener(applog),
		listeners.NewCustomerAddressChangedLogListener(applog),
		listeners.NewProductCreatedEmailListener(mailer, cfg.Mail.From, cfg.Mail.AdminAddress, applog),
	)

	// store adapters
	customerStore := postgrestore.NewCustomerStore(db)
	productStore := postgrestore.NewProductStore(db)
	orderStore := postgrestore.NewOrderStore(db)

	server, err := httpserver.New(cfg, applog,
		httpserver.WithCustomerService(services.NewCustomerService(customerStore, dispatcher, applog)),
		httpserver.WithProductService(services.NewProductService(productStore, dispatcher, applog)),
		httpserver.WithOrderService(services.NewOrderService(orderStore, customerStore, productStore, applog)),
	)
	if err != nil {
		applog.Fatal(err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	applog.Info("server started!")
	applog.Fatal(http.ListenAndServe(addr, server))
}
