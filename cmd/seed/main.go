package main

import (
	"context"
	"flag"
	"log"
	"strings"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"github.com/storefront/backend/adapters/event"
	"github.com/storefront/backend/adapters/event/listeners"
	"github.com/storefront/backend/adapters/inmemstore"
	"github.com/storefront/backend/adapters/postgrestore"
	"github.com/storefront/backend/adapters/redisstore"
	"github.com/storefront/backend/adapters/services"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/config"
	"github.com/storefront/backend/pkg/logger"
	"github.com/storefront/backend/pkg/sentry"
)

const customersCSV = `id,name,street,number,zip,city
c1,Customer 1,Street 1,1,Zipcode 1,City 1
c2,Customer 2,Street 2,2,Zipcode 2,City 2
c3,Customer 3
`

var sampleProducts = []struct {
	id, name, description string
	price                 float64
}{
	{"p1", "Product 1", "Product 1 description", 10},
	{"p2", "Product 2", "Product 2 description", 20},
}

func main() {
	inmem := flag.Bool("inmem", false, "seed an in-memory store instead of postgres")
	flag.Parse()

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

	ctx := context.Background()

	dispatcher := event.NewEventDispatcher(event.WithLogger(applog))
	listeners.Register(dispatcher,
		listeners.NewCustomerCreatedFirstLogListener(applog),
		listeners.NewCustomerCreatedSecondLogListener(applog),
		listeners.NewCustomerAddressChangedLogListener(applog),
	)

	var (
		customerStore customer.Store
		productStore  product.Store
		orderStore    order.Store
	)

	if *inmem {
		db, _ := inmemstore.NewConnection()
		customerStore = inmemstore.NewCustomerStore(db)
		productStore = inmemstore.NewProductStore(db)
		orderStore = inmemstore.NewOrderStore(db)
	} else {
		db, err := postgrestore.NewConnection(postgrestore.ParseFromConfig(cfg))
		if err != nil {
			applog.Fatal(err)
		}
		defer db.Close()

		if _, err := postgrestore.Migrate(db); err != nil {
			applog.Fatalf("cannot migrate db: %v", err)
		}

		redis, err := redisstore.NewConnection(ctx, redisstore.ParseFromConfig(cfg))
		if err != nil {
			applog.Fatal(err)
		}
		defer redis.Close()

		mailer := services.NewPubSubMailer(redisstore.NewRedisClient(redis), cfg.Mail.Channel)
		listeners.Register(dispatcher,
			listeners.NewProductCreatedEmailListener(mailer, cfg.Mail.From, cfg.Mail.AdminAddress, applog),
		)

		customerStore = postgrestore.NewCustomerStore(db)
		productStore = postgrestore.NewProductStore(db)
		orderStore = postgrestore.NewOrderStore(db)
	}

	customerService := services.NewCustomerService(customerStore, dispatcher, applog)
	productService := services.NewProductService(productStore, dispatcher, applog)
	orderService := services.NewOrderService(orderStore, customerStore, productStore, applog)

	customers, err := customerService.Import(ctx, strings.NewReader(customersCSV))
	if err != nil {
		applog.Fatalf("cannot seed customers: %v", err)
	}

	if _, err := customerService.ChangeAddress(ctx, "c3", customer.Address{
		Street: "Street 3", Number: 3, Zip: "Zipcode 3", City: "City 3",
	}); err != nil {
		applog.Fatalf("cannot seed customer address: %v", err)
	}

	for _, p := range sampleProducts {
		if _, err := productService.Create(ctx, p.id, p.name, p.description, p.price); err != nil {
			applog.Fatalf("cannot seed product %s: %v", p.id, err)
		}
	}

	placed, err := orderService.Place(ctx, "o1", "c1", []order.LineRequest{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	if err != nil {
		applog.Fatalf("cannot seed order: %v", err)
	}

	applog.Infof("seeded %d customers, %d products and order %s (total %.2f)",
		len(customers), len(sampleProducts), placed.ID, placed.Total())
}
