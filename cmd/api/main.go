package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/aws"
	"github.com/shopstack-dev/storefront/internal/cart"
	"github.com/shopstack-dev/storefront/internal/catalog"
	"github.com/shopstack-dev/storefront/internal/checkout"
	"github.com/shopstack-dev/storefront/internal/config"
	"github.com/shopstack-dev/storefront/internal/handlers"
	"github.com/shopstack-dev/storefront/internal/idempotency"
	"github.com/shopstack-dev/storefront/internal/metrics"
	"github.com/shopstack-dev/storefront/internal/offers"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/settings"
)

func setupRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.Register(r)

	return r
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.WithError(err).Fatal("failed to init aws clients")
	}

	catalogStore := catalog.NewStore(clients.DynamoDB, cfg.ProductsTable)
	offersStore := offers.NewStore(clients.DynamoDB, cfg.OffersTable)
	ordersStore := orders.NewStore(clients.DynamoDB, cfg.OrdersTable, cfg.ProductsTable)
	idempStore := idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	settingsStore := settings.NewStore(clients.DynamoDB, cfg.SettingsTable)
	cartStore := cart.NewStore(clients.DynamoDB, cfg.CartsTable, cfg.WishlistsTable)

	svc := &checkout.Service{
		Catalog:     catalogStore,
		Offers:      offersStore,
		Orders:      ordersStore,
		Idempotency: idempStore,
		Settings:    settingsStore,
		Publisher:   aws.NewPublisher(clients.SQS, cfg.OrderEventsQueueURL),
		Metrics:     metrics.NewRecorder(clients.CloudWatch, cfg.MetricsNamespace),
	}

	h := handlers.New(svc, ordersStore, catalogStore, offersStore, cartStore, settingsStore)
	r := setupRouter(h)

	// if RUN_LOCAL is set, run a local HTTP server for development.
	if cfg.RunLocal {
		log.WithField("addr", cfg.ListenAddr).Info("running local server")
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.WithError(err).Fatal("failed to run local server")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
