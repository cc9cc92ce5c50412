package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/aws"
	"github.com/shopstack-dev/storefront/internal/config"
	"github.com/shopstack-dev/storefront/internal/email"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/settings"
)

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

	p := NewProcessor(
		orders.NewStore(clients.DynamoDB, cfg.OrdersTable, cfg.ProductsTable),
		settings.NewStore(clients.DynamoDB, cfg.SettingsTable),
		email.NewSender(clients.SES, cfg.EmailSender),
	)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"order_id":"local-order-1"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: testBody},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			log.WithError(err).Fatal("local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
