// Package config loads process configuration from the environment once at
// startup; everything downstream receives it explicitly.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is the full process configuration.
type Config struct {
	OrdersTable      string `envconfig:"ORDERS_TABLE" required:"true"`
	ProductsTable    string `envconfig:"PRODUCTS_TABLE" required:"true"`
	OffersTable      string `envconfig:"OFFERS_TABLE" required:"true"`
	CartsTable       string `envconfig:"CARTS_TABLE" required:"true"`
	WishlistsTable   string `envconfig:"WISHLISTS_TABLE" required:"true"`
	SettingsTable    string `envconfig:"SETTINGS_TABLE" required:"true"`
	IdempotencyTable string `envconfig:"IDEMPOTENCY_TABLE" required:"true"`

	OrderEventsQueueURL string        `envconfig:"ORDER_EVENTS_QUEUE_URL"`
	EmailSender         string        `envconfig:"EMAIL_SENDER"`
	MetricsNamespace    string        `envconfig:"METRICS_NAMESPACE" default:"Storefront"`
	IdempotencyTTL      time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"48h"`

	RunLocal   bool   `envconfig:"RUN_LOCAL"`
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "process env config")
	}
	return cfg, nil
}
