// Package settings holds the admin-configured site settings document.
// It is fetched once per request and passed explicitly into the services
// that need it; nothing caches it at module level.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopstack-dev/storefront/internal/aws"
)

const siteSettingsID = "site"

// Settings is the single site-wide configuration document.
type Settings struct {
	SettingsID            string    `dynamodbav:"settings_id" json:"settings_id"` // PK, always "site"
	StoreName             string    `dynamodbav:"store_name" json:"store_name"`
	SupportEmail          string    `dynamodbav:"support_email,omitempty" json:"support_email,omitempty"`
	UPIID                 string    `dynamodbav:"upi_id,omitempty" json:"upi_id,omitempty"`
	ShippingFlatRate      float64   `dynamodbav:"shipping_flat_rate" json:"shipping_flat_rate"`
	FreeShippingThreshold float64   `dynamodbav:"free_shipping_threshold" json:"free_shipping_threshold"`
	TaxRatePercent        float64   `dynamodbav:"tax_rate_percent" json:"tax_rate_percent"`
	UpdatedAt             time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// Store encapsulates operations on the settings table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new settings Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get loads the site settings document. A missing document yields zero-value
// settings rather than an error, so a fresh deployment still checks out.
func (s *Store) Get(ctx context.Context) (*Settings, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"settings_id": &types.AttributeValueMemberS{Value: siteSettingsID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return &Settings{SettingsID: siteSettingsID}, nil
	}
	var cfg Settings
	if err := attributevalue.UnmarshalMap(out.Item, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &cfg, nil
}

// Put replaces the site settings document.
func (s *Store) Put(ctx context.Context, cfg Settings) error {
	cfg.SettingsID = siteSettingsID
	cfg.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}
