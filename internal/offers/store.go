// Package offers persists promotion definitions; the pricing package
// consumes them in-memory.
package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopstack-dev/storefront/internal/aws"
	"github.com/shopstack-dev/storefront/internal/pricing"
)

// ErrOfferNotFound is returned by Update/Delete when the offer does not exist.
var ErrOfferNotFound = errors.New("offer not found")

// Store encapsulates operations on the offers table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new offers Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new offer. The caller has validated the payload;
// OfferID must already be set.
func (s *Store) Create(ctx context.Context, o pricing.Offer) error {
	now := s.nowFunc()
	o.CreatedAt = now
	o.UpdatedAt = now

	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal offer: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(offer_id)"),
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Update replaces an existing offer document, preserving created_at.
func (s *Store) Update(ctx context.Context, o pricing.Offer) error {
	existing, err := s.Get(ctx, o.OfferID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrOfferNotFound
	}
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal offer: %w", err)
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

// Get fetches an offer by offer_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, offerID string) (*pricing.Offer, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"offer_id": &types.AttributeValueMemberS{Value: offerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o pricing.Offer
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal offer: %w", err)
	}
	return &o, nil
}

// Delete removes an offer.
func (s *Store) Delete(ctx context.Context, offerID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"offer_id": &types.AttributeValueMemberS{Value: offerID},
		},
		ConditionExpression: awsString("attribute_exists(offer_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrOfferNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List scans all offers.
func (s *Store) List(ctx context.Context) ([]pricing.Offer, error) {
	return s.scan(ctx, nil)
}

// ListEnabled scans offers with enabled = true. Time-window filtering is
// left to the pricing engine so it is evaluated against a single clock.
func (s *Store) ListEnabled(ctx context.Context) ([]pricing.Offer, error) {
	return s.scan(ctx, &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: awsString("enabled = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
}

func (s *Store) scan(ctx context.Context, input *dyn.ScanInput) ([]pricing.Offer, error) {
	if input == nil {
		input = &dyn.ScanInput{TableName: &s.tableName}
	}
	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan offers: %w", err)
	}
	result := make([]pricing.Offer, 0, len(out.Items))
	for _, item := range out.Items {
		var o pricing.Offer
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal offer: %w", err)
		}
		result = append(result, o)
	}
	return result, nil
}

func awsString(s string) *string { return &s }
