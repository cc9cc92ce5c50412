package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopstack-dev/storefront/internal/aws"
)

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches a product by product_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// BatchGet fetches products by id in a single BatchGetItem call and
// returns them keyed by product_id. Missing ids are simply absent from
// the map; the caller decides whether that is an error.
func (s *Store) BatchGet(ctx context.Context, productIDs []string) (map[string]Product, error) {
	result := make(map[string]Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(productIDs))
	dedup := map[string]bool{}
	for _, id := range productIDs {
		if dedup[id] {
			continue
		}
		dedup[id] = true
		keys = append(keys, map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: id},
		})
	}

	out, err := s.client.BatchGetItem(ctx, &dyn.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			s.tableName: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("batch get items: %w", err)
	}

	for _, item := range out.Responses[s.tableName] {
		var p Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		result[p.ProductID] = p
	}
	return result, nil
}

// Put creates or replaces a product, refreshing updated_at.
func (s *Store) Put(ctx context.Context, p Product) error {
	now := s.nowFunc()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
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

// List scans the whole products table. Catalog sizes here are small enough
// that a single scan page suffices.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	result := make([]Product, 0, len(out.Items))
	for _, item := range out.Items {
		var p Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		result = append(result, p)
	}
	return result, nil
}
