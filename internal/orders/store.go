package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopstack-dev/storefront/internal/aws"
)

// ErrOrderNotFound is returned by UpdateStatus when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrTransactionCanceled is returned when the creation transaction was
// rejected as a whole, e.g. a referenced product document does not exist
// or the order id collided.
var ErrTransactionCanceled = errors.New("order transaction canceled")

// Store encapsulates operations on the orders table, plus the stock
// decrements it performs against the products table inside the creation
// transaction.
type Store struct {
	client        aws.DynamoDBAPI
	tableName     string
	productsTable string
	nowFunc       func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName, productsTable string) *Store {
	return &Store{
		client:        client,
		tableName:     tableName,
		productsTable: productsTable,
		nowFunc:       time.Now,
	}
}

// CreateTransaction atomically persists the order and decrements stock for
// every line item in a single TransactWriteItems call:
//   - Put of the order document, guarded by attribute_not_exists(order_id)
//   - one stock-decrement Update per line item, guarded by
//     attribute_exists(product_id) so a missing product cancels everything
//
// extra items (e.g. the checkout idempotency record put) ride in the same
// transaction. Stock is not checked against the requested quantity; the
// counter may go negative on oversell.
func (s *Store) CreateTransaction(ctx context.Context, order Order, extra ...types.TransactWriteItem) error {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	orderMap, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order item: %w", err)
	}

	transactItems := make([]types.TransactWriteItem, 0, len(order.Items)+len(extra)+1)
	transactItems = append(transactItems, extra...)
	transactItems = append(transactItems, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           &s.tableName,
			Item:                orderMap,
			ConditionExpression: awsString("attribute_not_exists(order_id)"),
		},
	})

	for _, it := range order.Items {
		transactItems = append(transactItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName: &s.productsTable,
				Key: map[string]types.AttributeValue{
					"product_id": &types.AttributeValueMemberS{Value: it.ProductID},
				},
				UpdateExpression:    awsString("SET stock = stock - :q, updated_at = :ua"),
				ConditionExpression: awsString("attribute_exists(product_id)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":q":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", it.Quantity)},
					":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
				},
			},
		})
	}

	input := &dyn.TransactWriteItemsInput{
		TransactItems: transactItems,
	}

	_, err = s.client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return fmt.Errorf("%w: %s", ErrTransactionCanceled, err.Error())
		}
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

// Get fetches an order by order_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	key := map[string]types.AttributeValue{
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// UpdateStatus merges the new status (and optional tracking fields) into
// the order and refreshes updated_at. Any status may replace any other;
// there is no transition validation.
func (s *Store) UpdateStatus(ctx context.Context, orderID, newStatus, trackingNumber, shippingCarrier string) error {
	now := s.nowFunc()
	updateExpr := "SET order_status = :new, updated_at = :ua"
	values := map[string]types.AttributeValue{
		":new": &types.AttributeValueMemberS{Value: newStatus},
		":ua":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
	}
	if trackingNumber != "" {
		updateExpr += ", tracking_number = :tn"
		values[":tn"] = &types.AttributeValueMemberS{Value: trackingNumber}
	}
	if shippingCarrier != "" {
		updateExpr += ", shipping_carrier = :sc"
		values[":sc"] = &types.AttributeValueMemberS{Value: shippingCarrier}
	}

	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:          &updateExpr,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(order_id)"),
	}

	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var sc *types.ConditionalCheckFailedException
		if errors.As(err, &sc) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByUser queries the user_id GSI and returns the user's orders.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	input := &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString("user_id-index"),
		KeyConditionExpression: awsString("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	}
	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	result := make([]Order, 0, len(out.Items))
	for _, item := range out.Items {
		var o Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		result = append(result, o)
	}
	return result, nil
}

// ScanBetween returns all orders created within [from, till], for the
// admin sales aggregation. Timestamps marshal as RFC3339 strings so BETWEEN
// compares correctly.
func (s *Store) ScanBetween(ctx context.Context, from, till time.Time) ([]Order, error) {
	input := &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: awsString("created_at BETWEEN :f AND :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":f": &types.AttributeValueMemberS{Value: from.UTC().Format(time.RFC3339Nano)},
			":t": &types.AttributeValueMemberS{Value: till.UTC().Format(time.RFC3339Nano)},
		},
	}
	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	result := make([]Order, 0, len(out.Items))
	for _, item := range out.Items {
		var o Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		result = append(result, o)
	}
	return result, nil
}

func awsString(s string) *string { return &s }
