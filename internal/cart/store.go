// Package cart merges guest-session cart and saved-item state into the
// user's server-side records on login. The merge is explicitly
// best-effort: each item is written independently and one failure never
// aborts the rest.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/aws"
)

// CartLine is the item stored in the carts table, keyed by user and product.
type CartLine struct {
	UserID    string    `dynamodbav:"user_id" json:"user_id"` // PK
	ProductID string    `dynamodbav:"product_id" json:"product_id"` // SK
	Quantity  int       `dynamodbav:"quantity" json:"quantity"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// SavedItem is the item stored in the wishlists table.
type SavedItem struct {
	UserID    string    `dynamodbav:"user_id" json:"user_id"` // PK
	ProductID string    `dynamodbav:"product_id" json:"product_id"` // SK
	SavedAt   time.Time `dynamodbav:"saved_at" json:"saved_at"`
}

// Store encapsulates operations on the carts and wishlists tables.
type Store struct {
	client        aws.DynamoDBAPI
	cartsTable    string
	wishlistTable string
	nowFunc       func() time.Time
}

// NewStore creates a new cart Store.
func NewStore(client aws.DynamoDBAPI, cartsTable, wishlistTable string) *Store {
	return &Store{
		client:        client,
		cartsTable:    cartsTable,
		wishlistTable: wishlistTable,
		nowFunc:       time.Now,
	}
}

// Merge drains the pending-sync queue into the user's cart and wishlist.
// Cart quantities accumulate via ADD so a guest line stacks on top of an
// existing server-side line. Each item is written in its own request;
// failures are logged, recorded in the result and skipped. Never
// transactional.
func (s *Store) Merge(ctx context.Context, userID string, pending PendingSync) MergeResult {
	var result MergeResult
	now := s.nowFunc()

	for _, it := range pending.CartItems {
		if err := s.addCartQuantity(ctx, userID, it.ProductID, it.Quantity, now); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id":    userID,
				"product_id": it.ProductID,
			}).Warn("cart merge: item failed, continuing")
			result.Failed = append(result.Failed, FailedItem{ProductID: it.ProductID, Reason: err.Error()})
			continue
		}
		result.MergedCartItems++
	}

	for _, it := range pending.SavedItems {
		if err := s.putSavedItem(ctx, userID, it.ProductID, now); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id":    userID,
				"product_id": it.ProductID,
			}).Warn("cart merge: saved item failed, continuing")
			result.Failed = append(result.Failed, FailedItem{ProductID: it.ProductID, Reason: err.Error()})
			continue
		}
		result.MergedSavedItems++
	}

	return result
}

func (s *Store) addCartQuantity(ctx context.Context, userID, productID string, quantity int, now time.Time) error {
	if quantity <= 0 {
		return fmt.Errorf("invalid quantity %d", quantity)
	}
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.cartsTable,
		Key: map[string]types.AttributeValue{
			"user_id":    &types.AttributeValueMemberS{Value: userID},
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression: awsString("ADD quantity :q SET updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", quantity)},
			":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("add cart quantity: %w", err)
	}
	return nil
}

func (s *Store) putSavedItem(ctx context.Context, userID, productID string, now time.Time) error {
	item, err := attributevalue.MarshalMap(SavedItem{
		UserID:    userID,
		ProductID: productID,
		SavedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("marshal saved item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.wishlistTable,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put saved item: %w", err)
	}
	return nil
}

// ListForUser returns the user's current cart lines.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]CartLine, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.cartsTable,
		KeyConditionExpression: awsString("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	result := make([]CartLine, 0, len(out.Items))
	for _, item := range out.Items {
		var line CartLine
		if err := attributevalue.UnmarshalMap(item, &line); err != nil {
			return nil, fmt.Errorf("unmarshal cart line: %w", err)
		}
		result = append(result, line)
	}
	return result, nil
}

func awsString(s string) *string { return &s }
