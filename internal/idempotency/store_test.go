package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// claim runs the store's conditional put through the mock the same way the
// orders store runs it inside the checkout transaction.
func claim(t *testing.T, mock *simpleMock, s *Store, key, orderID string) error {
	t.Helper()
	item, err := s.TransactPut(key, orderID)
	if err != nil {
		t.Fatalf("TransactPut error: %v", err)
	}
	_, err = mock.TransactWriteItems(context.Background(), &dyn.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{item},
	})
	return err
}

func TestClaim_Get_MarkDone_MarkFailed(t *testing.T) {
	mock := newSimpleMock()
	s := NewStore(mock, "idempotency-table", 48*time.Hour)

	ctx := context.Background()
	key := "test-key-1"
	orderID := "order-123"

	if err := claim(t, mock, s, key, orderID); err != nil {
		t.Fatalf("first claim error: %v", err)
	}

	// a second claim of the same key must cancel the transaction
	err := claim(t, mock, s, key, orderID)
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		t.Fatalf("expected TransactionCanceledException on duplicate claim, got %v", err)
	}

	// Get the record
	rec, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected record, got nil")
	}
	if rec.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", rec.Status)
	}
	if rec.OrderID != orderID {
		t.Fatalf("order id mismatch")
	}

	// Mark done
	err = s.MarkDone(ctx, key, "{\"ok\":true}", 201)
	if err != nil {
		t.Fatalf("MarkDone error: %v", err)
	}

	// Read raw item from mock to assert updated fields
	item := mock.table[key]
	if item == nil {
		t.Fatalf("mock item missing")
	}
	// verify status
	if st, ok := item["status"].(*types.AttributeValueMemberS); !ok || st.Value != StatusDone {
		t.Fatalf("status not updated to DONE, got %+v", item["status"])
	}
	// test response body
	if rb, ok := item["response_body"].(*types.AttributeValueMemberS); !ok || rb.Value != "{\"ok\":true}" {
		t.Fatalf("response_body not set correctly: %+v", item["response_body"])
	}

	// MarkFailed (should overwrite status)
	err = s.MarkFailed(ctx, key, "failed-reason")
	if err != nil {
		t.Fatalf("MarkFailed error: %v", err)
	}
	item2 := mock.table[key]
	if item2 == nil {
		t.Fatalf("mock item missing after mark failed")
	}
	if st, ok := item2["status"].(*types.AttributeValueMemberS); !ok || st.Value != StatusFailed {
		t.Fatalf("status not updated to FAILED, got %+v", item2["status"])
	}
	if n, ok := item2["note"].(*types.AttributeValueMemberS); !ok || n.Value != "failed-reason" {
		t.Fatalf("note not set, got %+v", item2["note"])
	}
}

func TestAttributevalueMarshal_Unmarshal(t *testing.T) {
	// ensure our types marshal/unmarshal cleanly
	rec := Record{
		IdempotencyKey: "k1",
		Status:         StatusInProgress,
		OrderID:        "o1",
		CreatedAt:      time.Now().Round(time.Second),
		UpdatedAt:      time.Now().Round(time.Second),
		ExpiresAt:      time.Now().Add(24 * time.Hour).Unix(),
	}
	m, err := attributevalue.MarshalMap(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Record
	if err := attributevalue.UnmarshalMap(m, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.IdempotencyKey != rec.IdempotencyKey {
		t.Fatalf("unmarshal mismatch")
	}
}

func TestTransactPut_BuildsConditionalPut(t *testing.T) {
	mock := newSimpleMock()
	s := NewStore(mock, "idempotency-table", 48*time.Hour)

	item, err := s.TransactPut("key-2", "order-456")
	if err != nil {
		t.Fatalf("TransactPut error: %v", err)
	}
	if item.Put == nil {
		t.Fatalf("expected Put transact item")
	}
	if *item.Put.TableName != "idempotency-table" {
		t.Fatalf("table name mismatch: %s", *item.Put.TableName)
	}
	if *item.Put.ConditionExpression != "attribute_not_exists(idempotency_key)" {
		t.Fatalf("condition mismatch: %s", *item.Put.ConditionExpression)
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(item.Put.Item, &rec); err != nil {
		t.Fatalf("unmarshal put item: %v", err)
	}
	if rec.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", rec.Status)
	}
	if rec.OrderID != "order-456" {
		t.Fatalf("order id mismatch: %s", rec.OrderID)
	}
	if rec.ExpiresAt == 0 {
		t.Fatalf("expected TTL to be set")
	}
}
