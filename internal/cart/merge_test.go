package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mergeMock backs the carts and wishlists tables with in-memory maps and
// lets a test fail writes for chosen product ids.
type mergeMock struct {
	mu          sync.Mutex
	cartQty     map[string]int // "user|product" -> quantity
	saved       map[string]bool
	failProduct map[string]bool
}

func newMergeMock() *mergeMock {
	return &mergeMock{
		cartQty:     map[string]int{},
		saved:       map[string]bool{},
		failProduct: map[string]bool{},
	}
}

func keyOf(attrs map[string]types.AttributeValue) string {
	u := attrs["user_id"].(*types.AttributeValueMemberS).Value
	p := attrs["product_id"].(*types.AttributeValueMemberS).Value
	return u + "|" + p
}

func (m *mergeMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pid := params.Key["product_id"].(*types.AttributeValueMemberS).Value
	if m.failProduct[pid] {
		return nil, errors.New("provisioned throughput exceeded")
	}
	q, _ := strconv.Atoi(params.ExpressionAttributeValues[":q"].(*types.AttributeValueMemberN).Value)
	m.cartQty[keyOf(params.Key)] += q
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mergeMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pid := params.Item["product_id"].(*types.AttributeValueMemberS).Value
	if m.failProduct[pid] {
		return nil, errors.New("provisioned throughput exceeded")
	}
	m.saved[keyOf(params.Item)] = true
	return &dyn.PutItemOutput{}, nil
}

func (m *mergeMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	return &dyn.GetItemOutput{}, nil
}

func (m *mergeMock) BatchGetItem(ctx context.Context, params *dyn.BatchGetItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchGetItemOutput, error) {
	return &dyn.BatchGetItemOutput{}, nil
}

func (m *mergeMock) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mergeMock) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return &dyn.QueryOutput{}, nil
}

func (m *mergeMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return &dyn.ScanOutput{}, nil
}

func (m *mergeMock) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	return nil, errors.New("merge must never be transactional")
}

func TestMerge_AccumulatesQuantities(t *testing.T) {
	mock := newMergeMock()
	mock.cartQty["user-1|prod-1"] = 2 // pre-existing server-side line

	store := NewStore(mock, "carts", "wishlists")
	result := store.Merge(context.Background(), "user-1", PendingSync{
		CartItems: []PendingCartItem{
			{ProductID: "prod-1", Quantity: 3},
			{ProductID: "prod-2", Quantity: 1},
		},
		SavedItems: []PendingSavedItem{
			{ProductID: "prod-9"},
		},
	})

	if result.MergedCartItems != 2 || result.MergedSavedItems != 1 {
		t.Fatalf("merge counts wrong: %+v", result)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failed)
	}
	if got := mock.cartQty["user-1|prod-1"]; got != 5 {
		t.Fatalf("prod-1 quantity: expected 5, got %d", got)
	}
	if got := mock.cartQty["user-1|prod-2"]; got != 1 {
		t.Fatalf("prod-2 quantity: expected 1, got %d", got)
	}
	if !mock.saved["user-1|prod-9"] {
		t.Fatal("saved item missing")
	}
}

func TestMerge_OneFailureDoesNotAbortTheRest(t *testing.T) {
	mock := newMergeMock()
	mock.failProduct["prod-2"] = true

	store := NewStore(mock, "carts", "wishlists")
	result := store.Merge(context.Background(), "user-1", PendingSync{
		CartItems: []PendingCartItem{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 1},
			{ProductID: "prod-3", Quantity: 4},
		},
	})

	if result.MergedCartItems != 2 {
		t.Fatalf("expected 2 merged items, got %d", result.MergedCartItems)
	}
	if len(result.Failed) != 1 || result.Failed[0].ProductID != "prod-2" {
		t.Fatalf("failed list wrong: %+v", result.Failed)
	}
	// items after the failure still landed
	if got := mock.cartQty["user-1|prod-3"]; got != 4 {
		t.Fatalf("prod-3 quantity: expected 4, got %d", got)
	}
}

func TestMerge_RejectsNonPositiveQuantity(t *testing.T) {
	mock := newMergeMock()
	store := NewStore(mock, "carts", "wishlists")

	result := store.Merge(context.Background(), "user-1", PendingSync{
		CartItems: []PendingCartItem{{ProductID: "prod-1", Quantity: 0}},
	})

	if result.MergedCartItems != 0 || len(result.Failed) != 1 {
		t.Fatalf("expected single failure, got %+v", result)
	}
	if _, ok := mock.cartQty["user-1|prod-1"]; ok {
		t.Fatal("invalid quantity must not be written")
	}
}
