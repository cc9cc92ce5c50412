package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/shopstack-dev/storefront/internal/email"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/settings"
)

type fakeOrderGetter struct {
	order *orders.Order
	err   error
}

func (f *fakeOrderGetter) Get(ctx context.Context, orderID string) (*orders.Order, error) {
	return f.order, f.err
}

type fakeSettingsGetter struct {
	site *settings.Settings
	err  error
}

func (f *fakeSettingsGetter) Get(ctx context.Context) (*settings.Settings, error) {
	return f.site, f.err
}

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func testOrder() *orders.Order {
	return &orders.Order{
		OrderID:       "order-1",
		CustomerEmail: "buyer@example.com",
		Items: []orders.OrderItem{
			{ProductID: "prod-1", Name: "Mug", Quantity: 2, FinalUnitPrice: 90, LineItemTotal: 180},
		},
		Subtotal:   200,
		GrandTotal: 180,
	}
}

func sqsEvent(body string) events.SQSEvent {
	return events.SQSEvent{Records: []events.SQSMessage{{Body: body}}}
}

func TestHandle_SendsConfirmation(t *testing.T) {
	sender := &fakeSender{}
	p := NewProcessor(
		&fakeOrderGetter{order: testOrder()},
		&fakeSettingsGetter{site: &settings.Settings{StoreName: "ShopStack"}},
		sender,
	)

	err := p.Handle(context.Background(), sqsEvent(`{"order_id":"order-1","correlation_id":"corr-1"}`))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "buyer@example.com" {
		t.Fatalf("wrong recipient: %s", sender.sent[0].To)
	}
}

func TestHandle_EmailFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("ses throttled")}
	p := NewProcessor(
		&fakeOrderGetter{order: testOrder()},
		&fakeSettingsGetter{site: &settings.Settings{}},
		sender,
	)

	// the order is already committed, so a failed send must not trigger a retry
	err := p.Handle(context.Background(), sqsEvent(`{"order_id":"order-1"}`))
	if err != nil {
		t.Fatalf("email failure must not surface, got %v", err)
	}
}

func TestHandle_MissingOrderGoesToRetry(t *testing.T) {
	p := NewProcessor(&fakeOrderGetter{order: nil}, &fakeSettingsGetter{}, &fakeSender{})

	err := p.Handle(context.Background(), sqsEvent(`{"order_id":"missing"}`))
	if err == nil {
		t.Fatal("expected error for missing order")
	}
}

func TestHandle_MalformedBodyGoesToRetry(t *testing.T) {
	p := NewProcessor(&fakeOrderGetter{order: testOrder()}, &fakeSettingsGetter{}, &fakeSender{})

	err := p.Handle(context.Background(), sqsEvent(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestHandle_SettingsUnavailableStillSends(t *testing.T) {
	sender := &fakeSender{}
	p := NewProcessor(
		&fakeOrderGetter{order: testOrder()},
		&fakeSettingsGetter{err: errors.New("dynamo down")},
		sender,
	)

	if err := p.Handle(context.Background(), sqsEvent(`{"order_id":"order-1"}`)); err != nil {
		t.Fatalf("expected success despite settings error, got %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected email despite settings error, got %d", len(sender.sent))
	}
}
