package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/email"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/settings"
)

// OrderGetter loads committed orders.
type OrderGetter interface {
	Get(ctx context.Context, orderID string) (*orders.Order, error)
}

// SettingsGetter loads the site settings document.
type SettingsGetter interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// MessageSender delivers composed emails.
type MessageSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// Processor handles order-created SQS events and sends the confirmation
// email. Sending is strictly best-effort: the order is already committed,
// so a failed send is logged and the message is consumed anyway.
type Processor struct {
	Orders   OrderGetter
	Settings SettingsGetter
	Sender   MessageSender
}

// NewProcessor creates a worker processor.
func NewProcessor(ordersStore OrderGetter, settingsStore SettingsGetter, sender MessageSender) *Processor {
	return &Processor{
		Orders:   ordersStore,
		Settings: settingsStore,
		Sender:   sender,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.WithError(err).Error("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.WithFields(log.Fields{
		"order_id":       msg.OrderID,
		"correlation_id": msg.CorrelationID,
	}).Info("received order event")

	order, err := p.Orders.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	storeName := ""
	if p.Settings != nil {
		if site, err := p.Settings.Get(ctx); err != nil {
			log.WithError(err).Warn("settings unavailable, composing with defaults")
		} else {
			storeName = site.StoreName
		}
	}

	confirmation, err := email.ComposeConfirmation(order, storeName)
	if err != nil {
		return fmt.Errorf("compose confirmation: %w", err)
	}

	if err := p.Sender.Send(ctx, confirmation); err != nil {
		// Email failure never affects the committed order: log and consume.
		log.WithError(err).WithField("order_id", order.OrderID).Warn("confirmation email failed; order unaffected")
	}

	return nil
}
