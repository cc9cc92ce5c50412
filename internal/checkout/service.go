// Package checkout orchestrates the storefront checkout flow: request
// validation, catalog lookup, offer pricing, the atomic order + stock
// transaction and the post-commit notification event.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dyntypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/catalog"
	"github.com/shopstack-dev/storefront/internal/idempotency"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/pricing"
	"github.com/shopstack-dev/storefront/internal/settings"
	"github.com/shopstack-dev/storefront/internal/validation"
)

// Catalog is the product lookup the service consumes.
type Catalog interface {
	BatchGet(ctx context.Context, productIDs []string) (map[string]catalog.Product, error)
}

// OfferSource yields the currently defined offers.
type OfferSource interface {
	ListEnabled(ctx context.Context) ([]pricing.Offer, error)
}

// OrderStore persists and reads orders.
type OrderStore interface {
	CreateTransaction(ctx context.Context, order orders.Order, extra ...dyntypes.TransactWriteItem) error
	Get(ctx context.Context, orderID string) (*orders.Order, error)
}

// IdempotencyStore tracks checkout submissions by Idempotency-Key.
type IdempotencyStore interface {
	TransactPut(key, orderID string) (dyntypes.TransactWriteItem, error)
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	MarkDone(ctx context.Context, key, responseBody string, responseStatus int) error
	MarkFailed(ctx context.Context, key, note string) error
}

// SettingsSource loads the site settings document per request.
type SettingsSource interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// EventPublisher enqueues the order-created event for the email worker.
type EventPublisher interface {
	SendOrderEvent(ctx context.Context, messageBody string, attributes map[string]string) error
}

// MetricsRecorder records checkout outcomes. Implementations must be
// best-effort and non-blocking on failure.
type MetricsRecorder interface {
	OrderCreated(ctx context.Context, grandTotal float64)
	CheckoutFailed(ctx context.Context, kind string)
}

// InProgressError signals that the same idempotency key is currently being
// processed by another submission.
type InProgressError struct {
	OrderID string
}

func (e *InProgressError) Error() string {
	return fmt.Sprintf("checkout already in progress for order %s", e.OrderID)
}

// Result is a successful checkout outcome. Replayed is true when the order
// was created by an earlier submission with the same idempotency key.
type Result struct {
	Order    *orders.Order
	Replayed bool
}

// Service wires the checkout collaborators together.
type Service struct {
	Catalog     Catalog
	Offers      OfferSource
	Orders      OrderStore
	Idempotency IdempotencyStore
	Settings    SettingsSource
	Publisher   EventPublisher
	Metrics     MetricsRecorder
	NowFunc     func() time.Time
}

func (s *Service) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now()
}

// Submit runs a validated checkout request end to end and returns the
// committed order. correlationID is propagated onto the order event.
func (s *Service) Submit(ctx context.Context, req validation.CheckoutRequest, idempotencyKey, correlationID string) (*Result, error) {
	res, err := s.submit(ctx, req, idempotencyKey, correlationID)
	if err != nil && s.Metrics != nil {
		s.Metrics.CheckoutFailed(ctx, string(apperr.KindOf(err)))
	}
	return res, err
}

func (s *Service) submit(ctx context.Context, req validation.CheckoutRequest, idempotencyKey, correlationID string) (*Result, error) {
	now := s.now()

	// site settings are fetched fresh per request and passed along
	// explicitly; no module-level state.
	site, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "load site settings")
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Catalog.BatchGet(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "load products")
	}
	for _, it := range req.Items {
		if _, ok := products[it.ProductID]; !ok {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("product %s does not exist", it.ProductID))
		}
	}

	offerList, err := s.Offers.ListEnabled(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "load offers")
	}

	lines := make([]pricing.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		p := products[it.ProductID]
		lines = append(lines, pricing.LineItem{
			ProductID:  p.ProductID,
			CategoryID: p.CategoryID,
			UnitPrice:  p.Price,
			Quantity:   it.Quantity,
		})
	}

	breakdown := pricing.CalculateCartDiscounts(lines, offerList, now)

	shipping := site.ShippingFlatRate
	if site.FreeShippingThreshold > 0 && breakdown.Total >= site.FreeShippingThreshold {
		shipping = 0
	}
	tax := breakdown.Total * site.TaxRatePercent / 100
	grandTotal := breakdown.Total + shipping + tax

	order := s.buildOrder(req, products, breakdown, shipping, tax, grandTotal, now)

	var extra []dyntypes.TransactWriteItem
	if idempotencyKey != "" {
		item, err := s.Idempotency.TransactPut(idempotencyKey, order.OrderID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "prepare idempotency record")
		}
		extra = append(extra, item)
	}

	if err := s.Orders.CreateTransaction(ctx, order, extra...); err != nil {
		if idempotencyKey != "" {
			if res, handled, dupErr := s.recoverDuplicate(ctx, idempotencyKey); handled {
				return res, dupErr
			}
		}
		return nil, apperr.Wrap(apperr.Internal, err, "persist order")
	}

	committed, err := s.Orders.Get(ctx, order.OrderID)
	if err != nil {
		// the key must not stay IN_PROGRESS forever: mark it FAILED so a
		// retry is told to use a fresh key instead of looping on 202.
		s.failKey(ctx, idempotencyKey, "order committed but readback failed")
		return nil, apperr.Wrap(apperr.Internal, err, "read back order")
	}
	if committed == nil {
		s.failKey(ctx, idempotencyKey, "order vanished after commit")
		return nil, apperr.New(apperr.Internal, "order vanished after commit")
	}

	s.publishOrderEvent(ctx, committed, idempotencyKey, correlationID)

	if idempotencyKey != "" {
		body, _ := json.Marshal(map[string]interface{}{"success": true, "order": committed})
		if err := s.Idempotency.MarkDone(ctx, idempotencyKey, string(body), http.StatusCreated); err != nil {
			log.WithError(err).WithField("order_id", committed.OrderID).Warn("mark idempotency done failed")
		}
	}
	if s.Metrics != nil {
		s.Metrics.OrderCreated(ctx, committed.GrandTotal)
	}

	return &Result{Order: committed}, nil
}

func (s *Service) buildOrder(req validation.CheckoutRequest, products map[string]catalog.Product, breakdown pricing.CartBreakdown, shipping, tax, grandTotal float64, now time.Time) orders.Order {
	items := make([]orders.OrderItem, 0, len(breakdown.Items))
	for _, pi := range breakdown.Items {
		items = append(items, orders.OrderItem{
			ProductID:      pi.ProductID,
			Name:           products[pi.ProductID].Name,
			Quantity:       pi.Quantity,
			UnitPrice:      pi.UnitPrice,
			FinalUnitPrice: pi.DiscountedUnitPrice,
			LineItemTotal:  pi.DiscountedUnitPrice * float64(pi.Quantity),
			ItemDiscount:   pi.ItemDiscount,
			AppliedOfferID: pi.AppliedOfferID,
		})
	}

	applied := make([]orders.AppliedOffer, 0, len(breakdown.AppliedOffers))
	for _, o := range breakdown.AppliedOffers {
		applied = append(applied, orders.AppliedOffer{OfferID: o.OfferID, Name: o.Name, Type: o.Type})
	}

	return orders.Order{
		OrderID:            uuid.NewString(),
		UserID:             req.UserID,
		CustomerEmail:      req.CustomerEmail,
		Items:              items,
		Subtotal:           breakdown.SubTotal,
		CartDiscountAmount: breakdown.Discount,
		ShippingCost:       shipping,
		TaxAmount:          tax,
		GrandTotal:         grandTotal,
		AppliedOffers:      applied,
		PaymentMethod:      req.PaymentMethod,
		OrderStatus:        orders.StatusPending,
		PaymentStatus:      orders.PaymentPending,
		ShippingAddress: orders.Address{
			Name:       req.ShippingAddress.Name,
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
			Phone:      req.ShippingAddress.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// failKey marks the idempotency record FAILED after a post-commit error.
// Best-effort: if the mark itself fails the record expires via TTL.
func (s *Service) failKey(ctx context.Context, key, note string) {
	if key == "" {
		return
	}
	if err := s.Idempotency.MarkFailed(ctx, key, note); err != nil {
		log.WithError(err).WithField("idempotency_key", key).Warn("mark idempotency failed errored")
	}
}

// recoverDuplicate inspects the idempotency record after a canceled
// transaction. handled=false means the cancellation had another cause and
// the caller should surface the original error.
func (s *Service) recoverDuplicate(ctx context.Context, key string) (*Result, bool, error) {
	rec, err := s.Idempotency.Get(ctx, key)
	if err != nil || rec == nil {
		return nil, false, nil
	}
	switch rec.Status {
	case idempotency.StatusDone:
		prior, err := s.Orders.Get(ctx, rec.OrderID)
		if err != nil {
			return nil, true, apperr.Wrap(apperr.Internal, err, "load prior order")
		}
		if prior == nil {
			return nil, true, apperr.New(apperr.Internal, "idempotency record without order")
		}
		return &Result{Order: prior, Replayed: true}, true, nil
	case idempotency.StatusInProgress:
		return nil, true, &InProgressError{OrderID: rec.OrderID}
	case idempotency.StatusFailed:
		return nil, true, apperr.New(apperr.Internal, "previous checkout attempt failed, retry with a new key")
	default:
		return nil, false, nil
	}
}

// publishOrderEvent enqueues the confirmation-email event. The order is
// already committed, so a publish failure is logged and swallowed.
func (s *Service) publishOrderEvent(ctx context.Context, order *orders.Order, idempotencyKey, correlationID string) {
	if s.Publisher == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"order_id":       order.OrderID,
		"correlation_id": correlationID,
	})
	attrs := map[string]string{
		"order_id": order.OrderID,
	}
	if idempotencyKey != "" {
		attrs["idempotency_key"] = idempotencyKey
	}
	if correlationID != "" {
		attrs["correlation_id"] = correlationID
	}
	if err := s.Publisher.SendOrderEvent(ctx, string(payload), attrs); err != nil {
		log.WithError(err).WithField("order_id", order.OrderID).Warn("order event publish failed; order remains committed")
	}
}
