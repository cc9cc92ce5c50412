package pricing

import (
	"sort"
	"time"
)

// LineItem is a cart row as submitted for pricing.
type LineItem struct {
	ProductID  string
	CategoryID string
	UnitPrice  float64
	Quantity   int
}

// PricedItem is a line item annotated with the per-item resolution result.
type PricedItem struct {
	LineItem
	DiscountedUnitPrice float64
	ItemDiscount        float64
	AppliedOfferID      string
}

// CartBreakdown is the fully discounted view of a cart.
type CartBreakdown struct {
	Items         []PricedItem
	SubTotal      float64
	Discount      float64
	Total         float64
	AppliedOffers []Offer
}

// CalculateCartDiscounts prices a cart against the full offer list.
//
// Pass one resolves the best offer per line item and accumulates item
// discounts. Pass two applies store and conditional offers sequentially in
// priority order against the running total, so each conditional threshold
// sees the effect of every offer applied before it. Every offer that
// contributed any discount is reported exactly once, in the order it first
// fired. Total never exceeds SubTotal and is floored at zero.
func CalculateCartDiscounts(items []LineItem, offers []Offer, now time.Time) CartBreakdown {
	var subTotal, totalDiscount float64
	seen := map[string]bool{}
	var applied []Offer

	priced := make([]PricedItem, 0, len(items))
	for _, it := range items {
		subTotal += it.UnitPrice * float64(it.Quantity)

		res := ResolveBestOffer(Product{ID: it.ProductID, Price: it.UnitPrice, CategoryID: it.CategoryID}, offers, now)
		pi := PricedItem{LineItem: it, DiscountedUnitPrice: it.UnitPrice}
		if res.AppliedOffer != nil && res.FinalPrice < it.UnitPrice {
			pi.DiscountedUnitPrice = res.FinalPrice
			pi.ItemDiscount = (it.UnitPrice - res.FinalPrice) * float64(it.Quantity)
			pi.AppliedOfferID = res.AppliedOffer.OfferID
			totalDiscount += pi.ItemDiscount
			if !seen[res.AppliedOffer.OfferID] {
				seen[res.AppliedOffer.OfferID] = true
				applied = append(applied, *res.AppliedOffer)
			}
		}
		priced = append(priced, pi)
	}

	running := subTotal - totalDiscount

	cartOffers := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if o.Active(now) && (o.Type == OfferTypeStore || o.Type == OfferTypeConditional) {
			cartOffers = append(cartOffers, o)
		}
	}
	sort.SliceStable(cartOffers, func(i, j int) bool {
		return cartOffers[i].Priority > cartOffers[j].Priority
	})

	for _, o := range cartOffers {
		if o.Type == OfferTypeConditional {
			var threshold float64
			if o.Condition != nil {
				threshold = o.Condition.CartValueGreaterThan
			}
			if running <= threshold {
				continue
			}
		}

		var d float64
		switch o.Discount.Kind {
		case DiscountPercent:
			d = running * o.Discount.Value / 100
		case DiscountAmount:
			d = o.Discount.Value
		}
		if d <= 0 {
			continue
		}

		totalDiscount += d
		running -= d
		if !seen[o.OfferID] {
			seen[o.OfferID] = true
			applied = append(applied, o)
		}
	}

	total := subTotal - totalDiscount
	if total < 0 {
		total = 0
	}

	return CartBreakdown{
		Items:         priced,
		SubTotal:      subTotal,
		Discount:      totalDiscount,
		Total:         total,
		AppliedOffers: applied,
	}
}
