package pricing

import (
	"sort"
	"time"
)

// Product is the pricing-relevant view of a catalog product.
type Product struct {
	ID         string
	Price      float64
	CategoryID string
}

// Resolution is the outcome of per-product offer resolution. AppliedOffer
// is nil when no offer applies.
type Resolution struct {
	FinalPrice   float64
	AppliedOffer *Offer
}

// ResolveBestOffer selects the single best offer for a product out of the
// full (unfiltered) offer list at time now.
//
// Candidates are the active offers applicable to the product. They are
// ranked by priority descending; ties are broken by the hypothetical
// discounted price ascending, so the offer yielding the cheapest price
// wins. The winning price is floored at zero.
func ResolveBestOffer(p Product, offers []Offer, now time.Time) Resolution {
	candidates := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if o.Active(now) && o.appliesTo(p) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return Resolution{FinalPrice: p.Price}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].Discount.PriceAfter(p.Price) < candidates[j].Discount.PriceAfter(p.Price)
	})

	best := candidates[0]
	final := best.Discount.PriceAfter(p.Price)
	if final < 0 {
		final = 0
	}
	return Resolution{FinalPrice: final, AppliedOffer: &best}
}
