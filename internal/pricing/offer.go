package pricing

import "time"

// Offer types
const (
	OfferTypeProduct     = "product"
	OfferTypeStore       = "store"
	OfferTypeConditional = "conditional"
	OfferTypeCategory    = "category"
)

// Discount kinds
const (
	DiscountNone    = "none"
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

// Discount is a tagged price adjustment. Kind selects how Value is read:
// a percentage (0-100) for DiscountPercent, absolute currency units for
// DiscountAmount. DiscountNone offers carry no price effect but still
// participate in ranking.
type Discount struct {
	Kind  string  `dynamodbav:"kind" json:"kind"`
	Value float64 `dynamodbav:"value,omitempty" json:"value,omitempty"`
}

// PriceAfter returns the hypothetical unit price once the discount is
// applied. The result is intentionally not clamped at zero; ranking
// compares raw outcomes and the caller floors the winning price.
func (d Discount) PriceAfter(price float64) float64 {
	switch d.Kind {
	case DiscountPercent:
		return price * (1 - d.Value/100)
	case DiscountAmount:
		return price - d.Value
	default:
		return price
	}
}

// Condition gates conditional offers on the running cart total.
type Condition struct {
	CartValueGreaterThan float64 `dynamodbav:"cart_value_greater_than" json:"cart_value_greater_than"`
}

// Offer is a promotion definition. Offers of type product/category carry
// their applicability scope in ProductIDs/CategoryIDs; store offers apply
// everywhere; conditional offers only participate in the cart-level pass.
type Offer struct {
	OfferID     string     `dynamodbav:"offer_id" json:"offer_id"` // PK
	Name        string     `dynamodbav:"name" json:"name"`
	Type        string     `dynamodbav:"type" json:"type"`
	Discount    Discount   `dynamodbav:"discount" json:"discount"`
	ProductIDs  []string   `dynamodbav:"product_ids,omitempty" json:"product_ids,omitempty"`
	CategoryIDs []string   `dynamodbav:"category_ids,omitempty" json:"category_ids,omitempty"`
	Condition   *Condition `dynamodbav:"condition,omitempty" json:"condition,omitempty"`
	ValidFrom   time.Time  `dynamodbav:"valid_from" json:"valid_from"`
	ValidTill   time.Time  `dynamodbav:"valid_till" json:"valid_till"`
	Priority    int        `dynamodbav:"priority" json:"priority"`
	Enabled     bool       `dynamodbav:"enabled" json:"enabled"`
	CreatedAt   time.Time  `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `dynamodbav:"updated_at" json:"updated_at"`
}

// Active reports whether the offer is live at t. Both validity bounds are
// inclusive.
func (o Offer) Active(t time.Time) bool {
	return o.Enabled && !t.Before(o.ValidFrom) && !t.After(o.ValidTill)
}

// appliesTo reports per-product applicability. Conditional offers never
// apply at per-product resolution.
func (o Offer) appliesTo(p Product) bool {
	switch o.Type {
	case OfferTypeStore:
		return true
	case OfferTypeProduct:
		return contains(o.ProductIDs, p.ID)
	case OfferTypeCategory:
		return contains(o.CategoryIDs, p.CategoryID)
	default:
		return false
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
