package validation

// CheckoutItem is a single cart line as submitted to checkout.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// ShippingAddress is the destination block of a checkout request.
type ShippingAddress struct {
	Name       string `json:"name" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone,omitempty"`
}

// CheckoutRequest is the payload for POST /checkout.
type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"items" validate:"required,min=1,dive"` // at least one item
	ShippingAddress ShippingAddress `json:"shipping_address" validate:"required"`
	CustomerEmail   string          `json:"customer_email" validate:"required,email"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=upi card cod"`
	UserID          string          `json:"user_id,omitempty"` // empty for guest checkout
}

// DiscountPayload is the tagged discount block of an offer payload.
type DiscountPayload struct {
	Kind  string  `json:"kind" validate:"required,oneof=none percent amount"`
	Value float64 `json:"value" validate:"gte=0"`
}

// ConditionPayload gates conditional offers.
type ConditionPayload struct {
	CartValueGreaterThan float64 `json:"cart_value_greater_than" validate:"gte=0"`
}

// OfferRequest is the payload for creating or updating an offer.
type OfferRequest struct {
	Name        string            `json:"name" validate:"required"`
	Type        string            `json:"type" validate:"required,oneof=product store conditional category"`
	Discount    DiscountPayload   `json:"discount" validate:"required"`
	ProductIDs  []string          `json:"product_ids,omitempty"`
	CategoryIDs []string          `json:"category_ids,omitempty"`
	Condition   *ConditionPayload `json:"condition,omitempty"`
	ValidFrom   string            `json:"valid_from" validate:"required"` // RFC3339
	ValidTill   string            `json:"valid_till" validate:"required"` // RFC3339
	Priority    int               `json:"priority"`
	Enabled     bool              `json:"enabled"`
}

// StatusUpdateRequest is the payload for the order status update.
type StatusUpdateRequest struct {
	Status          string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED PAYMENT_FAILED"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
	ShippingCarrier string `json:"shipping_carrier,omitempty"`
}

// MergeRequest is the payload for the guest-state merge on login.
type MergeRequest struct {
	CartItems []struct {
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,min=1"`
	} `json:"cart_items" validate:"dive"`
	SavedItems []struct {
		ProductID string `json:"product_id" validate:"required"`
	} `json:"saved_items" validate:"dive"`
}
