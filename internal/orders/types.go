package orders

import "time"

// Order statuses. Transitions happen only through UpdateStatus; no state
// machine is enforced.
const (
	StatusPending       = "PENDING"
	StatusProcessing    = "PROCESSING"
	StatusShipped       = "SHIPPED"
	StatusDelivered     = "DELIVERED"
	StatusCancelled     = "CANCELLED"
	StatusRefunded      = "REFUNDED"
	StatusPaymentFailed = "PAYMENT_FAILED"
)

// Payment statuses
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// OrderItem is a priced order line as frozen at checkout.
type OrderItem struct {
	ProductID      string  `dynamodbav:"product_id" json:"product_id"`
	Name           string  `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Quantity       int     `dynamodbav:"quantity" json:"quantity"`
	UnitPrice      float64 `dynamodbav:"unit_price" json:"unit_price"`
	FinalUnitPrice float64 `dynamodbav:"final_unit_price" json:"final_unit_price"`
	LineItemTotal  float64 `dynamodbav:"line_item_total" json:"line_item_total"`
	ItemDiscount   float64 `dynamodbav:"item_discount" json:"item_discount"`
	AppliedOfferID string  `dynamodbav:"applied_offer_id,omitempty" json:"applied_offer_id,omitempty"`
}

// AppliedOffer records one offer that contributed discount to the order.
type AppliedOffer struct {
	OfferID string `dynamodbav:"offer_id" json:"offer_id"`
	Name    string `dynamodbav:"name" json:"name"`
	Type    string `dynamodbav:"type" json:"type"`
}

// Address is the shipping destination stored on the order.
type Address struct {
	Name       string `dynamodbav:"name" json:"name"`
	Line1      string `dynamodbav:"line1" json:"line1"`
	Line2      string `dynamodbav:"line2,omitempty" json:"line2,omitempty"`
	City       string `dynamodbav:"city" json:"city"`
	State      string `dynamodbav:"state,omitempty" json:"state,omitempty"`
	PostalCode string `dynamodbav:"postal_code" json:"postal_code"`
	Country    string `dynamodbav:"country" json:"country"`
	Phone      string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
}

// Order represents the item stored in the orders DynamoDB table. Items and
// pricing are immutable after creation; only status/tracking fields change.
type Order struct {
	OrderID            string         `dynamodbav:"order_id" json:"order_id"` // PK
	UserID             string         `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	CustomerEmail      string         `dynamodbav:"customer_email" json:"customer_email"`
	Items              []OrderItem    `dynamodbav:"items" json:"items"`
	Subtotal           float64        `dynamodbav:"subtotal" json:"subtotal"`
	CartDiscountAmount float64        `dynamodbav:"cart_discount_amount" json:"cart_discount_amount"`
	ShippingCost       float64        `dynamodbav:"shipping_cost" json:"shipping_cost"`
	TaxAmount          float64        `dynamodbav:"tax_amount" json:"tax_amount"`
	GrandTotal         float64        `dynamodbav:"grand_total" json:"grand_total"`
	AppliedOffers      []AppliedOffer `dynamodbav:"applied_offers,omitempty" json:"applied_offers,omitempty"`
	PaymentMethod      string         `dynamodbav:"payment_method" json:"payment_method"`
	OrderStatus        string         `dynamodbav:"order_status" json:"order_status"`
	PaymentStatus      string         `dynamodbav:"payment_status" json:"payment_status"`
	ShippingAddress    Address        `dynamodbav:"shipping_address" json:"shipping_address"`
	TrackingNumber     string         `dynamodbav:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	ShippingCarrier    string         `dynamodbav:"shipping_carrier,omitempty" json:"shipping_carrier,omitempty"`
	CreatedAt          time.Time      `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `dynamodbav:"updated_at" json:"updated_at"`
}
