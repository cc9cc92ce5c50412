package main

// OrderEvent is the payload sent from API -> SQS -> worker.
type OrderEvent struct {
	OrderID       string `json:"order_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
