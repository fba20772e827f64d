package domain

import "time"

// Order statuses as stored and exposed over the API.
const (
	OrderStatusReceived  = "received"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// orderTransitions lists the allowed status moves. Cancellation is allowed
// from any non-terminal state.
var orderTransitions = map[string][]string{
	OrderStatusReceived:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
}

// ValidOrderTransition reports whether an order may move from one status to another.
func ValidOrderTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order is a placed order: an immutable snapshot of the cart at checkout time.
// PK: order_id, GSI: customer_phone-index.
type Order struct {
	OrderID       string     `json:"order_id" dynamodbav:"order_id"`
	CartID        string     `json:"cart_id" dynamodbav:"cart_id"`
	CustomerName  string     `json:"customer_name" dynamodbav:"customer_name"`
	CustomerPhone string     `json:"customer_phone" dynamodbav:"customer_phone"`
	Items         []CartItem `json:"items" dynamodbav:"items"`
	Total         int64      `json:"total" dynamodbav:"total"` // centavos
	Status        string     `json:"status" dynamodbav:"status"`
	PaymentID     string     `json:"payment_id,omitempty" dynamodbav:"payment_id,omitempty"`
	Notes         string     `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}
