package domain

// PaymentStatus is the normalized view of a payment returned by the gateway.
// JSON field names match what the storefront client consumes.
type PaymentStatus struct {
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
}
