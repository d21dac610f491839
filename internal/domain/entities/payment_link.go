package entities

// PaymentLink is a processor-issued URL accepting one payment of a fixed
// amount for one job. It is never persisted.
type PaymentLink struct {
	URL       string  `json:"payment_url"`
	JobID     int64   `json:"job_id"`
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
}

const EventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is the part of a processor webhook event the reconciler uses.
type PaymentEvent struct {
	ID        string
	Type      string
	JobID     string
	InvoiceID string
}
