package entities

import "time"

// InvoiceSnapshot is everything a document renderer needs, captured at
// request time.
type InvoiceSnapshot struct {
	Job         Job
	Client      Client
	Settings    CompanySettings
	InvoiceID   string
	PaymentLink *PaymentLink
	IssuedAt    time.Time
}

func (s InvoiceSnapshot) Paid() bool {
	return s.Job.InvoiceStatus == InvoiceStatusPaid
}
