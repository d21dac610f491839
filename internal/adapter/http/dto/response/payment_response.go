package response

import "invoicing/internal/domain/entities"

type PaymentLinkResponse struct {
	Success    bool    `json:"success"`
	PaymentURL string  `json:"payment_url"`
	InvoiceID  string  `json:"invoice_id"`
	Amount     float64 `json:"amount"`
}

func FromPaymentLink(l entities.PaymentLink) PaymentLinkResponse {
	return PaymentLinkResponse{
		Success:    true,
		PaymentURL: l.URL,
		InvoiceID:  l.InvoiceID,
		Amount:     l.Amount,
	}
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
