package interfaces

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
)

var (
	// ErrGatewayUnauthorized is wrapped by gateways when the processor rejects the credential.
	ErrGatewayUnauthorized = errors.New("payment gateway unauthorized")
	// ErrWebhookSignatureInvalid is returned when a signed payload does not verify.
	ErrWebhookSignatureInvalid = errors.New("webhook signature invalid")
	ErrWebhookPayloadInvalid   = errors.New("webhook payload invalid")
)

// PaymentLinkRequest carries everything a processor needs to mint one link.
// SecretKey comes from the settings snapshot of the calling request.
type PaymentLinkRequest struct {
	SecretKey   string
	AmountMinor int64
	Amount      float64
	Currency    string
	ProductName string
	InvoiceID   string
	JobID       int64
	Metadata    map[string]string
}

// IPaymentLinkGateway abstracts external payment processors (Stripe, Mercado Pago).
type IPaymentLinkGateway interface {
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (url string, err error)
}

// IWebhookVerifier checks and decodes processor event deliveries. An empty
// secret skips verification.
type IWebhookVerifier interface {
	ParseEvent(payload []byte, signatureHeader, secret string) (entities.PaymentEvent, error)
}
