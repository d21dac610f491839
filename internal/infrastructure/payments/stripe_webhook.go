package payments

import (
	"encoding/json"
	"fmt"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeWebhookVerifier checks the Stripe-Signature header and decodes the
// checkout session metadata the payment link was created with.
type StripeWebhookVerifier struct{}

var _ interfaces.IWebhookVerifier = StripeWebhookVerifier{}

func NewStripeWebhookVerifier() StripeWebhookVerifier {
	return StripeWebhookVerifier{}
}

func (StripeWebhookVerifier) ParseEvent(payload []byte, signatureHeader, secret string) (entities.PaymentEvent, error) {
	if secret != "" {
		if err := webhook.ValidatePayload(payload, signatureHeader, secret); err != nil {
			return entities.PaymentEvent{}, fmt.Errorf("%w: %v", interfaces.ErrWebhookSignatureInvalid, err)
		}
	}

	var evt stripe.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", interfaces.ErrWebhookPayloadInvalid, err)
	}

	out := entities.PaymentEvent{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != entities.EventCheckoutCompleted {
		return out, nil
	}
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return entities.PaymentEvent{}, fmt.Errorf("%w: missing event data", interfaces.ErrWebhookPayloadInvalid)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", interfaces.ErrWebhookPayloadInvalid, err)
	}
	out.JobID = session.Metadata["job_id"]
	out.InvoiceID = session.Metadata["invoice_number"]
	return out, nil
}
