package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
)

const testWebhookSecret = "whsec_test"

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeWebhookVerifier_ParseEvent(t *testing.T) {
	completed := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed",` +
		`"data":{"object":{"id":"cs_1","object":"checkout.session","metadata":{"job_id":"5","invoice_number":"INV-0002"}}}}`)
	other := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1","object":"payment_intent"}}}`)

	v := NewStripeWebhookVerifier()

	tests := []struct {
		name    string
		payload []byte
		header  string
		secret  string
		want    entities.PaymentEvent
		wantErr error
	}{
		{
			name:    "valid signature",
			payload: completed,
			header:  signPayload(completed, testWebhookSecret, time.Now()),
			secret:  testWebhookSecret,
			want:    entities.PaymentEvent{ID: "evt_1", Type: entities.EventCheckoutCompleted, JobID: "5", InvoiceID: "INV-0002"},
		},
		{
			name:    "wrong secret",
			payload: completed,
			header:  signPayload(completed, "whsec_other", time.Now()),
			secret:  testWebhookSecret,
			wantErr: interfaces.ErrWebhookSignatureInvalid,
		},
		{
			name:    "missing header",
			payload: completed,
			secret:  testWebhookSecret,
			wantErr: interfaces.ErrWebhookSignatureInvalid,
		},
		{
			name:    "unverified when no secret",
			payload: completed,
			want:    entities.PaymentEvent{ID: "evt_1", Type: entities.EventCheckoutCompleted, JobID: "5", InvoiceID: "INV-0002"},
		},
		{
			name:    "other event types carry no job",
			payload: other,
			want:    entities.PaymentEvent{ID: "evt_2", Type: "payment_intent.created"},
		},
		{
			name:    "malformed payload",
			payload: []byte("{"),
			wantErr: interfaces.ErrWebhookPayloadInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ParseEvent(tt.payload, tt.header, tt.secret)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
