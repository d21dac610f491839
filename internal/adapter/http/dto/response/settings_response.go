package response

import (
	"invoicing/internal/domain/entities"
	"invoicing/internal/infrastructure/logging"
	"time"
)

// SettingsResponse never carries a secret in clear text.
type SettingsResponse struct {
	CompanyName         string    `json:"company_name"`
	OwnerName           string    `json:"owner_name"`
	Address             string    `json:"address"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Tagline             string    `json:"tagline"`
	DefaultHourlyRate   float64   `json:"default_hourly_rate"`
	StripeAPIKey        string    `json:"stripe_api_key"`
	StripeWebhookSecret string    `json:"stripe_webhook_secret"`
	PaymentConfigured   bool      `json:"payment_configured"`
	WebhookConfigured   bool      `json:"webhook_configured"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromSettings(s entities.CompanySettings) SettingsResponse {
	return SettingsResponse{
		CompanyName:         s.CompanyName,
		OwnerName:           s.OwnerName,
		Address:             s.Address,
		Phone:               s.Phone,
		Email:               s.Email,
		Tagline:             s.Tagline,
		DefaultHourlyRate:   s.DefaultHourlyRate,
		StripeAPIKey:        logging.MaskSecret(s.PaymentSecretKey),
		StripeWebhookSecret: logging.MaskSecret(s.WebhookSigningSecret),
		PaymentConfigured:   s.HasPaymentCredential(),
		WebhookConfigured:   s.HasWebhookSecret(),
		UpdatedAt:           s.UpdatedAt,
	}
}
