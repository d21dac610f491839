package entities

import (
	"strings"
	"time"
)

// CompanySettings is the singleton holding the issuer identity and the
// payment-processor credentials.
//
// The credentials are read by the payment link broker and the webhook
// reconciler at call time; nothing keeps them in process-wide state.
type CompanySettings struct {
	CompanyName          string    `json:"company_name"`
	OwnerName            string    `json:"owner_name"`
	Address              string    `json:"address"`
	Phone                string    `json:"phone"`
	Email                string    `json:"email"`
	Tagline              string    `json:"tagline"`
	DefaultHourlyRate    float64   `json:"default_hourly_rate"`
	PaymentSecretKey     string    `json:"-"`
	WebhookSigningSecret string    `json:"-"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName:       "Big Pic Solutions",
		Tagline:           "AI-Powered Technology Consulting",
		DefaultHourlyRate: DefaultHourlyRate,
	}
}

func (s CompanySettings) HasPaymentCredential() bool {
	return strings.TrimSpace(s.PaymentSecretKey) != ""
}

func (s CompanySettings) HasWebhookSecret() bool {
	return strings.TrimSpace(s.WebhookSigningSecret) != ""
}
