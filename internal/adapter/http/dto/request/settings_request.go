package request

import "invoicing/internal/usecase"

// SettingsRequest patches the company settings. A secret left out of the
// body is kept; an empty string clears it.
type SettingsRequest struct {
	CompanyName         *string  `json:"company_name"`
	OwnerName           *string  `json:"owner_name"`
	Address             *string  `json:"address"`
	Phone               *string  `json:"phone"`
	Email               *string  `json:"email"`
	Tagline             *string  `json:"tagline"`
	DefaultHourlyRate   *float64 `json:"default_hourly_rate"`
	StripeAPIKey        *string  `json:"stripe_api_key"`
	StripeWebhookSecret *string  `json:"stripe_webhook_secret"`
}

func (r SettingsRequest) ToInput() usecase.SettingsInput {
	return usecase.SettingsInput{
		CompanyName:          r.CompanyName,
		OwnerName:            r.OwnerName,
		Address:              r.Address,
		Phone:                r.Phone,
		Email:                r.Email,
		Tagline:              r.Tagline,
		DefaultHourlyRate:    r.DefaultHourlyRate,
		PaymentSecretKey:     r.StripeAPIKey,
		WebhookSigningSecret: r.StripeWebhookSecret,
	}
}
