package usecase

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidSettingsInput = errors.New("invalid settings input")

// SettingsInput patches the company settings. Nil fields keep their stored
// value, so a client that never sees the secrets cannot erase them by accident.
type SettingsInput struct {
	CompanyName          *string
	OwnerName            *string
	Address              *string
	Phone                *string
	Email                *string
	Tagline              *string
	DefaultHourlyRate    *float64
	PaymentSecretKey     *string
	WebhookSigningSecret *string
}

type ISettingsUseCase interface {
	Get(ctx context.Context) (entities.CompanySettings, error)
	Update(ctx context.Context, in SettingsInput) (entities.CompanySettings, error)
}

type SettingsUseCase struct {
	repo   interfaces.ISettingsRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(repo interfaces.ISettingsRepository, logger *zap.Logger) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, logger: logger.Named("settings.usecase"), now: time.Now}
}

func (u *SettingsUseCase) Get(ctx context.Context) (entities.CompanySettings, error) {
	return u.repo.Get(ctx)
}

func (u *SettingsUseCase) Update(ctx context.Context, in SettingsInput) (entities.CompanySettings, error) {
	if in.DefaultHourlyRate != nil && *in.DefaultHourlyRate < 0 {
		return entities.CompanySettings{}, ErrInvalidSettingsInput
	}
	if in.CompanyName != nil && strings.TrimSpace(*in.CompanyName) == "" {
		return entities.CompanySettings{}, ErrInvalidSettingsInput
	}

	s, err := u.repo.Get(ctx)
	if err != nil {
		return entities.CompanySettings{}, err
	}
	setTrimmed(&s.CompanyName, in.CompanyName)
	setTrimmed(&s.OwnerName, in.OwnerName)
	setTrimmed(&s.Address, in.Address)
	setTrimmed(&s.Phone, in.Phone)
	setTrimmed(&s.Email, in.Email)
	setTrimmed(&s.Tagline, in.Tagline)
	setTrimmed(&s.PaymentSecretKey, in.PaymentSecretKey)
	setTrimmed(&s.WebhookSigningSecret, in.WebhookSigningSecret)
	if in.DefaultHourlyRate != nil {
		s.DefaultHourlyRate = *in.DefaultHourlyRate
	}
	s.UpdatedAt = u.now().UTC()

	saved, err := u.repo.Save(ctx, s)
	if err != nil {
		u.logger.Error("save settings failed", zap.Error(err))
		return entities.CompanySettings{}, err
	}
	u.logger.Info("settings updated",
		zap.Bool("payment_key_configured", saved.HasPaymentCredential()),
		zap.Bool("webhook_secret_configured", saved.HasWebhookSecret()),
	)
	return saved, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
