package usecase

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrWebhookSignatureInvalid = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload   = errors.New("invalid webhook payload")
)

type WebhookOutcome string

const (
	WebhookMarkedPaid   WebhookOutcome = "marked_paid"
	WebhookAlreadyPaid  WebhookOutcome = "already_paid"
	WebhookIgnoredEvent WebhookOutcome = "ignored_event"
	WebhookMissingJobID WebhookOutcome = "missing_job_id"
	WebhookUnknownJob   WebhookOutcome = "unknown_job"
)

type WebhookResult struct {
	EventID   string
	EventType string
	JobID     int64
	Outcome   WebhookOutcome
}

type IWebhookUseCase interface {
	Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error)
}

// WebhookUseCase reconciles processor events into the status machine. Paid is
// absorbing for events: replays keep the first paid_date and late events
// never move a job out of paid.
type WebhookUseCase struct {
	jobs     interfaces.IJobRepository
	settings interfaces.ISettingsRepository
	verifier interfaces.IWebhookVerifier
	logger   *zap.Logger
	now      func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(jobs interfaces.IJobRepository, settings interfaces.ISettingsRepository, verifier interfaces.IWebhookVerifier, logger *zap.Logger) *WebhookUseCase {
	return &WebhookUseCase{jobs: jobs, settings: settings, verifier: verifier, logger: logger.Named("webhook"), now: time.Now}
}

func (u *WebhookUseCase) Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error) {
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return WebhookResult{}, err
	}
	if !settings.HasPaymentCredential() {
		return WebhookResult{}, ErrPaymentProviderNotConfigured
	}

	secret := ""
	if settings.HasWebhookSecret() {
		if strings.TrimSpace(signatureHeader) == "" {
			u.logger.Warn("unsigned webhook rejected")
			return WebhookResult{}, ErrWebhookSignatureInvalid
		}
		secret = strings.TrimSpace(settings.WebhookSigningSecret)
	} else {
		u.logger.Warn("webhook signing secret not configured; accepting unverified event")
	}

	event, err := u.verifier.ParseEvent(payload, signatureHeader, secret)
	if err != nil {
		if errors.Is(err, interfaces.ErrWebhookSignatureInvalid) {
			u.logger.Warn("webhook signature verification failed", zap.Error(err))
			return WebhookResult{}, ErrWebhookSignatureInvalid
		}
		u.logger.Warn("webhook payload rejected", zap.Error(err))
		return WebhookResult{}, ErrInvalidWebhookPayload
	}

	res := WebhookResult{EventID: event.ID, EventType: event.Type}
	if event.Type != entities.EventCheckoutCompleted {
		res.Outcome = WebhookIgnoredEvent
		u.logger.Debug("webhook event ignored", zap.String("event_id", event.ID), zap.String("event_type", event.Type))
		return res, nil
	}

	raw := strings.TrimSpace(event.JobID)
	if raw == "" {
		res.Outcome = WebhookMissingJobID
		u.logger.Warn("checkout completed without job_id metadata", zap.String("event_id", event.ID))
		return res, nil
	}
	jobID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || jobID <= 0 {
		res.Outcome = WebhookUnknownJob
		u.logger.Warn("checkout completed for unparseable job_id", zap.String("event_id", event.ID), zap.String("job_id", raw))
		return res, nil
	}
	res.JobID = jobID

	now := u.now()
	var tr entities.Transition
	job, err := u.jobs.Update(ctx, jobID, true, func(j *entities.Job) (bool, error) {
		var err error
		tr, err = j.ApplyInvoiceStatus(entities.InvoiceStatusPaid, now, entities.TransitionWebhook)
		if err != nil {
			return false, err
		}
		if tr.Changed() {
			j.UpdatedAt = now.UTC()
		}
		return tr.Changed(), nil
	})
	if err != nil {
		u.logger.Error("mark invoice paid failed", zap.Int64("job_id", jobID), zap.String("event_id", event.ID), zap.Error(err))
		return WebhookResult{}, err
	}
	if job.ID == 0 {
		res.Outcome = WebhookUnknownJob
		u.logger.Warn("checkout completed for unknown job", zap.Int64("job_id", jobID), zap.String("event_id", event.ID))
		return res, nil
	}

	if tr.Changed() {
		res.Outcome = WebhookMarkedPaid
		u.logger.Info("invoice marked paid", zap.Int64("job_id", job.ID), zap.String("invoice_id", job.InvoiceIdentifier()), zap.String("event_id", event.ID))
	} else {
		res.Outcome = WebhookAlreadyPaid
		u.logger.Info("duplicate payment event", zap.Int64("job_id", job.ID), zap.String("event_id", event.ID))
	}
	return res, nil
}
