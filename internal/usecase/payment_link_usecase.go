package usecase

import (
	"context"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IPaymentLinkUseCase is the explicit "give me a link" request. Unlike
// document rendering, every processor failure is reported to the caller.
type IPaymentLinkUseCase interface {
	CreateForJob(ctx context.Context, jobID int64) (entities.PaymentLink, error)
}

type PaymentLinkUseCase struct {
	jobs     interfaces.IJobRepository
	clients  interfaces.IClientRepository
	settings interfaces.ISettingsRepository
	broker   IPaymentLinkBroker
	logger   *zap.Logger
}

var _ IPaymentLinkUseCase = (*PaymentLinkUseCase)(nil)

func NewPaymentLinkUseCase(jobs interfaces.IJobRepository, clients interfaces.IClientRepository, settings interfaces.ISettingsRepository, broker IPaymentLinkBroker, logger *zap.Logger) *PaymentLinkUseCase {
	return &PaymentLinkUseCase{jobs: jobs, clients: clients, settings: settings, broker: broker, logger: logger.Named("payment.link")}
}

func (u *PaymentLinkUseCase) CreateForJob(ctx context.Context, jobID int64) (entities.PaymentLink, error) {
	if jobID <= 0 {
		return entities.PaymentLink{}, ErrInvalidJobID
	}
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if job.ID == 0 {
		return entities.PaymentLink{}, ErrJobNotFound
	}

	settings, err := u.settings.Get(ctx)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if !settings.HasPaymentCredential() {
		return entities.PaymentLink{}, ErrPaymentProviderNotConfigured
	}
	if job.InvoiceStatus == entities.InvoiceStatusPaid {
		return entities.PaymentLink{}, ErrInvoiceAlreadyPaid
	}

	client, err := u.clients.GetByID(ctx, job.ClientID)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if client.ID == 0 {
		u.logger.Warn("job references a missing client", zap.Int64("job_id", job.ID), zap.Int64("client_id", job.ClientID))
	}

	link, err := u.broker.CreateLink(ctx, job, client, settings)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if link == nil {
		return entities.PaymentLink{}, ErrPaymentProviderFailure
	}
	return *link, nil
}
