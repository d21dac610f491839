package usecase

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"time"

	"go.uber.org/zap"
)

var ErrRenderFailed = errors.New("invoice rendering failed")

// InvoiceDocument is a rendered invoice ready for download.
type InvoiceDocument struct {
	Filename  string
	InvoiceID string
	Content   []byte
}

type IInvoiceDocumentUseCase interface {
	Render(ctx context.Context, jobID int64) (InvoiceDocument, error)
}

// InvoiceDocumentUseCase gathers the job, client and settings, makes sure the
// job carries an invoice number, asks the broker for a payment link and hands
// the snapshot to the renderer.
type InvoiceDocumentUseCase struct {
	jobs      interfaces.IJobRepository
	clients   interfaces.IClientRepository
	settings  interfaces.ISettingsRepository
	allocator *InvoiceNumberAllocator
	broker    IPaymentLinkBroker
	renderer  interfaces.IInvoiceRenderer
	logger    *zap.Logger
	now       func() time.Time
}

var _ IInvoiceDocumentUseCase = (*InvoiceDocumentUseCase)(nil)

func NewInvoiceDocumentUseCase(
	jobs interfaces.IJobRepository,
	clients interfaces.IClientRepository,
	settings interfaces.ISettingsRepository,
	allocator *InvoiceNumberAllocator,
	broker IPaymentLinkBroker,
	renderer interfaces.IInvoiceRenderer,
	logger *zap.Logger,
) *InvoiceDocumentUseCase {
	return &InvoiceDocumentUseCase{
		jobs:      jobs,
		clients:   clients,
		settings:  settings,
		allocator: allocator,
		broker:    broker,
		renderer:  renderer,
		logger:    logger.Named("invoice.document"),
		now:       time.Now,
	}
}

func (u *InvoiceDocumentUseCase) Render(ctx context.Context, jobID int64) (InvoiceDocument, error) {
	if jobID <= 0 {
		return InvoiceDocument{}, ErrInvalidJobID
	}
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return InvoiceDocument{}, err
	}
	if job.ID == 0 {
		return InvoiceDocument{}, ErrJobNotFound
	}
	if !job.HasInvoiceNumber() {
		if job, err = u.allocator.EnsureNumber(ctx, job.ID); err != nil {
			return InvoiceDocument{}, err
		}
	}

	client, err := u.clients.GetByID(ctx, job.ClientID)
	if err != nil {
		return InvoiceDocument{}, err
	}
	if client.ID == 0 {
		return InvoiceDocument{}, ErrClientNotFound
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return InvoiceDocument{}, err
	}

	invoiceID := job.InvoiceIdentifier()
	link, err := u.broker.CreateLink(ctx, job, client, settings)
	if err != nil {
		u.logger.Warn("payment section omitted", zap.Int64("job_id", job.ID), zap.String("invoice_id", invoiceID), zap.Error(err))
		link = nil
	}

	content, err := u.renderer.Render(ctx, entities.InvoiceSnapshot{
		Job:         job,
		Client:      client,
		Settings:    settings,
		InvoiceID:   invoiceID,
		PaymentLink: link,
		IssuedAt:    u.now(),
	})
	if err != nil {
		u.logger.Error("render invoice failed", zap.Int64("job_id", job.ID), zap.String("invoice_id", invoiceID), zap.Error(err))
		return InvoiceDocument{}, errors.Join(ErrRenderFailed, err)
	}

	u.logger.Info("invoice rendered",
		zap.Int64("job_id", job.ID),
		zap.String("invoice_id", invoiceID),
		zap.String("status", string(job.InvoiceStatus)),
		zap.Bool("payment_link", link != nil),
		zap.Int("bytes", len(content)),
	)
	return InvoiceDocument{
		Filename:  "Invoice-" + invoiceID + ".pdf",
		InvoiceID: invoiceID,
		Content:   content,
	}, nil
}
