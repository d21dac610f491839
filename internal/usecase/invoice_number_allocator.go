package usecase

import (
	"context"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// InvoiceNumberAllocator hands out invoice numbers lazily. The read of the
// current maximum and the write of the new number happen inside the
// repository's atomic unit, never here.
type InvoiceNumberAllocator struct {
	repo   interfaces.IJobRepository
	logger *zap.Logger
}

func NewInvoiceNumberAllocator(repo interfaces.IJobRepository, logger *zap.Logger) *InvoiceNumberAllocator {
	return &InvoiceNumberAllocator{repo: repo, logger: logger.Named("invoice.allocator")}
}

// EnsureNumber returns the job with an invoice number, assigning and
// persisting one if it had none. A job that already has a number is returned
// as stored.
func (a *InvoiceNumberAllocator) EnsureNumber(ctx context.Context, jobID int64) (entities.Job, error) {
	if jobID <= 0 {
		return entities.Job{}, ErrInvalidJobID
	}
	job, err := a.repo.Update(ctx, jobID, true, nil)
	if err != nil {
		a.logger.Error("assign invoice number failed", zap.Int64("job_id", jobID), zap.Error(err))
		return entities.Job{}, err
	}
	if job.ID == 0 {
		return entities.Job{}, ErrJobNotFound
	}
	a.logger.Debug("invoice number ensured", zap.Int64("job_id", job.ID), zap.String("invoice_id", job.InvoiceIdentifier()))
	return job, nil
}
