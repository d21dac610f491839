package usecase

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrInvalidJobID         = errors.New("invalid job id")
	ErrInvalidJobInput      = errors.New("invalid job input")
	ErrInvalidInvoiceStatus = entities.ErrInvalidInvoiceStatus
)

// JobInput is the command for creating or editing a job. On update, nil
// fields keep their stored value; ClientID is only read on create.
type JobInput struct {
	ClientID    int64
	JobDate     *time.Time
	Description *string
	Hours       *float64
	HourlyRate  *float64
	Notes       *string
	Status      *string
}

// IJobUseCase covers job bookkeeping and the invoice status machine.
type IJobUseCase interface {
	Create(ctx context.Context, in JobInput) (entities.Job, error)
	Update(ctx context.Context, id int64, in JobInput) (entities.Job, error)
	GetByID(ctx context.Context, id int64) (entities.Job, error)
	List(ctx context.Context, clientID int64) ([]entities.Job, error)
	Delete(ctx context.Context, id int64) error
	SetInvoiceStatus(ctx context.Context, id int64, status string) (entities.Job, error)
	// NextInvoiceNumber previews the number the next allocation would use.
	NextInvoiceNumber(ctx context.Context) (int64, error)
}

type JobUseCase struct {
	repo     interfaces.IJobRepository
	clients  interfaces.IClientRepository
	settings interfaces.ISettingsRepository
	logger   *zap.Logger
	now      func() time.Time
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(repo interfaces.IJobRepository, clients interfaces.IClientRepository, settings interfaces.ISettingsRepository, logger *zap.Logger) *JobUseCase {
	return &JobUseCase{
		repo:     repo,
		clients:  clients,
		settings: settings,
		logger:   logger.Named("job.usecase"),
		now:      time.Now,
	}
}

// Create stores a new draft job and assigns its invoice number in the same write.
// Without an explicit rate the client's rate is used, then the company default.
// A non-blank description is required.
func (u *JobUseCase) Create(ctx context.Context, in JobInput) (entities.Job, error) {
	if in.ClientID <= 0 {
		return entities.Job{}, ErrInvalidJobInput
	}
	if in.Description == nil {
		return entities.Job{}, ErrInvalidJobInput
	}
	if err := validateJobInput(in); err != nil {
		return entities.Job{}, err
	}

	client, err := u.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		u.logger.Error("load client failed", zap.Int64("client_id", in.ClientID), zap.Error(err))
		return entities.Job{}, err
	}
	if client.ID == 0 {
		return entities.Job{}, ErrClientNotFound
	}

	rate := client.HourlyRate
	if in.HourlyRate != nil {
		rate = *in.HourlyRate
	} else if rate <= 0 {
		settings, err := u.settings.Get(ctx)
		if err != nil {
			return entities.Job{}, err
		}
		rate = settings.DefaultHourlyRate
	}

	now := u.now()
	job := entities.Job{
		ClientID:      client.ID,
		JobDate:       entities.DateOf(now),
		HourlyRate:    rate,
		Status:        entities.WorkStatusDraft,
		InvoiceStatus: entities.InvoiceStatusDraft,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	if err := applyJobInput(&job, in); err != nil {
		return entities.Job{}, err
	}
	job.Recalculate()
	if !finite(job.Total) {
		return entities.Job{}, ErrInvalidJobInput
	}

	created, err := u.repo.Create(ctx, job, true)
	if err != nil {
		u.logger.Error("create job failed", zap.Int64("client_id", client.ID), zap.Error(err))
		return entities.Job{}, err
	}
	u.logger.Info("job created",
		zap.Int64("job_id", created.ID),
		zap.String("invoice_id", created.InvoiceIdentifier()),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

func (u *JobUseCase) Update(ctx context.Context, id int64, in JobInput) (entities.Job, error) {
	if id <= 0 {
		return entities.Job{}, ErrInvalidJobID
	}
	if err := validateJobInput(in); err != nil {
		return entities.Job{}, err
	}

	now := u.now()
	job, err := u.repo.Update(ctx, id, false, func(j *entities.Job) (bool, error) {
		if err := applyJobInput(j, in); err != nil {
			return false, err
		}
		j.Recalculate()
		if !finite(j.Total) {
			return false, ErrInvalidJobInput
		}
		j.UpdatedAt = now.UTC()
		return true, nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidJobInput) {
			u.logger.Error("update job failed", zap.Int64("job_id", id), zap.Error(err))
		}
		return entities.Job{}, err
	}
	if job.ID == 0 {
		return entities.Job{}, ErrJobNotFound
	}
	u.logger.Info("job updated", zap.Int64("job_id", job.ID), zap.Float64("total", job.Total))
	return job, nil
}

func (u *JobUseCase) GetByID(ctx context.Context, id int64) (entities.Job, error) {
	if id <= 0 {
		return entities.Job{}, ErrInvalidJobID
	}
	job, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if job.ID == 0 {
		return entities.Job{}, ErrJobNotFound
	}
	return job, nil
}

func (u *JobUseCase) List(ctx context.Context, clientID int64) ([]entities.Job, error) {
	if clientID < 0 {
		return nil, ErrInvalidJobInput
	}
	return u.repo.List(ctx, clientID)
}

// Delete removes the job. Numbers already handed to other jobs are untouched.
func (u *JobUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidJobID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.logger.Error("delete job failed", zap.Int64("job_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrJobNotFound
	}
	u.logger.Info("job deleted", zap.Int64("job_id", id))
	return nil
}

// SetInvoiceStatus runs a manual transition. Entering sent or paid assigns an
// invoice number first when the job has none; both happen in one write.
func (u *JobUseCase) SetInvoiceStatus(ctx context.Context, id int64, status string) (entities.Job, error) {
	if id <= 0 {
		return entities.Job{}, ErrInvalidJobID
	}
	target, err := entities.ParseInvoiceStatus(status)
	if err != nil {
		return entities.Job{}, ErrInvalidInvoiceStatus
	}

	now := u.now()
	var tr entities.Transition
	job, err := u.repo.Update(ctx, id, target.RequiresInvoiceNumber(), func(j *entities.Job) (bool, error) {
		var err error
		tr, err = j.ApplyInvoiceStatus(target, now, entities.TransitionManual)
		if err != nil {
			return false, err
		}
		if tr.Changed() {
			j.UpdatedAt = now.UTC()
		}
		return tr.Changed(), nil
	})
	if err != nil {
		u.logger.Error("set invoice status failed", zap.Int64("job_id", id), zap.String("status", string(target)), zap.Error(err))
		return entities.Job{}, err
	}
	if job.ID == 0 {
		return entities.Job{}, ErrJobNotFound
	}

	fields := []zap.Field{
		zap.Int64("job_id", job.ID),
		zap.String("invoice_id", job.InvoiceIdentifier()),
		zap.String("from", string(tr.From)),
		zap.String("status", string(tr.To)),
		zap.String("outcome", string(tr.Outcome)),
	}
	if tr.Regression {
		u.logger.Warn("paid invoice moved out of paid; payment record discarded", fields...)
	} else {
		u.logger.Info("invoice status set", fields...)
	}
	return job, nil
}

func validateJobInput(in JobInput) error {
	if in.Hours != nil && (*in.Hours < 0 || !finite(*in.Hours)) {
		return ErrInvalidJobInput
	}
	if in.HourlyRate != nil && (*in.HourlyRate < 0 || !finite(*in.HourlyRate)) {
		return ErrInvalidJobInput
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return ErrInvalidJobInput
	}
	if in.Status != nil {
		if _, err := entities.ParseWorkStatus(*in.Status); err != nil {
			return ErrInvalidJobInput
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func applyJobInput(j *entities.Job, in JobInput) error {
	if in.JobDate != nil {
		j.JobDate = entities.DateOf(*in.JobDate)
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Hours != nil {
		j.Hours = *in.Hours
	}
	if in.HourlyRate != nil {
		j.HourlyRate = *in.HourlyRate
	}
	if in.Notes != nil {
		j.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		s, err := entities.ParseWorkStatus(*in.Status)
		if err != nil {
			return ErrInvalidJobInput
		}
		j.Status = s
	}
	return nil
}

func (u *JobUseCase) NextInvoiceNumber(ctx context.Context) (int64, error) {
	n, err := u.repo.NextInvoiceNumber(ctx)
	if err != nil {
		u.logger.Error("preview invoice number failed", zap.Error(err))
		return 0, err
	}
	return n, nil
}
