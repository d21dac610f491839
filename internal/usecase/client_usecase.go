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

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidClientID    = errors.New("invalid client id")
	ErrInvalidClientInput = errors.New("invalid client input")
)

type ClientInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	HourlyRate *float64
	Notes      string
}

type IClientUseCase interface {
	Create(ctx context.Context, in ClientInput) (entities.Client, error)
	Update(ctx context.Context, id int64, in ClientInput) (entities.Client, error)
	GetByID(ctx context.Context, id int64) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}

type ClientUseCase struct {
	repo   interfaces.IClientRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository, logger *zap.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, logger: logger.Named("client.usecase"), now: time.Now}
}

func (u *ClientUseCase) Create(ctx context.Context, in ClientInput) (entities.Client, error) {
	c, err := clientFromInput(in)
	if err != nil {
		return entities.Client{}, err
	}
	now := u.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		u.logger.Error("create client failed", zap.Error(err))
		return entities.Client{}, err
	}
	u.logger.Info("client created", zap.Int64("client_id", created.ID))
	return created, nil
}

// Update replaces the editable fields of a client.
func (u *ClientUseCase) Update(ctx context.Context, id int64, in ClientInput) (entities.Client, error) {
	if id <= 0 {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := clientFromInput(in)
	if err != nil {
		return entities.Client{}, err
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if current.ID == 0 {
		return entities.Client{}, ErrClientNotFound
	}
	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		u.logger.Error("update client failed", zap.Int64("client_id", id), zap.Error(err))
		return entities.Client{}, err
	}
	if updated.ID == 0 {
		return entities.Client{}, ErrClientNotFound
	}
	return updated, nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	if id <= 0 {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == 0 {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	return u.repo.List(ctx)
}

func clientFromInput(in ClientInput) (entities.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Client{}, ErrInvalidClientInput
	}
	rate := entities.DefaultHourlyRate
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return entities.Client{}, ErrInvalidClientInput
		}
		rate = *in.HourlyRate
	}
	return entities.Client{
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		HourlyRate: rate,
		Notes:      strings.TrimSpace(in.Notes),
	}, nil
}
