package interfaces

import (
	"context"
	"invoicing/internal/domain/entities"
)

// IClientRepository returns a zero Client and a nil error on a missing id.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id int64) (entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}
