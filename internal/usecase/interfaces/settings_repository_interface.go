package interfaces

import (
	"context"
	"invoicing/internal/domain/entities"
)

// ISettingsRepository persists the CompanySettings singleton. Get falls back
// to entities.DefaultCompanySettings when nothing was saved yet.
type ISettingsRepository interface {
	Get(ctx context.Context) (entities.CompanySettings, error)
	Save(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error)
}
