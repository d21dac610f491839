package repository

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ISettingsRepository = (*SettingsGormRepository)(nil)

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

func (r *SettingsGormRepository) Get(ctx context.Context) (entities.CompanySettings, error) {
	var row companySettingsRow
	err := r.db.WithContext(ctx).Where("id = ?", singletonID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.DefaultCompanySettings(), nil
	}
	if err != nil {
		return entities.CompanySettings{}, err
	}
	return row.toEntity(), nil
}

func (r *SettingsGormRepository) Save(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
	row := toSettingsRow(s)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return entities.CompanySettings{}, err
	}
	return row.toEntity(), nil
}
