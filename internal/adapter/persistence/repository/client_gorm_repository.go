package repository

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type ClientGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IClientRepository = (*ClientGormRepository)(nil)

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	row := toClientRow(c)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Client{}, err
	}
	return row.toEntity(), nil
}

func (r *ClientGormRepository) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	var row clientRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Client{}, nil
	}
	if err != nil {
		return entities.Client{}, err
	}
	return row.toEntity(), nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	row := toClientRow(c)
	res := r.db.WithContext(ctx).Model(&clientRow{}).Where("id = ?", c.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if res.Error != nil {
		return entities.Client{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Client{}, nil
	}
	return r.GetByID(ctx, c.ID)
}

func (r *ClientGormRepository) List(ctx context.Context) ([]entities.Client, error) {
	var rows []clientRow
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
