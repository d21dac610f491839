package repository

import (
	"context"
	"errors"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobGormRepository persists jobs in SQLite or Postgres.
//
// Invoice numbers are allocated inside the transaction that writes them. On
// Postgres the job row and then the invoice_sequences row are locked with
// SELECT ... FOR UPDATE; SQLite gets the same exclusion from BEGIN IMMEDIATE
// on its single connection. The unique index on invoice_number backs both.
type JobGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ interfaces.IJobRepository = (*JobGormRepository)(nil)

func NewJobGormRepository(db *gorm.DB) *JobGormRepository {
	return &JobGormRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *JobGormRepository) Create(ctx context.Context, job entities.Job, assignInvoiceNumber bool) (entities.Job, error) {
	row := toJobRow(job)
	row.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if assignInvoiceNumber && !job.HasInvoiceNumber() {
			n, err := allocateInvoiceNumber(tx)
			if err != nil {
				return err
			}
			row.InvoiceNumber = &n
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return entities.Job{}, err
	}
	return row.toEntity(), nil
}

func (r *JobGormRepository) GetByID(ctx context.Context, id int64) (entities.Job, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Job{}, nil
	}
	if err != nil {
		return entities.Job{}, err
	}
	return row.toEntity(), nil
}

func (r *JobGormRepository) List(ctx context.Context, clientID int64) ([]entities.Job, error) {
	q := r.db.WithContext(ctx).Order("job_date DESC").Order("id DESC")
	if clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}

	var rows []jobRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Job, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *JobGormRepository) Update(ctx context.Context, id int64, assignInvoiceNumber bool, mutate interfaces.JobMutation) (entities.Job, error) {
	var out entities.Job
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row jobRow
		err := forUpdate(tx).Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		job := row.toEntity()
		dirty := false
		if assignInvoiceNumber && !job.HasInvoiceNumber() {
			n, err := allocateInvoiceNumber(tx)
			if err != nil {
				return err
			}
			job.InvoiceNumber = &n
			job.UpdatedAt = r.now()
			dirty = true
		}
		if mutate != nil {
			changed, err := mutate(&job)
			if err != nil {
				return err
			}
			dirty = dirty || changed
		}
		if dirty {
			updated := toJobRow(job)
			if err := tx.Save(&updated).Error; err != nil {
				return err
			}
		}
		out = job
		return nil
	})
	if err != nil {
		return entities.Job{}, err
	}
	return out, nil
}

func (r *JobGormRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&jobRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *JobGormRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	highest, err := maxInvoiceNumber(r.db.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// forUpdate adds a row lock where the dialect has one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func maxInvoiceNumber(db *gorm.DB) (int64, error) {
	var highest int64
	err := db.Model(&jobRow{}).Select("COALESCE(MAX(invoice_number), 0)").Scan(&highest).Error
	return highest, err
}

// allocateInvoiceNumber must run inside a transaction. It serializes on the
// sequence row, then hands out max(existing)+1.
func allocateInvoiceNumber(tx *gorm.DB) (int64, error) {
	var seq invoiceSequenceRow
	err := forUpdate(tx).Where("id = ?", singletonID).Take(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = invoiceSequenceRow{ID: singletonID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return 0, err
		}
		err = forUpdate(tx).Where("id = ?", singletonID).Take(&seq).Error
	}
	if err != nil {
		return 0, err
	}

	highest, err := maxInvoiceNumber(tx)
	if err != nil {
		return 0, err
	}
	next := highest + 1
	if err := tx.Model(&invoiceSequenceRow{}).Where("id = ?", singletonID).Update("last_issued", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
