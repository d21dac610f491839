package repository

import (
	"errors"
	"invoicing/internal/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the relational schema and seeds the singleton rows.
// Running it again is harmless.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&clientRow{}, &jobRow{}, &companySettingsRow{}, &invoiceSequenceRow{}); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		highest, err := maxInvoiceNumber(tx)
		if err != nil {
			return err
		}
		seq := invoiceSequenceRow{ID: singletonID, LastIssued: highest}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&companySettingsRow{}).Where("id = ?", singletonID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		row := toSettingsRow(entities.DefaultCompanySettings())
		if err := tx.Create(&row).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return nil
	})
}
