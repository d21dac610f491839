package repository

import (
	"time"

	"invoicing/internal/domain/entities"
)

// Relational schema shared by the SQLite and Postgres drivers.

type jobRow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	ClientID        int64     `gorm:"not null;index"`
	JobDate         time.Time `gorm:"not null"`
	Description     string    `gorm:"type:text"`
	Hours           float64   `gorm:"not null"`
	HourlyRate      float64   `gorm:"not null"`
	Total           float64   `gorm:"not null"`
	Notes           string    `gorm:"type:text"`
	Status          string    `gorm:"size:32;not null;default:draft"`
	InvoiceNumber   *int64    `gorm:"uniqueIndex"`
	InvoiceStatus   string    `gorm:"size:16;not null;default:draft"`
	InvoiceSentDate *time.Time
	InvoicePaidDate *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (jobRow) TableName() string { return "jobs" }

type clientRow struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	Name       string  `gorm:"size:255;not null"`
	Email      string  `gorm:"size:255"`
	Phone      string  `gorm:"size:64"`
	Address    string  `gorm:"type:text"`
	HourlyRate float64 `gorm:"not null"`
	Notes      string  `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (clientRow) TableName() string { return "clients" }

type companySettingsRow struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement:false"`
	CompanyName         string `gorm:"size:255;not null"`
	OwnerName           string `gorm:"size:255"`
	Address             string `gorm:"type:text"`
	Phone               string `gorm:"size:64"`
	Email               string `gorm:"size:255"`
	Tagline             string `gorm:"size:255"`
	DefaultHourlyRate   float64
	StripeAPIKey        string `gorm:"size:255"`
	StripeWebhookSecret string `gorm:"size:255"`
	UpdatedAt           time.Time
}

func (companySettingsRow) TableName() string { return "company_settings" }

// invoiceSequenceRow is a single-row table whose lock serializes invoice
// number allocation. LastIssued records the latest number handed out.
type invoiceSequenceRow struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	LastIssued int64 `gorm:"not null"`
}

func (invoiceSequenceRow) TableName() string { return "invoice_sequences" }

const singletonID = 1

func toJobRow(j entities.Job) jobRow {
	return jobRow{
		ID:              j.ID,
		ClientID:        j.ClientID,
		JobDate:         j.JobDate,
		Description:     j.Description,
		Hours:           j.Hours,
		HourlyRate:      j.HourlyRate,
		Total:           j.Total,
		Notes:           j.Notes,
		Status:          string(j.Status),
		InvoiceNumber:   j.InvoiceNumber,
		InvoiceStatus:   string(j.InvoiceStatus),
		InvoiceSentDate: j.SentDate,
		InvoicePaidDate: j.PaidDate,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func (r jobRow) toEntity() entities.Job {
	return entities.Job{
		ID:            r.ID,
		ClientID:      r.ClientID,
		JobDate:       normalizeDate(r.JobDate),
		Description:   r.Description,
		Hours:         r.Hours,
		HourlyRate:    r.HourlyRate,
		Total:         r.Total,
		Notes:         r.Notes,
		Status:        entities.WorkStatus(r.Status),
		InvoiceNumber: r.InvoiceNumber,
		InvoiceStatus: entities.InvoiceStatus(r.InvoiceStatus),
		SentDate:      normalizeDatePtr(r.InvoiceSentDate),
		PaidDate:      normalizeDatePtr(r.InvoicePaidDate),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return entities.DateOf(t)
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := entities.DateOf(*t)
	return &d
}

func toClientRow(c entities.Client) clientRow {
	return clientRow{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		HourlyRate: c.HourlyRate,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (r clientRow) toEntity() entities.Client {
	return entities.Client{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		HourlyRate: r.HourlyRate,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toSettingsRow(s entities.CompanySettings) companySettingsRow {
	return companySettingsRow{
		ID:                  singletonID,
		CompanyName:         s.CompanyName,
		OwnerName:           s.OwnerName,
		Address:             s.Address,
		Phone:               s.Phone,
		Email:               s.Email,
		Tagline:             s.Tagline,
		DefaultHourlyRate:   s.DefaultHourlyRate,
		StripeAPIKey:        s.PaymentSecretKey,
		StripeWebhookSecret: s.WebhookSigningSecret,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (r companySettingsRow) toEntity() entities.CompanySettings {
	return entities.CompanySettings{
		CompanyName:          r.CompanyName,
		OwnerName:            r.OwnerName,
		Address:              r.Address,
		Phone:                r.Phone,
		Email:                r.Email,
		Tagline:              r.Tagline,
		DefaultHourlyRate:    r.DefaultHourlyRate,
		PaymentSecretKey:     r.StripeAPIKey,
		WebhookSigningSecret: r.StripeWebhookSecret,
		UpdatedAt:            r.UpdatedAt,
	}
}
