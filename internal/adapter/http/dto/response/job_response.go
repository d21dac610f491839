package response

import (
	"invoicing/internal/domain/entities"
	"time"
)

const dateLayout = "2006-01-02"

type JobResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	JobDate         string    `json:"job_date"`
	Description     string    `json:"description"`
	Hours           float64   `json:"hours"`
	HourlyRate      float64   `json:"hourly_rate"`
	Total           float64   `json:"total"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	InvoiceNumber   *int64    `json:"invoice_number"`
	InvoiceID       string    `json:"invoice_id"`
	InvoiceStatus   string    `json:"invoice_status"`
	InvoiceSentDate *string   `json:"invoice_sent_date"`
	InvoicePaidDate *string   `json:"invoice_paid_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromJob(j entities.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		ClientID:        j.ClientID,
		JobDate:         j.JobDate.Format(dateLayout),
		Description:     j.Description,
		Hours:           j.Hours,
		HourlyRate:      j.HourlyRate,
		Total:           j.Total,
		Notes:           j.Notes,
		Status:          string(j.Status),
		InvoiceNumber:   j.InvoiceNumber,
		InvoiceID:       j.InvoiceIdentifier(),
		InvoiceStatus:   string(j.InvoiceStatus),
		InvoiceSentDate: formatDate(j.SentDate),
		InvoicePaidDate: formatDate(j.PaidDate),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func FromJobs(jobs []entities.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

// InvoiceStatusResponse answers a status transition.
type InvoiceStatusResponse struct {
	Success         bool    `json:"success"`
	InvoiceID       string  `json:"invoice_id"`
	InvoiceStatus   string  `json:"invoice_status"`
	InvoiceSentDate *string `json:"invoice_sent_date"`
	InvoicePaidDate *string `json:"invoice_paid_date"`
}

func FromInvoiceStatus(j entities.Job) InvoiceStatusResponse {
	return InvoiceStatusResponse{
		Success:         true,
		InvoiceID:       j.InvoiceIdentifier(),
		InvoiceStatus:   string(j.InvoiceStatus),
		InvoiceSentDate: formatDate(j.SentDate),
		InvoicePaidDate: formatDate(j.PaidDate),
	}
}

type NextInvoiceNumberResponse struct {
	NextInvoiceNumber int64  `json:"next_invoice_number"`
	InvoiceID         string `json:"invoice_id"`
}

func FromNextInvoiceNumber(n int64) NextInvoiceNumberResponse {
	return NextInvoiceNumberResponse{NextInvoiceNumber: n, InvoiceID: entities.FormatInvoiceID(n)}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
