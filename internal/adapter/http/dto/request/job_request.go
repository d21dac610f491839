package request

import (
	"errors"
	"invoicing/internal/usecase"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidJobDate = errors.New("invalid job_date, expected YYYY-MM-DD")

// JobRequest is shared by create and edit. Omitted fields keep their stored
// value on edit.
type JobRequest struct {
	ClientID    int64    `json:"client_id"`
	JobDate     *string  `json:"job_date"`
	Description *string  `json:"description"`
	Hours       *float64 `json:"hours"`
	HourlyRate  *float64 `json:"hourly_rate"`
	Notes       *string  `json:"notes"`
	Status      *string  `json:"status"`
}

func (r JobRequest) ToInput() (usecase.JobInput, error) {
	in := usecase.JobInput{
		ClientID:    r.ClientID,
		Description: r.Description,
		Hours:       r.Hours,
		HourlyRate:  r.HourlyRate,
		Notes:       r.Notes,
		Status:      r.Status,
	}
	if r.JobDate != nil && strings.TrimSpace(*r.JobDate) != "" {
		d, err := time.Parse(DateLayout, strings.TrimSpace(*r.JobDate))
		if err != nil {
			return usecase.JobInput{}, ErrInvalidJobDate
		}
		in.JobDate = &d
	}
	return in, nil
}

type InvoiceStatusRequest struct {
	InvoiceStatus string `json:"invoice_status" binding:"required"`
}
