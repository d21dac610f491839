package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWorkStatus = errors.New("invalid work status")

// WorkStatus is the generic work-tracking flag of a job. It is independent
// of InvoiceStatus.
type WorkStatus string

const (
	WorkStatusDraft     WorkStatus = "draft"
	WorkStatusComplete  WorkStatus = "complete"
	WorkStatusCancelled WorkStatus = "cancelled"
)

func ParseWorkStatus(raw string) (WorkStatus, error) {
	switch s := WorkStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case WorkStatusDraft, WorkStatusComplete, WorkStatusCancelled:
		return s, nil
	}
	return "", ErrInvalidWorkStatus
}

// Job is one billable unit of work and the unit an invoice is generated from.
//
// Invariants kept by every mutation path:
//   - Total == Hours * HourlyRate as of the last save.
//   - InvoiceNumber, once set, never changes and is unique across jobs.
//   - InvoiceStatus sent => SentDate set; paid => PaidDate set; draft => both nil.
type Job struct {
	ID            int64         `json:"id"`
	ClientID      int64         `json:"client_id"`
	JobDate       time.Time     `json:"job_date"`
	Description   string        `json:"description"`
	Hours         float64       `json:"hours"`
	HourlyRate    float64       `json:"hourly_rate"`
	Total         float64       `json:"total"`
	Notes         string        `json:"notes"`
	Status        WorkStatus    `json:"status"`
	InvoiceNumber *int64        `json:"invoice_number,omitempty"`
	InvoiceStatus InvoiceStatus `json:"invoice_status"`
	SentDate      *time.Time    `json:"invoice_sent_date,omitempty"`
	PaidDate      *time.Time    `json:"invoice_paid_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Recalculate refreshes the derived total. Call it after every edit of
// Hours or HourlyRate.
func (j *Job) Recalculate() {
	j.Total = j.Hours * j.HourlyRate
}

func (j Job) HasInvoiceNumber() bool {
	return j.InvoiceNumber != nil && *j.InvoiceNumber > 0
}

// InvoiceIdentifier returns INV-#### once a number is assigned and JOB-<id>
// before that.
func (j Job) InvoiceIdentifier() string {
	if j.HasInvoiceNumber() {
		return FormatInvoiceID(*j.InvoiceNumber)
	}
	return fmt.Sprintf("JOB-%d", j.ID)
}

func FormatInvoiceID(number int64) string {
	return fmt.Sprintf("INV-%04d", number)
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
