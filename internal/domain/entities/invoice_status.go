package entities

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidInvoiceStatus = errors.New("invalid invoice status")

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

func ParseInvoiceStatus(raw string) (InvoiceStatus, error) {
	switch s := InvoiceStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return s, nil
	}
	return "", ErrInvalidInvoiceStatus
}

// RequiresInvoiceNumber reports whether entering s needs an assigned number.
func (s InvoiceStatus) RequiresInvoiceNumber() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPaid
}

// TransitionOrigin tells who asked for a status change. Webhook-driven
// changes never move a job out of paid.
type TransitionOrigin string

const (
	TransitionManual  TransitionOrigin = "manual"
	TransitionWebhook TransitionOrigin = "webhook"
)

type TransitionOutcome string

const (
	// TransitionApplied means the job was changed and must be persisted.
	TransitionApplied TransitionOutcome = "applied"
	// TransitionUnchanged is a repeated paid: paid_date keeps its first value.
	TransitionUnchanged TransitionOutcome = "unchanged"
	// TransitionIgnored is an automated attempt to leave paid.
	TransitionIgnored TransitionOutcome = "ignored"
)

type Transition struct {
	From    InvoiceStatus
	To      InvoiceStatus
	Outcome TransitionOutcome
	// Regression is set when a manual change discards a recorded payment.
	Regression bool
}

func (t Transition) Changed() bool {
	return t.Outcome == TransitionApplied
}

// ApplyInvoiceStatus moves the job to target and keeps the date bookkeeping
// consistent with it. Every source state may reach every target; the caller
// is expected to have assigned an invoice number when
// target.RequiresInvoiceNumber().
func (j *Job) ApplyInvoiceStatus(target InvoiceStatus, today time.Time, origin TransitionOrigin) (Transition, error) {
	if _, err := ParseInvoiceStatus(string(target)); err != nil {
		return Transition{}, err
	}
	from := j.InvoiceStatus
	if from == "" {
		from = InvoiceStatusDraft
	}
	tr := Transition{From: from, To: target}

	if from == InvoiceStatusPaid {
		if target == InvoiceStatusPaid && j.PaidDate != nil {
			tr.Outcome = TransitionUnchanged
			return tr, nil
		}
		if origin == TransitionWebhook && target != InvoiceStatusPaid {
			tr.Outcome = TransitionIgnored
			return tr, nil
		}
		tr.Regression = target != InvoiceStatusPaid
	}

	day := DateOf(today)
	switch target {
	case InvoiceStatusSent:
		j.SentDate = &day
		if from == InvoiceStatusPaid {
			j.PaidDate = nil
		}
	case InvoiceStatusPaid:
		j.PaidDate = &day
	case InvoiceStatusDraft:
		j.SentDate = nil
		j.PaidDate = nil
	}
	j.InvoiceStatus = target
	tr.Outcome = TransitionApplied
	return tr, nil
}
