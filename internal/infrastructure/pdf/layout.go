package pdf

import (
	"fmt"
	"invoicing/internal/domain/entities"
	"invoicing/internal/domain/richtext"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	longDateLayout  = "January 02, 2006"
	serviceLineName = "Professional IT Services"
	watermarkPaid   = "PAID"
)

// Layout is the document content, decided before anything is drawn.
type Layout struct {
	Header    Header
	BillTo    []string
	Service   ServiceLine
	Details   []richtext.Block
	Totals    []TotalLine
	Payment   *PaymentBox
	Thanks    string
	Signature string
	// Watermark is stamped across every page when set.
	Watermark string
}

type Header struct {
	CompanyName string
	OwnerName   string
	Contact     string
	InvoiceID   string
	IssuedDate  string
	ServiceDate string
	Status      string
}

type ServiceLine struct {
	Description string
	Hours       string
	Rate        string
	Amount      string
}

type TotalLine struct {
	Label string
	Value string
}

type PaymentBox struct {
	URL string
}

// Compose builds the layout for snapshot. The last totals line is the
// emphasized one.
func Compose(s entities.InvoiceSnapshot) Layout {
	job := s.Job
	total := money(job.Total)

	status := strings.ToUpper(string(job.InvoiceStatus))
	if status == "" {
		status = strings.ToUpper(string(entities.InvoiceStatusDraft))
	}

	l := Layout{
		Header: Header{
			CompanyName: richtext.Sanitize(s.Settings.CompanyName),
			OwnerName:   richtext.Sanitize(s.Settings.OwnerName),
			Contact:     joinNonEmpty("  •  ", richtext.Sanitize(s.Settings.Phone), richtext.Sanitize(s.Settings.Email)),
			InvoiceID:   "#" + s.InvoiceID,
			IssuedDate:  s.IssuedAt.Format(longDateLayout),
			ServiceDate: job.JobDate.Format(longDateLayout),
			Status:      status,
		},
		BillTo: billTo(s.Client),
		Service: ServiceLine{
			Description: serviceLineName,
			Hours:       decimal.NewFromFloat(job.Hours).StringFixed(2),
			Rate:        money(job.HourlyRate) + "/hr",
			Amount:      total,
		},
		Details:   richtext.Format(job.Description),
		Thanks:    "Thank you for your business!",
		Signature: joinNonEmpty(" • ", richtext.Sanitize(s.Settings.CompanyName), richtext.Sanitize(s.Settings.Tagline)),
	}

	if s.Paid() {
		l.Totals = []TotalLine{
			{Label: "Subtotal:", Value: total},
			{Label: "Tax (0%):", Value: money(0)},
			{Label: "TOTAL:", Value: total},
			{Label: "PAID:", Value: total},
			{Label: "BALANCE DUE:", Value: money(0)},
		}
		l.Watermark = watermarkPaid
	} else {
		l.Totals = []TotalLine{
			{Label: "Subtotal:", Value: total},
			{Label: "Tax (0%):", Value: money(0)},
			{Label: "TOTAL DUE:", Value: total},
		}
		if s.PaymentLink != nil && s.PaymentLink.URL != "" {
			l.Payment = &PaymentBox{URL: s.PaymentLink.URL}
		}
	}
	return l
}

func billTo(c entities.Client) []string {
	lines := []string{richtext.Sanitize(c.Name)}
	for _, v := range []string{c.Email, c.Phone} {
		if v = richtext.Sanitize(v); v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

func money(v float64) string {
	return fmt.Sprintf("$%s", decimal.NewFromFloat(v).StringFixed(2))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
