package entities

import (
	"testing"
	"time"
)

func TestJob_Recalculate(t *testing.T) {
	cases := []struct {
		hours, rate, want float64
	}{
		{hours: 2, rate: 100, want: 200},
		{hours: 1.5, rate: 140, want: 210},
		{hours: 0, rate: 140, want: 0},
	}
	for _, tc := range cases {
		j := Job{Hours: tc.hours, HourlyRate: tc.rate, Total: -1}
		j.Recalculate()
		if j.Total != tc.hours*tc.rate || j.Total != tc.want {
			t.Fatalf("hours=%v rate=%v: expected %v, got %v", tc.hours, tc.rate, tc.want, j.Total)
		}
	}
}

func TestJob_InvoiceIdentifier(t *testing.T) {
	if got := (Job{ID: 12}).InvoiceIdentifier(); got != "JOB-12" {
		t.Fatalf("expected JOB-12, got %q", got)
	}
	if got := (Job{ID: 12, InvoiceNumber: int64Ptr(7)}).InvoiceIdentifier(); got != "INV-0007" {
		t.Fatalf("expected INV-0007, got %q", got)
	}
	if got := FormatInvoiceID(12345); got != "INV-12345" {
		t.Fatalf("expected INV-12345, got %q", got)
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2026, 10, 16, 23, 59, 0, 0, time.FixedZone("PDT", -7*3600))
	got := DateOf(in)
	if got.Year() != 2026 || got.Month() != time.October || got.Day() != 16 || got.Hour() != 0 {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestCompanySettings_Credentials(t *testing.T) {
	s := DefaultCompanySettings()
	if s.HasPaymentCredential() || s.HasWebhookSecret() {
		t.Fatalf("defaults must not carry credentials")
	}
	s.PaymentSecretKey = "  "
	if s.HasPaymentCredential() {
		t.Fatalf("blank key must not count as configured")
	}
	s.PaymentSecretKey = "sk_test_123"
	s.WebhookSigningSecret = "whsec_123"
	if !s.HasPaymentCredential() || !s.HasWebhookSecret() {
		t.Fatalf("expected credentials configured")
	}
}

func TestParseWorkStatus(t *testing.T) {
	if s, err := ParseWorkStatus(" Complete "); err != nil || s != WorkStatusComplete {
		t.Fatalf("expected complete, got %q err=%v", s, err)
	}
	if _, err := ParseWorkStatus("archived"); err != ErrInvalidWorkStatus {
		t.Fatalf("expected ErrInvalidWorkStatus, got %v", err)
	}
}
