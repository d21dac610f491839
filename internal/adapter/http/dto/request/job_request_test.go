package request

import (
	"errors"
	"testing"
	"time"
)

func strPtr(v string) *string { return &v }

func TestJobRequest_ToInput(t *testing.T) {
	tests := []struct {
		name     string
		req      JobRequest
		wantDate *time.Time
		wantErr  error
	}{
		{name: "no date", req: JobRequest{ClientID: 1}},
		{name: "blank date", req: JobRequest{JobDate: strPtr("  ")}},
		{
			name:     "valid date",
			req:      JobRequest{JobDate: strPtr("2026-03-02")},
			wantDate: func() *time.Time { d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); return &d }(),
		},
		{name: "bad date", req: JobRequest{JobDate: strPtr("03/02/2026")}, wantErr: ErrInvalidJobDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.req.ToInput()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if (in.JobDate == nil) != (tt.wantDate == nil) {
				t.Fatalf("unexpected date %v", in.JobDate)
			}
			if tt.wantDate != nil && !in.JobDate.Equal(*tt.wantDate) {
				t.Fatalf("expected %v, got %v", tt.wantDate, in.JobDate)
			}
		})
	}
}

func TestSettingsRequest_ToInput(t *testing.T) {
	in := SettingsRequest{StripeAPIKey: strPtr("sk_test_1")}.ToInput()
	if in.PaymentSecretKey == nil || *in.PaymentSecretKey != "sk_test_1" || in.WebhookSigningSecret != nil {
		t.Fatalf("unexpected input: %+v", in)
	}
}
