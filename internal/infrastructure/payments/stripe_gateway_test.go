package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

func TestStripeGateway_CreatePaymentLink(t *testing.T) {
	req := interfaces.PaymentLinkRequest{
		SecretKey:   "sk_test_123",
		AmountMinor: 12346,
		Amount:      123.46,
		Currency:    "usd",
		ProductName: "Invoice INV-0003 - Professional IT Services",
		InvoiceID:   "INV-0003",
		JobID:       12,
		Metadata:    map[string]string{"job_id": "12", "invoice_number": "INV-0003"},
	}

	t.Run("creates a price then a link", func(t *testing.T) {
		var calls []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, r.URL.Path)
			if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
				t.Errorf("unexpected auth header %q", got)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/v1/prices":
				if r.PostForm.Get("unit_amount") != "12346" || r.PostForm.Get("currency") != "usd" {
					t.Errorf("unexpected price form: %v", r.PostForm)
				}
				if r.PostForm.Get("product_data[name]") != req.ProductName {
					t.Errorf("unexpected product name: %v", r.PostForm)
				}
				_, _ = w.Write([]byte(`{"id":"price_123","object":"price"}`))
			case "/v1/payment_links":
				if r.PostForm.Get("line_items[0][price]") != "price_123" || r.PostForm.Get("line_items[0][quantity]") != "1" {
					t.Errorf("unexpected link form: %v", r.PostForm)
				}
				if r.PostForm.Get("metadata[job_id]") != "12" {
					t.Errorf("expected job_id metadata: %v", r.PostForm)
				}
				_, _ = w.Write([]byte(`{"id":"plink_1","object":"payment_link","url":"https://buy.stripe.com/test_abc"}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		g := NewStripeGateway(srv.URL, srv.Client(), zap.NewNop())
		url, err := g.CreatePaymentLink(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://buy.stripe.com/test_abc" {
			t.Fatalf("unexpected url %q", url)
		}
		if len(calls) != 2 {
			t.Fatalf("expected 2 calls, got %v", calls)
		}
	})

	t.Run("rejected key is reported as unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
		}))
		defer srv.Close()

		g := NewStripeGateway(srv.URL, srv.Client(), zap.NewNop())
		_, err := g.CreatePaymentLink(context.Background(), req)
		if !errors.Is(err, interfaces.ErrGatewayUnauthorized) {
			t.Fatalf("expected ErrGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		g := NewStripeGateway("", nil, zap.NewNop())
		noKey := req
		noKey.SecretKey = ""
		if _, err := g.CreatePaymentLink(context.Background(), noKey); !errors.Is(err, ErrMissingStripeSecretKey) {
			t.Fatalf("expected ErrMissingStripeSecretKey, got %v", err)
		}
	})
}

func TestMockGateway(t *testing.T) {
	g := NewMockGateway(zap.NewNop())
	url, err := g.CreatePaymentLink(context.Background(), interfaces.PaymentLinkRequest{InvoiceID: "INV-0001"})
	if err != nil || url != "https://checkout.mock.local/pay/INV-0001" {
		t.Fatalf("unexpected url %q err=%v", url, err)
	}
}
