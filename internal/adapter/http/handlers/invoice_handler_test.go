package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"invoicing/internal/adapter/http/handlers/mocks"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newInvoiceRouter(t *testing.T) (*gin.Engine, *mocks.MockIInvoiceDocumentUseCase, *mocks.MockIPaymentLinkUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	docs := mocks.NewMockIInvoiceDocumentUseCase(ctrl)
	links := mocks.NewMockIPaymentLinkUseCase(ctrl)
	h := NewInvoiceHandler(docs, links)

	r := gin.New()
	r.GET("/api/jobs/:id/pdf", h.DownloadPDF)
	r.POST("/api/jobs/:id/payment-link", h.CreatePaymentLink)
	return r, docs, links
}

func TestInvoiceHandler_DownloadPDF(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		r, docs, _ := newInvoiceRouter(t)
		docs.EXPECT().Render(gomock.Any(), int64(3)).Return(usecase.InvoiceDocument{
			Filename: "Invoice-INV-0003.pdf", InvoiceID: "INV-0003", Content: []byte("%PDF-1.3"),
		}, nil)

		w := serve(r, http.MethodGet, "/api/jobs/3/pdf", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="Invoice-INV-0003.pdf"` {
			t.Fatalf("unexpected disposition %q", cd)
		}
		if w.Body.String() != "%PDF-1.3" {
			t.Fatalf("unexpected body %q", w.Body.String())
		}
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
		}{
			{err: usecase.ErrJobNotFound, want: http.StatusNotFound},
			{err: fmt.Errorf("%w: font", usecase.ErrRenderFailed), want: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			r, docs, _ := newInvoiceRouter(t)
			docs.EXPECT().Render(gomock.Any(), int64(3)).Return(usecase.InvoiceDocument{}, tc.err)
			if w := serve(r, http.MethodGet, "/api/jobs/3/pdf", ""); w.Code != tc.want {
				t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
			}
		}
	})
}

func TestInvoiceHandler_CreatePaymentLink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, _, links := newInvoiceRouter(t)
		links.EXPECT().CreateForJob(gomock.Any(), int64(3)).Return(entities.PaymentLink{
			URL: "https://pay.example/3", JobID: 3, InvoiceID: "INV-0003", Amount: 200,
		}, nil)

		w := serve(r, http.MethodPost, "/api/jobs/3/payment-link", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["success"] != true || body["payment_url"] != "https://pay.example/3" || body["invoice_id"] != "INV-0003" || body["amount"] != float64(200) {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("error taxonomy", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want int
		}{
			{name: "not configured", err: usecase.ErrPaymentProviderNotConfigured, want: http.StatusBadRequest},
			{name: "already paid", err: usecase.ErrInvoiceAlreadyPaid, want: http.StatusConflict},
			{name: "unauthorized", err: fmt.Errorf("%w: 401", usecase.ErrPaymentProviderUnauthorized), want: http.StatusBadGateway},
			{name: "failure", err: fmt.Errorf("%w: reset", usecase.ErrPaymentProviderFailure), want: http.StatusBadGateway},
			{name: "missing job", err: usecase.ErrJobNotFound, want: http.StatusNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r, _, links := newInvoiceRouter(t)
				links.EXPECT().CreateForJob(gomock.Any(), int64(3)).Return(entities.PaymentLink{}, tc.err)
				if w := serve(r, http.MethodPost, "/api/jobs/3/payment-link", ""); w.Code != tc.want {
					t.Fatalf("expected %d, got %d", tc.want, w.Code)
				}
			})
		}
	})
}
