package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicing/internal/adapter/http/handlers/mocks"
	"invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestWebhookHandler_HandleStripeEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	payload := `{"id":"evt_1"}`

	tests := []struct {
		name     string
		result   usecase.WebhookResult
		err      error
		want     int
		wantBody string
	}{
		{name: "acknowledged", result: usecase.WebhookResult{Outcome: usecase.WebhookMarkedPaid}, want: http.StatusOK, wantBody: `{"received":true}`},
		{name: "unknown job still acknowledged", result: usecase.WebhookResult{Outcome: usecase.WebhookUnknownJob}, want: http.StatusOK, wantBody: `{"received":true}`},
		{name: "bad signature", err: usecase.ErrWebhookSignatureInvalid, want: http.StatusBadRequest},
		{name: "not configured", err: usecase.ErrPaymentProviderNotConfigured, want: http.StatusBadRequest},
		{name: "bad payload", err: usecase.ErrInvalidWebhookPayload, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIWebhookUseCase(ctrl)
			uc.EXPECT().Handle(gomock.Any(), []byte(payload), "t=1,v1=abc").DoAndReturn(
				func(_ context.Context, _ []byte, _ string) (usecase.WebhookResult, error) {
					return tt.result, tt.err
				})

			r := gin.New()
			r.POST("/api/stripe/webhook", NewWebhookHandler(uc).HandleStripeEvent)

			req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(payload))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}
