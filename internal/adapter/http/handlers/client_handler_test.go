package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"invoicing/internal/adapter/http/handlers/mocks"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestClientHandler(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mocks.MockIClientUseCase) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		h := NewClientHandler(uc)
		r := gin.New()
		r.GET("/api/clients", h.ListClients)
		r.POST("/api/clients", h.CreateClient)
		r.GET("/api/clients/:id", h.GetClient)
		r.PUT("/api/clients/:id", h.UpdateClient)
		return r, uc
	}

	t.Run("create requires a name", func(t *testing.T) {
		r, _ := setup(t)
		if w := serve(r, http.MethodPost, "/api/clients", `{"email":"a@b.c"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Create(gomock.Any(), usecase.ClientInput{Name: "Acme"}).Return(entities.Client{ID: 1, Name: "Acme", HourlyRate: 140}, nil)
		w := serve(r, http.MethodPost, "/api/clients", `{"name":"Acme"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().GetByID(gomock.Any(), int64(4)).Return(entities.Client{}, usecase.ErrClientNotFound)
		if w := serve(r, http.MethodGet, "/api/clients/4", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Update(gomock.Any(), int64(4), gomock.Any()).Return(entities.Client{ID: 4, Name: "New"}, nil)
		if w := serve(r, http.MethodPut, "/api/clients/4", `{"name":"New"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().List(gomock.Any()).Return([]entities.Client{{ID: 1, Name: "Acme"}}, nil)
		w := serve(r, http.MethodGet, "/api/clients", "")
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}

func TestSettingsHandler(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mocks.MockISettingsUseCase) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockISettingsUseCase(ctrl)
		h := NewSettingsHandler(uc)
		r := gin.New()
		r.GET("/api/settings", h.GetSettings)
		r.PUT("/api/settings", h.UpdateSettings)
		return r, uc
	}

	t.Run("secrets are masked", func(t *testing.T) {
		r, uc := setup(t)
		s := entities.DefaultCompanySettings()
		s.PaymentSecretKey = "sk_test_abcdefgh1234"
		uc.EXPECT().Get(gomock.Any()).Return(s, nil)

		w := serve(r, http.MethodGet, "/api/settings", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["stripe_api_key"] == s.PaymentSecretKey || body["payment_configured"] != true || body["webhook_configured"] != false {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("update passes pointers through", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.SettingsInput) (entities.CompanySettings, error) {
			if in.PaymentSecretKey == nil || *in.PaymentSecretKey != "" || in.CompanyName != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entities.DefaultCompanySettings(), nil
		})
		if w := serve(r, http.MethodPut, "/api/settings", `{"stripe_api_key":""}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid rate", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.CompanySettings{}, usecase.ErrInvalidSettingsInput)
		if w := serve(r, http.MethodPut, "/api/settings", `{"default_hourly_rate":-1}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
