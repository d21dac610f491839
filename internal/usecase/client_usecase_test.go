package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicing/internal/domain/entities"
	mock_interfaces "invoicing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestClientUseCase(t *testing.T) {
	setup := func(t *testing.T) (*ClientUseCase, *mock_interfaces.MockIClientRepository) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, zap.NewNop())
		uc.now = func() time.Time { return fixedNow }
		return uc, repo
	}

	t.Run("create requires a name", func(t *testing.T) {
		uc, _ := setup(t)
		if _, err := uc.Create(context.Background(), ClientInput{Name: "  "}); !errors.Is(err, ErrInvalidClientInput) {
			t.Fatalf("expected ErrInvalidClientInput, got %v", err)
		}
	})

	t.Run("create defaults the hourly rate", func(t *testing.T) {
		uc, repo := setup(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c entities.Client) (entities.Client, error) {
			if c.HourlyRate != entities.DefaultHourlyRate || c.Name != "Acme" {
				t.Fatalf("unexpected client: %+v", c)
			}
			c.ID = 1
			return c, nil
		})

		c, err := uc.Create(context.Background(), ClientInput{Name: " Acme "})
		if err != nil || c.ID != 1 {
			t.Fatalf("unexpected result %+v err=%v", c, err)
		}
	})

	t.Run("update missing client", func(t *testing.T) {
		uc, repo := setup(t)
		repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{}, nil)
		if _, err := uc.Update(context.Background(), 3, ClientInput{Name: "x"}); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("update keeps created_at", func(t *testing.T) {
		uc, repo := setup(t)
		created := fixedNow.AddDate(-1, 0, 0)
		repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{ID: 3, Name: "old", CreatedAt: created}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c entities.Client) (entities.Client, error) {
			return c, nil
		})

		c, err := uc.Update(context.Background(), 3, ClientInput{Name: "new", HourlyRate: f64(90)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID != 3 || c.Name != "new" || c.HourlyRate != 90 || !c.CreatedAt.Equal(created) || !c.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("unexpected client: %+v", c)
		}
	})

	t.Run("get invalid id", func(t *testing.T) {
		uc, _ := setup(t)
		if _, err := uc.GetByID(context.Background(), 0); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})
}

func TestSettingsUseCase_Update(t *testing.T) {
	setup := func(t *testing.T) (*SettingsUseCase, *mock_interfaces.MockISettingsRepository) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)
		uc := NewSettingsUseCase(repo, zap.NewNop())
		uc.now = func() time.Time { return fixedNow }
		return uc, repo
	}

	t.Run("omitted secrets are kept", func(t *testing.T) {
		uc, repo := setup(t)
		stored := signedSettings()
		repo.EXPECT().Get(gomock.Any()).Return(stored, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
			return s, nil
		})

		s, err := uc.Update(context.Background(), SettingsInput{Phone: str("555-0100")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.PaymentSecretKey != stored.PaymentSecretKey || s.WebhookSigningSecret != stored.WebhookSigningSecret || s.Phone != "555-0100" {
			t.Fatalf("unexpected settings: %+v", s)
		}
	})

	t.Run("explicit empty secret clears it", func(t *testing.T) {
		uc, repo := setup(t)
		repo.EXPECT().Get(gomock.Any()).Return(signedSettings(), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
			return s, nil
		})

		s, err := uc.Update(context.Background(), SettingsInput{WebhookSigningSecret: str("")})
		if err != nil || s.HasWebhookSecret() {
			t.Fatalf("expected webhook secret cleared, got %+v err=%v", s, err)
		}
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		uc, _ := setup(t)
		if _, err := uc.Update(context.Background(), SettingsInput{DefaultHourlyRate: f64(-1)}); !errors.Is(err, ErrInvalidSettingsInput) {
			t.Fatalf("expected ErrInvalidSettingsInput, got %v", err)
		}
	})
}
