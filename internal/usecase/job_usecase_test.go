package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	mock_interfaces "invoicing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func i64(v int64) *int64 { return &v }

// runMutation emulates the repository: it applies mutate to a copy of stored
// and assigns next when requested and missing.
func runMutation(stored entities.Job, next int64) func(context.Context, int64, bool, interfaces.JobMutation) (entities.Job, error) {
	return func(_ context.Context, _ int64, assign bool, mutate interfaces.JobMutation) (entities.Job, error) {
		job := stored
		if assign && !job.HasInvoiceNumber() {
			job.InvoiceNumber = i64(next)
		}
		if mutate != nil {
			if _, err := mutate(&job); err != nil {
				return entities.Job{}, err
			}
		}
		return job, nil
	}
}

func newJobUseCase(t *testing.T) (*JobUseCase, *mock_interfaces.MockIJobRepository, *mock_interfaces.MockIClientRepository, *mock_interfaces.MockISettingsRepository) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIJobRepository(ctrl)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	settings := mock_interfaces.NewMockISettingsRepository(ctrl)
	uc := NewJobUseCase(repo, clients, settings, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, repo, clients, settings
}

func TestJobUseCase_Create(t *testing.T) {
	t.Run("invalid client id", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		_, err := uc.Create(context.Background(), JobInput{})
		if !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("negative hours", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		_, err := uc.Create(context.Background(), JobInput{ClientID: 1, Description: str("audit"), Hours: f64(-1)})
		if !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("unknown work status", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		_, err := uc.Create(context.Background(), JobInput{ClientID: 1, Description: str("audit"), Status: str("archived")})
		if !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("rejected input never reaches the store", func(t *testing.T) {
		cases := []struct {
			name string
			in   JobInput
		}{
			{name: "missing description", in: JobInput{ClientID: 1, Hours: f64(1)}},
			{name: "blank description", in: JobInput{ClientID: 1, Description: str("   ")}},
			{name: "infinite hours", in: JobInput{ClientID: 1, Description: str("audit"), Hours: f64(math.Inf(1))}},
			{name: "nan rate", in: JobInput{ClientID: 1, Description: str("audit"), HourlyRate: f64(math.NaN())}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc, _, _, _ := newJobUseCase(t)
				if _, err := uc.Create(context.Background(), tc.in); !errors.Is(err, ErrInvalidJobInput) {
					t.Fatalf("expected ErrInvalidJobInput, got %v", err)
				}
			})
		}
	})

	t.Run("total overflow", func(t *testing.T) {
		uc, _, clients, _ := newJobUseCase(t)
		clients.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.Client{ID: 1, HourlyRate: 140}, nil)

		_, err := uc.Create(context.Background(), JobInput{ClientID: 1, Description: str("audit"), Hours: f64(1e200), HourlyRate: f64(1e200)})
		if !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("client not found", func(t *testing.T) {
		uc, _, clients, _ := newJobUseCase(t)
		clients.EXPECT().GetByID(gomock.Any(), int64(9)).Return(entities.Client{}, nil)

		_, err := uc.Create(context.Background(), JobInput{ClientID: 9, Description: str("audit")})
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("computes total and asks for a number", func(t *testing.T) {
		uc, repo, clients, _ := newJobUseCase(t)
		clients.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.Client{ID: 1, Name: "Acme", HourlyRate: 140}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), true).DoAndReturn(func(_ context.Context, j entities.Job, _ bool) (entities.Job, error) {
			if j.Total != 200 || j.HourlyRate != 100 || j.Hours != 2 {
				t.Fatalf("unexpected job fields: %+v", j)
			}
			if j.InvoiceStatus != entities.InvoiceStatusDraft || j.Status != entities.WorkStatusDraft {
				t.Fatalf("expected draft job, got %+v", j)
			}
			if j.SentDate != nil || j.PaidDate != nil {
				t.Fatalf("new job must not carry dates: %+v", j)
			}
			j.ID = 5
			j.InvoiceNumber = i64(1)
			return j, nil
		})

		job, err := uc.Create(context.Background(), JobInput{ClientID: 1, Hours: f64(2), HourlyRate: f64(100), Description: str("  audit ")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.ID != 5 || job.InvoiceIdentifier() != "INV-0001" || job.Description != "audit" {
			t.Fatalf("unexpected job: %+v", job)
		}
		if !job.JobDate.Equal(entities.DateOf(fixedNow)) {
			t.Fatalf("expected job date defaulted to today, got %v", job.JobDate)
		}
	})

	t.Run("rate falls back to client then settings", func(t *testing.T) {
		uc, repo, clients, settings := newJobUseCase(t)
		clients.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.Client{ID: 1, Name: "Acme"}, nil)
		settings.EXPECT().Get(gomock.Any()).Return(entities.CompanySettings{DefaultHourlyRate: 150}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), true).DoAndReturn(func(_ context.Context, j entities.Job, _ bool) (entities.Job, error) {
			j.ID = 1
			return j, nil
		})

		job, err := uc.Create(context.Background(), JobInput{ClientID: 1, Description: str("audit"), Hours: f64(1)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.HourlyRate != 150 || job.Total != 150 {
			t.Fatalf("expected settings rate, got %+v", job)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		uc, repo, clients, _ := newJobUseCase(t)
		clients.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.Client{ID: 1, HourlyRate: 140}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), true).Return(entities.Job{}, errors.New("db"))

		_, err := uc.Create(context.Background(), JobInput{ClientID: 1, Description: str("audit")})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestJobUseCase_Update(t *testing.T) {
	t.Run("recomputes total and keeps omitted fields", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		stored := entities.Job{ID: 3, ClientID: 1, Description: "old", Hours: 1, HourlyRate: 100, Total: 100, Notes: "keep"}
		repo.EXPECT().Update(gomock.Any(), int64(3), false, gomock.Any()).DoAndReturn(runMutation(stored, 0))

		job, err := uc.Update(context.Background(), 3, JobInput{Hours: f64(3.5)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.Total != 350 || job.Description != "old" || job.Notes != "keep" {
			t.Fatalf("unexpected job: %+v", job)
		}
		if !job.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("expected updated_at refreshed, got %v", job.UpdatedAt)
		}
	})

	t.Run("total overflow keeps the stored job", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		stored := entities.Job{ID: 3, ClientID: 1, Description: "old", Hours: 1, HourlyRate: 1e200, Total: 1e200}
		repo.EXPECT().Update(gomock.Any(), int64(3), false, gomock.Any()).DoAndReturn(runMutation(stored, 0))

		_, err := uc.Update(context.Background(), 3, JobInput{Hours: f64(1e200)})
		if !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("blank description", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		if _, err := uc.Update(context.Background(), 3, JobInput{Description: str("")}); !errors.Is(err, ErrInvalidJobInput) {
			t.Fatalf("expected ErrInvalidJobInput, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().Update(gomock.Any(), int64(3), false, gomock.Any()).Return(entities.Job{}, nil)

		_, err := uc.Update(context.Background(), 3, JobInput{})
		if !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		_, err := uc.Update(context.Background(), 0, JobInput{})
		if !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
	})
}

func TestJobUseCase_SetInvoiceStatus(t *testing.T) {
	t.Run("rejects unknown status without touching the store", func(t *testing.T) {
		uc, _, _, _ := newJobUseCase(t)
		_, err := uc.SetInvoiceStatus(context.Background(), 1, "archived")
		if !errors.Is(err, ErrInvalidInvoiceStatus) {
			t.Fatalf("expected ErrInvalidInvoiceStatus, got %v", err)
		}
	})

	t.Run("sent assigns a missing number and sets sent date", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		stored := entities.Job{ID: 4, InvoiceStatus: entities.InvoiceStatusDraft}
		repo.EXPECT().Update(gomock.Any(), int64(4), true, gomock.Any()).DoAndReturn(runMutation(stored, 7))

		job, err := uc.SetInvoiceStatus(context.Background(), 4, "sent")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.InvoiceIdentifier() != "INV-0007" || job.InvoiceStatus != entities.InvoiceStatusSent {
			t.Fatalf("unexpected job: %+v", job)
		}
		if job.SentDate == nil || !job.SentDate.Equal(entities.DateOf(fixedNow)) {
			t.Fatalf("expected sent date today, got %v", job.SentDate)
		}
	})

	t.Run("draft does not request a number", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		sent := entities.DateOf(fixedNow)
		stored := entities.Job{ID: 4, InvoiceNumber: i64(2), InvoiceStatus: entities.InvoiceStatusSent, SentDate: &sent}
		repo.EXPECT().Update(gomock.Any(), int64(4), false, gomock.Any()).DoAndReturn(runMutation(stored, 0))

		job, err := uc.SetInvoiceStatus(context.Background(), 4, "draft")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.SentDate != nil || job.PaidDate != nil || job.InvoiceStatus != entities.InvoiceStatusDraft {
			t.Fatalf("unexpected job: %+v", job)
		}
	})

	t.Run("manual paid to draft is allowed", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		paid := entities.DateOf(fixedNow)
		stored := entities.Job{ID: 4, InvoiceNumber: i64(2), InvoiceStatus: entities.InvoiceStatusPaid, PaidDate: &paid}
		repo.EXPECT().Update(gomock.Any(), int64(4), false, gomock.Any()).DoAndReturn(runMutation(stored, 0))

		job, err := uc.SetInvoiceStatus(context.Background(), 4, "draft")
		if err != nil || job.InvoiceStatus != entities.InvoiceStatusDraft || job.PaidDate != nil {
			t.Fatalf("unexpected result job=%+v err=%v", job, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().Update(gomock.Any(), int64(4), true, gomock.Any()).Return(entities.Job{}, nil)

		_, err := uc.SetInvoiceStatus(context.Background(), 4, "paid")
		if !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})
}

func TestJobUseCase_DeleteAndGet(t *testing.T) {
	t.Run("delete missing job", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().Delete(gomock.Any(), int64(8)).Return(false, nil)
		if err := uc.Delete(context.Background(), 8); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("delete ok", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().Delete(gomock.Any(), int64(8)).Return(true, nil)
		if err := uc.Delete(context.Background(), 8); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("get missing job", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), int64(8)).Return(entities.Job{}, nil)
		if _, err := uc.GetByID(context.Background(), 8); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("list by client", func(t *testing.T) {
		uc, repo, _, _ := newJobUseCase(t)
		repo.EXPECT().List(gomock.Any(), int64(2)).Return([]entities.Job{{ID: 1}, {ID: 2}}, nil)
		jobs, err := uc.List(context.Background(), 2)
		if err != nil || len(jobs) != 2 {
			t.Fatalf("unexpected result jobs=%v err=%v", jobs, err)
		}
	})
}

func TestJobUseCase_NextInvoiceNumber(t *testing.T) {
	uc, repo, _, _ := newJobUseCase(t)
	repo.EXPECT().NextInvoiceNumber(gomock.Any()).Return(int64(6), nil)

	if n, err := uc.NextInvoiceNumber(context.Background()); err != nil || n != 6 {
		t.Fatalf("expected 6, got %d err=%v", n, err)
	}
}
