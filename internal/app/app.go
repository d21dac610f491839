package app

import (
	"context"
	"errors"
	"fmt"
	"invoicing/internal/adapter/http/handlers"
	"invoicing/internal/adapter/http/routes"
	"invoicing/internal/config"
	"invoicing/internal/infrastructure/payments"
	"invoicing/internal/infrastructure/pdf"
	"invoicing/internal/usecase"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App is the wired service: store, use cases and the HTTP router.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *Store

	Jobs      usecase.IJobUseCase
	Documents usecase.IInvoiceDocumentUseCase
	Router    *gin.Engine
}

// New opens and migrates the store, then wires every component.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	a, err := Wire(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// Wire builds the use cases and router over an already open store.
func Wire(cfg *config.Config, store *Store, logger *zap.Logger) (*App, error) {
	gateway, err := payments.NewPaymentLinkGateway(cfg.Payments, logger)
	if err != nil {
		return nil, err
	}

	broker := usecase.NewPaymentLinkBroker(gateway, cfg.Payments.Currency, cfg.Payments.Timeout, logger)
	allocator := usecase.NewInvoiceNumberAllocator(store.Jobs, logger)

	jobUC := usecase.NewJobUseCase(store.Jobs, store.Clients, store.Settings, logger)
	clientUC := usecase.NewClientUseCase(store.Clients, logger)
	settingsUC := usecase.NewSettingsUseCase(store.Settings, logger)
	documentUC := usecase.NewInvoiceDocumentUseCase(
		store.Jobs, store.Clients, store.Settings,
		allocator, broker, pdf.NewRenderer(logger, pdf.WithCompression(cfg.Documents.Compress)), logger,
	)
	linkUC := usecase.NewPaymentLinkUseCase(store.Jobs, store.Clients, store.Settings, broker, logger)
	webhookUC := usecase.NewWebhookUseCase(store.Jobs, store.Settings, payments.NewStripeWebhookVerifier(), logger)

	router := routes.NewRouter(cfg.Server, routes.Handlers{
		Jobs:     handlers.NewJobHandler(jobUC),
		Invoices: handlers.NewInvoiceHandler(documentUC, linkUC),
		Clients:  handlers.NewClientHandler(clientUC),
		Settings: handlers.NewSettingsHandler(settingsUC),
		Webhooks: handlers.NewWebhookHandler(webhookUC),
	}, logger)

	return &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		Jobs:      jobUC,
		Documents: documentUC,
		Router:    router,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("storage", a.cfg.Storage.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() error {
	return a.store.Close()
}
