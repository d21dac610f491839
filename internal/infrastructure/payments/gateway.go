package payments

import (
	"fmt"
	appconfig "invoicing/internal/config"
	"invoicing/internal/usecase/interfaces"
	"net/http"

	"go.uber.org/zap"
)

// NewPaymentLinkGateway picks the processor named in cfg. The mock switch
// wins over the provider.
func NewPaymentLinkGateway(cfg appconfig.PaymentsConfig, logger *zap.Logger) (interfaces.IPaymentLinkGateway, error) {
	if cfg.MockEnabled() {
		logger.Info("payment gateway mock mode enabled")
		return NewMockGateway(logger), nil
	}
	switch cfg.Provider {
	case appconfig.ProviderStripe, "":
		return NewStripeGateway(cfg.StripeAPIURL, &http.Client{Timeout: cfg.Timeout}, logger), nil
	case appconfig.ProviderMercadoPago:
		logger.Warn("mercadopago links are not reconciled; payments made through them must be marked paid manually")
		return NewMercadoPagoGateway(logger), nil
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
}
