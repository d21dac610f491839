package payments

import (
	"context"
	"errors"
	"invoicing/internal/usecase/interfaces"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing mercado pago access token")

// MercadoPagoGateway mints checkout preferences. The access token is the
// payment secret key from the company settings.
type MercadoPagoGateway struct {
	logger *zap.Logger
}

var _ interfaces.IPaymentLinkGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(logger *zap.Logger) *MercadoPagoGateway {
	return &MercadoPagoGateway{logger: logger.Named("payment.gateway.mercadopago")}
}

func (g *MercadoPagoGateway) CreatePaymentLink(ctx context.Context, req interfaces.PaymentLinkRequest) (string, error) {
	if strings.TrimSpace(req.SecretKey) == "" {
		return "", ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(req.SecretKey)
	if err != nil {
		g.logger.Warn("failed creating sdk config", zap.Error(err))
		return "", err
	}

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	resp, err := preference.NewClient(cfg).Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			Title:      req.ProductName,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: strings.ToUpper(req.Currency),
		}},
		ExternalReference: req.InvoiceID,
		Metadata:          metadata,
	})
	if err != nil {
		g.logger.Warn("preference creation failed", zap.String("invoice_id", req.InvoiceID), zap.Error(err))
		return "", err
	}

	g.logger.Info("preference created", zap.String("invoice_id", req.InvoiceID), zap.String("preference_id", resp.ID))
	return resp.InitPoint, nil
}
