package payments

import (
	"context"
	"errors"
	"fmt"
	"invoicing/internal/usecase/interfaces"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"go.uber.org/zap"
)

var ErrMissingStripeSecretKey = errors.New("missing stripe secret key")

// StripeGateway mints Stripe payment links: one ad-hoc Price carrying the
// invoice total, then a PaymentLink for a single unit of it.
//
// A client is built per call from the key in the request, so a credential
// change in the settings applies to the next link without a restart.
type StripeGateway struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ interfaces.IPaymentLinkGateway = (*StripeGateway)(nil)

// NewStripeGateway targets the public API when apiURL is empty.
func NewStripeGateway(apiURL string, httpClient *http.Client, logger *zap.Logger) *StripeGateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &StripeGateway{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpClient,
		logger:     logger.Named("payment.gateway.stripe"),
	}
}

func (g *StripeGateway) CreatePaymentLink(ctx context.Context, req interfaces.PaymentLinkRequest) (string, error) {
	if strings.TrimSpace(req.SecretKey) == "" {
		return "", ErrMissingStripeSecretKey
	}
	sc := client.New(req.SecretKey, g.backends())

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(req.Currency),
		UnitAmount: stripe.Int64(req.AmountMinor),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(req.ProductName),
		},
	}
	priceParams.Context = ctx
	price, err := sc.Prices.New(priceParams)
	if err != nil {
		g.logger.Warn("price creation failed", zap.String("invoice_id", req.InvoiceID), zap.Error(err))
		return "", wrapStripeError(err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(1)},
		},
	}
	linkParams.Context = ctx
	for k, v := range req.Metadata {
		linkParams.AddMetadata(k, v)
	}
	link, err := sc.PaymentLinks.New(linkParams)
	if err != nil {
		g.logger.Warn("payment link creation failed", zap.String("invoice_id", req.InvoiceID), zap.Error(err))
		return "", wrapStripeError(err)
	}

	g.logger.Info("payment link created",
		zap.String("invoice_id", req.InvoiceID),
		zap.String("price_id", price.ID),
		zap.String("payment_link_id", link.ID),
	)
	return link.URL, nil
}

func (g *StripeGateway) backends() *stripe.Backends {
	cfg := &stripe.BackendConfig{
		HTTPClient:        g.httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if g.apiURL != "" {
		cfg.URL = stripe.String(g.apiURL)
	}
	return &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
}

func wrapStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.HTTPStatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", interfaces.ErrGatewayUnauthorized, se.Msg)
	}
	return err
}
