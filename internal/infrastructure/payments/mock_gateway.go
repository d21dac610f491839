package payments

import (
	"context"
	"invoicing/internal/usecase/interfaces"
	"net/url"

	"go.uber.org/zap"
)

const mockCheckoutBaseURL = "https://checkout.mock.local/pay/"

// MockGateway returns a deterministic link without calling any processor.
type MockGateway struct {
	logger *zap.Logger
}

var _ interfaces.IPaymentLinkGateway = (*MockGateway)(nil)

func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger.Named("payment.gateway.mock")}
}

func (g *MockGateway) CreatePaymentLink(_ context.Context, req interfaces.PaymentLinkRequest) (string, error) {
	link := mockCheckoutBaseURL + url.PathEscape(req.InvoiceID)
	g.logger.Debug("mock payment link", zap.String("invoice_id", req.InvoiceID), zap.Int64("amount_minor", req.AmountMinor))
	return link, nil
}
