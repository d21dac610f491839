package usecase

import (
	"context"
	"errors"
	"fmt"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrPaymentProviderNotConfigured = errors.New("payment provider not configured")
	ErrPaymentProviderUnauthorized  = errors.New("payment provider rejected the credential")
	ErrPaymentProviderFailure       = errors.New("payment provider failure")
	ErrInvoiceAlreadyPaid           = errors.New("invoice already paid")
)

const (
	DefaultPaymentCurrency = "usd"
	DefaultPaymentTimeout  = 10 * time.Second
)

// IPaymentLinkBroker mints single-use payment links for jobs.
type IPaymentLinkBroker interface {
	// CreateLink returns nil without calling the processor when no secret key
	// is configured or the job is already paid.
	CreateLink(ctx context.Context, job entities.Job, client entities.Client, settings entities.CompanySettings) (*entities.PaymentLink, error)
}

type PaymentLinkBroker struct {
	gateway  interfaces.IPaymentLinkGateway
	currency string
	timeout  time.Duration
	logger   *zap.Logger
}

var _ IPaymentLinkBroker = (*PaymentLinkBroker)(nil)

func NewPaymentLinkBroker(gateway interfaces.IPaymentLinkGateway, currency string, timeout time.Duration, logger *zap.Logger) *PaymentLinkBroker {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultPaymentCurrency
	}
	if timeout <= 0 {
		timeout = DefaultPaymentTimeout
	}
	return &PaymentLinkBroker{gateway: gateway, currency: currency, timeout: timeout, logger: logger.Named("payment.broker")}
}

func (b *PaymentLinkBroker) CreateLink(ctx context.Context, job entities.Job, client entities.Client, settings entities.CompanySettings) (*entities.PaymentLink, error) {
	if !settings.HasPaymentCredential() || job.InvoiceStatus == entities.InvoiceStatusPaid {
		return nil, nil
	}
	if b.gateway == nil {
		return nil, ErrPaymentProviderNotConfigured
	}

	invoiceID := job.InvoiceIdentifier()
	amount := decimal.NewFromFloat(job.Total)
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	req := interfaces.PaymentLinkRequest{
		SecretKey:   strings.TrimSpace(settings.PaymentSecretKey),
		AmountMinor: minor,
		Amount:      amount.Round(2).InexactFloat64(),
		Currency:    b.currency,
		ProductName: fmt.Sprintf("Invoice %s - Professional IT Services", invoiceID),
		InvoiceID:   invoiceID,
		JobID:       job.ID,
		Metadata: map[string]string{
			"job_id":         strconv.FormatInt(job.ID, 10),
			"invoice_number": invoiceID,
			"client_name":    client.Name,
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.logger.Debug("creating payment link", zap.Int64("job_id", job.ID), zap.String("invoice_id", invoiceID), zap.Int64("amount_minor", minor))
	url, err := b.gateway.CreatePaymentLink(callCtx, req)
	if err != nil {
		b.logger.Warn("payment link failed", zap.Int64("job_id", job.ID), zap.String("invoice_id", invoiceID), zap.Error(err))
		if errors.Is(err, interfaces.ErrGatewayUnauthorized) || isGatewayUnauthorized(err) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentProviderUnauthorized, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentProviderFailure, err)
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: empty payment url", ErrPaymentProviderFailure)
	}

	b.logger.Info("payment link created", zap.Int64("job_id", job.ID), zap.String("invoice_id", invoiceID))
	return &entities.PaymentLink{URL: url, JobID: job.ID, InvoiceID: invoiceID, Amount: job.Total}, nil
}

// isGatewayUnauthorized recognizes credential failures from processors that
// only report them in the error text.
func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") ||
		strings.Contains(msg, "\"status\":401") ||
		strings.Contains(msg, "invalid api key")
}
