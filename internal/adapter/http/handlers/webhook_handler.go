package handlers

import (
	"errors"
	response "invoicing/internal/adapter/http/dto/response"
	"invoicing/internal/usecase"
	"invoicing/pkg"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "Stripe-Signature"
	// maxWebhookBody caps what is read from a processor delivery.
	maxWebhookBody = 1 << 20
)

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleStripeEvent godoc
// @Summary      Receive payment processor events
// @Description  Verifies the Stripe-Signature header and marks the job paid on checkout.session.completed.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  false  "Processor signature"
// @Success      200               {object}  response.WebhookResponse
// @Failure      400               {object}  pkg.HTTPError
// @Router       /stripe/webhook [post]
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid payload", http.StatusBadRequest))
		return
	}

	if _, err := h.usecase.Handle(c.Request.Context(), payload, c.GetHeader(signatureHeader)); err != nil {
		respondError(c, mapWebhookError(err))
		return
	}
	c.JSON(http.StatusOK, response.WebhookResponse{Received: true})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPaymentProviderNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment processor is not configured", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWebhookSignatureInvalid):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid signature", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWebhookPayload):
		return pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid payload", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
