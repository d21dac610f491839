package handlers

import (
	"errors"
	response "invoicing/internal/adapter/http/dto/response"
	"invoicing/internal/usecase"
	"invoicing/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves the rendered document and on-demand payment links.
type InvoiceHandler struct {
	documents usecase.IInvoiceDocumentUseCase
	links     usecase.IPaymentLinkUseCase
}

func NewInvoiceHandler(documents usecase.IInvoiceDocumentUseCase, links usecase.IPaymentLinkUseCase) *InvoiceHandler {
	return &InvoiceHandler{documents: documents, links: links}
}

// DownloadPDF godoc
// @Summary      Download the invoice PDF
// @Description  Assigns an invoice number first when the job has none. Unpaid invoices carry a payment link and QR code when a processor is configured.
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  int  true  "Job ID"
// @Success      200  {file}    file
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /jobs/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := h.documents.Render(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// CreatePaymentLink godoc
// @Summary      Create a payment link
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.PaymentLinkResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /jobs/{id}/payment-link [post]
func (h *InvoiceHandler) CreatePaymentLink(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	link, err := h.links.CreateForJob(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentLink(link))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID):
		return errInvalidID
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentProviderNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment processor is not configured. Add the secret key in settings.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentProviderUnauthorized):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAUTHORIZED", "Invalid payment processor key. Check it in settings.", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentProviderFailure):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment processor request failed", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrRenderFailed):
		return pkg.NewDomainError("RENDER_FAILED", "Could not render the invoice", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
