package handlers

import (
	"errors"
	request "invoicing/internal/adapter/http/dto/request"
	response "invoicing/internal/adapter/http/dto/response"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase"
	"invoicing/pkg"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidJobPayload    = pkg.NewDomainErrorSimple("INVALID_JOB_INPUT", "Invalid job payload", http.StatusBadRequest)
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_STATUS", "invoice_status must be one of draft, sent, paid", http.StatusBadRequest)
)

// JobHandler exposes job bookkeeping and the invoice status machine.
type JobHandler struct {
	usecase usecase.IJobUseCase
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc}
}

// ListJobs godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        client_id  query  int  false  "Only jobs of this client"
// @Success      200  {array}   response.JobResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var clientID int64
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, errInvalidID)
			return
		}
		clientID = id
	}

	jobs, err := h.usecase.List(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

// CreateJob godoc
// @Summary      Create a job
// @Description  Creates a job and assigns it the next invoice number.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      request.JobRequest  true  "Job"
// @Success      201  {object}  response.JobResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	in, ok := bindJob(c)
	if !ok {
		return
	}
	job, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromJob(job))
}

// GetJob godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.JobResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	job, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// UpdateJob godoc
// @Summary      Edit a job
// @Description  Omitted fields keep their value; the total is recomputed.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int                 true  "Job ID"
// @Param        job  body      request.JobRequest  true  "Fields to change"
// @Success      200  {object}  response.JobResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindJob(c)
	if !ok {
		return
	}
	job, err := h.usecase.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// DeleteJob godoc
// @Summary      Delete a job
// @Tags         jobs
// @Param        id   path  int  true  "Job ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SetInvoiceStatus godoc
// @Summary      Change the invoice status
// @Description  Moves the invoice between draft, sent and paid, keeping the sent and paid dates consistent.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path      int                           true  "Job ID"
// @Param        status  body      request.InvoiceStatusRequest  true  "Target status"
// @Success      200  {object}  response.InvoiceStatusResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /jobs/{id}/status [put]
func (h *JobHandler) SetInvoiceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.InvoiceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidStatusPayload)
		return
	}
	job, err := h.usecase.SetInvoiceStatus(c.Request.Context(), id, payload.InvoiceStatus)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoiceStatus(job))
}

// NextInvoiceNumber godoc
// @Summary      Preview the next invoice number
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  response.NextInvoiceNumberResponse
// @Router       /invoices/next-number [get]
func (h *JobHandler) NextInvoiceNumber(c *gin.Context) {
	n, err := h.usecase.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNextInvoiceNumber(n))
}

func bindJob(c *gin.Context) (usecase.JobInput, bool) {
	var payload request.JobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidJobPayload)
		return usecase.JobInput{}, false
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, pkg.NewDomainErrorSimple("INVALID_JOB_INPUT", err.Error(), http.StatusBadRequest))
		return usecase.JobInput{}, false
	}
	return in, true
}

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID):
		return errInvalidID
	case errors.Is(err, usecase.ErrInvalidJobInput), errors.Is(err, entities.ErrInvalidWorkStatus):
		return errInvalidJobPayload
	case errors.Is(err, usecase.ErrInvalidInvoiceStatus):
		return errInvalidStatusPayload
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
