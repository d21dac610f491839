package handlers

import (
	"errors"
	request "invoicing/internal/adapter/http/dto/request"
	response "invoicing/internal/adapter/http/dto/response"
	"invoicing/internal/usecase"
	"invoicing/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errInvalidClientPayload = pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// ListClients godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}  response.ClientResponse
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      request.ClientRequest  true  "Client"
// @Success      201     {object}  response.ClientResponse
// @Failure      400     {object}  pkg.HTTPError
// @Router       /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidClientPayload)
		return
	}
	client, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

// GetClient godoc
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.ClientResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

// UpdateClient godoc
// @Summary      Replace a client's details
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      int                    true  "Client ID"
// @Param        client  body      request.ClientRequest  true  "Client"
// @Success      200     {object}  response.ClientResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Router       /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidClientPayload)
		return
	}
	client, err := h.usecase.Update(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID):
		return errInvalidID
	case errors.Is(err, usecase.ErrInvalidClientInput):
		return errInvalidClientPayload
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
