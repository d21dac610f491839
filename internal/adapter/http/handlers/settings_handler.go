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

var errInvalidSettingsPayload = pkg.NewDomainErrorSimple("INVALID_SETTINGS_INPUT", "Invalid settings payload", http.StatusBadRequest)

type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

// GetSettings godoc
// @Summary      Read company settings
// @Description  Secrets come back masked.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.SettingsResponse
// @Router       /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		respondError(c, mapSettingsError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSettings(s))
}

// UpdateSettings godoc
// @Summary      Update company settings
// @Description  Omitted secrets are kept; an empty string clears one.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settings  body      request.SettingsRequest  true  "Fields to change"
// @Success      200       {object}  response.SettingsResponse
// @Failure      400       {object}  pkg.HTTPError
// @Router       /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var payload request.SettingsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidSettingsPayload)
		return
	}
	s, err := h.usecase.Update(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapSettingsError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSettings(s))
}

func mapSettingsError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrInvalidSettingsInput) {
		return errInvalidSettingsPayload
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
