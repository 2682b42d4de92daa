package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(
	service service.SettingsService,
	log *logger.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get system settings
// @Description Get the current system settings
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	resp, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary Update system settings
// @Description Replace the system settings, clamping out-of-range values
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}
