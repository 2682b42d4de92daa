package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type LevelConfigHandler struct {
	service service.CommissionConfigService
	log     *logger.Logger
}

func NewLevelConfigHandler(
	service service.CommissionConfigService,
	log *logger.Logger,
) *LevelConfigHandler {
	return &LevelConfigHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a level config
// @Description Create the commission tier-rate table for a distributor level
// @Tags LevelConfigs
// @Accept json
// @Produce json
// @Param config body dto.CreateLevelConfigRequest true "Level config"
// @Success 201 {object} dto.LevelConfigResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /level-configs [post]
func (h *LevelConfigHandler) CreateLevelConfig(c *gin.Context) {
	var req dto.CreateLevelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	cfg, err := h.service.CreateLevelConfig(c.Request.Context(), req.ToLevelConfig(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, &dto.LevelConfigResponse{Config: cfg})
}

// @Summary List level configs
// @Description List commission tier-rate tables for every distributor level
// @Tags LevelConfigs
// @Produce json
// @Success 200 {object} dto.ListLevelConfigsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /level-configs [get]
func (h *LevelConfigHandler) ListLevelConfigs(c *gin.Context) {
	resp, err := h.service.ListLevelConfigs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}
