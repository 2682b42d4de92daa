package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type PromotionHandler struct {
	service service.PromotionService
	log     *logger.Logger
}

func NewPromotionHandler(
	service service.PromotionService,
	log *logger.Logger,
) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a promotion
// @Description Create a promotion
// @Tags Promotions
// @Accept json
// @Produce json
// @Param promotion body dto.CreatePromotionRequest true "Promotion"
// @Success 201 {object} dto.PromotionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePromotion(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, resp)
}

// @Summary Get a promotion
// @Description Get a promotion by id
// @Tags Promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} dto.PromotionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetPromotion(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary List promotions
// @Description List all promotions
// @Tags Promotions
// @Produce json
// @Success 200 {object} dto.ListPromotionsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	resp, err := h.service.ListPromotions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}
