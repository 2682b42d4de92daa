package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type PricingHandler struct {
	service service.PricingService
	log     *logger.Logger
}

func NewPricingHandler(
	service service.PricingService,
	log *logger.Logger,
) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Compute a price quote
// @Description Compute the final price for a prospective order after stacking promotions, coupons and points
// @Tags Pricing
// @Accept json
// @Produce json
// @Param quote body dto.PricingRequest true "Quote"
// @Success 200 {object} dto.PricingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req dto.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Quote(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}
