package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type CouponHandler struct {
	service service.CouponService
	log     *logger.Logger
}

func NewCouponHandler(
	service service.CouponService,
	log *logger.Logger,
) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a coupon
// @Description Create a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, resp)
}

// @Summary Get a coupon
// @Description Get a coupon by id
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary List coupons
// @Description List all coupons
// @Tags Coupons
// @Produce json
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	resp, err := h.service.ListCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}
