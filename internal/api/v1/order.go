package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type OrderHandler struct {
	service    service.OrderService
	commission service.CommissionService
	log        *logger.Logger
}

func NewOrderHandler(
	service service.OrderService,
	commission service.CommissionService,
	log *logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		service:    service,
		commission: commission,
		log:        log,
	}
}

// @Summary Create an order
// @Description Price and persist an order, then distribute referral commissions
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.CreateOrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, resp)
}

// @Summary Get an order
// @Description Get an order by id
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary List commissions for an order
// @Description List the commission records created when the order settled
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.ListCommissionRecordsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /orders/{id}/commissions [get]
func (h *OrderHandler) ListOrderCommissions(c *gin.Context) {
	id := c.Param("id")

	records, err := h.commission.ListByOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, dto.NewListCommissionRecordsResponse(records))
}
