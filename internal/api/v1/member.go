package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/service"
)

type MemberHandler struct {
	service    service.MemberService
	orders     service.OrderService
	commission service.CommissionService
	log        *logger.Logger
}

func NewMemberHandler(
	service service.MemberService,
	orders service.OrderService,
	commission service.CommissionService,
	log *logger.Logger,
) *MemberHandler {
	return &MemberHandler{
		service:    service,
		orders:     orders,
		commission: commission,
		log:        log,
	}
}

// @Summary Create a member
// @Description Create a member
// @Tags Members
// @Accept json
// @Produce json
// @Param member body dto.CreateMemberRequest true "Member"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateMember(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, resp)
}

// @Summary Get a member
// @Description Get a member by id
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary List a member's orders
// @Description List orders placed by the member, newest first
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {array} dto.OrderResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /members/{id}/orders [get]
func (h *MemberHandler) ListMemberOrders(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.orders.ListOrdersByMember(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, resp)
}

// @Summary List a member's commissions
// @Description List commission records where the member is the beneficiary
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.ListCommissionRecordsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /members/{id}/commissions [get]
func (h *MemberHandler) ListMemberCommissions(c *gin.Context) {
	id := c.Param("id")

	records, err := h.commission.ListByBeneficiary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, dto.NewListCommissionRecordsResponse(records))
}
