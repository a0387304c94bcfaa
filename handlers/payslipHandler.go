package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/state"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetPayslips(c *gin.Context) {
	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	payslips, err := utils.FetchAllModels[models.Payslip](c.Request.Context(), orgId, "Items", "Allocations")
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payslips)
}

func (h *Handler) CreatePayslip(c *gin.Context) {
	var input models.NewPayslip
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	payslip, err := models.CreatePayslip(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionAddPayslip, Payload: *payslip})
	c.JSON(http.StatusCreated, payslip)
}

// MarkPayslipPaid settles the payslip and writes salary transactions, one
// per project allocation or a single unallocated entry.
func (h *Handler) MarkPayslipPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid payslip id"))
		return
	}

	payslip, err := models.MarkPayslipPaid(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionUpdatePayslip, Payload: *payslip})
	c.JSON(http.StatusOK, payslip)
}

func (h *Handler) DeletePayslip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid payslip id"))
		return
	}

	payslip, err := models.DeletePayslip(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionDeletePayslip, Payload: payslip.ID})
	c.JSON(http.StatusOK, payslip)
}
