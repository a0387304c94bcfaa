package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/state"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetBills(c *gin.Context) {
	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	bills, err := utils.FetchAllModels[models.CustomerBill](c.Request.Context(), orgId, "Details")
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// CreateBill stores the bill and, when confirmed, decrements unit stock per
// line. Line failures are logged and skipped, they do not fail the bill.
func (h *Handler) CreateBill(c *gin.Context) {
	var input models.NewCustomerBill
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	bill, err := models.CreateCustomerBill(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

type billPaymentRequest struct {
	Amount string    `json:"amount"`
	Date   time.Time `json:"date"`
}

func (h *Handler) RecordBillPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid bill id"))
		return
	}

	var req billPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	txn, err := models.RecordBillPayment(c.Request.Context(), id, req.Amount, req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionAddTransaction, Payload: *txn})
	c.JSON(http.StatusCreated, txn)
}
