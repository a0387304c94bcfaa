package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/state"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetTransactions(c *gin.Context) {
	from, to := dateRange(c)
	transactions, err := models.ListTransactions(c.Request.Context(), from, to)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var input models.NewTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	txn, err := models.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionAddTransaction, Payload: *txn})
	c.JSON(http.StatusCreated, txn)
}

// dateRange reads from_date/to_date query params; the default window is the
// current month.
func dateRange(c *gin.Context) (time.Time, time.Time) {
	from, to := utils.GetThisMonthRange()
	if v := c.Query("from_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = utils.EndOfDay(t)
		}
	}
	return from, to
}
