package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/models/reports"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetCashFlowReport(c *gin.Context) {
	from, to := dateRange(c)
	projectId, _ := strconv.Atoi(c.Query("project_id"))

	report, err := reports.GetCashFlowReportCached(c.Request.Context(), reports.CashFlowParams{
		FromDate:  from,
		ToDate:    to,
		ProjectId: projectId,
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ownerLedgerRows(c *gin.Context) ([]reports.OwnerLedgerRow, error) {
	from, to := dateRange(c)
	ownerId, _ := strconv.Atoi(c.Query("owner_id"))

	transactions, err := models.ListTransactions(c.Request.Context(), from, to)
	if err != nil {
		return nil, err
	}
	snap := h.Store.Snapshot()
	return reports.GetOwnerLedgerReport(transactions, snap.Projects, reports.OwnerLedgerParams{
		FromDate: from,
		ToDate:   to,
		OwnerId:  ownerId,
		GroupBy:  c.Query("group_by"),
		SortBy:   c.Query("sort_by"),
	}), nil
}

func (h *Handler) GetOwnerLedgerReport(c *gin.Context) {
	rows, err := h.ownerLedgerRows(c)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) ExportOwnerLedgerExcel(c *gin.Context) {
	rows, err := h.ownerLedgerRows(c)
	if err != nil {
		serverError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=owner-ledger.xlsx")
	if err := reports.WriteOwnerLedgerExcel(c.Writer, rows); err != nil {
		serverError(c, err)
	}
}

func (h *Handler) brokerCommissionRows(c *gin.Context) ([]reports.BrokerCommissionRow, error) {
	from, to := dateRange(c)
	brokerId, _ := strconv.Atoi(c.Query("broker_id"))

	agreements, err := models.ListAgreements(c.Request.Context())
	if err != nil {
		return nil, err
	}
	transactions, err := models.ListTransactions(c.Request.Context(), from, to)
	if err != nil {
		return nil, err
	}
	snap := h.Store.Snapshot()
	return reports.GetBrokerCommissionReport(agreements, transactions, snap.Contacts, snap.Units, reports.BrokerCommissionParams{
		FromDate: from,
		ToDate:   to,
		BrokerId: brokerId,
	}), nil
}

func (h *Handler) GetBrokerCommissionReport(c *gin.Context) {
	rows, err := h.brokerCommissionRows(c)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) ExportBrokerCommissionExcel(c *gin.Context) {
	rows, err := h.brokerCommissionRows(c)
	if err != nil {
		serverError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=broker-commission.xlsx")
	if err := reports.WriteBrokerCommissionExcel(c.Writer, rows); err != nil {
		serverError(c, err)
	}
}

// GetUnitInventoryReport reads units fresh from the DB because unit status
// flips as a side effect of billing and agreements, outside the dispatched
// actions.
func (h *Handler) GetUnitInventoryReport(c *gin.Context) {
	projectId, _ := strconv.Atoi(c.Query("project_id"))

	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	units, err := utils.FetchAllModels[models.Unit](c.Request.Context(), orgId)
	if err != nil {
		serverError(c, err)
		return
	}

	snap := h.Store.Snapshot()
	rows := reports.GetUnitInventoryReport(derefUnits(units), snap.Projects, reports.UnitInventoryParams{
		ProjectId: projectId,
		Status:    models.UnitStatus(c.Query("status")),
	})
	c.JSON(http.StatusOK, rows)
}

func derefUnits(in []*models.Unit) []models.Unit {
	out := make([]models.Unit, 0, len(in))
	for _, u := range in {
		if u != nil {
			out = append(out, *u)
		}
	}
	return out
}
