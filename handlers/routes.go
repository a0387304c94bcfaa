package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/middlewares"
)

// RegisterRoutes wires the API surface. Everything under /api requires a
// valid token.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)

	api := r.Group("/api", middlewares.RequireAuth())
	{
		api.GET("/users", h.GetUsers)
		api.POST("/users", h.CreateUser)

		api.GET("/contacts", h.GetContacts)
		api.POST("/contacts", h.CreateContact)
		api.PUT("/contacts/:id", h.UpdateContact)

		api.GET("/projects", h.GetProjects)
		api.POST("/projects", h.CreateProject)
		api.GET("/units", h.GetUnits)
		api.POST("/units", h.CreateUnit)

		api.GET("/plan-amenities", h.GetPlanAmenities)
		api.POST("/plan-amenities", h.CreatePlanAmenity)
		api.PUT("/plan-amenities/:id", h.UpdatePlanAmenity)
		api.DELETE("/plan-amenities/:id", h.DeletePlanAmenity)

		api.GET("/installment-plans", h.GetInstallmentPlans)
		api.GET("/installment-plans/history/:rootId", h.GetPlanHistory)
		api.POST("/installment-plans/pricing", h.PreviewPlanPricing)
		api.POST("/installment-plans/schedule", h.PreviewPlanSchedule)
		api.POST("/installment-plans", h.SaveInstallmentPlan)
		api.POST("/installment-plans/submit", h.SubmitPlan)
		api.POST("/installment-plans/:id/approve", h.ApprovePlan)
		api.POST("/installment-plans/:id/reject", h.RejectPlan)
		api.POST("/installment-plans/:id/convert", h.ConvertPlanToAgreement)
		api.DELETE("/installment-plans/:id", h.DeleteInstallmentPlan)

		api.GET("/bills", h.GetBills)
		api.POST("/bills", h.CreateBill)
		api.POST("/bills/:id/payments", h.RecordBillPayment)

		api.GET("/payslips", h.GetPayslips)
		api.POST("/payslips", h.CreatePayslip)
		api.POST("/payslips/:id/pay", h.MarkPayslipPaid)
		api.DELETE("/payslips/:id", h.DeletePayslip)

		api.GET("/transactions", h.GetTransactions)
		api.POST("/transactions", h.CreateTransaction)

		api.GET("/reports/cash-flow", h.GetCashFlowReport)
		api.GET("/reports/owner-ledger", h.GetOwnerLedgerReport)
		api.GET("/reports/owner-ledger/export", h.ExportOwnerLedgerExcel)
		api.GET("/reports/broker-commission", h.GetBrokerCommissionReport)
		api.GET("/reports/broker-commission/export", h.ExportBrokerCommissionExcel)
		api.GET("/reports/unit-inventory", h.GetUnitInventoryReport)
	}
}
