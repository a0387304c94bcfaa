package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/state"
	"github.com/mmdatafocus/estates_backend/workflow"
)

// GetInstallmentPlans lists the latest version of every plan root.
func (h *Handler) GetInstallmentPlans(c *gin.Context) {
	plans, err := models.ListLatestInstallmentPlans(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlanHistory lists every version of one root, newest first.
func (h *Handler) GetPlanHistory(c *gin.Context) {
	rootId := c.Param("rootId")
	if rootId == "" {
		badRequest(c, errors.New("root id is required"))
		return
	}
	versions, err := models.ListPlanVersions(c.Request.Context(), rootId)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

// PreviewPlanPricing returns the computed totals for the form without
// saving. The form calls this on every change.
func (h *Handler) PreviewPlanPricing(c *gin.Context) {
	var input models.NewInstallmentPlan
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	pricing, err := models.PreviewPlanPricing(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

type schedulePreviewRequest struct {
	models.NewInstallmentPlan
	StartDate time.Time `json:"start_date"`
}

func (h *Handler) PreviewPlanSchedule(c *gin.Context) {
	var req schedulePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}

	schedule, err := models.PreviewPlanSchedule(c.Request.Context(), &req.NewInstallmentPlan, req.StartDate)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// SaveInstallmentPlan stores the form as a draft. Editing an existing plan
// appends a new version instead of mutating it.
func (h *Handler) SaveInstallmentPlan(c *gin.Context) {
	var input models.NewInstallmentPlan
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := models.SaveInstallmentPlanDraft(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionAddInstallmentPlan, Payload: *plan})
	c.JSON(http.StatusCreated, plan)
}

type submitPlanRequest struct {
	models.NewInstallmentPlan
	ApproverId int `json:"approver_id"`
}

// SubmitPlan hands the plan to an approver. An unchanged resubmission moves
// the existing version to Pending Approval; a changed form produces a new
// version first.
func (h *Handler) SubmitPlan(c *gin.Context) {
	var req submitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := workflow.SubmitPlanForApproval(c.Request.Context(), &req.NewInstallmentPlan, req.ApproverId)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionUpdateInstallmentPlan, Payload: *plan})
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) ApprovePlan(c *gin.Context) {
	h.reviewPlan(c, workflow.ApprovePlan)
}

func (h *Handler) RejectPlan(c *gin.Context) {
	h.reviewPlan(c, workflow.RejectPlan)
}

func (h *Handler) reviewPlan(c *gin.Context, review func(ctx context.Context, planId int) (*models.InstallmentPlan, error)) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid plan id"))
		return
	}

	plan, err := review(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionUpdateInstallmentPlan, Payload: *plan})
	c.JSON(http.StatusOK, plan)
}

// ConvertPlanToAgreement turns an approved plan into a sale agreement and
// locks the plan.
func (h *Handler) ConvertPlanToAgreement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid plan id"))
		return
	}

	agreement, err := workflow.ConvertPlanToAgreement(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	if plan, planErr := models.GetLatestPlanVersion(c.Request.Context(), agreement.PlanRootId); planErr == nil {
		h.Store.Dispatch(state.Action{Type: state.ActionUpdateInstallmentPlan, Payload: *plan})
	}
	c.JSON(http.StatusCreated, agreement)
}

func (h *Handler) DeleteInstallmentPlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid plan id"))
		return
	}

	plan, err := models.DeleteInstallmentPlan(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionDeleteInstallmentPlan, Payload: plan.ID})
	c.JSON(http.StatusOK, plan)
}
