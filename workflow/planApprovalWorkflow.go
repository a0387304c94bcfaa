package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/utils"
)

// Plan lifecycle:
//
//	Draft -> Pending Approval -> Approved | Rejected
//	Rejected -> Pending Approval (resubmission)
//	Approved -> Locked (convert-to-agreement only)
//
// Pending Approval, Approved and Locked versions are read-only.
var planTransitions = map[models.PlanStatus][]models.PlanStatus{
	models.PlanStatusDraft:           {models.PlanStatusPendingApproval},
	models.PlanStatusPendingApproval: {models.PlanStatusApproved, models.PlanStatusRejected},
	models.PlanStatusApproved:        {models.PlanStatusLocked},
	models.PlanStatusRejected:        {models.PlanStatusPendingApproval},
	models.PlanStatusLocked:          {},
}

// CanTransition reports whether a status change is part of the lifecycle.
func CanTransition(from, to models.PlanStatus) bool {
	for _, allowed := range planTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SubmitPlanForApproval moves the plan form into Pending Approval.
//
// When the form is unchanged from the last saved version (structural
// equality over normalized snapshots) the saved record transitions in place
// to avoid spurious version churn; any real change appends a new version
// created directly in Pending Approval. Either way the approval request
// audit fields are stamped.
func SubmitPlanForApproval(ctx context.Context, input *models.NewInstallmentPlan, approverId int) (*models.InstallmentPlan, error) {
	logger := config.GetLogger()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	if approverId <= 0 {
		return nil, errors.New("an approver is required")
	}
	if err := utils.ValidateResourceId[models.User](ctx, orgId, approverId); err != nil {
		return nil, errors.New("approver not found")
	}

	now := time.Now()

	// Brand-new plan: save it straight into Pending Approval as version 1.
	if input.PlanId == 0 {
		draft, err := models.SaveInstallmentPlanDraft(ctx, input)
		if err != nil {
			return nil, err
		}
		return transitionPlan(ctx, draft, models.PlanStatusPendingApproval, func(p *models.InstallmentPlan) {
			p.ApprovalRequestedById = userId
			p.ApprovalRequestedToId = approverId
			p.ApprovalRequestedAt = &now
		})
	}

	saved, err := utils.FetchModel[models.InstallmentPlan](ctx, orgId, input.PlanId, "Discounts", "SelectedAmenities")
	if err != nil {
		return nil, errors.New("plan not found")
	}
	latest, err := models.GetLatestPlanVersion(ctx, saved.RootId)
	if err != nil {
		return nil, err
	}
	if latest.ID != saved.ID {
		return nil, errors.New("this plan has a newer version; reload before submitting")
	}
	if !CanTransition(saved.Status, models.PlanStatusPendingApproval) {
		return nil, errors.New("plan cannot be submitted in its current status")
	}

	// Build a throwaway version from the submitted form to compare against
	// the saved record. It is never persisted.
	candidate, err := buildCandidate(ctx, input, saved)
	if err != nil {
		return nil, err
	}

	if models.PlanFieldsEqual(candidate, saved) {
		// Unchanged: transition the saved record in place.
		return transitionPlan(ctx, saved, models.PlanStatusPendingApproval, func(p *models.InstallmentPlan) {
			p.ApprovalRequestedById = userId
			p.ApprovalRequestedToId = approverId
			p.ApprovalRequestedAt = &now
		})
	}

	// Changed: append a new version directly in Pending Approval.
	draft, err := models.SaveInstallmentPlanDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	plan, err := transitionPlan(ctx, draft, models.PlanStatusPendingApproval, func(p *models.InstallmentPlan) {
		p.ApprovalRequestedById = userId
		p.ApprovalRequestedToId = approverId
		p.ApprovalRequestedAt = &now
	})
	if err != nil {
		config.LogError(logger, "workflow", "SubmitPlanForApproval", "transition new version", draft.ID, err)
		return nil, err
	}
	return plan, nil
}

// buildCandidate renders the submitted form as an in-memory plan version
// sharing the saved record's identity, for the unchanged-fields comparison.
func buildCandidate(ctx context.Context, input *models.NewInstallmentPlan, saved *models.InstallmentPlan) (*models.InstallmentPlan, error) {
	catalog, err := models.ListActivePlanAmenities(ctx)
	if err != nil {
		return nil, err
	}
	candidate := models.BuildPlanVersionForComparison(input, saved, catalog)
	return candidate, nil
}

// ApprovePlan and RejectPlan share the review gate: only the user the
// approval was requested to may act; anyone else is refused with no state
// change.
func ApprovePlan(ctx context.Context, planId int) (*models.InstallmentPlan, error) {
	return reviewPlan(ctx, planId, models.PlanStatusApproved)
}

func RejectPlan(ctx context.Context, planId int) (*models.InstallmentPlan, error) {
	return reviewPlan(ctx, planId, models.PlanStatusRejected)
}

func reviewPlan(ctx context.Context, planId int, verdict models.PlanStatus) (*models.InstallmentPlan, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	plan, err := utils.FetchModel[models.InstallmentPlan](ctx, orgId, planId, "Discounts", "SelectedAmenities")
	if err != nil {
		return nil, errors.New("plan not found")
	}
	if !CanTransition(plan.Status, verdict) {
		return nil, errors.New("plan is not pending approval")
	}
	if !plan.CanBeReviewedBy(userId) {
		return nil, errors.New("only the requested approver may review this plan")
	}

	now := time.Now()
	return transitionPlan(ctx, plan, verdict, func(p *models.InstallmentPlan) {
		p.ApprovalReviewedById = userId
		p.ApprovalReviewedAt = &now
	})
}

// ConvertPlanToAgreement turns an approved plan into a sale agreement,
// reserves the unit and freezes the plan version as Locked. This is the
// only code path that creates the Locked status.
func ConvertPlanToAgreement(ctx context.Context, planId int) (*models.Agreement, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	plan, err := utils.FetchModel[models.InstallmentPlan](ctx, orgId, planId, "Discounts", "SelectedAmenities")
	if err != nil {
		return nil, errors.New("plan not found")
	}
	if !CanTransition(plan.Status, models.PlanStatusLocked) {
		return nil, errors.New("only approved plans can be converted")
	}

	agreement, err := models.CreateAgreementFromPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	if _, err := transitionPlan(ctx, plan, models.PlanStatusLocked, nil); err != nil {
		return nil, err
	}
	return agreement, nil
}

// transitionPlan applies the status change plus audit mutation and saves in
// place. Guards run in the callers; this only persists.
func transitionPlan(ctx context.Context, plan *models.InstallmentPlan, to models.PlanStatus, mutate func(*models.InstallmentPlan)) (*models.InstallmentPlan, error) {
	db := config.GetDB()

	plan.Status = to
	if mutate != nil {
		mutate(plan)
	}
	if err := db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}
