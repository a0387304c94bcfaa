package models

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// InstallmentPlan is one version of a pricing/payment proposal for a unit
// sale. Versions of the same logical plan share RootId; only the highest
// version per root is editable, older versions are immutable history.
//
// The derived figures (NetValue, DownPaymentAmount, InstallmentAmount,
// TotalInstallments) are computed once at save time and stored; readers do
// not recompute them from the inputs.
type InstallmentPlan struct {
	ID                    int                      `gorm:"primary_key" json:"id"`
	OrgId                 string                   `gorm:"index;not null" json:"org_id"`
	RootId                string                   `gorm:"size:36;not null;uniqueIndex:idx_plan_root_version" json:"root_id"`
	Version               int                      `gorm:"not null;default:1;uniqueIndex:idx_plan_root_version" json:"version"`
	Status                PlanStatus               `gorm:"type:enum('Draft','Pending Approval','Approved','Rejected','Locked');not null" json:"status"`
	LeadId                int                      `gorm:"index;not null" json:"lead_id"`
	ProjectId             int                      `gorm:"index;not null" json:"project_id"`
	UnitId                int                      `gorm:"index;not null" json:"unit_id"`
	ListPrice             decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"list_price"`
	Discounts             []InstallmentPlanDiscount `gorm:"foreignKey:PlanId" json:"discounts"`
	SelectedAmenities     []InstallmentPlanAmenity  `gorm:"foreignKey:PlanId" json:"selected_amenities"`
	AmenitiesTotal        decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"amenities_total"`
	DownPaymentPercentage decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"down_payment_percentage"`
	DurationYears         decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"duration_years"`
	Frequency             PaymentFrequency         `gorm:"type:enum('Monthly','Quarterly','Yearly');default:'Monthly'" json:"frequency"`
	NetValue              decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"net_value"`
	DownPaymentAmount     decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"down_payment_amount"`
	InstallmentAmount     decimal.Decimal          `gorm:"type:decimal(20,4);default:0" json:"installment_amount"`
	TotalInstallments     int                      `gorm:"default:1" json:"total_installments"`
	ApprovalRequestedById int                      `gorm:"default:null" json:"approval_requested_by_id"`
	ApprovalRequestedToId int                      `gorm:"default:null" json:"approval_requested_to_id"`
	ApprovalRequestedAt   *time.Time               `json:"approval_requested_at"`
	ApprovalReviewedById  int                      `gorm:"default:null" json:"approval_reviewed_by_id"`
	ApprovalReviewedAt    *time.Time               `json:"approval_reviewed_at"`
	UserId                int                      `gorm:"index;default:null" json:"user_id"`
	CreatedAt             time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
}

type InstallmentPlanDiscount struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PlanId     int             `gorm:"index;not null" json:"plan_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CategoryId int             `gorm:"default:null" json:"category_id"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type InstallmentPlanAmenity struct {
	ID               int             `gorm:"primary_key" json:"id"`
	PlanId           int             `gorm:"index;not null" json:"plan_id"`
	AmenityId        int             `gorm:"index;not null" json:"amenity_id"`
	AmenityName      string          `gorm:"size:255;not null" json:"amenity_name"`
	CalculatedAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"calculated_amount"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewInstallmentPlanDiscount mirrors the form row: the amount arrives as the
// raw field text and coerces to zero when blank or non-numeric.
type NewInstallmentPlanDiscount struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	CategoryId int    `json:"category_id"`
}

// NewInstallmentPlan carries the plan form. Numeric fields are raw strings
// on purpose: parsing follows the documented invalid-to-zero rule rather
// than rejecting bad input.
type NewInstallmentPlan struct {
	PlanId                int                          `json:"plan_id"`
	LeadId                int                          `json:"lead_id" binding:"required"`
	ProjectId             int                          `json:"project_id" binding:"required"`
	UnitId                int                          `json:"unit_id" binding:"required"`
	ListPrice             string                       `json:"list_price"`
	Discounts             []NewInstallmentPlanDiscount `json:"discounts"`
	SelectedAmenityIds    []int                        `json:"selected_amenity_ids"`
	DownPaymentPercentage string                       `json:"down_payment_percentage"`
	DurationYears         string                       `json:"duration_years"`
	Frequency             PaymentFrequency             `json:"frequency"`
}

func (input NewInstallmentPlan) validate(ctx context.Context, orgId string) error {
	if err := utils.ValidateResourceId[Contact](ctx, orgId, input.LeadId); err != nil {
		return errors.New("lead not found")
	}
	if err := utils.ValidateResourceId[Project](ctx, orgId, input.ProjectId); err != nil {
		return errors.New("project not found")
	}
	if err := utils.ValidateResourceId[Unit](ctx, orgId, input.UnitId); err != nil {
		return errors.New("unit not found")
	}
	return nil
}

// pricingInput coerces the form strings and resolves the amenity catalog.
func (input NewInstallmentPlan) pricingInput(catalog []PlanAmenity) PricingInput {
	discounts := make([]PlanDiscount, 0, len(input.Discounts))
	for i, d := range input.Discounts {
		discounts = append(discounts, PlanDiscount{
			ID:         i + 1,
			Name:       d.Name,
			Amount:     utils.ParseMoneyOrZero(d.Amount),
			CategoryId: d.CategoryId,
		})
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = PaymentFrequencyMonthly
	}
	return PricingInput{
		ListPrice:             utils.ParseMoneyOrZero(input.ListPrice),
		Discounts:             discounts,
		// an amenity ticked twice in a malformed payload is charged once
		SelectedAmenityIds:    utils.UniqueSlice(input.SelectedAmenityIds),
		AmenityCatalog:        catalog,
		DownPaymentPercentage: utils.ParseMoneyOrZero(input.DownPaymentPercentage),
		DurationYears:         utils.ParseMoneyOrZero(input.DurationYears),
		Frequency:             frequency,
	}
}

// buildPlanVersion constructs one version record from the form plus the
// computed pricing. Derived figures are cached on the record so the stored
// row stays consistent with its own inputs by construction.
func (input NewInstallmentPlan) buildPlanVersion(orgId string, userId int, rootId string, version int, status PlanStatus, pricing PricingResult) InstallmentPlan {
	discounts := make([]InstallmentPlanDiscount, 0, len(input.Discounts))
	for _, d := range input.Discounts {
		discounts = append(discounts, InstallmentPlanDiscount{
			Name:       d.Name,
			Amount:     utils.ParseMoneyOrZero(d.Amount),
			CategoryId: d.CategoryId,
		})
	}
	amenities := make([]InstallmentPlanAmenity, 0, len(pricing.SelectedAmenities))
	for _, a := range pricing.SelectedAmenities {
		amenities = append(amenities, InstallmentPlanAmenity{
			AmenityId:        a.AmenityId,
			AmenityName:      a.AmenityName,
			CalculatedAmount: a.CalculatedAmount,
		})
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = PaymentFrequencyMonthly
	}

	return InstallmentPlan{
		OrgId:                 orgId,
		RootId:                rootId,
		Version:               version,
		Status:                status,
		LeadId:                input.LeadId,
		ProjectId:             input.ProjectId,
		UnitId:                input.UnitId,
		ListPrice:             utils.ParseMoneyOrZero(input.ListPrice),
		Discounts:             discounts,
		SelectedAmenities:     amenities,
		AmenitiesTotal:        pricing.AmenitiesTotal,
		DownPaymentPercentage: utils.ParseMoneyOrZero(input.DownPaymentPercentage),
		DurationYears:         utils.ParseMoneyOrZero(input.DurationYears),
		Frequency:             frequency,
		NetValue:              pricing.NetValue,
		DownPaymentAmount:     pricing.DownPaymentAmount,
		InstallmentAmount:     pricing.InstallmentAmount,
		TotalInstallments:     pricing.TotalInstallments,
		UserId:                userId,
	}
}

// GetLatestPlanVersion returns the highest version for a root.
func GetLatestPlanVersion(ctx context.Context, rootId string) (*InstallmentPlan, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var plan InstallmentPlan
	err := db.WithContext(ctx).
		Preload("Discounts").
		Preload("SelectedAmenities").
		Where("org_id = ? AND root_id = ?", orgId, rootId).
		Order("version DESC").
		First(&plan).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &plan, nil
}

// ListPlanVersions returns the full version history of one root, newest
// first.
func ListPlanVersions(ctx context.Context, rootId string) ([]*InstallmentPlan, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var plans []*InstallmentPlan
	err := db.WithContext(ctx).
		Preload("Discounts").
		Preload("SelectedAmenities").
		Where("org_id = ? AND root_id = ?", orgId, rootId).
		Order("version DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// SaveInstallmentPlanDraft saves the form as a Draft version.
//
// New plan: version 1 with a fresh root id. Editing: the target must be the
// latest version of its root and in an editable status; the edit then
// appends version previous+1 instead of mutating the stored record, giving
// append-only history.
func SaveInstallmentPlanDraft(ctx context.Context, input *NewInstallmentPlan) (*InstallmentPlan, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	catalog, err := ListActivePlanAmenities(ctx)
	if err != nil {
		return nil, err
	}
	pricing := ComputePlanPricing(input.pricingInput(derefAmenities(catalog)))

	rootId := uuid.NewString()
	version := 1

	if input.PlanId > 0 {
		// Serialize version appends per org. The lock must be held before
		// the previous version is read, otherwise two concurrent edits can
		// both read version N and both insert N+1 for the same root. The
		// unique index on (root_id, version) backstops the lock.
		lock, lockErr := utils.OrgLock(ctx, orgId, "plan-version", "models", "SaveInstallmentPlanDraft")
		if lockErr != nil {
			return nil, lockErr
		}
		defer lock.Release(ctx)

		previous, err := fetchEditablePlan(ctx, orgId, input.PlanId)
		if err != nil {
			return nil, err
		}
		rootId = previous.RootId
		version = previous.Version + 1
	}

	plan := input.buildPlanVersion(orgId, userId, rootId, version, PlanStatusDraft, pricing)
	if err := db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// PreviewPlanPricing computes the totals for the plan form without saving
// anything. The calculator panel calls this on every form change.
func PreviewPlanPricing(ctx context.Context, input *NewInstallmentPlan) (PricingResult, error) {
	catalog, err := ListActivePlanAmenities(ctx)
	if err != nil {
		return PricingResult{}, err
	}
	return ComputePlanPricing(input.pricingInput(derefAmenities(catalog))), nil
}

// PreviewPlanSchedule renders the payment schedule for the current form
// values, starting from startDate.
func PreviewPlanSchedule(ctx context.Context, input *NewInstallmentPlan, startDate time.Time) ([]ScheduleEntry, error) {
	pricing, err := PreviewPlanPricing(ctx, input)
	if err != nil {
		return nil, err
	}
	return GenerateSchedule(ScheduleInput{
		NetValue:          pricing.NetValue,
		DownPaymentAmount: pricing.DownPaymentAmount,
		TotalInstallments: pricing.TotalInstallments,
		InstallmentAmount: pricing.InstallmentAmount,
		FrequencyMonths:   input.Frequency.Months(),
		StartDate:         startDate,
	}), nil
}

// CanEditVersion decides whether plan accepts edits given the latest
// version of its root. Only the latest version counts as current, and only
// Draft and Rejected versions are editable.
func CanEditVersion(plan, latest *InstallmentPlan) error {
	if latest == nil || latest.ID != plan.ID {
		return errors.New("this plan has a newer version; reload before editing")
	}
	if !plan.Status.Editable() {
		return errors.New("plan is read-only in its current status")
	}
	return nil
}

// CanBeReviewedBy reports whether userId may approve or reject this plan.
// Only the user the approval was requested to may review it.
func (p *InstallmentPlan) CanBeReviewedBy(userId int) bool {
	return p.ApprovalRequestedToId > 0 && p.ApprovalRequestedToId == userId
}

// fetchEditablePlan loads a plan for editing: it must exist, be the latest
// version of its root, and be in an editable status.
func fetchEditablePlan(ctx context.Context, orgId string, planId int) (*InstallmentPlan, error) {
	plan, err := utils.FetchModel[InstallmentPlan](ctx, orgId, planId, "Discounts", "SelectedAmenities")
	if err != nil {
		return nil, errors.New("plan not found")
	}

	latest, err := GetLatestPlanVersion(ctx, plan.RootId)
	if err != nil {
		return nil, err
	}
	if err := CanEditVersion(plan, latest); err != nil {
		return nil, err
	}
	return plan, nil
}

// Editable reports whether a plan version in this status accepts edits.
// Pending Approval, Approved and Locked are read-only.
func (s PlanStatus) Editable() bool {
	return s == PlanStatusDraft || s == PlanStatusRejected
}

// DeleteInstallmentPlan removes one version's record. History cleanup is
// deliberately not attempted: older versions of the same root stay behind.
func DeleteInstallmentPlan(ctx context.Context, planId int) (*InstallmentPlan, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	plan, err := utils.FetchModel[InstallmentPlan](ctx, orgId, planId, "Discounts", "SelectedAmenities")
	if err != nil {
		return nil, errors.New("plan not found")
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("plan_id = ?", plan.ID).Delete(&InstallmentPlanDiscount{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("plan_id = ?", plan.ID).Delete(&InstallmentPlanAmenity{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&InstallmentPlan{}, plan.ID).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// ListLatestInstallmentPlans returns the highest version per root.
func ListLatestInstallmentPlans(ctx context.Context) ([]*InstallmentPlan, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var plans []*InstallmentPlan
	err := db.WithContext(ctx).
		Preload("Discounts").
		Preload("SelectedAmenities").
		Where("org_id = ?", orgId).
		Where("(root_id, version) IN (?)",
			db.Model(&InstallmentPlan{}).
				Select("root_id, MAX(version)").
				Where("org_id = ?", orgId).
				Group("root_id")).
		Order("updated_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

/* Normalized snapshots */

// planSnapshot is the normalized field set used for the "unchanged plan"
// check on submission: money rounded to 2 decimals and rendered as strings,
// discount and amenity lists sorted, so equality is structural and immune
// to key-order or trailing-zero differences.
type planSnapshot struct {
	LeadId                int
	ProjectId             int
	UnitId                int
	ListPrice             string
	DownPaymentPercentage string
	DurationYears         string
	Frequency             PaymentFrequency
	Discounts             []snapshotDiscount
	Amenities             []snapshotAmenity
}

type snapshotDiscount struct {
	Name       string
	Amount     string
	CategoryId int
}

type snapshotAmenity struct {
	AmenityId int
	Amount    string
}

func money(d decimal.Decimal) string {
	return d.Round(2).String()
}

// NormalizePlanSnapshot reduces a plan version to its comparable fields.
func NormalizePlanSnapshot(plan *InstallmentPlan) planSnapshot {
	snap := planSnapshot{
		LeadId:                plan.LeadId,
		ProjectId:             plan.ProjectId,
		UnitId:                plan.UnitId,
		ListPrice:             money(plan.ListPrice),
		DownPaymentPercentage: money(plan.DownPaymentPercentage),
		DurationYears:         money(plan.DurationYears),
		Frequency:             plan.Frequency,
	}
	for _, d := range plan.Discounts {
		snap.Discounts = append(snap.Discounts, snapshotDiscount{
			Name:       d.Name,
			Amount:     money(d.Amount),
			CategoryId: d.CategoryId,
		})
	}
	sort.Slice(snap.Discounts, func(i, j int) bool {
		if snap.Discounts[i].Name != snap.Discounts[j].Name {
			return snap.Discounts[i].Name < snap.Discounts[j].Name
		}
		return snap.Discounts[i].Amount < snap.Discounts[j].Amount
	})
	for _, a := range plan.SelectedAmenities {
		snap.Amenities = append(snap.Amenities, snapshotAmenity{
			AmenityId: a.AmenityId,
			Amount:    money(a.CalculatedAmount),
		})
	}
	sort.Slice(snap.Amenities, func(i, j int) bool {
		return snap.Amenities[i].AmenityId < snap.Amenities[j].AmenityId
	})
	return snap
}

// PlanFieldsEqual reports whether two plan versions are the same proposal
// under the normalized field set.
func PlanFieldsEqual(a, b *InstallmentPlan) bool {
	sa, sb := NormalizePlanSnapshot(a), NormalizePlanSnapshot(b)
	if sa.LeadId != sb.LeadId || sa.ProjectId != sb.ProjectId || sa.UnitId != sb.UnitId {
		return false
	}
	if sa.ListPrice != sb.ListPrice ||
		sa.DownPaymentPercentage != sb.DownPaymentPercentage ||
		sa.DurationYears != sb.DurationYears ||
		sa.Frequency != sb.Frequency {
		return false
	}
	if len(sa.Discounts) != len(sb.Discounts) || len(sa.Amenities) != len(sb.Amenities) {
		return false
	}
	for i := range sa.Discounts {
		if sa.Discounts[i] != sb.Discounts[i] {
			return false
		}
	}
	for i := range sa.Amenities {
		if sa.Amenities[i] != sb.Amenities[i] {
			return false
		}
	}
	return true
}

// BuildPlanVersionForComparison renders a submitted form as an in-memory
// version sharing the saved record's identity. Used only for the
// unchanged-fields check on submission; never persisted.
func BuildPlanVersionForComparison(input *NewInstallmentPlan, saved *InstallmentPlan, catalog []*PlanAmenity) *InstallmentPlan {
	pricing := ComputePlanPricing(input.pricingInput(derefAmenities(catalog)))
	plan := input.buildPlanVersion(saved.OrgId, saved.UserId, saved.RootId, saved.Version, saved.Status, pricing)
	return &plan
}

func derefAmenities(in []*PlanAmenity) []PlanAmenity {
	out := make([]PlanAmenity, 0, len(in))
	for _, a := range in {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
