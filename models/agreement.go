package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// Agreement is the sale contract produced from a locked plan. The monetary
// figures are copied from the plan version at conversion time so the
// agreement stays stable even if the plan history is deleted later.
type Agreement struct {
	ID                int              `gorm:"primary_key" json:"id"`
	OrgId             string           `gorm:"index;not null" json:"org_id"`
	PlanId            int              `gorm:"index;not null" json:"plan_id"`
	PlanRootId        string           `gorm:"size:36;index;not null" json:"plan_root_id"`
	LeadId            int              `gorm:"index;not null" json:"lead_id"`
	ProjectId         int              `gorm:"index;not null" json:"project_id"`
	UnitId            int              `gorm:"index;not null" json:"unit_id"`
	NetValue          decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"net_value"`
	DownPaymentAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"down_payment_amount"`
	InstallmentAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"installment_amount"`
	TotalInstallments int              `gorm:"default:1" json:"total_installments"`
	Frequency         PaymentFrequency `gorm:"type:enum('Monthly','Quarterly','Yearly');default:'Monthly'" json:"frequency"`
	AgreementDate     time.Time        `gorm:"not null" json:"agreement_date"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListAgreements returns every agreement for the org, newest first.
func ListAgreements(ctx context.Context) ([]Agreement, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var agreements []Agreement
	err := db.WithContext(ctx).
		Where("org_id = ?", orgId).
		Order("agreement_date DESC, id DESC").
		Find(&agreements).Error
	if err != nil {
		return nil, err
	}
	return agreements, nil
}

// CreateAgreementFromPlan copies the approved plan's figures into a new
// agreement and reserves the unit.
func CreateAgreementFromPlan(ctx context.Context, plan *InstallmentPlan) (*Agreement, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	agreement := Agreement{
		OrgId:             orgId,
		PlanId:            plan.ID,
		PlanRootId:        plan.RootId,
		LeadId:            plan.LeadId,
		ProjectId:         plan.ProjectId,
		UnitId:            plan.UnitId,
		NetValue:          plan.NetValue,
		DownPaymentAmount: plan.DownPaymentAmount,
		InstallmentAmount: plan.InstallmentAmount,
		TotalInstallments: plan.TotalInstallments,
		Frequency:         plan.Frequency,
		AgreementDate:     time.Now(),
	}
	if err := db.WithContext(ctx).Create(&agreement).Error; err != nil {
		return nil, err
	}

	// Reserve the unit; sale completion is recorded through billing.
	unit, err := utils.FetchModel[Unit](ctx, orgId, plan.UnitId)
	if err == nil && unit.Status == UnitStatusAvailable {
		unit.Status = UnitStatusReserved
		if err := db.WithContext(ctx).Save(unit).Error; err != nil {
			config.LogError(config.GetLogger(), "models", "CreateAgreementFromPlan", "reserving unit", unit.ID, err)
		}
	}

	return &agreement, nil
}
