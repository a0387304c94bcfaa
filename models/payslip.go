package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// Payslip is one employee's pay record for a period. NetSalary is derived
// once at save time: gross + bonuses - deductions.
type Payslip struct {
	ID          int                 `gorm:"primary_key" json:"id"`
	OrgId       string              `gorm:"index;not null" json:"org_id"`
	EmployeeId  int                 `gorm:"index;not null" json:"employee_id" binding:"required"`
	PeriodYear  int                 `gorm:"not null" json:"period_year" binding:"required"`
	PeriodMonth int                 `gorm:"not null" json:"period_month" binding:"required"`
	GrossSalary decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"gross_salary"`
	Items       []PayslipItem       `gorm:"foreignKey:PayslipId" json:"items"`
	NetSalary   decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"net_salary"`
	Status      PayslipStatus       `gorm:"type:enum('Pending','Paid');default:'Pending'" json:"status"`
	PaidAt      *time.Time          `json:"paid_at"`
	Allocations []PayslipAllocation `gorm:"foreignKey:PayslipId" json:"allocations"`
	UserId      int                 `gorm:"index;default:null" json:"user_id"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// PayslipItem is one itemized bonus or deduction line.
type PayslipItem struct {
	ID        int             `gorm:"primary_key" json:"id"`
	PayslipId int             `gorm:"index;not null" json:"payslip_id"`
	Kind      string          `gorm:"type:enum('Bonus','Deduction');not null" json:"kind"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PayslipAllocation charges a share of the pay cost to a project.
type PayslipAllocation struct {
	ID        int             `gorm:"primary_key" json:"id"`
	PayslipId int             `gorm:"index;not null" json:"payslip_id"`
	ProjectId int             `gorm:"index;not null" json:"project_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayslipItem struct {
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount"`
}

type NewPayslipAllocation struct {
	ProjectId int    `json:"project_id" binding:"required"`
	Amount    string `json:"amount"`
}

type NewPayslip struct {
	EmployeeId  int                    `json:"employee_id" binding:"required"`
	PeriodYear  int                    `json:"period_year" binding:"required"`
	PeriodMonth int                    `json:"period_month" binding:"required"`
	GrossSalary string                 `json:"gross_salary"`
	Bonuses     []NewPayslipItem       `json:"bonuses"`
	Deductions  []NewPayslipItem       `json:"deductions"`
	Allocations []NewPayslipAllocation `json:"allocations"`
}

// Bonuses returns the bonus lines of the payslip.
func (p Payslip) Bonuses() []PayslipItem {
	return filterPayslipItems(p.Items, "Bonus")
}

// Deductions returns the deduction lines of the payslip.
func (p Payslip) Deductions() []PayslipItem {
	return filterPayslipItems(p.Items, "Deduction")
}

func filterPayslipItems(items []PayslipItem, kind string) []PayslipItem {
	out := make([]PayslipItem, 0, len(items))
	for _, it := range items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// ComputeNetSalary = gross + sum(bonuses) - sum(deductions). Pure.
func ComputeNetSalary(gross decimal.Decimal, items []PayslipItem) decimal.Decimal {
	net := gross
	for _, it := range items {
		switch it.Kind {
		case "Bonus":
			net = net.Add(it.Amount)
		case "Deduction":
			net = net.Sub(it.Amount)
		}
	}
	return net
}

func CreatePayslip(ctx context.Context, input *NewPayslip) (*Payslip, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	if err := utils.ValidateResourceId[User](ctx, orgId, input.EmployeeId); err != nil {
		return nil, errors.New("employee not found")
	}
	if input.PeriodMonth < 1 || input.PeriodMonth > 12 {
		return nil, errors.New("invalid period month")
	}

	// The duplicate-period check and the insert must not interleave across
	// requests, so the payroll run is serialized per org.
	lock, lockErr := utils.OrgLock(ctx, orgId, "payroll-run", "models", "CreatePayslip")
	if lockErr != nil {
		return nil, lockErr
	}
	defer lock.Release(ctx)

	// One payslip per employee per period.
	count, err := utils.ResourceCountWhere[Payslip](ctx, orgId,
		"employee_id = ? AND period_year = ? AND period_month = ?",
		input.EmployeeId, input.PeriodYear, input.PeriodMonth)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("payslip already exists for this period")
	}

	items := buildPayslipItems(input.Bonuses, "Bonus")
	items = append(items, buildPayslipItems(input.Deductions, "Deduction")...)
	gross := utils.ParseMoneyOrZero(input.GrossSalary)

	var allocations []PayslipAllocation
	for _, a := range input.Allocations {
		if err := utils.ValidateResourceId[Project](ctx, orgId, a.ProjectId); err != nil {
			return nil, errors.New("allocation project not found")
		}
		allocations = append(allocations, PayslipAllocation{
			ProjectId: a.ProjectId,
			Amount:    utils.ParseMoneyOrZero(a.Amount),
		})
	}

	payslip := Payslip{
		OrgId:       orgId,
		EmployeeId:  input.EmployeeId,
		PeriodYear:  input.PeriodYear,
		PeriodMonth: input.PeriodMonth,
		GrossSalary: gross,
		Items:       items,
		NetSalary:   ComputeNetSalary(gross, items),
		Status:      PayslipStatusPending,
		Allocations: allocations,
		UserId:      userId,
	}

	if err := db.WithContext(ctx).Create(&payslip).Error; err != nil {
		return nil, err
	}
	return &payslip, nil
}

func buildPayslipItems(items []NewPayslipItem, kind string) []PayslipItem {
	out := make([]PayslipItem, 0, len(items))
	for _, it := range items {
		out = append(out, PayslipItem{
			Kind:   kind,
			Name:   it.Name,
			Amount: utils.ParseMoneyOrZero(it.Amount),
		})
	}
	return out
}

// MarkPayslipPaid settles a pending payslip and logs the salary payment
// in the transaction log.
func MarkPayslipPaid(ctx context.Context, payslipId int) (*Payslip, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	payslip, err := utils.FetchModel[Payslip](ctx, orgId, payslipId, "Items", "Allocations")
	if err != nil {
		return nil, errors.New("payslip not found")
	}
	if payslip.Status == PayslipStatusPaid {
		return nil, errors.New("payslip is already paid")
	}

	now := time.Now()
	payslip.Status = PayslipStatusPaid
	payslip.PaidAt = &now
	if err := db.WithContext(ctx).Save(payslip).Error; err != nil {
		return nil, err
	}

	// Log one payment per project allocation, or a single unallocated one.
	if len(payslip.Allocations) > 0 {
		for _, a := range payslip.Allocations {
			if _, err := CreateTransaction(ctx, &NewTransaction{
				Type:        TransactionTypeSalary,
				Date:        now,
				Amount:      a.Amount.String(),
				Category:    "Payroll",
				Description: "Salary payment",
				ProjectId:   a.ProjectId,
				ContactId:   payslip.EmployeeId,
			}); err != nil {
				config.LogError(config.GetLogger(), "models", "MarkPayslipPaid", "logging salary transaction", payslip.ID, err)
			}
		}
	} else {
		if _, err := CreateTransaction(ctx, &NewTransaction{
			Type:        TransactionTypeSalary,
			Date:        now,
			Amount:      payslip.NetSalary.String(),
			Category:    "Payroll",
			Description: "Salary payment",
			ContactId:   payslip.EmployeeId,
		}); err != nil {
			config.LogError(config.GetLogger(), "models", "MarkPayslipPaid", "logging salary transaction", payslip.ID, err)
		}
	}

	return payslip, nil
}

func DeletePayslip(ctx context.Context, payslipId int) (*Payslip, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	payslip, err := utils.FetchModel[Payslip](ctx, orgId, payslipId)
	if err != nil {
		return nil, errors.New("payslip not found")
	}
	if payslip.Status == PayslipStatusPaid {
		return nil, errors.New("paid payslips cannot be deleted")
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("payslip_id = ?", payslip.ID).Delete(&PayslipItem{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("payslip_id = ?", payslip.ID).Delete(&PayslipAllocation{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&Payslip{}, payslip.ID).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return payslip, nil
}
