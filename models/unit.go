package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// Unit is one sellable unit in a project. StockQty covers bulk unit types
// (parking slots, storage rooms) that are billed by quantity; single
// residences carry a StockQty of 1 and flip to Sold when it reaches zero.
type Unit struct {
	ID        int             `gorm:"primary_key" json:"id"`
	OrgId     string          `gorm:"index;not null" json:"org_id"`
	ProjectId int             `gorm:"index;not null" json:"project_id" binding:"required"`
	Name      string          `gorm:"size:255;not null" json:"name" binding:"required"`
	ListPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"list_price"`
	Status    UnitStatus      `gorm:"type:enum('Available','Reserved','Sold');default:'Available'" json:"status"`
	StockQty  decimal.Decimal `gorm:"type:decimal(20,4);default:1" json:"stock_qty"`
	BrokerId  int             `gorm:"index;default:null" json:"broker_id"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUnit struct {
	ProjectId int             `json:"project_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	ListPrice decimal.Decimal `json:"list_price"`
	StockQty  decimal.Decimal `json:"stock_qty"`
	BrokerId  int             `json:"broker_id"`
}

func CreateUnit(ctx context.Context, input *NewUnit) (*Unit, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := utils.ValidateResourceId[Project](ctx, orgId, input.ProjectId); err != nil {
		return nil, errors.New("project not found")
	}
	if input.BrokerId > 0 {
		if err := utils.ValidateResourceId[Contact](ctx, orgId, input.BrokerId); err != nil {
			return nil, errors.New("broker not found")
		}
	}

	stockQty := input.StockQty
	if stockQty.IsZero() {
		stockQty = decimal.NewFromInt(1)
	}

	unit := Unit{
		OrgId:     orgId,
		ProjectId: input.ProjectId,
		Name:      input.Name,
		ListPrice: input.ListPrice,
		Status:    UnitStatusAvailable,
		StockQty:  stockQty,
		BrokerId:  input.BrokerId,
	}
	if err := db.WithContext(ctx).Create(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// DecrementUnitStock reduces the unit's remaining stock by qty and marks the
// unit Sold once stock is exhausted. Called per bill line on confirm; each
// call is its own write, there is no cross-line transaction.
func DecrementUnitStock(ctx context.Context, unitId int, qty decimal.Decimal) error {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return errors.New("org id is required")
	}

	unit, err := utils.FetchModel[Unit](ctx, orgId, unitId)
	if err != nil {
		return errors.New("unit not found")
	}

	unit.StockQty = unit.StockQty.Sub(qty)
	if unit.StockQty.LessThanOrEqual(decimal.Zero) {
		unit.StockQty = decimal.Zero
		unit.Status = UnitStatusSold
	}
	return db.WithContext(ctx).Save(unit).Error
}
