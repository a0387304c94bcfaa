package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// PlanAmenity is a reusable catalog entry offered for selection on plans.
// Percentage entries charge a share of the list price, flat entries a fixed
// amount. Selection lists filter on IsActive; delete is a hard removal.
type PlanAmenity struct {
	ID           int             `gorm:"primary_key" json:"id"`
	OrgId        string          `gorm:"index;not null" json:"org_id"`
	Name         string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	IsPercentage *bool           `gorm:"not null;default:false" json:"is_percentage"`
	IsActive     *bool           `gorm:"not null;default:true" json:"is_active"`
	Description  string          `gorm:"size:255;default:null" json:"description"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPlanAmenity struct {
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price"`
	IsPercentage *bool           `json:"is_percentage"`
	IsActive     *bool           `json:"is_active"`
	Description  string          `json:"description"`
}

func CreatePlanAmenity(ctx context.Context, input *NewPlanAmenity) (*PlanAmenity, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := utils.ValidateUnique[PlanAmenity](ctx, orgId, "name", input.Name, nil); err != nil {
		return nil, errors.New("amenity name already exists")
	}

	amenity := PlanAmenity{
		OrgId:        orgId,
		Name:         input.Name,
		Price:        input.Price,
		IsPercentage: input.IsPercentage,
		IsActive:     input.IsActive,
		Description:  input.Description,
	}
	if amenity.IsPercentage == nil {
		amenity.IsPercentage = utils.NewFalse()
	}
	if amenity.IsActive == nil {
		amenity.IsActive = utils.NewTrue()
	}

	if err := db.WithContext(ctx).Create(&amenity).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

func UpdatePlanAmenity(ctx context.Context, id int, input *NewPlanAmenity) (*PlanAmenity, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	amenity, err := utils.FetchModel[PlanAmenity](ctx, orgId, id)
	if err != nil {
		return nil, errors.New("amenity not found")
	}

	if err := utils.ValidateUnique[PlanAmenity](ctx, orgId, "name", input.Name, id); err != nil {
		return nil, errors.New("amenity name already exists")
	}

	amenity.Name = input.Name
	amenity.Price = input.Price
	amenity.Description = input.Description
	if input.IsPercentage != nil {
		amenity.IsPercentage = input.IsPercentage
	}
	if input.IsActive != nil {
		amenity.IsActive = input.IsActive
	}

	if err := db.WithContext(ctx).Save(amenity).Error; err != nil {
		return nil, err
	}
	return amenity, nil
}

// DeletePlanAmenity removes the catalog entry outright. Plans that already
// selected it keep their stored SelectedAmenity snapshot, so history stays
// intact even though the catalog row is gone.
func DeletePlanAmenity(ctx context.Context, id int) (*PlanAmenity, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	amenity, err := utils.FetchModel[PlanAmenity](ctx, orgId, id)
	if err != nil {
		return nil, errors.New("amenity not found")
	}

	if err := db.WithContext(ctx).Delete(amenity).Error; err != nil {
		return nil, err
	}
	return amenity, nil
}

// ListActivePlanAmenities returns the catalog entries offered for selection.
func ListActivePlanAmenities(ctx context.Context) ([]*PlanAmenity, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var amenities []*PlanAmenity
	err := db.WithContext(ctx).
		Where("org_id = ? AND is_active = ?", orgId, true).
		Order("name").
		Find(&amenities).Error
	if err != nil {
		return nil, err
	}
	return amenities, nil
}
