package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
)

// Project is a development holding sellable units.
type Project struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OrgId     string    `gorm:"index;not null" json:"org_id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	OwnerId   int       `gorm:"index;default:null" json:"owner_id"`
	Location  string    `gorm:"size:255;default:null" json:"location"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	Units     []Unit    `gorm:"foreignKey:ProjectId" json:"units"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProject struct {
	Name     string `json:"name" binding:"required"`
	OwnerId  int    `json:"owner_id"`
	Location string `json:"location"`
}

func CreateProject(ctx context.Context, input *NewProject) (*Project, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if input.OwnerId > 0 {
		if err := utils.ValidateResourceId[Contact](ctx, orgId, input.OwnerId); err != nil {
			return nil, errors.New("owner not found")
		}
	}

	project := Project{
		OrgId:    orgId,
		Name:     input.Name,
		OwnerId:  input.OwnerId,
		Location: input.Location,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}
