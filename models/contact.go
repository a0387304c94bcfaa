package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// Contact covers leads, brokers and owners; Type selects which report
// dimension it participates in.
type Contact struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrgId          string          `gorm:"index;not null" json:"org_id"`
	Type           ContactType     `gorm:"type:enum('Lead','Broker','Owner');not null" json:"type" binding:"required"`
	Name           string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Email          string          `gorm:"size:255;default:null" json:"email"`
	Phone          string          `gorm:"size:50;default:null" json:"phone"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"commission_rate"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewContact struct {
	Type           ContactType     `json:"type" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (input NewContact) validate() error {
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, ""); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateContact(ctx context.Context, input *NewContact) (*Contact, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	contact := Contact{
		OrgId:          orgId,
		Type:           input.Type,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		CommissionRate: input.CommissionRate,
		IsActive:       utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func UpdateContact(ctx context.Context, id int, input *NewContact) (*Contact, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	contact, err := utils.FetchModel[Contact](ctx, orgId, id)
	if err != nil {
		return nil, errors.New("contact not found")
	}

	contact.Type = input.Type
	contact.Name = input.Name
	contact.Email = input.Email
	contact.Phone = input.Phone
	contact.CommissionRate = input.CommissionRate

	if err := db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}
