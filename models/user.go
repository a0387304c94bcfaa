package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OrgId     string    `gorm:"index;not null" json:"org_id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Username  string    `gorm:"size:255;not null;uniqueIndex" json:"username" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:50;default:'Staff'" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("username already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "Staff"
	}

	user := User{
		OrgId:    orgId,
		Name:     input.Name,
		Username: input.Username,
		Password: string(hashed),
		Role:     role,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a JWT.
func Login(ctx context.Context, username string, password string) (string, *User, error) {
	db := config.GetDB()

	var user User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return "", nil, errors.New("invalid username or password")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", nil, errors.New("invalid username or password")
	}
	if !utils.DereferencePtr(user.IsActive, true) {
		return "", nil, errors.New("user is inactive")
	}

	token, err := utils.JwtGenerate(user.ID, user.OrgId, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// GetOrgUsers lists active users; the approver picker on plan submission
// reads this. A DB failure degrades to an empty list (logged, not fatal).
func GetOrgUsers(ctx context.Context) []*User {
	logger := config.GetLogger()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return []*User{}
	}

	db := config.GetDB()
	var users []*User
	err := db.WithContext(ctx).
		Where("org_id = ? AND is_active = ?", orgId, true).
		Order("name").
		Find(&users).Error
	if err != nil {
		config.LogError(logger, "models", "GetOrgUsers", "fetching org users", orgId, err)
		return []*User{}
	}
	return users
}
