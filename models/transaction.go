package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// Transaction is one entry in the org money log. Receipts are money in,
// payments/commissions/salaries are money out. Every report screen reads
// from this collection.
type Transaction struct {
	ID            int             `gorm:"primary_key" json:"id"`
	OrgId         string          `gorm:"index;not null" json:"org_id"`
	Type          TransactionType `gorm:"type:enum('Receipt','Payment','Commission','Salary');not null" json:"type" binding:"required"`
	Date          time.Time       `gorm:"index;not null" json:"date" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Category      string          `gorm:"size:255;default:null" json:"category"`
	Description   string          `gorm:"size:255;default:null" json:"description"`
	ProjectId     int             `gorm:"index;default:null" json:"project_id"`
	UnitId        int             `gorm:"index;default:null" json:"unit_id"`
	ContactId     int             `gorm:"index;default:null" json:"contact_id"`
	BrokerId      int             `gorm:"index;default:null" json:"broker_id"`
	OwnerId       int             `gorm:"index;default:null" json:"owner_id"`
	ReferenceType string          `gorm:"size:50;default:null" json:"reference_type"`
	ReferenceId   int             `gorm:"default:null" json:"reference_id"`
	UserId        int             `gorm:"index;default:null" json:"user_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransaction struct {
	Type        TransactionType `json:"type" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Amount      string          `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ProjectId   int             `json:"project_id"`
	UnitId      int             `json:"unit_id"`
	ContactId   int             `json:"contact_id"`
	BrokerId    int             `json:"broker_id"`
	OwnerId     int             `json:"owner_id"`
}

func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {
	db := config.GetDB()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	if input.ProjectId > 0 {
		if err := utils.ValidateResourceId[Project](ctx, orgId, input.ProjectId); err != nil {
			return nil, errors.New("project not found")
		}
	}

	txn := Transaction{
		OrgId:       orgId,
		Type:        input.Type,
		Date:        input.Date,
		Amount:      utils.ParseMoneyOrZero(input.Amount),
		Category:    input.Category,
		Description: input.Description,
		ProjectId:   input.ProjectId,
		UnitId:      input.UnitId,
		ContactId:   input.ContactId,
		BrokerId:    input.BrokerId,
		OwnerId:     input.OwnerId,
		UserId:      userId,
	}
	if err := db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions returns log entries in a date range, oldest first, for
// the report aggregators.
func ListTransactions(ctx context.Context, fromDate time.Time, toDate time.Time) ([]Transaction, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	query := db.WithContext(ctx).Where("org_id = ? AND date <= ?", orgId, utils.EndOfDay(toDate))
	// A zero fromDate means "from the beginning of the log"; year 0001 is
	// outside the MySQL DATETIME range, so it must not reach the query.
	if !fromDate.IsZero() {
		query = query.Where("date >= ?", utils.StartOfDay(fromDate))
	}

	var transactions []Transaction
	err := query.Order("date ASC, id ASC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
