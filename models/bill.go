package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/estates_backend/config"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

// CustomerBill invoices a customer for units/charges. Confirming a bill
// walks its lines and decrements unit stock one write at a time; the bill
// insert itself is transactional but the stock loop is best-effort, so a
// failure partway leaves earlier decrements in place with only a logged
// error. There is no compensating rollback.
type CustomerBill struct {
	ID          int                  `gorm:"primary_key" json:"id"`
	OrgId       string               `gorm:"index;not null" json:"org_id"`
	CustomerId  int                  `gorm:"index;not null" json:"customer_id" binding:"required"`
	ProjectId   int                  `gorm:"index;default:null" json:"project_id"`
	BillDate    time.Time            `gorm:"not null" json:"bill_date" binding:"required"`
	Status      BillStatus           `gorm:"type:enum('Draft','Confirmed','Void');not null" json:"status"`
	Details     []CustomerBillDetail `gorm:"foreignKey:BillId" json:"details"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Notes       string               `gorm:"type:text;default:null" json:"notes"`
	UserId      int                  `gorm:"index;default:null" json:"user_id"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

type CustomerBillDetail struct {
	ID        int             `gorm:"primary_key" json:"id"`
	BillId    int             `gorm:"index;not null" json:"bill_id"`
	UnitId    int             `gorm:"index;default:null" json:"unit_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4);default:1" json:"qty"`
	UnitRate  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_rate"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomerBillDetail struct {
	UnitId   int    `json:"unit_id"`
	Name     string `json:"name" binding:"required"`
	Qty      string `json:"qty"`
	UnitRate string `json:"unit_rate"`
}

type NewCustomerBill struct {
	CustomerId int                     `json:"customer_id" binding:"required"`
	ProjectId  int                     `json:"project_id"`
	BillDate   time.Time               `json:"bill_date" binding:"required"`
	Status     BillStatus              `json:"status"`
	Details    []NewCustomerBillDetail `json:"details" binding:"required"`
	Notes      string                  `json:"notes"`
}

func CreateCustomerBill(ctx context.Context, input *NewCustomerBill) (*CustomerBill, error) {
	db := config.GetDB()
	logger := config.GetLogger()

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	if err := utils.ValidateResourceId[Contact](ctx, orgId, input.CustomerId); err != nil {
		return nil, errors.New("customer not found")
	}
	if input.ProjectId > 0 {
		if err := utils.ValidateResourceId[Project](ctx, orgId, input.ProjectId); err != nil {
			return nil, errors.New("project not found")
		}
	}

	status := input.Status
	if status == "" {
		status = BillStatusDraft
	}

	var details []CustomerBillDetail
	total := decimal.Zero
	for _, d := range input.Details {
		qty := utils.ParseMoneyOrZero(d.Qty)
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		rate := utils.ParseMoneyOrZero(d.UnitRate)
		amount := qty.Mul(rate)
		total = total.Add(amount)
		details = append(details, CustomerBillDetail{
			UnitId:   d.UnitId,
			Name:     d.Name,
			Qty:      qty,
			UnitRate: rate,
			Amount:   amount,
		})
	}

	bill := CustomerBill{
		OrgId:       orgId,
		CustomerId:  input.CustomerId,
		ProjectId:   input.ProjectId,
		BillDate:    input.BillDate,
		Status:      status,
		Details:     details,
		TotalAmount: total,
		Notes:       input.Notes,
		UserId:      userId,
	}

	tx := db.Begin()
	// always rollback on early-return or panic to avoid leaking DB locks
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(&bill).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Per-line stock decrement after the bill commit. Sequential and
	// non-transactional: a failed line is logged and the loop keeps going,
	// leaving earlier lines applied.
	if bill.Status == BillStatusConfirmed {
		for _, d := range bill.Details {
			if d.UnitId <= 0 {
				continue
			}
			if err := DecrementUnitStock(ctx, d.UnitId, d.Qty); err != nil {
				config.LogError(logger, "models", "CreateCustomerBill", "decrementing unit stock", d.UnitId, err)
			}
		}
	}

	return &bill, nil
}

// RecordBillPayment logs a receipt against a confirmed bill in the
// transaction log.
func RecordBillPayment(ctx context.Context, billId int, amount string, date time.Time) (*Transaction, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	bill, err := utils.FetchModel[CustomerBill](ctx, orgId, billId, "Details")
	if err != nil {
		return nil, errors.New("bill not found")
	}
	if bill.Status != BillStatusConfirmed {
		return nil, errors.New("only confirmed bills accept payments")
	}

	return CreateTransaction(ctx, &NewTransaction{
		Type:        TransactionTypeReceipt,
		Date:        date,
		Amount:      amount,
		Category:    "Bill Payment",
		Description: "Payment received",
		ProjectId:   bill.ProjectId,
		ContactId:   bill.CustomerId,
	})
}
