package models

import (
	"log"

	"github.com/mmdatafocus/estates_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Contact{}, &Project{}, &Unit{},
		&PlanAmenity{},
		&InstallmentPlan{}, &InstallmentPlanDiscount{}, &InstallmentPlanAmenity{},
		&Agreement{},
		&CustomerBill{}, &CustomerBillDetail{},
		&Payslip{}, &PayslipItem{}, &PayslipAllocation{},
		&Transaction{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
