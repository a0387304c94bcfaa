package models

import (
	"encoding/json"
	"errors"
)

// PlanStatus is the lifecycle state of one installment-plan version.
type PlanStatus string

const (
	PlanStatusDraft           PlanStatus = "Draft"
	PlanStatusPendingApproval PlanStatus = "Pending Approval"
	PlanStatusApproved        PlanStatus = "Approved"
	PlanStatusRejected        PlanStatus = "Rejected"
	PlanStatusLocked          PlanStatus = "Locked"
)

func (t *PlanStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("plan status must be string")
	}
	switch str {
	case "Draft":
		*t = PlanStatusDraft
	case "Pending Approval":
		*t = PlanStatusPendingApproval
	case "Approved":
		*t = PlanStatusApproved
	case "Rejected":
		*t = PlanStatusRejected
	case "Locked":
		*t = PlanStatusLocked
	default:
		return errors.New("invalid plan status")
	}
	return nil
}

// PaymentFrequency selects the installment cadence.
type PaymentFrequency string

const (
	PaymentFrequencyMonthly   PaymentFrequency = "Monthly"
	PaymentFrequencyQuarterly PaymentFrequency = "Quarterly"
	PaymentFrequencyYearly    PaymentFrequency = "Yearly"
)

// Months returns the gap between consecutive installments.
// Unknown values fall back to Monthly.
func (t PaymentFrequency) Months() int {
	switch t {
	case PaymentFrequencyQuarterly:
		return 3
	case PaymentFrequencyYearly:
		return 12
	default:
		return 1
	}
}

func (t *PaymentFrequency) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("payment frequency must be string")
	}
	switch str {
	case "Monthly":
		*t = PaymentFrequencyMonthly
	case "Quarterly":
		*t = PaymentFrequencyQuarterly
	case "Yearly":
		*t = PaymentFrequencyYearly
	default:
		return errors.New("invalid payment frequency")
	}
	return nil
}

// ContactType classifies a contact for report dimension filters.
type ContactType string

const (
	ContactTypeLead   ContactType = "Lead"
	ContactTypeBroker ContactType = "Broker"
	ContactTypeOwner  ContactType = "Owner"
)

type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "Available"
	UnitStatusReserved  UnitStatus = "Reserved"
	UnitStatusSold      UnitStatus = "Sold"
)

type BillStatus string

const (
	BillStatusDraft     BillStatus = "Draft"
	BillStatusConfirmed BillStatus = "Confirmed"
	BillStatusVoid      BillStatus = "Void"
)

type PayslipStatus string

const (
	PayslipStatusPending PayslipStatus = "Pending"
	PayslipStatusPaid    PayslipStatus = "Paid"
)

// TransactionType categorizes entries in the org transaction log.
type TransactionType string

const (
	TransactionTypeReceipt    TransactionType = "Receipt"
	TransactionTypePayment    TransactionType = "Payment"
	TransactionTypeCommission TransactionType = "Commission"
	TransactionTypeSalary     TransactionType = "Salary"
)
