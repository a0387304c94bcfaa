package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is one line of a generated payment schedule.
type ScheduleEntry struct {
	Label   string          `json:"label"`
	DueDate *time.Time      `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// ScheduleInput is the calculator output slice the generator needs.
type ScheduleInput struct {
	NetValue          decimal.Decimal
	DownPaymentAmount decimal.Decimal
	TotalInstallments int
	InstallmentAmount decimal.Decimal
	FrequencyMonths   int
	StartDate         time.Time
}

// GenerateSchedule produces the ordered schedule: an "Initial" down-payment
// entry due at booking, then TotalInstallments entries due i x
// FrequencyMonths months after StartDate.
//
// The last installment's amount is whatever balance remains before it, not
// the computed per-installment amount, so the final balance lands on exactly
// zero regardless of division rounding in the earlier lines. Displayed
// balances are clamped at zero.
func GenerateSchedule(input ScheduleInput) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, input.TotalInstallments+1)

	balance := input.NetValue.Sub(input.DownPaymentAmount)
	entries = append(entries, ScheduleEntry{
		Label:   "Initial",
		DueDate: nil, // due at booking
		Amount:  input.DownPaymentAmount,
		Balance: clampToZero(balance),
	})

	for i := 1; i <= input.TotalInstallments; i++ {
		amount := input.InstallmentAmount
		if i == input.TotalInstallments {
			amount = balance
		}
		balance = balance.Sub(amount)

		due := input.StartDate.AddDate(0, i*input.FrequencyMonths, 0)
		entries = append(entries, ScheduleEntry{
			Label:   installmentLabel(i),
			DueDate: &due,
			Amount:  amount,
			Balance: clampToZero(balance),
		})
	}

	return entries
}

func installmentLabel(i int) string {
	return "Installment " + strconv.Itoa(i)
}

func clampToZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
