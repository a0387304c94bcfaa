package reports

import (
	"testing"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cashFlowFixture() []models.Transaction {
	return []models.Transaction{
		// before the window: feeds the opening balance
		{ID: 1, Type: models.TransactionTypeReceipt, Date: day(2025, time.February, 10), Amount: dec("800000"), Category: "Down Payment"},
		{ID: 2, Type: models.TransactionTypePayment, Date: day(2025, time.February, 20), Amount: dec("300000"), Category: "Construction"},
		// inside the window
		{ID: 3, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 5), Amount: dec("500000"), Category: "Installment"},
		{ID: 4, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 12), Amount: dec("250000"), Category: "Installment"},
		{ID: 5, Type: models.TransactionTypePayment, Date: day(2025, time.March, 15), Amount: dec("120000"), Category: "Maintenance"},
		{ID: 6, Type: models.TransactionTypeSalary, Date: day(2025, time.March, 25), Amount: dec("200000"), Category: ""},
		// after the window: ignored entirely
		{ID: 7, Type: models.TransactionTypeReceipt, Date: day(2025, time.April, 2), Amount: dec("999999"), Category: "Installment"},
	}
}

func TestGetCashFlowReport_OpeningNetAndClosing(t *testing.T) {
	report := GetCashFlowReport(cashFlowFixture(), CashFlowParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})

	if !report.BeginCashBalance.Equal(dec("500000")) {
		t.Errorf("BeginCashBalance = %s, want 500000", report.BeginCashBalance)
	}
	if !report.Inflows.Total.Equal(dec("750000")) {
		t.Errorf("Inflows.Total = %s, want 750000", report.Inflows.Total)
	}
	if !report.Outflows.Total.Equal(dec("320000")) {
		t.Errorf("Outflows.Total = %s, want 320000", report.Outflows.Total)
	}
	if !report.NetChange.Equal(dec("430000")) {
		t.Errorf("NetChange = %s, want 430000", report.NetChange)
	}
	if !report.EndCashBalance.Equal(report.BeginCashBalance.Add(report.NetChange)) {
		t.Errorf("EndCashBalance %s != begin %s + net %s",
			report.EndCashBalance, report.BeginCashBalance, report.NetChange)
	}
}

func TestGetCashFlowReport_CategorySections(t *testing.T) {
	report := GetCashFlowReport(cashFlowFixture(), CashFlowParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})

	if len(report.Inflows.Categories) != 1 {
		t.Fatalf("expected 1 inflow category, got %d", len(report.Inflows.Categories))
	}
	installment := report.Inflows.Categories[0]
	if installment.Category != "Installment" || !installment.Amount.Equal(dec("750000")) {
		t.Errorf("inflow category = %s %s, want Installment 750000", installment.Category, installment.Amount)
	}

	if len(report.Outflows.Categories) != 2 {
		t.Fatalf("expected 2 outflow categories, got %d", len(report.Outflows.Categories))
	}
	// sorted by category name; the blank salary category lands in Uncategorized
	if report.Outflows.Categories[0].Category != "Maintenance" {
		t.Errorf("first outflow category = %s, want Maintenance", report.Outflows.Categories[0].Category)
	}
	uncategorized := report.Outflows.Categories[1]
	if uncategorized.Category != "Uncategorized" || !uncategorized.Amount.Equal(dec("200000")) {
		t.Errorf("second outflow category = %s %s, want Uncategorized 200000",
			uncategorized.Category, uncategorized.Amount)
	}
}

func TestGetCashFlowReport_ProjectFilter(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 5), Amount: dec("100000"), Category: "Installment", ProjectId: 1},
		{ID: 2, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 6), Amount: dec("50000"), Category: "Installment", ProjectId: 2},
	}
	report := GetCashFlowReport(transactions, CashFlowParams{
		FromDate:  day(2025, time.March, 1),
		ToDate:    day(2025, time.March, 31),
		ProjectId: 2,
	})
	if !report.Inflows.Total.Equal(dec("50000")) {
		t.Errorf("Inflows.Total = %s, want 50000 (project 2 only)", report.Inflows.Total)
	}
}

func TestGetCashFlowReport_EmptyLog(t *testing.T) {
	report := GetCashFlowReport(nil, CashFlowParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})
	if !report.BeginCashBalance.IsZero() || !report.NetChange.IsZero() || !report.EndCashBalance.IsZero() {
		t.Errorf("empty log should produce all-zero balances: %+v", report)
	}
	if len(report.Inflows.Categories) != 0 || len(report.Outflows.Categories) != 0 {
		t.Error("empty log should produce empty category lists")
	}
}
