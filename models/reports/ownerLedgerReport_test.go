package reports

import (
	"testing"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
)

func ledgerFixture() ([]models.Transaction, []models.Project) {
	projects := []models.Project{
		{ID: 1, Name: "Golden Valley", OwnerId: 50},
		{ID: 2, Name: "Star City", OwnerId: 60},
	}
	transactions := []models.Transaction{
		{ID: 1, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 3), Amount: dec("100000"), Category: "Installment", ProjectId: 1},
		{ID: 2, Type: models.TransactionTypePayment, Date: day(2025, time.March, 8), Amount: dec("30000"), Category: "Maintenance", ProjectId: 1},
		{ID: 3, Type: models.TransactionTypeReceipt, Date: day(2025, time.March, 10), Amount: dec("200000"), Category: "Down Payment", ProjectId: 2},
		{ID: 4, Type: models.TransactionTypeCommission, Date: day(2025, time.March, 12), Amount: dec("15000"), Category: "Commission", ProjectId: 2, BrokerId: 9},
	}
	return transactions, projects
}

func TestGetOwnerLedgerReport_RunningBalance(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	wantBalances := []string{"100000", "70000", "270000", "255000"}
	for i, want := range wantBalances {
		if rows[i].Balance.String() != want {
			t.Errorf("row %d balance = %s, want %s", i, rows[i].Balance, want)
		}
	}
}

func TestGetOwnerLedgerReport_DebitCreditAssignment(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})

	receipt := rows[0]
	if !receipt.Credit.Equal(dec("100000")) || !receipt.Debit.IsZero() {
		t.Errorf("receipt row: credit=%s debit=%s, want credit=100000 debit=0", receipt.Credit, receipt.Debit)
	}
	payment := rows[1]
	if !payment.Debit.Equal(dec("30000")) || !payment.Credit.IsZero() {
		t.Errorf("payment row: debit=%s credit=%s, want debit=30000 credit=0", payment.Debit, payment.Credit)
	}
	commission := rows[3]
	if !commission.Debit.Equal(dec("15000")) {
		t.Errorf("commission should debit the ledger, got debit=%s", commission.Debit)
	}
}

func TestGetOwnerLedgerReport_GroupByProjectResetsBalance(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
		GroupBy:  "project",
	})

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Group != "Golden Valley" || rows[2].Group != "Star City" {
		t.Errorf("group labels = %q, %q", rows[0].Group, rows[2].Group)
	}
	// Star City starts over at the boundary instead of carrying 70000
	if !rows[2].Balance.Equal(dec("200000")) {
		t.Errorf("first Star City balance = %s, want 200000", rows[2].Balance)
	}
	if !rows[3].Balance.Equal(dec("185000")) {
		t.Errorf("second Star City balance = %s, want 185000", rows[3].Balance)
	}
}

func TestGetOwnerLedgerReport_OwnerFilterMatchesOwnedProjects(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
		OwnerId:  60,
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for owner 60, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Category != "Down Payment" && row.Category != "Commission" {
			t.Errorf("unexpected row for owner 60: %+v", row)
		}
	}
}

func TestGetOwnerLedgerReport_OwnerFilterMatchesDirectOwnerId(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Type: models.TransactionTypePayment, Date: day(2025, time.March, 5), Amount: dec("40000"), Category: "Payout", OwnerId: 70},
	}
	rows := GetOwnerLedgerReport(transactions, nil, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
		OwnerId:  70,
	})
	if len(rows) != 1 {
		t.Fatalf("expected the direct owner transaction, got %d rows", len(rows))
	}
}

func TestGetOwnerLedgerReport_SortByAmount(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
		SortBy:   "amount",
	})

	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].Debit.Add(rows[i-1].Credit)
		curr := rows[i].Debit.Add(rows[i].Credit)
		if prev.GreaterThan(curr) {
			t.Errorf("rows not sorted by amount: %s before %s", prev, curr)
		}
	}
}

func TestGetOwnerLedgerReport_DateWindow(t *testing.T) {
	transactions, projects := ledgerFixture()
	rows := GetOwnerLedgerReport(transactions, projects, OwnerLedgerParams{
		FromDate: day(2025, time.March, 9),
		ToDate:   day(2025, time.March, 11),
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row inside the window, got %d", len(rows))
	}
	if rows[0].Category != "Down Payment" {
		t.Errorf("window row category = %s, want Down Payment", rows[0].Category)
	}
}
