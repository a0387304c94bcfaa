package reports

import (
	"testing"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
)

func brokerFixture() ([]models.Agreement, []models.Transaction, []models.Contact, []models.Unit) {
	contacts := []models.Contact{
		{ID: 9, Type: models.ContactTypeBroker, Name: "Aung Kyaw", CommissionRate: dec("2")},
		{ID: 10, Type: models.ContactTypeBroker, Name: "Su Su", CommissionRate: dec("1.5")},
		{ID: 11, Type: models.ContactTypeLead, Name: "Not A Broker", CommissionRate: dec("99")},
	}
	units := []models.Unit{
		{ID: 100, ProjectId: 1, Name: "A-101", BrokerId: 9},
		{ID: 101, ProjectId: 1, Name: "A-102", BrokerId: 9},
		{ID: 102, ProjectId: 2, Name: "B-201", BrokerId: 10},
		{ID: 103, ProjectId: 2, Name: "B-202"}, // no broker
	}
	agreements := []models.Agreement{
		{ID: 1, UnitId: 100, NetValue: dec("1000000"), AgreementDate: day(2025, time.March, 5)},
		{ID: 2, UnitId: 101, NetValue: dec("500000"), AgreementDate: day(2025, time.March, 18)},
		{ID: 3, UnitId: 102, NetValue: dec("2000000"), AgreementDate: day(2025, time.March, 20)},
		{ID: 4, UnitId: 103, NetValue: dec("750000"), AgreementDate: day(2025, time.March, 22)},
		{ID: 5, UnitId: 100, NetValue: dec("999999"), AgreementDate: day(2025, time.April, 2)}, // outside window
	}
	transactions := []models.Transaction{
		{ID: 1, Type: models.TransactionTypeCommission, Date: day(2025, time.March, 25), Amount: dec("10000"), BrokerId: 9},
		{ID: 2, Type: models.TransactionTypeCommission, Date: day(2025, time.March, 26), Amount: dec("5000"), BrokerId: 9},
		{ID: 3, Type: models.TransactionTypePayment, Date: day(2025, time.March, 27), Amount: dec("77777"), BrokerId: 9}, // not a commission
		{ID: 4, Type: models.TransactionTypeCommission, Date: day(2025, time.April, 9), Amount: dec("8888"), BrokerId: 10}, // outside window
	}
	return agreements, transactions, contacts, units
}

func TestGetBrokerCommissionReport_DueAndOutstanding(t *testing.T) {
	agreements, transactions, contacts, units := brokerFixture()
	rows := GetBrokerCommissionReport(agreements, transactions, contacts, units, BrokerCommissionParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 broker rows, got %d", len(rows))
	}

	// sorted by broker name
	aung := rows[0]
	if aung.BrokerName != "Aung Kyaw" {
		t.Fatalf("first row = %s, want Aung Kyaw", aung.BrokerName)
	}
	if aung.DealCount != 2 {
		t.Errorf("Aung Kyaw deal count = %d, want 2", aung.DealCount)
	}
	if !aung.SalesVolume.Equal(dec("1500000")) {
		t.Errorf("Aung Kyaw sales volume = %s, want 1500000", aung.SalesVolume)
	}
	// 2% of 1000000 plus 2% of 500000
	if !aung.CommissionDue.Equal(dec("30000")) {
		t.Errorf("Aung Kyaw commission due = %s, want 30000", aung.CommissionDue)
	}
	if !aung.CommissionPaid.Equal(dec("15000")) {
		t.Errorf("Aung Kyaw commission paid = %s, want 15000", aung.CommissionPaid)
	}
	if !aung.Outstanding.Equal(dec("15000")) {
		t.Errorf("Aung Kyaw outstanding = %s, want 15000", aung.Outstanding)
	}

	su := rows[1]
	if su.BrokerName != "Su Su" {
		t.Fatalf("second row = %s, want Su Su", su.BrokerName)
	}
	// 1.5% of 2000000; the April payment is outside the window
	if !su.CommissionDue.Equal(dec("30000")) || !su.CommissionPaid.IsZero() {
		t.Errorf("Su Su due=%s paid=%s, want due=30000 paid=0", su.CommissionDue, su.CommissionPaid)
	}
}

func TestGetBrokerCommissionReport_PerDealRounding(t *testing.T) {
	contacts := []models.Contact{
		{ID: 9, Type: models.ContactTypeBroker, Name: "Aung Kyaw", CommissionRate: dec("2.5")},
	}
	units := []models.Unit{{ID: 100, Name: "A-101", BrokerId: 9}}
	agreements := []models.Agreement{
		{ID: 1, UnitId: 100, NetValue: dec("100001"), AgreementDate: day(2025, time.March, 5)},
	}
	rows := GetBrokerCommissionReport(agreements, nil, contacts, units, BrokerCommissionParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	// 100001 * 2.5% = 2500.025, rounded to 2dp
	if rows[0].CommissionDue.String() != "2500.03" {
		t.Errorf("commission due = %s, want 2500.03", rows[0].CommissionDue)
	}
}

func TestGetBrokerCommissionReport_UnbrokeredDealsExcluded(t *testing.T) {
	agreements, transactions, contacts, units := brokerFixture()
	rows := GetBrokerCommissionReport(agreements, transactions, contacts, units, BrokerCommissionParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
	})
	var total int
	for _, row := range rows {
		total += row.DealCount
	}
	// agreement 4 has no broker on its unit, agreement 5 is outside the window
	if total != 3 {
		t.Errorf("total deals = %d, want 3", total)
	}
}

func TestGetBrokerCommissionReport_BrokerFilter(t *testing.T) {
	agreements, transactions, contacts, units := brokerFixture()
	rows := GetBrokerCommissionReport(agreements, transactions, contacts, units, BrokerCommissionParams{
		FromDate: day(2025, time.March, 1),
		ToDate:   day(2025, time.March, 31),
		BrokerId: 10,
	})
	if len(rows) != 1 || rows[0].BrokerId != 10 {
		t.Fatalf("expected only broker 10, got %+v", rows)
	}
}
