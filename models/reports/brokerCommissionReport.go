package reports

import (
	"sort"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
	"github.com/shopspring/decimal"
)

type BrokerCommissionRow struct {
	BrokerId       int             `json:"brokerId"`
	BrokerName     string          `json:"brokerName"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	DealCount      int             `json:"dealCount"`
	SalesVolume    decimal.Decimal `json:"salesVolume"`
	CommissionDue  decimal.Decimal `json:"commissionDue"`
	CommissionPaid decimal.Decimal `json:"commissionPaid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

type BrokerCommissionParams struct {
	FromDate time.Time
	ToDate   time.Time
	BrokerId int
}

// GetBrokerCommissionReport totals each broker's closed agreements against
// the commission payments already logged. The broker comes from the sold
// unit; commission due is the agreement net value times the broker's rate,
// rounded to 2dp per deal.
func GetBrokerCommissionReport(agreements []models.Agreement, transactions []models.Transaction, contacts []models.Contact, units []models.Unit, params BrokerCommissionParams) []BrokerCommissionRow {
	brokers := make(map[int]models.Contact, len(contacts))
	for _, c := range contacts {
		if c.Type == models.ContactTypeBroker {
			brokers[c.ID] = c
		}
	}
	unitBroker := make(map[int]int, len(units))
	for _, u := range units {
		unitBroker[u.ID] = u.BrokerId
	}

	rows := map[int]*BrokerCommissionRow{}
	rowFor := func(brokerId int) *BrokerCommissionRow {
		if row, ok := rows[brokerId]; ok {
			return row
		}
		row := &BrokerCommissionRow{BrokerId: brokerId}
		if broker, ok := brokers[brokerId]; ok {
			row.BrokerName = broker.Name
			row.CommissionRate = broker.CommissionRate
		}
		rows[brokerId] = row
		return row
	}

	for _, a := range agreements {
		brokerId := unitBroker[a.UnitId]
		if brokerId == 0 {
			continue
		}
		if params.BrokerId > 0 && brokerId != params.BrokerId {
			continue
		}
		if a.AgreementDate.Before(params.FromDate) || a.AgreementDate.After(params.ToDate) {
			continue
		}
		row := rowFor(brokerId)
		row.DealCount++
		row.SalesVolume = row.SalesVolume.Add(a.NetValue)
		row.CommissionDue = row.CommissionDue.Add(
			a.NetValue.Mul(row.CommissionRate).DivRound(decimal.NewFromInt(100), 2))
	}

	for _, t := range transactions {
		if t.Type != models.TransactionTypeCommission || t.BrokerId == 0 {
			continue
		}
		if params.BrokerId > 0 && t.BrokerId != params.BrokerId {
			continue
		}
		if t.Date.Before(params.FromDate) || t.Date.After(params.ToDate) {
			continue
		}
		rowFor(t.BrokerId).CommissionPaid = rows[t.BrokerId].CommissionPaid.Add(t.Amount)
	}

	result := make([]BrokerCommissionRow, 0, len(rows))
	for _, row := range rows {
		row.Outstanding = row.CommissionDue.Sub(row.CommissionPaid)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BrokerName != result[j].BrokerName {
			return result[i].BrokerName < result[j].BrokerName
		}
		return result[i].BrokerId < result[j].BrokerId
	})
	return result
}
