package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/utils"
	"github.com/shopspring/decimal"
)

type CashFlowResponse struct {
	BeginCashBalance decimal.Decimal  `json:"beginCashBalance"`
	NetChange        decimal.Decimal  `json:"netChange"`
	EndCashBalance   decimal.Decimal  `json:"endCashBalance"`
	Inflows          CashFlowSection  `json:"inflows"`
	Outflows         CashFlowSection  `json:"outflows"`
}

type CashFlowSection struct {
	Total      decimal.Decimal    `json:"total"`
	Categories []CashFlowCategory `json:"categories"`
}

type CashFlowCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type CashFlowParams struct {
	FromDate  time.Time
	ToDate    time.Time
	ProjectId int
}

// GetCashFlowReport splits the transaction log into inflows and outflows by
// category. Receipts are inflows; payments, commissions and salaries are
// outflows. The opening balance is the net of everything before FromDate,
// so closing always equals opening plus net change.
func GetCashFlowReport(transactions []models.Transaction, params CashFlowParams) CashFlowResponse {
	begin := decimal.Zero
	inflows := map[string]decimal.Decimal{}
	outflows := map[string]decimal.Decimal{}

	for _, t := range transactions {
		if params.ProjectId > 0 && t.ProjectId != params.ProjectId {
			continue
		}
		inflow := t.Type == models.TransactionTypeReceipt
		if t.Date.Before(params.FromDate) {
			if inflow {
				begin = begin.Add(t.Amount)
			} else {
				begin = begin.Sub(t.Amount)
			}
			continue
		}
		if t.Date.After(params.ToDate) {
			continue
		}
		category := t.Category
		if category == "" {
			category = "Uncategorized"
		}
		if inflow {
			inflows[category] = inflows[category].Add(t.Amount)
		} else {
			outflows[category] = outflows[category].Add(t.Amount)
		}
	}

	in := buildSection(inflows)
	out := buildSection(outflows)
	netChange := in.Total.Sub(out.Total)

	return CashFlowResponse{
		BeginCashBalance: begin,
		NetChange:        netChange,
		EndCashBalance:   begin.Add(netChange),
		Inflows:          in,
		Outflows:         out,
	}
}

// GetCashFlowReportCached loads the transaction log and serves the report
// through the redis cache when ENABLE_REPORT_CACHE is on.
func GetCashFlowReportCached(ctx context.Context, params CashFlowParams) (CashFlowResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "cash_flow", started, map[string]any{"project_id": params.ProjectId})

	orgId, _ := utils.GetOrgIdFromContext(ctx)
	key := fmt.Sprintf("report:cashflow:%s:%s:%s:%d",
		orgId, params.FromDate.Format("2006-01-02"), params.ToDate.Format("2006-01-02"), params.ProjectId)

	if reportCacheEnabled() {
		var cached CashFlowResponse
		if ok, err := cacheGet(key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	// the log before FromDate feeds the opening balance, so load from epoch
	transactions, err := models.ListTransactions(ctx, time.Time{}, params.ToDate)
	if err != nil {
		return CashFlowResponse{}, err
	}
	report := GetCashFlowReport(transactions, params)

	if reportCacheEnabled() {
		_ = cacheSet(key, report, reportCacheTTL())
	}
	return report, nil
}

func buildSection(byCategory map[string]decimal.Decimal) CashFlowSection {
	section := CashFlowSection{Categories: make([]CashFlowCategory, 0, len(byCategory))}
	for name, amount := range byCategory {
		section.Categories = append(section.Categories, CashFlowCategory{Category: name, Amount: amount})
		section.Total = section.Total.Add(amount)
	}
	sort.Slice(section.Categories, func(i, j int) bool {
		return section.Categories[i].Category < section.Categories[j].Category
	})
	return section
}
