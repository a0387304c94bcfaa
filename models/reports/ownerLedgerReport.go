// Package reports builds the financial report screens. Every builder is a
// pure function over in-memory collections: filter by date range and
// dimension, then reduce into rows. Nothing here touches the DB, so the
// same snapshot always renders the same report.
package reports

import (
	"sort"
	"time"

	"github.com/mmdatafocus/estates_backend/models"
	"github.com/shopspring/decimal"
)

type OwnerLedgerRow struct {
	Date        time.Time       `json:"date"`
	Group       string          `json:"group"`
	Type        models.TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type OwnerLedgerParams struct {
	FromDate time.Time
	ToDate   time.Time
	OwnerId  int
	// GroupBy "" or "project"; grouping resets the running balance at each
	// group boundary.
	GroupBy string
	// SortBy "date" (default) or "amount"; sorting applies inside groups.
	SortBy string
}

// GetOwnerLedgerReport reduces the transaction log into ledger rows with a
// running balance. Receipts credit the ledger, everything else debits it.
func GetOwnerLedgerReport(transactions []models.Transaction, projects []models.Project, params OwnerLedgerParams) []OwnerLedgerRow {
	projectNames := make(map[int]string, len(projects))
	ownedProjects := make(map[int]bool)
	for _, p := range projects {
		projectNames[p.ID] = p.Name
		if params.OwnerId > 0 && p.OwnerId == params.OwnerId {
			ownedProjects[p.ID] = true
		}
	}

	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.Before(params.FromDate) || t.Date.After(params.ToDate) {
			continue
		}
		if params.OwnerId > 0 && t.OwnerId != params.OwnerId && !ownedProjects[t.ProjectId] {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if params.GroupBy == "project" && a.ProjectId != b.ProjectId {
			return a.ProjectId < b.ProjectId
		}
		if params.SortBy == "amount" {
			return a.Amount.LessThan(b.Amount)
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	rows := make([]OwnerLedgerRow, 0, len(filtered))
	balance := decimal.Zero
	currentGroup := ""
	for _, t := range filtered {
		group := ""
		if params.GroupBy == "project" {
			group = projectNames[t.ProjectId]
		}
		if group != currentGroup {
			// group boundary: the running balance starts over
			balance = decimal.Zero
			currentGroup = group
		}

		var debit, credit decimal.Decimal
		if t.Type == models.TransactionTypeReceipt {
			credit = t.Amount
			balance = balance.Add(t.Amount)
		} else {
			debit = t.Amount
			balance = balance.Sub(t.Amount)
		}

		rows = append(rows, OwnerLedgerRow{
			Date:        t.Date,
			Group:       group,
			Type:        t.Type,
			Category:    t.Category,
			Description: t.Description,
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}
	return rows
}
