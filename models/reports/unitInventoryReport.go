package reports

import (
	"sort"

	"github.com/mmdatafocus/estates_backend/models"
	"github.com/shopspring/decimal"
)

type UnitInventoryRow struct {
	ProjectId      int             `json:"projectId"`
	ProjectName    string          `json:"projectName"`
	TotalUnits     int             `json:"totalUnits"`
	AvailableUnits int             `json:"availableUnits"`
	ReservedUnits  int             `json:"reservedUnits"`
	SoldUnits      int             `json:"soldUnits"`
	StockOnHand    decimal.Decimal `json:"stockOnHand"`
	AvailableValue decimal.Decimal `json:"availableValue"`
}

type UnitInventoryParams struct {
	ProjectId int
	Status    models.UnitStatus
}

// GetUnitInventoryReport counts units per project by status. AvailableValue
// is the list price of unsold stock, so it tracks what is still sellable.
func GetUnitInventoryReport(units []models.Unit, projects []models.Project, params UnitInventoryParams) []UnitInventoryRow {
	projectNames := make(map[int]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	rows := map[int]*UnitInventoryRow{}
	for _, u := range units {
		if params.ProjectId > 0 && u.ProjectId != params.ProjectId {
			continue
		}
		if params.Status != "" && u.Status != params.Status {
			continue
		}
		row, ok := rows[u.ProjectId]
		if !ok {
			row = &UnitInventoryRow{ProjectId: u.ProjectId, ProjectName: projectNames[u.ProjectId]}
			rows[u.ProjectId] = row
		}
		row.TotalUnits++
		switch u.Status {
		case models.UnitStatusAvailable:
			row.AvailableUnits++
			row.AvailableValue = row.AvailableValue.Add(u.ListPrice.Mul(u.StockQty))
		case models.UnitStatusReserved:
			row.ReservedUnits++
		case models.UnitStatusSold:
			row.SoldUnits++
		}
		row.StockOnHand = row.StockOnHand.Add(u.StockQty)
	}

	result := make([]UnitInventoryRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProjectName != result[j].ProjectName {
			return result[i].ProjectName < result[j].ProjectName
		}
		return result[i].ProjectId < result[j].ProjectId
	})
	return result
}
