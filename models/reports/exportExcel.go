package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteOwnerLedgerExcel renders ledger rows into an xlsx workbook.
func WriteOwnerLedgerExcel(w io.Writer, rows []OwnerLedgerRow) error {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return err
	}

	f.SetCellValue("Sheet1", "A1", "Date")
	f.SetCellValue("Sheet1", "B1", "Group")
	f.SetCellValue("Sheet1", "C1", "Type")
	f.SetCellValue("Sheet1", "D1", "Category")
	f.SetCellValue("Sheet1", "E1", "Description")
	f.SetCellValue("Sheet1", "F1", "Debit")
	f.SetCellValue("Sheet1", "G1", "Credit")
	f.SetCellValue("Sheet1", "H1", "Balance")

	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue("Sheet1", "A"+row, r.Date.Format("2006-01-02"))
		f.SetCellValue("Sheet1", "B"+row, r.Group)
		f.SetCellValue("Sheet1", "C"+row, string(r.Type))
		f.SetCellValue("Sheet1", "D"+row, r.Category)
		f.SetCellValue("Sheet1", "E"+row, r.Description)
		f.SetCellValue("Sheet1", "F"+row, r.Debit.InexactFloat64())
		f.SetCellValue("Sheet1", "G"+row, r.Credit.InexactFloat64())
		f.SetCellValue("Sheet1", "H"+row, r.Balance.InexactFloat64())
	}

	return f.Write(w)
}

// WriteBrokerCommissionExcel renders broker commission rows into an xlsx
// workbook.
func WriteBrokerCommissionExcel(w io.Writer, rows []BrokerCommissionRow) error {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return err
	}

	f.SetCellValue("Sheet1", "A1", "Broker")
	f.SetCellValue("Sheet1", "B1", "Rate %")
	f.SetCellValue("Sheet1", "C1", "Deals")
	f.SetCellValue("Sheet1", "D1", "Sales Volume")
	f.SetCellValue("Sheet1", "E1", "Commission Due")
	f.SetCellValue("Sheet1", "F1", "Commission Paid")
	f.SetCellValue("Sheet1", "G1", "Outstanding")

	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue("Sheet1", "A"+row, r.BrokerName)
		f.SetCellValue("Sheet1", "B"+row, r.CommissionRate.InexactFloat64())
		f.SetCellValue("Sheet1", "C"+row, r.DealCount)
		f.SetCellValue("Sheet1", "D"+row, r.SalesVolume.InexactFloat64())
		f.SetCellValue("Sheet1", "E"+row, r.CommissionDue.InexactFloat64())
		f.SetCellValue("Sheet1", "F"+row, r.CommissionPaid.InexactFloat64())
		f.SetCellValue("Sheet1", "G"+row, r.Outstanding.InexactFloat64())
	}

	return f.Write(w)
}
