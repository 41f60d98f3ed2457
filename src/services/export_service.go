package services

import (
	"fmt"
	"time"

	"cryptodash/src/schemas"

	"github.com/xuri/excelize/v2"
)

const (
	currentSheet = "Current Holdings"
	historySheet = "History"
)

// ExportService renders the portfolio view as an XLSX workbook: one sheet
// with the current allocation, one with the per-day history series.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

func (s *ExportService) BuildWorkbook(result schemas.ValuationResult, history []schemas.HistoryPoint, days int) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.writeCurrentSheet(f, result); err != nil {
		return nil, err
	}
	if err := s.writeHistorySheet(f, history, days); err != nil {
		return nil, err
	}

	// Drop the default sheet so the workbook opens on the holdings view.
	index, err := f.GetSheetIndex(currentSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ExportService) writeCurrentSheet(f *excelize.File, result schemas.ValuationResult) error {
	if _, err := f.NewSheet(currentSheet); err != nil {
		return err
	}

	headers := []interface{}{"Symbol", "Name", "Allocation", "Amount (10k)", "Profit Rate", "Source"}
	if err := f.SetSheetRow(currentSheet, "A1", &headers); err != nil {
		return err
	}

	for i, row := range result.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.Symbol,
			row.Name,
			row.RateText,
			row.Amount.StringFixed(2),
			row.ProfitRate.StringFixed(2) + "%",
			string(result.Source),
		}
		if err := f.SetSheetRow(currentSheet, cell, &values); err != nil {
			return err
		}
	}

	totalCell := fmt.Sprintf("A%d", len(result.Rows)+3)
	total := []interface{}{"Total", "", "", result.TotalValue.DivRound(tenThousand, 2).StringFixed(2)}
	return f.SetSheetRow(currentSheet, totalCell, &total)
}

func (s *ExportService) writeHistorySheet(f *excelize.File, history []schemas.HistoryPoint, days int) error {
	name := fmt.Sprintf("%s (%dd)", historySheet, days)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	headers := []interface{}{"Date", "Asset", "Allocation", "Value"}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}

	for i, point := range history {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			point.Date,
			point.Name,
			point.Percentage.StringFixed(2) + "%",
			point.Value.StringFixed(2),
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// ExportFilename names the download with the current date, matching the
// dashboard's convention.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("crypto_holdings_%s.xlsx", now.Format("2006-01-02"))
}
