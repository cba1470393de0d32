// Package xlsxexport builds Excel workbooks for statutory report
// downloads. It renders the same pre-formatted row data as the CSV
// exporter, one sheet per report section.
package xlsxexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gstbooks/internal/domain"
)

const (
	gstr1Sheet  = "GSTR-1"
	gstr3bSheet = "GSTR-3B"
)

var gstr1Header = []string{
	"SupplierGSTIN", "RecipientGSTIN", "InvoiceNo", "InvoiceDate",
	"InvoiceValue", "PlaceOfSupply", "Rate", "TaxableValue",
	"IGST", "CentralTax", "StateTax", "Cess", "EWayBillNo", "DocumentType",
}

var gstr3bHeader = []string{"Taxable", "CGST", "SGST", "IGST", "Cess"}

// BuildPeriodWorkbook renders the period report as a two-sheet
// workbook: GSTR-1 rows and the GSTR-3B totals row.
func BuildPeriodWorkbook(rows []domain.GstrRow, totals domain.PeriodTotalsExport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), gstr1Sheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(gstr3bSheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: header style: %w", err)
	}

	if err := writeSheet(f, gstr1Sheet, headerStyle, gstr1Header, gstr1Rows(rows)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, gstr3bSheet, headerStyle, gstr3bHeader, [][]string{{
		totals.Taxable, totals.CGST, totals.SGST, totals.IGST, totals.Cess,
	}}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func gstr1Rows(rows []domain.GstrRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.SupplierGSTIN, r.RecipientGSTIN, r.InvoiceNumber, r.InvoiceDate,
			r.InvoiceValue, r.PlaceOfSupply, r.Rate, r.TaxableValue,
			r.IGST, r.CGST, r.SGST, r.Cess, r.EWayBillNo, r.DocumentType,
		})
	}
	return out
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]string) error {
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("xlsxexport: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("xlsxexport: set header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("xlsxexport: style header: %w", err)
		}
	}

	for i, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsxexport: cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("xlsxexport: set cell: %w", err)
			}
		}
	}

	end, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", end, 18); err != nil {
		return fmt.Errorf("xlsxexport: col width: %w", err)
	}
	return nil
}
