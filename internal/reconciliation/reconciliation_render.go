package reconciliation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	noVendor  = "N/A"
	sheetName = "Reconciliation"
)

var exportHeader = []string{
	"Contractor Name",
	"Vendor ID",
	"Potential Working Days",
	"Chargeable Leave (Days)",
	"Non-Chargeable Leave (Days)",
	"TOTAL BILLABLE DAYS",
}

// ExportFilename renders billing_recon_YYYY_MM.<ext>.
func ExportFilename(year, month int, format string) string {
	return fmt.Sprintf("billing_recon_%04d_%02d.%s", year, month, format)
}

func vendorCell(v *string) string {
	if v == nil || *v == "" {
		return noVendor
	}
	return *v
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderCSV writes the header and one line per row.
func RenderCSV(rows []ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.FullName,
			vendorCell(r.VendorID),
			strconv.Itoa(r.TotalWorkingDays),
			formatDays(r.ChargeableLeave),
			formatDays(r.NonChargeableLeave),
			formatDays(r.TotalBillableDays),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderXLSX writes the same columns as RenderCSV into a single sheet with
// numeric cells and a bold, frozen header.
func RenderXLSX(rows []ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			r.FullName,
			vendorCell(r.VendorID),
			r.TotalWorkingDays,
			r.ChargeableLeave,
			r.NonChargeableLeave,
			r.TotalBillableDays,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "F", 22); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
