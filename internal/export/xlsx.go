package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gardenkit/roofsmith/internal/bom"
	"github.com/gardenkit/roofsmith/internal/config"
)

// ExportXLSX writes the cutting list as a workbook: one sheet with the
// 5-column table plus the TOTAL FRAME row, and a configuration sheet so
// the order can be traced back to its inputs.
func ExportXLSX(path string, b config.Building, table bom.Table) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("no rows to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cutting List"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := []interface{}{"Item", "Qty", "Length (mm)", "Width (mm)", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	for _, r := range table.Rows {
		row := []interface{}{r.Item, r.Quantity, r.Length, r.Width, r.Notes}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
		rowNum++
	}

	total := table.TotalRow()
	totalRow := []interface{}{total.Item, total.Quantity, total.Length, "", total.Notes}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum+1), &totalRow); err != nil {
		return err
	}

	d := config.Resolve(b)
	const cfgSheet = "Configuration"
	if _, err := f.NewSheet(cfgSheet); err != nil {
		return err
	}
	cfgRows := [][]interface{}{
		{"Roof style", b.Roof.Style},
		{"Frame width (mm)", d.FrameWidth},
		{"Frame depth (mm)", d.FrameDepth},
		{"Roof plan width (mm)", d.RoofWidth},
		{"Roof plan depth (mm)", d.RoofDepth},
		{"Gauge (mm)", fmt.Sprintf("%dx%d", d.Gauge.Width, d.Gauge.Depth)},
		{"Wall variant", b.Walls.Variant},
		{"Total frame length (mm)", table.TotalFrameLength},
		{"Stock pieces (6200 mm)", table.StockPieces},
	}
	for i, row := range cfgRows {
		if err := f.SetSheetRow(cfgSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
