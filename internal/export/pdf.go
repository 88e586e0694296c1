// Package export writes the roof cutting list and framing plan to the file
// formats a workshop orders and labels against.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/gardenkit/roofsmith/internal/bom"
	"github.com/gardenkit/roofsmith/internal/config"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 7.0
	headerHeight = 12.0
)

// Column widths for the 5-column cutting list table.
var colWidths = [5]float64{72, 16, 26, 26, 40}

var colTitles = [5]string{"Item", "Qty", "Length (mm)", "Width (mm)", "Notes"}

// ExportPDF writes the cutting list as an A4 report: a header describing
// the configuration, the 5-column table, and the TOTAL FRAME rollup.
func ExportPDF(path string, b config.Building, table bom.Table) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("no rows to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	d := config.Resolve(b)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Roof cutting list - %s, %d x %d mm", b.Roof.Style, d.FrameWidth, d.FrameDepth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	sub := fmt.Sprintf("Roof plan %d x %d mm | gauge %dx%d | walls %s",
		d.RoofWidth, d.RoofDepth, d.Gauge.Width, d.Gauge.Depth, b.Walls.Variant)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, sub, "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 10
	y = drawTableHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range table.Rows {
		if y > pageHeight-marginBottom-2*rowHeight {
			pdf.AddPage()
			y = drawTableHeader(pdf, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		drawRow(pdf, y, [5]string{
			r.Item,
			fmt.Sprintf("%d", r.Quantity),
			fmt.Sprintf("%.0f", r.Length),
			fmt.Sprintf("%.0f", r.Width),
			r.Notes,
		}, false)
		y += rowHeight
	}

	total := table.TotalRow()
	drawRow(pdf, y, [5]string{
		total.Item,
		fmt.Sprintf("%d", total.Quantity),
		fmt.Sprintf("%.0f", total.Length),
		"",
		total.Notes,
	}, true)

	return pdf.OutputFileAndClose(path)
}

func drawTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, title := range colTitles {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, title, "1", 0, "L", true, 0, "")
		x += colWidths[i]
	}
	return y + rowHeight
}

func drawRow(pdf *fpdf.Fpdf, y float64, cells [5]string, bold bool) {
	if bold {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)
	}
	x := marginLeft
	for i, c := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, c, "1", 0, "L", bold, 0, "")
		x += colWidths[i]
	}
}
