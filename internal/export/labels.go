package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/gardenkit/roofsmith/internal/bom"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	Item     string  `json:"item"`
	Piece    int     `json:"piece"`
	Quantity int     `json:"qty"`
	Length   float64 `json:"length_mm"`
	Width    float64 `json:"width_mm"`
	Sheet    bool    `json:"sheet,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for the cutting list.
// Each label contains the item name, dimensions, and a QR code encoding
// the row metadata as JSON. One label is printed per physical piece, so a
// row with quantity 6 yields six labels. Labels are laid out on a standard
// label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, table bom.Table) error {
	labels := CollectLabelInfos(table)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Item, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Item name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate item name if too long
	item := info.Item
	if pdf.GetStringWidth(item) > textW {
		for len(item) > 0 && pdf.GetStringWidth(item+"...") > textW {
			item = item[:len(item)-1]
		}
		item += "..."
	}
	pdf.CellFormat(textW, 4.5, item, "", 1, "L", false, 0, "")

	// Dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Length, info.Width)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Piece counter within the row
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pieceInfo := fmt.Sprintf("Piece %d of %d", info.Piece, info.Quantity)
	pdf.CellFormat(textW, 3, pieceInfo, "", 1, "L", false, 0, "")

	// Notes line
	if info.Notes != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		notes := info.Notes
		if pdf.GetStringWidth(notes) > textW {
			for len(notes) > 0 && pdf.GetStringWidth(notes+"...") > textW {
				notes = notes[:len(notes)-1]
			}
			notes += "..."
		}
		pdf.CellFormat(textW, 3, notes, "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos expands a cutting list into per-piece label data
// for use in testing or alternative export formats.
func CollectLabelInfos(table bom.Table) []LabelInfo {
	var labels []LabelInfo
	for _, r := range table.Rows {
		for p := 1; p <= r.Quantity; p++ {
			labels = append(labels, LabelInfo{
				Item:     r.Item,
				Piece:    p,
				Quantity: r.Quantity,
				Length:   r.Length,
				Width:    r.Width,
				Sheet:    r.Sheet,
				Notes:    r.Notes,
			})
		}
	}
	return labels
}
