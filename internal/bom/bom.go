// Package bom turns builder part lists into grouped, sorted cutting-list
// rows plus total-stock rollups.
package bom

import (
	"math"
	"sort"
)

// StockLength is the fixed supplier length of structural timber in mm. The
// TOTAL FRAME rollup reports how many such pieces the cut list needs.
const StockLength = 6200.0

// Row is one cutting-list line. Rows with identical item, length, width and
// notes merge with summed quantity.
type Row struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Length   float64 `json:"length_mm"`
	Width    float64 `json:"width_mm"`
	Notes    string  `json:"notes,omitempty"`

	// Sheet marks sheet-material rows, which are excluded from the
	// TOTAL FRAME linear-length rollup.
	Sheet bool `json:"sheet,omitempty"`
}

// Table is a complete cutting list for one configuration.
type Table struct {
	Rows []Row `json:"rows"`

	// TotalFrameLength is the summed length of all timber rows in mm.
	TotalFrameLength float64 `json:"total_frame_length_mm"`
	// StockPieces is the number of fixed-length stock lengths required.
	StockPieces int `json:"stock_pieces"`
}

type mergeKey struct {
	item   string
	length float64
	width  float64
	notes  string
}

// Build merges and sorts raw rows and computes the TOTAL FRAME rollup.
// The layout is deterministic: grouped by item name, longest pieces first.
func Build(rows []Row) Table {
	merged := make(map[mergeKey]Row)
	var order []mergeKey
	for _, r := range rows {
		if r.Quantity <= 0 {
			continue
		}
		k := mergeKey{item: r.Item, length: round1(r.Length), width: round1(r.Width), notes: r.Notes}
		if have, ok := merged[k]; ok {
			have.Quantity += r.Quantity
			merged[k] = have
			continue
		}
		merged[k] = r
		order = append(order, k)
	}

	out := make([]Row, 0, len(order))
	for _, k := range order {
		r := merged[k]
		r.Length = k.length
		r.Width = k.width
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Item != out[j].Item {
			return out[i].Item < out[j].Item
		}
		if out[i].Length != out[j].Length {
			return out[i].Length > out[j].Length
		}
		return out[i].Width > out[j].Width
	})

	var total float64
	for _, r := range out {
		if r.Sheet {
			continue
		}
		total += r.Length * float64(r.Quantity)
	}

	t := Table{Rows: out, TotalFrameLength: total}
	if total > 0 {
		t.StockPieces = int(math.Ceil(total / StockLength))
	}
	return t
}

// TotalRow synthesizes the "TOTAL FRAME" line appended to rendered tables.
func (t Table) TotalRow() Row {
	return Row{
		Item:     "TOTAL FRAME",
		Quantity: t.StockPieces,
		Length:   t.TotalFrameLength,
		Notes:    "stock pieces at 6200 mm, sheets excluded",
	}
}

// round1 rounds to 0.1 mm so float noise never splits merge groups.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
