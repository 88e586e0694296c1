// Package geom provides the rectangle tiling primitives shared by every
// roof builder: fixed-module sheet packing and splitting a rectangle around
// rectangular holes.
package geom

// Kind classifies a tiled piece.
type Kind string

const (
	KindStd Kind = "std" // full sheet module
	KindRip Kind = "rip" // edge remainder
	KindCut Kind = "cut" // fragment produced by hole splitting
)

// Rect is an axis-aligned rectangle on a panel's own plane. A and B are the
// offsets of the near corner along the two panel axes; LenA and LenB are the
// extents. All values are millimetres.
type Rect struct {
	A    float64 `json:"a"`
	B    float64 `json:"b"`
	LenA float64 `json:"len_a"`
	LenB float64 `json:"len_b"`
}

// Area returns the rectangle area in square millimetres.
func (r Rect) Area() float64 {
	return r.LenA * r.LenB
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.A < o.A+o.LenA && o.A < r.A+r.LenA &&
		r.B < o.B+o.LenB && o.B < r.B+r.LenB
}

// Contains reports whether the point (a, b) lies strictly inside r.
func (r Rect) Contains(a, b float64) bool {
	return a > r.A && a < r.A+r.LenA && b > r.B && b < r.B+r.LenB
}

// Piece is one tile of a packed or split extent.
type Piece struct {
	Rect
	Kind Kind `json:"kind"`
}

// packEps absorbs floating-point residue when deciding whether an extent
// divides evenly into sheet modules.
const packEps = 1e-6

// Pack tiles an extentA x extentB rectangle with an integer grid of full
// sheetA x sheetB sheets, then adds a rip column for the extentA remainder,
// a rip row for the extentB remainder, and a single corner rip when both
// remainders are non-zero. The union of the returned pieces covers the
// extent exactly with no overlap.
//
// The decomposition is greedy and axis-aligned; it does not compare the two
// sheet orientations. Callers that care fix the orientation themselves.
func Pack(extentA, extentB, sheetA, sheetB float64) []Piece {
	if extentA <= 0 || extentB <= 0 || sheetA <= 0 || sheetB <= 0 {
		return nil
	}

	cols := int(extentA / sheetA)
	rows := int(extentB / sheetB)
	remA := extentA - float64(cols)*sheetA
	remB := extentB - float64(rows)*sheetB
	if remA < packEps {
		remA = 0
	}
	if remB < packEps {
		remB = 0
	}

	var pieces []Piece
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			pieces = append(pieces, Piece{
				Rect: Rect{A: float64(i) * sheetA, B: float64(j) * sheetB, LenA: sheetA, LenB: sheetB},
				Kind: KindStd,
			})
		}
	}

	// Rip column: extentA remainder, one piece per full row.
	if remA > 0 {
		for j := 0; j < rows; j++ {
			pieces = append(pieces, Piece{
				Rect: Rect{A: float64(cols) * sheetA, B: float64(j) * sheetB, LenA: remA, LenB: sheetB},
				Kind: KindRip,
			})
		}
	}

	// Rip row: extentB remainder, one piece per full column.
	if remB > 0 {
		for i := 0; i < cols; i++ {
			pieces = append(pieces, Piece{
				Rect: Rect{A: float64(i) * sheetA, B: float64(rows) * sheetB, LenA: sheetA, LenB: remB},
				Kind: KindRip,
			})
		}
	}

	// Corner rip where both remainders meet.
	if remA > 0 && remB > 0 {
		pieces = append(pieces, Piece{
			Rect: Rect{A: float64(cols) * sheetA, B: float64(rows) * sheetB, LenA: remA, LenB: remB},
			Kind: KindRip,
		})
	}

	return pieces
}

// PackWithHoles packs an extent like Pack, then splits every piece that
// overlaps a hole into cut fragments around it. Pieces untouched by any
// hole keep their original kind.
func PackWithHoles(extentA, extentB, sheetA, sheetB float64, holes []Rect) []Piece {
	packed := Pack(extentA, extentB, sheetA, sheetB)
	if len(holes) == 0 {
		return packed
	}

	var out []Piece
	for _, p := range packed {
		overlapping := false
		for _, h := range holes {
			if p.Rect.Overlaps(h) {
				overlapping = true
				break
			}
		}
		if !overlapping {
			out = append(out, p)
			continue
		}
		out = append(out, SplitAroundHoles(p.Rect, holes)...)
	}
	return out
}
