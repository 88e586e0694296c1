package geom

import "sort"

// MinSliver is the minimum cell dimension kept by SplitAroundHoles. Cells
// thinner than this in either direction are dropped as unbuildable slivers.
const MinSliver = 5.0

// SplitAroundHoles splits rect into a non-overlapping set of rectangles
// covering everything except the given holes. It builds a rectilinear grid
// from the rectangle's own edges plus every hole edge that crosses the
// rectangle, then keeps each grid cell whose center is outside every hole
// and whose dimensions are both at least MinSliver.
//
// Hole coordinates are in the same panel-local space as rect. Holes may
// extend beyond the rectangle; they are clipped to it.
func SplitAroundHoles(rect Rect, holes []Rect) []Piece {
	if rect.LenA <= 0 || rect.LenB <= 0 {
		return nil
	}
	if len(holes) == 0 {
		return []Piece{{Rect: rect, Kind: KindCut}}
	}

	as := []float64{rect.A, rect.A + rect.LenA}
	bs := []float64{rect.B, rect.B + rect.LenB}
	for _, h := range holes {
		for _, a := range []float64{h.A, h.A + h.LenA} {
			if a > rect.A && a < rect.A+rect.LenA {
				as = append(as, a)
			}
		}
		for _, b := range []float64{h.B, h.B + h.LenB} {
			if b > rect.B && b < rect.B+rect.LenB {
				bs = append(bs, b)
			}
		}
	}
	as = sortedUnique(as)
	bs = sortedUnique(bs)

	var pieces []Piece
	for i := 0; i+1 < len(as); i++ {
		for j := 0; j+1 < len(bs); j++ {
			cell := Rect{A: as[i], B: bs[j], LenA: as[i+1] - as[i], LenB: bs[j+1] - bs[j]}
			if cell.LenA < MinSliver || cell.LenB < MinSliver {
				continue
			}
			ca := cell.A + cell.LenA/2
			cb := cell.B + cell.LenB/2
			inHole := false
			for _, h := range holes {
				if h.Contains(ca, cb) {
					inHole = true
					break
				}
			}
			if !inHole {
				pieces = append(pieces, Piece{Rect: cell, Kind: KindCut})
			}
		}
	}
	return pieces
}

// sortedUnique sorts vs ascending and removes near-duplicate values.
func sortedUnique(vs []float64) []float64 {
	sort.Float64s(vs)
	out := vs[:0]
	for _, v := range vs {
		if len(out) == 0 || v-out[len(out)-1] > packEps {
			out = append(out, v)
		}
	}
	return out
}
