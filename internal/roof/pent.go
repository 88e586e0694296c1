package roof

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// pentPlan lays out a single-slope roof. The slope runs along the local X
// (width) axis; rafters run down-slope and are spaced along depth. Every
// piece on the sloped axis is stretched by slopeLen/run so its horizontal
// projection, once pitched, still equals the flat plan dimension.
func pentPlan(b config.Building, opts Options) *Plan {
	d := config.Resolve(b)
	g := d.Gauge
	gw, gd := float64(g.Width), float64(g.Depth)
	rw, rd := float64(d.RoofWidth), float64(d.RoofDepth)

	minTarget, maxTarget := config.PentHeights(b)
	stack := stackOffset(g)
	minH := math.Max(config.MinHeight, minTarget-stack)
	maxH := math.Max(minH, maxTarget-stack)

	run := rw
	rise := maxH - minH
	slopeLen := math.Hypot(run, rise)
	scale := slopeLen / run
	pitch := math.Atan2(rise, run)

	p := &Plan{Style: config.StylePent, Gauge: g}

	// Pitch about Z lifts +X, so the low edge sits at the local origin.
	// The plan's minimum corner lands on the overhang-adjusted origin and
	// the low-edge bearing lands exactly on minH. The high edge is
	// expected, not forced, to land on maxH.
	p.Root = scene.Transform{
		Rotation:    scene.Rotation{Pitch: pitch},
		Translation: r3.Vec{X: -float64(d.OverhangLeft), Y: minH, Z: -float64(d.OverhangFront)},
	}

	highBearing := minH + slopeLen*math.Sin(pitch)
	p.Diag = Diagnostics{
		Rise:             rise,
		Pitch:            pitch,
		SlopeScale:       scale,
		LowBearing:       minH,
		HighBearing:      highBearing,
		HighEdgeResidual: highBearing - maxH,
	}

	rafterZ := stations(rd, gw, RafterSpacing)
	p.Diag.RafterCount = len(rafterZ)

	if b.Parts.Structure {
		// Rim joists close both ends of the span.
		p.Members = append(p.Members,
			memberAlongZ(RoleRim, rd, gw, gd, at(0, 0, 0)),
			memberAlongZ(RoleRim, rd, gw, gd, at(slopeLen-gw, 0, 0)),
		)

		for _, z := range rafterZ {
			p.Members = append(p.Members,
				memberAlongX(RoleRafter, slopeLen, gw, gd, at(0, 0, z)))
		}

		// Fascia on all four edges: eaves, ridge and both verges.
		p.Members = append(p.Members,
			memberAlongZ(RoleFascia, rd, FasciaThickness, FasciaWidth, at(-FasciaThickness, 0, 0)),
			memberAlongZ(RoleFascia, rd, FasciaThickness, FasciaWidth, at(slopeLen, 0, 0)),
			memberAlongX(RoleFascia, slopeLen, FasciaThickness, FasciaWidth, at(0, 0, -FasciaThickness)),
			memberAlongX(RoleFascia, slopeLen, FasciaThickness, FasciaWidth, at(0, 0, rd)),
		)
	}

	if b.Parts.OSB {
		holes := openings(opts.Openings, b, SlopePent)
		osbAt := at(0, gd, 0)
		for _, piece := range geom.PackWithHoles(slopeLen, rd, SheetLength, SheetWidth, holes) {
			p.Panels = append(p.Panels, PanelSpec{
				Material:  MaterialOSB,
				Kind:      piece.Kind,
				Rect:      piece.Rect,
				Thickness: OSBThickness,
				At:        osbAt,
			})
		}
	}

	if b.Parts.Covering {
		p.Panels = append(p.Panels, PanelSpec{
			Material:  MaterialCovering,
			Kind:      geom.KindStd,
			Rect:      geom.Rect{A: -CoveringFold, B: -CoveringFold, LenA: slopeLen + 2*CoveringFold, LenB: rd + 2*CoveringFold},
			Thickness: CoveringThickness,
			At:        at(0, gd+OSBThickness, 0),
			Note:      "100 mm fold-down at eaves, ridge and verges",
		})
	}

	if b.Walls.Insulated() {
		if b.Parts.Insulation {
			// One panel per rafter bay, full slope length, below the
			// rafter underside.
			for i := 0; i+1 < len(rafterZ); i++ {
				bay := rafterZ[i+1] - (rafterZ[i] + gw)
				if bay <= 0 {
					continue
				}
				p.Panels = append(p.Panels, PanelSpec{
					Material:  MaterialInsulation,
					Kind:      geom.KindCut,
					Rect:      geom.Rect{A: 0, B: rafterZ[i] + gw, LenA: slopeLen, LenB: bay},
					Thickness: InsulationThickness,
					At:        at(0, -InsulationThickness, 0),
					Note:      "rafter bay",
				})
			}
		}
		if b.Parts.Ply {
			// A single continuous lining panel spans all bays.
			p.Panels = append(p.Panels, PanelSpec{
				Material:  MaterialLining,
				Kind:      geom.KindStd,
				Rect:      geom.Rect{LenA: slopeLen, LenB: rd},
				Thickness: LiningThickness,
				At:        at(0, -InsulationThickness-LiningThickness, 0),
			})
		}
	}

	return p
}

// at is a plain translation transform.
func at(x, y, z float64) scene.Transform {
	return scene.Transform{Translation: r3.Vec{X: x, Y: y, Z: z}}
}
