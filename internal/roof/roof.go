// Package roof builds timber-frame roof assemblies and their matching
// cutting lists. Each style (pent, apex, hipped) computes a pure build plan
// from the configuration; the same plan feeds both the scene geometry and
// the BOM so the two can never drift apart.
package roof

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/bom"
	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// Fixed material and layout dimensions, all millimetres.
const (
	SheetLength = 2440.0 // OSB sheet long edge
	SheetWidth  = 1220.0 // OSB sheet short edge

	OSBThickness      = 18.0
	FloorThickness    = 18.0 // floor sheathing, part of the height stack
	GridHeight        = 50.0 // foundation grid under the floor frame
	CoveringThickness = 2.0
	CoveringFold      = 100.0 // fold-down flap at eaves and verges
	RidgeOverlap      = 50.0  // covering overlap across the apex ridge

	FasciaThickness = 20.0
	FasciaWidth     = 135.0
	BattenAllowance = 25.0 // fascia raise under slate coverings

	RafterSpacing = 600.0 // rafter and truss pitch
	PurlinStep    = 609.0 // purlin spacing measured along the slope

	InsulationThickness = 50.0
	LiningThickness     = 9.0

	// RaisedTieRatio places raised tie beams at this fraction of the rise.
	RaisedTieRatio = 3.0 / 8.0
)

// stackOffset converts ground-referenced height targets into wall-frame
// bearing heights: foundation grid, floor frame, floor sheathing, rafter
// depth and roof sheathing all sit between the ground and the roof plane.
func stackOffset(g config.Gauge) float64 {
	return GridHeight + float64(g.Depth) + FloorThickness + float64(g.Depth) + OSBThickness
}

// Section identifies one building section in a multi-section scene. A nil
// section is the single-building legacy case with an empty prefix.
type Section struct {
	ID       string
	Position r3.Vec
}

// Options carries the collaborator hooks consumed by the builders.
type Options struct {
	// Openings supplies skylight hole rectangles per slope. A nil provider
	// or one that panics is treated as "no openings".
	Openings OpeningProvider

	// Tiles, when set, is invoked after the covering layer is built. It is
	// purely additive and not part of the core geometry invariants.
	Tiles TileBuilder
}

// Build constructs the roof assembly for the configured style, replacing
// any previous assembly for the same (style, section). Unsupported styles
// are a silent no-op and return nil.
func Build(b config.Building, s *scene.Scene, sec *Section, opts Options) *scene.Assembly {
	p := PlanFor(b, opts)
	if p == nil {
		return nil
	}

	sectionID := ""
	var offset r3.Vec
	if sec != nil {
		sectionID = sec.ID
		offset = sec.Position
	}

	a := p.Realize(s, sectionID, offset)

	if b.Parts.Covering && opts.Tiles != nil {
		opts.Tiles(b, s, sectionID)
	}
	return a
}

// BuildBOM recomputes the cutting list for the configuration. It runs the
// same plan computation as Build, so quantities and lengths always match
// the built geometry.
func BuildBOM(b config.Building, opts Options) bom.Table {
	p := PlanFor(b, opts)
	if p == nil {
		return bom.Table{}
	}
	return bom.Build(p.Rows())
}

// PlanFor computes the pure build plan for the configured style, or nil
// for unsupported styles. Build and BuildBOM both go through it; exports
// and tests can too.
func PlanFor(b config.Building, opts Options) *Plan {
	switch b.Roof.Style {
	case config.StylePent:
		return pentPlan(b, opts)
	case config.StyleApex:
		return apexPlan(b, opts)
	case config.StyleHipped:
		return hippedPlan(b, opts)
	default:
		// Nothing to build, not a fault.
		return nil
	}
}

// stations returns member start positions spaced step apart along an
// extent, with the final member snapped flush to the far edge (never
// overhanging it).
func stations(extent, member, step float64) []float64 {
	if extent <= 0 {
		return nil
	}
	last := extent - member
	if last < 0 {
		last = 0
	}
	var out []float64
	for p := 0.0; p < last; p += step {
		out = append(out, p)
	}
	out = append(out, last)
	return out
}

// slopeStations returns distances measured along a slope starting at 0,
// stepping by step, and always terminating with a station at the full
// slope length. The final gap may be shorter than step, never longer.
func slopeStations(length, step float64) []float64 {
	if length <= 0 {
		return nil
	}
	var out []float64
	for s := 0.0; s < length; s += step {
		out = append(out, s)
	}
	out = append(out, length)
	return out
}
