package config

import "math"

// Default values applied when configuration fields are absent or non-finite.
const (
	DefaultWidth      = 3000.0
	DefaultDepth      = 2400.0
	DefaultGaugeWidth = 44.0 // member thickness
	DefaultGaugeDepth = 70.0 // member depth

	// MinHeight is the floor for any resolved wall or roof height target.
	MinHeight = 100
)

// Gauge is the resolved timber cross-section in integer millimetres.
type Gauge struct {
	Width int `json:"width_mm"`
	Depth int `json:"depth_mm"`
}

// Dimensions are the canonical extents derived from a Building. All values
// are floored to integer millimetres; the gauge is clamped to at least 1 mm
// and overhangs to at least 0 mm.
type Dimensions struct {
	FrameWidth int `json:"frame_width_mm"`
	FrameDepth int `json:"frame_depth_mm"`

	// Roof plan extents: frame plus overhang on each edge.
	RoofWidth int `json:"roof_width_mm"`
	RoofDepth int `json:"roof_depth_mm"`

	OverhangLeft  int `json:"overhang_left_mm"`
	OverhangRight int `json:"overhang_right_mm"`
	OverhangFront int `json:"overhang_front_mm"`
	OverhangBack  int `json:"overhang_back_mm"`

	Gauge Gauge `json:"gauge"`
}

// Resolve normalizes a raw Building into canonical dimensions. It is a pure
// function and must be the single source of truth for both the geometry
// builders and the BOM aggregator so the two outputs stay consistent.
func Resolve(b Building) Dimensions {
	fw := floorClamp(finiteOr(b.Width, DefaultWidth), 1)
	fd := floorClamp(finiteOr(b.Depth, DefaultDepth), 1)

	ol := floorClamp(finiteOr(b.Overhang.Left, 0), 0)
	or := floorClamp(finiteOr(b.Overhang.Right, 0), 0)
	of := floorClamp(finiteOr(b.Overhang.Front, 0), 0)
	ob := floorClamp(finiteOr(b.Overhang.Back, 0), 0)

	return Dimensions{
		FrameWidth:    fw,
		FrameDepth:    fd,
		RoofWidth:     fw + ol + or,
		RoofDepth:     fd + of + ob,
		OverhangLeft:  ol,
		OverhangRight: or,
		OverhangFront: of,
		OverhangBack:  ob,
		Gauge: Gauge{
			Width: floorClamp(finiteOr(b.Frame.Thickness, DefaultGaugeWidth), 1),
			Depth: floorClamp(finiteOr(b.Frame.Depth, DefaultGaugeDepth), 1),
		},
	}
}

// PentHeights returns the resolved ground-referenced height targets for a
// pent roof, low edge first. The high target is never below the low target.
func PentHeights(b Building) (minH, maxH float64) {
	minH = float64(floorClamp(finiteOr(b.Roof.Pent.MinHeight, 2100), MinHeight))
	maxH = float64(floorClamp(finiteOr(b.Roof.Pent.MaxHeight, 2300), MinHeight))
	if maxH < minH {
		maxH = minH
	}
	return minH, maxH
}

// ApexHeights returns the resolved eaves and crest height targets for an
// apex roof.
func ApexHeights(b Building) (eaves, crest float64) {
	eaves = float64(floorClamp(finiteOr(b.Roof.Apex.HeightToEaves, 1850), MinHeight))
	crest = float64(floorClamp(finiteOr(b.Roof.Apex.HeightToCrest, 2500), MinHeight))
	return eaves, crest
}

// HippedHeights returns the resolved eaves and crest height targets for a
// hipped roof, falling back to the apex fields when the hipped ones are
// absent.
func HippedHeights(b Building) (eaves, crest float64) {
	he := b.Roof.Hipped.HeightToEaves
	hc := b.Roof.Hipped.HeightToCrest
	if !isFinite(he) || he <= 0 {
		he = b.Roof.Apex.HeightToEaves
	}
	if !isFinite(hc) || hc <= 0 {
		hc = b.Roof.Apex.HeightToCrest
	}
	eaves = float64(floorClamp(finiteOr(he, 1850), MinHeight))
	crest = float64(floorClamp(finiteOr(hc, 2400), MinHeight))
	return eaves, crest
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOr returns v when it is a finite positive number, otherwise def.
func finiteOr(v, def float64) float64 {
	if !isFinite(v) || v == 0 {
		return def
	}
	return v
}

// floorClamp floors v to integer millimetres and clamps it to min.
func floorClamp(v float64, min int) int {
	n := int(math.Floor(v))
	if n < min {
		return min
	}
	return n
}
