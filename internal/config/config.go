// Package config defines the building configuration schema and the
// normalization pass that turns raw, possibly incomplete configuration
// values into fully-populated dimensions used by the geometry and BOM
// engines.
package config

// Roof styles supported by the builders. Any other value is treated as
// "nothing to build".
const (
	StylePent   = "pent"
	StyleApex   = "apex"
	StyleHipped = "hipped"
)

// Tie-beam placement modes for apex trusses.
const (
	TieEaves  = "eaves"
	TieRaised = "raised"
)

// Wall variants. The insulated variant enables insulation and lining panels.
const (
	WallStandard  = "standard"
	WallInsulated = "insulated"
)

// Building is the external, immutable-per-build configuration of a garden
// building. All lengths are millimetres. Missing or non-finite fields fall
// back to the documented defaults during Resolve.
type Building struct {
	Width    float64  `json:"width_mm"`
	Depth    float64  `json:"depth_mm"`
	Frame    Frame    `json:"frame"`
	Walls    Walls    `json:"walls"`
	Overhang Overhang `json:"overhang"`
	Roof     Roof     `json:"roof"`
	Door     Door     `json:"door"`
	Parts    Parts    `json:"parts"`
}

// Frame is the timber cross-section gauge used for all structural members.
type Frame struct {
	Thickness float64 `json:"thickness_mm"` // member width
	Depth     float64 `json:"depth_mm"`     // member depth
}

// Walls carries the wall build variant.
type Walls struct {
	Variant string `json:"variant"` // "standard" or "insulated"
}

// Insulated reports whether the wall variant enables insulation and lining.
func (w Walls) Insulated() bool {
	return w.Variant == WallInsulated
}

// Overhang is the roof overhang beyond the wall frame, per edge.
type Overhang struct {
	Left  float64 `json:"left_mm"`
	Right float64 `json:"right_mm"`
	Front float64 `json:"front_mm"`
	Back  float64 `json:"back_mm"`
}

// Roof selects the roof style and carries the style-specific settings.
type Roof struct {
	Style  string `json:"style"`
	Pent   Pent   `json:"pent"`
	Apex   Apex   `json:"apex"`
	Hipped Hipped `json:"hipped"`
}

// Pent holds the single-slope roof height targets. Both heights are
// ground-referenced totals; the builder subtracts the floor/roof stack to
// obtain wall-frame bearing heights.
type Pent struct {
	MinHeight float64 `json:"minHeight_mm"`
	MaxHeight float64 `json:"maxHeight_mm"`
}

// Apex holds the two-slope roof settings.
type Apex struct {
	HeightToEaves float64 `json:"heightToEaves_mm"`
	HeightToCrest float64 `json:"heightToCrest_mm"`
	TrussCount    int     `json:"trussCount"` // 0 = default 600 mm spacing
	TieBeam       string  `json:"tieBeam"`    // "eaves" or "raised"
	Covering      string  `json:"covering"`   // e.g. "felt", "slate"
}

// Hipped holds the four-slope roof settings. Zero heights fall back to the
// apex fields during Resolve.
type Hipped struct {
	HeightToEaves float64 `json:"heightToEaves_mm"`
	HeightToCrest float64 `json:"heightToCrest_mm"`
}

// Door describes the gable door opening. A zero width means no door.
// The apex builder splits gable-truss tie beams around the opening when the
// door head intrudes above tie level.
type Door struct {
	Width  float64 `json:"width_mm"`
	Height float64 `json:"height_mm"`
}

// Present reports whether a door opening is configured.
func (d Door) Present() bool {
	return d.Width > 0 && d.Height > 0
}

// Parts are the visibility flags gating which member and panel groups are
// built. Insulation and Ply additionally require the insulated wall variant.
type Parts struct {
	Structure  bool `json:"structure"`
	OSB        bool `json:"osb"`
	Covering   bool `json:"covering"`
	Insulation bool `json:"insulation"`
	Ply        bool `json:"ply"`
}

// AllParts returns visibility flags with every group enabled.
func AllParts() Parts {
	return Parts{Structure: true, OSB: true, Covering: true, Insulation: true, Ply: true}
}

// DefaultBuilding returns a complete configuration for a 3.0 x 2.4 m pent
// building, matching the configurator's initial state.
func DefaultBuilding() Building {
	return Building{
		Width: 3000,
		Depth: 2400,
		Frame: Frame{Thickness: DefaultGaugeWidth, Depth: DefaultGaugeDepth},
		Walls: Walls{Variant: WallStandard},
		Roof: Roof{
			Style: StylePent,
			Pent:  Pent{MinHeight: 2100, MaxHeight: 2300},
			Apex: Apex{
				HeightToEaves: 1850,
				HeightToCrest: 2500,
				TieBeam:       TieEaves,
				Covering:      "felt",
			},
			Hipped: Hipped{HeightToEaves: 1850, HeightToCrest: 2400},
		},
		Parts: AllParts(),
	}
}
