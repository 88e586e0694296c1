package roof

import (
	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// Hole is a skylight opening rectangle in panel-local a/b coordinates.
// Holes are consumed by the hole-splitting step, never produced here.
type Hole = geom.Rect

// Slope identifiers passed to the opening provider.
const (
	SlopePent        = "pent"
	SlopeApexLeft    = "apex/left"
	SlopeApexRight   = "apex/right"
	SlopeHippedLeft  = "hipped/left"
	SlopeHippedRight = "hipped/right"
)

// OpeningProvider supplies the skylight openings for one slope of the
// configured roof. Implemented by the skylight collaborator, not the core.
type OpeningProvider func(b config.Building, slope string) []Hole

// TileBuilder is invoked after the covering layer is built when tile
// coverings are enabled. Purely additive.
type TileBuilder func(b config.Building, s *scene.Scene, section string)

// openings resolves the holes for a slope, fail-open: a missing provider or
// one that panics yields an empty list so a broken collaborator never
// prevents the roof from building.
func openings(p OpeningProvider, b config.Building, slope string) (holes []Hole) {
	if p == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			holes = nil
		}
	}()
	return p(b, slope)
}
