package roof

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
)

func apexBuilding() config.Building {
	b := config.DefaultBuilding()
	b.Roof.Style = config.StyleApex
	return b
}

func membersByRole(p *Plan, role string) []MemberSpec {
	var out []MemberSpec
	for _, m := range p.Members {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

func TestApexPlan_DefaultBuilding(t *testing.T) {
	b := apexBuilding()
	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	// Wall bearing is the eaves target minus the floor/roof stack.
	assert.InDelta(t, 1850-226, p.Diag.LowBearing, 1e-9)

	// The solved rise puts the sheathed crest on the 650 mm target.
	target := 2500.0 - 1850.0
	theta := p.Diag.Pitch
	assert.InDelta(t, target, p.Diag.Rise+math.Cos(theta)*OSBThickness, 1.0)

	// 2400 mm depth at 600 mm pitch: 5 trusses, each with both rafters.
	assert.Equal(t, 5, p.Diag.TrussCount)
	assert.Len(t, membersByRole(p, RoleRafterL), 5)
	assert.Len(t, membersByRole(p, RoleRafterR), 5)
	assert.Len(t, membersByRole(p, RoleTie), 5)
	assert.Len(t, membersByRole(p, RoleRidge), 1)

	// Rafters are cut to the slope length over the half span.
	wantLen := 1500 / math.Cos(theta)
	for _, m := range membersByRole(p, RoleRafterL) {
		assert.InDelta(t, wantLen, m.Length, 1e-9)
	}
}

func TestApexPlan_ExplicitTrussCountSpreadsEvenly(t *testing.T) {
	b := apexBuilding()
	b.Roof.Apex.TrussCount = 4

	p := PlanFor(b, Options{})
	require.NotNil(t, p)
	assert.Equal(t, 4, p.Diag.TrussCount)

	rafters := membersByRole(p, RoleRafterL)
	require.Len(t, rafters, 4)

	// Even stations across the frame depth minus one member width.
	span := 2400.0 - 44
	for i, m := range rafters {
		assert.InDelta(t, float64(i)*span/3, m.At.Translation.Z, 1e-9)
	}
}

func TestApexPlan_LegacyRiseWithoutHeightPair(t *testing.T) {
	b := apexBuilding()
	b.Roof.Apex.HeightToCrest = 0

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	// No eaves/crest pair: heuristic fifth of the 3000 span.
	assert.InDelta(t, 600, p.Diag.Rise, 1e-9)
}

func TestApexPlan_KingpostsUnderRidge(t *testing.T) {
	b := apexBuilding()
	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	// One kingpost plus one cap wedge per truss.
	kings := membersByRole(p, RoleKingpost)
	require.Len(t, kings, 10)

	for _, m := range kings {
		if m.Center {
			continue // cap wedge
		}
		assert.InDelta(t, p.Diag.Rise-70, m.Length, 1e-9, "kingpost spans tie to ridge underside")
	}
}

func TestApexPlan_DoorSplitsFrontGableTie(t *testing.T) {
	b := apexBuilding()
	b.Door = config.Door{Width: 800, Height: 1900}

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	var stubs, fullTies int
	for _, m := range membersByRole(p, RoleTie) {
		if m.Note == "door stub" {
			stubs++
		} else {
			fullTies++
		}
	}
	assert.Equal(t, 2, stubs, "front gable tie splits into two stubs")
	assert.Equal(t, 4, fullTies, "remaining trusses keep full ties")

	// The front gable truss loses its kingpost: 4 posts and 4 wedges.
	assert.Len(t, membersByRole(p, RoleKingpost), 8)

	// Stub length leaves the doorway plus a trimmer each side clear.
	for _, m := range membersByRole(p, RoleTie) {
		if m.Note == "door stub" {
			assert.InDelta(t, (3000-(800+2*44))/2.0, m.Length, 1e-9)
		}
	}
}

func TestApexPlan_ShortDoorDoesNotIntrude(t *testing.T) {
	b := apexBuilding()
	b.Door = config.Door{Width: 800, Height: 1500}

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	// Door head below the tie underside: no split anywhere.
	for _, m := range membersByRole(p, RoleTie) {
		assert.NotEqual(t, "door stub", m.Note)
	}
	assert.Len(t, membersByRole(p, RoleTie), 5)
}

func TestApexPlan_RaisedTie(t *testing.T) {
	b := apexBuilding()
	b.Roof.Apex.TieBeam = config.TieRaised

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	tieY := RaisedTieRatio * p.Diag.Rise
	wantLen := 2 * 1500 * (1 - tieY/p.Diag.Rise)

	ties := membersByRole(p, RoleTie)
	require.Len(t, ties, 5)
	for _, m := range ties {
		assert.Equal(t, "raised tie", m.Note)
		assert.InDelta(t, wantLen, m.Length, 1e-9, "raised ties shorten to the triangle width at tie height")
		assert.InDelta(t, tieY, m.At.Translation.Y, 1e-9)
	}
}

func TestApexPlan_PurlinsFollowSlopeStations(t *testing.T) {
	b := apexBuilding()
	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	rafterLen := 1500 / math.Cos(p.Diag.Pitch)
	wantPerSlope := len(slopeStations(rafterLen, PurlinStep))

	purlins := membersByRole(p, RolePurlin)
	assert.Len(t, purlins, 2*wantPerSlope)
	for _, m := range purlins {
		assert.InDelta(t, 2400, m.Length, 1e-9, "purlins span the roof depth")
	}

	// The ridge station and the eaves station both exist on each slope.
	var left []MemberSpec
	for _, m := range purlins {
		if m.Note == "left slope" {
			left = append(left, m)
		}
	}
	require.Len(t, left, wantPerSlope)
	assert.InDelta(t, p.Diag.Rise, left[0].At.Translation.Y, 1e-9, "first purlin at the ridge")
}

func TestApexPlan_SlateCoveringRaisesFascia(t *testing.T) {
	felt := PlanFor(apexBuilding(), Options{})
	require.NotNil(t, felt)

	b := apexBuilding()
	b.Roof.Apex.Covering = "slate"
	slate := PlanFor(b, Options{})
	require.NotNil(t, slate)

	feltFascia := membersByRole(felt, RoleFascia)
	slateFascia := membersByRole(slate, RoleFascia)
	require.Equal(t, len(feltFascia), len(slateFascia))

	// Eaves fascia comes up by the batten allowance; same count, same
	// lengths.
	assert.InDelta(t, feltFascia[0].At.Translation.Y+BattenAllowance,
		slateFascia[0].At.Translation.Y, 1e-9)
}

func TestApexPlan_SheathingBothSlopes(t *testing.T) {
	b := apexBuilding()
	b.Overhang = config.Overhang{Left: 150, Right: 150, Front: 100, Back: 100}

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	rafterLen := (1500.0 + 150) / math.Cos(p.Diag.Pitch)
	rd := 2400.0 + 200

	var leftArea, rightArea float64
	for _, pn := range p.Panels {
		if pn.Material != MaterialOSB {
			continue
		}
		switch pn.Note {
		case "left slope":
			leftArea += pn.Rect.Area()
		case "right slope":
			rightArea += pn.Rect.Area()
		}
	}
	assert.InDelta(t, rafterLen*rd, leftArea, 1e-3)
	assert.InDelta(t, rafterLen*rd, rightArea, 1e-3)
}

func TestApexPlan_CoveringAddsRidgeOverlapAndFolds(t *testing.T) {
	b := apexBuilding()
	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	rafterLen := 1500 / math.Cos(p.Diag.Pitch)
	covLen := rafterLen + RidgeOverlap + CoveringFold
	covDepth := 2400 + 2*CoveringFold

	var area float64
	for _, pn := range p.Panels {
		if pn.Material == MaterialCovering {
			area += pn.Rect.Area()
		}
	}
	assert.InDelta(t, 2*covLen*covDepth, area, 1e-3)
}

func TestApexPlan_UndersideQuery(t *testing.T) {
	b := apexBuilding()
	p := PlanFor(b, Options{})
	require.NotNil(t, p)
	require.NotNil(t, p.Underside)

	wallH := 1850.0 - 226
	theta := p.Diag.Pitch
	gd := 70.0

	// At the ridge the underside peaks.
	y, ok := p.Underside(1500, 1200)
	require.True(t, ok)
	assert.InDelta(t, wallH+p.Diag.Rise+gd/math.Cos(theta), y, 1e-9)

	// At the eaves it meets the wall head plus the rafter stand-off.
	y, ok = p.Underside(0, 1200)
	require.True(t, ok)
	assert.InDelta(t, wallH+gd/math.Cos(theta), y, 1e-9)

	// Symmetric about the ridge.
	yl, _ := p.Underside(700, 600)
	yr, _ := p.Underside(2300, 600)
	assert.InDelta(t, yl, yr, 1e-9)

	// Outside the roof plan.
	_, ok = p.Underside(-10, 0)
	assert.False(t, ok)
	_, ok = p.Underside(1500, 2500)
	assert.False(t, ok)
}

func TestApexPlan_SkylightPerSlope(t *testing.T) {
	b := apexBuilding()
	hole := Hole{A: 400, B: 900, LenA: 500, LenB: 500}
	opts := Options{Openings: func(_ config.Building, slope string) []Hole {
		if slope == SlopeApexLeft {
			return []Hole{hole}
		}
		return nil
	}}

	p := PlanFor(b, opts)
	require.NotNil(t, p)

	leftCut, rightCut := 0, 0
	for _, pn := range p.Panels {
		if pn.Material != MaterialOSB || pn.Kind != geom.KindCut {
			continue
		}
		switch pn.Note {
		case "left slope":
			leftCut++
		case "right slope":
			rightCut++
		}
	}
	assert.Greater(t, leftCut, 0, "left slope splits around its skylight")
	assert.Zero(t, rightCut, "right slope is untouched")
}

func TestApexPlan_InsulatedRaisedTieLayers(t *testing.T) {
	b := apexBuilding()
	b.Walls.Variant = config.WallInsulated
	b.Roof.Apex.TieBeam = config.TieRaised

	p := PlanFor(b, Options{})
	require.NotNil(t, p)
	assert.Greater(t, countMaterial(p, MaterialInsulation), 0)
	assert.Greater(t, countMaterial(p, MaterialLining), 0)

	// Eaves-level ties leave no loft to insulate.
	b.Roof.Apex.TieBeam = config.TieEaves
	p = PlanFor(b, Options{})
	assert.Zero(t, countMaterial(p, MaterialInsulation))
	assert.Zero(t, countMaterial(p, MaterialLining))
}

func TestApexPlan_GableNotchCutsDoorOpening(t *testing.T) {
	b := apexBuilding()
	b.Walls.Variant = config.WallInsulated
	b.Roof.Apex.TieBeam = config.TieRaised
	b.Door = config.Door{Width: 800, Height: 2200}

	p := PlanFor(b, Options{})
	require.NotNil(t, p)

	rise := p.Diag.Rise
	tieY := RaisedTieRatio * rise
	tieLen := 2 * 1500 * (1 - RaisedTieRatio)
	hole := geom.Rect{
		A:    (tieLen - (800 + 2*44)) / 2,
		LenA: 800 + 2*44,
		LenB: 2200 - p.Diag.LowBearing - tieY,
	}

	var frontIns, frontLin []geom.Rect
	backBlanks := 0
	for _, pn := range p.Panels {
		switch pn.Note {
		case "gable blank, door notch":
			if pn.Material == MaterialInsulation {
				frontIns = append(frontIns, pn.Rect)
			} else {
				frontLin = append(frontLin, pn.Rect)
			}
		case "gable blank, cut to slope":
			backBlanks++
		}
	}

	// The front blank splits into pieces around the door head; nothing
	// covers the opening and the pieces tile exactly the blank minus it.
	require.Greater(t, len(frontIns), 1)
	require.Greater(t, len(frontLin), 1)
	area := 0.0
	for _, r := range frontIns {
		assert.False(t, r.Overlaps(hole), "piece %+v covers the door opening", r)
		area += r.Area()
	}
	assert.InDelta(t, tieLen*(rise-tieY)-hole.Area(), area, 1e-6)

	// The back gable stays one uncut blank per layer.
	assert.Equal(t, 2, backBlanks)

	// A door below the tie leaves both gables uncut.
	b.Door.Height = 1500
	p = PlanFor(b, Options{})
	for _, pn := range p.Panels {
		assert.NotEqual(t, "gable blank, door notch", pn.Note)
	}
}

func TestApexPlan_RidgeCapStaysInGablePlane(t *testing.T) {
	p := PlanFor(apexBuilding(), Options{})
	require.NotNil(t, p)

	caps := 0
	for _, m := range p.Members {
		if m.Note != "ridge cap" {
			continue
		}
		caps++
		// The diamond turn spins the plate about its own normal, so the
		// thin axis keeps pointing along the ridge.
		n := m.At.Rotation.Apply(r3.Vec{Z: 1})
		assert.InDelta(t, 0, n.X, 1e-9)
		assert.InDelta(t, 0, n.Y, 1e-9)
		assert.InDelta(t, 1, n.Z, 1e-9)
		// And the plate edge sits at 45 degrees within that plane.
		e := m.At.Rotation.Apply(r3.Vec{X: 1})
		assert.InDelta(t, math.Sqrt2/2, e.X, 1e-9)
		assert.InDelta(t, math.Sqrt2/2, e.Y, 1e-9)
	}
	assert.Equal(t, 2, caps)
}
