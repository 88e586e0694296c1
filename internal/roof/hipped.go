package roof

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// squarePlanTolerance is the width/depth difference below which a hipped
// plan counts as square and collapses to a pyramid peak.
const squarePlanTolerance = 100.0

// hippedPlan lays out a four-slope roof. Rectangular plans get a ridge of
// length depth-width with two saddle slopes; square plans collapse to a
// true pyramid peak with no ridge board and no common rafters. Placement
// is purely translational.
func hippedPlan(b config.Building, opts Options) *Plan {
	d := config.Resolve(b)
	g := d.Gauge
	gw, gd := float64(g.Width), float64(g.Depth)
	fw, fd := float64(d.FrameWidth), float64(d.FrameDepth)
	ohL, ohF := float64(d.OverhangLeft), float64(d.OverhangFront)
	ohR, ohB := float64(d.OverhangRight), float64(d.OverhangBack)

	eaves, crest := config.HippedHeights(b)
	wallH := math.Max(config.MinHeight, eaves-stackOffset(g))
	rise := math.Max(100, crest-eaves)

	square := math.Abs(fw-fd) < squarePlanTolerance
	ridgeLen := fd - fw
	if square || ridgeLen < 0 {
		ridgeLen = 0
	}

	halfSpan := fw / 2
	ridgeX := halfSpan
	z0 := (fd - ridgeLen) / 2 // front ridge end
	z1 := z0 + ridgeLen       // back ridge end

	// Common-rafter pitch over the half span; hips run flatter along the
	// plan diagonal.
	thetaC := math.Atan2(rise, halfSpan)
	sinC, cosC := math.Sin(thetaC), math.Cos(thetaC)
	commonLen := (halfSpan + ohL) / cosC

	p := &Plan{Style: config.StyleHipped, Gauge: g}
	p.Root = scene.Transform{Translation: r3.Vec{Y: wallH}}
	p.Diag = Diagnostics{Rise: rise, Pitch: thetaC, LowBearing: wallH}

	ends := []hipEnd{
		{corner: r3.Vec{X: 0, Z: 0}, ridge: r3.Vec{X: ridgeX, Y: rise, Z: z0}},
		{corner: r3.Vec{X: fw, Z: 0}, ridge: r3.Vec{X: ridgeX, Y: rise, Z: z0}},
		{corner: r3.Vec{X: fw, Z: fd}, ridge: r3.Vec{X: ridgeX, Y: rise, Z: z1}},
		{corner: r3.Vec{X: 0, Z: fd}, ridge: r3.Vec{X: ridgeX, Y: rise, Z: z1}},
	}

	if b.Parts.Structure {
		if ridgeLen > 0 {
			p.Members = append(p.Members,
				memberAlongZ(RoleRidge, ridgeLen, gw, gd, at(ridgeX-gw/2, rise-gd, z0)))
		}

		// One hip rafter per corner, yawed toward its ridge end and
		// pitched along the plan diagonal.
		for _, e := range ends {
			dx := e.ridge.X - e.corner.X
			dz := e.ridge.Z - e.corner.Z
			planLen := math.Hypot(dx, dz)
			hipPitch := math.Atan2(rise, planLen)
			hipLen := math.Hypot(planLen, rise)
			p.Members = append(p.Members, MemberSpec{
				Role: RoleHip, Length: hipLen, Width: gw, Depth: gd,
				Size: scene.Box{X: hipLen, Y: gd, Z: gw},
				At: scene.Transform{
					Rotation:    scene.Rotation{Yaw: math.Atan2(-dz, dx), Pitch: hipPitch},
					Translation: e.corner,
				},
			})
		}

		// Common rafters only exist in the mid section, between the hip
		// clearance offsets at the two ridge ends.
		if ridgeLen > 2*gw {
			for _, zs := range stations(ridgeLen-2*gw, gw, RafterSpacing) {
				z := z0 + gw + zs
				p.Members = append(p.Members,
					withNote(MemberSpec{
						Role: RoleCommon, Length: commonLen, Width: gw, Depth: gd,
						Size: scene.Box{X: commonLen, Y: gd, Z: gw},
						At: scene.Transform{
							Rotation:    scene.Rotation{Pitch: thetaC},
							Translation: r3.Vec{X: -ohL, Y: -ohL * math.Tan(thetaC), Z: z},
						},
					}, "left slope"),
					withNote(MemberSpec{
						Role: RoleCommon, Length: commonLen, Width: gw, Depth: gd,
						Size: scene.Box{X: commonLen, Y: gd, Z: gw},
						At: scene.Transform{
							Rotation:    scene.Rotation{Yaw: math.Pi, Pitch: thetaC},
							Translation: r3.Vec{X: fw + ohR, Y: -ohR * math.Tan(thetaC), Z: z},
						},
					}, "right slope"),
				)
			}
		}

		// Jack rafters: for every hip, a family on each of the two walls
		// meeting at its corner. The run is the perpendicular distance
		// from the wall-plate position to the hip's plan diagonal, which
		// for a 45-degree hip equals the distance from the corner.
		// Near-hip slivers shorter than twice the member width are skipped.
		p.Members = append(p.Members, jackFamilies(ends, fw, z0, z1, fd, gw, gd, thetaC)...)

		// Fascia around all four eaves edges.
		p.Members = append(p.Members,
			memberAlongZ(RoleFascia, fd+ohF+ohB, FasciaThickness, FasciaWidth, at(-ohL-FasciaThickness, 0, -ohF)),
			memberAlongZ(RoleFascia, fd+ohF+ohB, FasciaThickness, FasciaWidth, at(fw+ohR, 0, -ohF)),
			memberAlongX(RoleFascia, fw+ohL+ohR, FasciaThickness, FasciaWidth, at(-ohL, 0, -ohF-FasciaThickness)),
			memberAlongX(RoleFascia, fw+ohL+ohR, FasciaThickness, FasciaWidth, at(-ohL, 0, fd+ohB)),
		)
	}

	if b.Parts.OSB {
		// Saddle rectangles cover the mid-ridge section of the two long
		// slopes; only a rectangular plan has them.
		if ridgeLen > 0 {
			holesL := openings(opts.Openings, b, SlopeHippedLeft)
			holesR := openings(opts.Openings, b, SlopeHippedRight)
			leftPlane := scene.Transform{
				Rotation:    scene.Rotation{Pitch: thetaC},
				Translation: r3.Vec{X: -ohL - gd*sinC, Y: -ohL*math.Tan(thetaC) + gd*cosC, Z: z0},
			}
			rightPlane := scene.Transform{
				Rotation:    scene.Rotation{Yaw: math.Pi, Pitch: thetaC},
				Translation: r3.Vec{X: fw + ohR + gd*sinC, Y: -ohR*math.Tan(thetaC) + gd*cosC, Z: z1},
			}
			for _, piece := range geom.SplitAroundHoles(geom.Rect{LenA: commonLen, LenB: ridgeLen}, holesL) {
				p.Panels = append(p.Panels, PanelSpec{
					Material: MaterialOSB, Kind: saddleKind(piece.Kind, holesL),
					Rect: piece.Rect, Thickness: OSBThickness, At: leftPlane,
					Note: "saddle, left slope",
				})
			}
			for _, piece := range geom.SplitAroundHoles(geom.Rect{LenA: commonLen, LenB: ridgeLen}, holesR) {
				p.Panels = append(p.Panels, PanelSpec{
					Material: MaterialOSB, Kind: saddleKind(piece.Kind, holesR),
					Rect: piece.Rect, Thickness: OSBThickness, At: rightPlane,
					Note: "saddle, right slope",
				})
			}
		}

		// Eight explicit triangles cover the hip-end geometry that no
		// axis-aligned box can express. Normals come from the triangle
		// edges themselves.
		p.Tris = append(p.Tris, hipTriangles(fw, fd, ohL, ohR, ohF, ohB, ridgeX, rise, rise/halfSpan, z0, z1)...)
	}

	if b.Parts.Covering {
		// One wrap per slope pair; hip coverings are cut on site, so the
		// cutting list carries plan extents plus the eaves fold.
		p.Panels = append(p.Panels,
			PanelSpec{
				Material: MaterialCovering, Kind: geom.KindStd,
				Rect:      geom.Rect{A: -CoveringFold, B: -CoveringFold, LenA: commonLen + 2*CoveringFold, LenB: fd + ohF + ohB + 2*CoveringFold},
				Thickness: CoveringThickness,
				At:        at(-ohL, gd+OSBThickness, -ohF),
				Note:      "left wrap, hip cut",
			},
			PanelSpec{
				Material: MaterialCovering, Kind: geom.KindStd,
				Rect:      geom.Rect{A: -CoveringFold, B: -CoveringFold, LenA: commonLen + 2*CoveringFold, LenB: fd + ohF + ohB + 2*CoveringFold},
				Thickness: CoveringThickness,
				At:        at(fw+ohR, gd+OSBThickness, -ohF),
				Note:      "right wrap, hip cut",
			},
		)
	}

	return p
}

// saddleKind keeps plain saddle panels tagged std when no hole touched them.
func saddleKind(k geom.Kind, holes []Hole) geom.Kind {
	if len(holes) == 0 {
		return geom.KindStd
	}
	return k
}

// hipEnd pairs a wall-plate corner with the ridge end its hip runs to.
type hipEnd struct {
	corner r3.Vec
	ridge  r3.Vec
}

// jackFamilies builds the four mirrored jack-rafter families. Stations walk
// away from each wall corner at the rafter pitch; each station yields one
// jack on the end wall and one on the side wall, both terminating against
// the same hip. The run is the distance from the nearest corner; jacks
// shorter than twice the member width are degenerate slivers and skipped.
// Every jack carries the common pitch: end-wall jacks climb along the depth
// axis, side-wall jacks along the width axis, mirroring the common-rafter
// orientation on each slope.
func jackFamilies(ends []hipEnd, fw, z0, z1, fd, gw, gd, thetaC float64) []MemberSpec {
	var members []MemberSpec
	cosC := math.Cos(thetaC)

	for _, e := range ends {
		// Direction along each wall pointing away from the corner.
		endDir := 1.0 // along X on the end wall
		if e.corner.X > 0 {
			endDir = -1
		}
		endLimit := fw / 2
		sideDir := 1.0 // along Z on the side wall
		sideLimit := z0
		// Yaw turns the pitched member so it climbs off its wall plate:
		// end-wall jacks run along Z, side-wall jacks along X.
		endYaw := -scene.Yaw90
		sideYaw := 0.0
		if e.corner.Z > 0 {
			sideDir = -1
			sideLimit = fd - z1
			endYaw = scene.Yaw90
		}
		if e.corner.X > 0 {
			sideYaw = math.Pi
		}

		for s := RafterSpacing; s < endLimit || s < sideLimit; s += RafterSpacing {
			length := s / cosC
			if length < 2*gw {
				continue
			}
			if s < endLimit {
				members = append(members, withNote(MemberSpec{
					Role: RoleJack, Length: length, Width: gw, Depth: gd,
					Size: scene.Box{X: length, Y: gd, Z: gw},
					At: scene.Transform{
						Rotation:    scene.Rotation{Yaw: endYaw, Pitch: thetaC},
						Translation: r3.Vec{X: e.corner.X + endDir*s, Z: e.corner.Z},
					},
				}, "end wall"))
			}
			if s < sideLimit {
				members = append(members, withNote(MemberSpec{
					Role: RoleJack, Length: length, Width: gw, Depth: gd,
					Size: scene.Box{X: length, Y: gd, Z: gw},
					At: scene.Transform{
						Rotation:    scene.Rotation{Yaw: sideYaw, Pitch: thetaC},
						Translation: r3.Vec{X: e.corner.X, Z: e.corner.Z + sideDir*s},
					},
				}, "side wall"))
			}
		}
	}
	return members
}

// hipTriangles returns the eight triangular sheathing panels: two per end
// face and one per long-slope hip end. Vertices are ordered so the computed
// normals face up and outward. Every vertex lies on its own slope plane, so
// overhung eaves edges drop by the overhang times the common pitch and the
// triangles stay coplanar with the adjoining saddle sheathing.
func hipTriangles(fw, fd, ohL, ohR, ohF, ohB, ridgeX, rise, tanC, z0, z1 float64) []TriSpec {
	rf := r3.Vec{X: ridgeX, Y: rise, Z: z0}
	rb := r3.Vec{X: ridgeX, Y: rise, Z: z1}

	// End-face vertices, on the front/back planes.
	frontL := r3.Vec{X: -ohL, Y: -ohF * tanC, Z: -ohF}
	frontR := r3.Vec{X: fw + ohR, Y: -ohF * tanC, Z: -ohF}
	frontMid := r3.Vec{X: ridgeX, Y: -ohF * tanC, Z: -ohF}
	backL := r3.Vec{X: -ohL, Y: -ohB * tanC, Z: fd + ohB}
	backR := r3.Vec{X: fw + ohR, Y: -ohB * tanC, Z: fd + ohB}
	backMid := r3.Vec{X: ridgeX, Y: -ohB * tanC, Z: fd + ohB}

	// Hip-end vertices of the long slopes, on the left/right planes.
	leftFront := r3.Vec{X: -ohL, Y: -ohL * tanC, Z: z0}
	leftBack := r3.Vec{X: -ohL, Y: -ohL * tanC, Z: z1}
	leftC1 := r3.Vec{X: -ohL, Y: -ohL * tanC, Z: -ohF}
	leftC4 := r3.Vec{X: -ohL, Y: -ohL * tanC, Z: fd + ohB}
	rightFront := r3.Vec{X: fw + ohR, Y: -ohR * tanC, Z: z0}
	rightBack := r3.Vec{X: fw + ohR, Y: -ohR * tanC, Z: z1}
	rightC2 := r3.Vec{X: fw + ohR, Y: -ohR * tanC, Z: -ohF}
	rightC3 := r3.Vec{X: fw + ohR, Y: -ohR * tanC, Z: fd + ohB}

	return []TriSpec{
		{Material: MaterialOSB, V: [3]r3.Vec{frontL, rf, frontMid}, Note: "front face"},
		{Material: MaterialOSB, V: [3]r3.Vec{frontMid, rf, frontR}, Note: "front face"},
		{Material: MaterialOSB, V: [3]r3.Vec{backR, rb, backMid}, Note: "back face"},
		{Material: MaterialOSB, V: [3]r3.Vec{backMid, rb, backL}, Note: "back face"},
		{Material: MaterialOSB, V: [3]r3.Vec{leftC1, leftFront, rf}, Note: "left slope, front hip"},
		{Material: MaterialOSB, V: [3]r3.Vec{leftBack, leftC4, rb}, Note: "left slope, back hip"},
		{Material: MaterialOSB, V: [3]r3.Vec{rightFront, rightC2, rf}, Note: "right slope, front hip"},
		{Material: MaterialOSB, V: [3]r3.Vec{rightC3, rightBack, rb}, Note: "right slope, back hip"},
	}
}
