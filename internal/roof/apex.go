package roof

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// apexPlan lays out a two-slope roof: trusses across the width, ridge along
// the depth. The local origin is the frame's left-front corner at wall
// bearing height; overhang geometry extends into negative coordinates.
func apexPlan(b config.Building, opts Options) *Plan {
	d := config.Resolve(b)
	g := d.Gauge
	gw, gd := float64(g.Width), float64(g.Depth)
	fw, fd := float64(d.FrameWidth), float64(d.FrameDepth)
	rd := float64(d.RoofDepth)
	ohL, ohR := float64(d.OverhangLeft), float64(d.OverhangRight)
	ohF := float64(d.OverhangFront)

	eaves, crest := config.ApexHeights(b)
	wallH := math.Max(config.MinHeight, eaves-stackOffset(g))

	halfSpan := fw / 2
	var rise float64
	if b.Roof.Apex.HeightToEaves > 0 && b.Roof.Apex.HeightToCrest > 0 {
		rise = SolveRise(eaves, crest, halfSpan, OSBThickness)
	} else {
		rise = LegacyRise(fw)
	}
	theta := math.Atan2(rise, halfSpan)
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	tanT := rise / halfSpan
	ridgeX := halfSpan

	runL := halfSpan + ohL
	runR := halfSpan + ohR
	rafterLenL := runL / cosT
	rafterLenR := runR / cosT

	slate := b.Roof.Apex.Covering == "slate"
	fasciaRaise := 0.0
	if slate {
		// Slate coverings sit on battens; fascia and barge come up with them.
		fasciaRaise = BattenAllowance
	}

	p := &Plan{Style: config.StyleApex, Gauge: g}
	p.Root = scene.Transform{Translation: r3.Vec{Y: wallH}}

	// Truss stations along the frame ridge span. An explicit count spreads
	// evenly across the frame (never the overhang); otherwise fixed pitch
	// with the last truss flush to the far frame edge.
	var trussZ []float64
	if tc := b.Roof.Apex.TrussCount; tc >= 2 {
		span := fd - gw
		for i := 0; i < tc; i++ {
			trussZ = append(trussZ, float64(i)*span/float64(tc-1))
		}
	} else {
		trussZ = stations(fd, gw, RafterSpacing)
	}

	tieRaised := b.Roof.Apex.TieBeam == config.TieRaised
	tieY := 0.0
	if tieRaised {
		tieY = RaisedTieRatio * rise
	}
	halfAtTie := halfSpan
	if rise > 0 {
		halfAtTie = halfSpan * (1 - tieY/rise)
	}
	tieLen := 2 * halfAtTie

	doorStub := 0.0
	doorIntrudes := false
	if b.Door.Present() {
		// Door head above the tie underside splits the front gable tie.
		doorIntrudes = b.Door.Height > wallH+tieY
		doorStub = (tieLen - (b.Door.Width + 2*gw)) / 2
	}

	p.Diag = Diagnostics{
		Rise:       rise,
		Pitch:      theta,
		LowBearing: wallH,
		TrussCount: len(trussZ),
	}

	if b.Parts.Structure {
		for i, z := range trussZ {
			frontGable := i == 0

			// Sloped rafters meet at the ridge.
			p.Members = append(p.Members,
				MemberSpec{
					Role: RoleRafterL, Length: rafterLenL, Width: gw, Depth: gd,
					Size: scene.Box{X: rafterLenL, Y: gd, Z: gw},
					At: scene.Transform{
						Rotation:    scene.Rotation{Pitch: theta},
						Translation: r3.Vec{X: -ohL, Y: -ohL * tanT, Z: z},
					},
				},
				MemberSpec{
					Role: RoleRafterR, Length: rafterLenR, Width: gw, Depth: gd,
					Size: scene.Box{X: rafterLenR, Y: gd, Z: gw},
					At: scene.Transform{
						Rotation:    scene.Rotation{Pitch: -theta},
						Translation: r3.Vec{X: ridgeX, Y: rise, Z: z},
					},
				},
			)

			if frontGable && doorIntrudes {
				// The door opening splits the tie into two stubs; the door
				// cripple itself belongs to the wall builder. No kingpost
				// on this truss.
				if doorStub > 0 {
					p.Members = append(p.Members,
						withNote(memberAlongX(RoleTie, doorStub, gw, gd, at(ridgeX-halfAtTie, tieY, z)), "door stub"),
						withNote(memberAlongX(RoleTie, doorStub, gw, gd, at(ridgeX+halfAtTie-doorStub, tieY, z)), "door stub"),
					)
				}
				continue
			}

			tieNote := ""
			if tieRaised {
				tieNote = "raised tie"
			}
			p.Members = append(p.Members,
				withNote(memberAlongX(RoleTie, tieLen, gw, gd, at(ridgeX-halfAtTie, tieY, z)), tieNote))

			if kingLen := rise - tieY - gd; kingLen > 0 {
				p.Members = append(p.Members,
					memberVertical(RoleKingpost, kingLen, gw, gd, at(ridgeX-gw/2, tieY+gd, z)))
				// Cap wedge under the ridge, tilted to the pitch angle.
				p.Members = append(p.Members, MemberSpec{
					Role: RoleKingpost, Length: gw, Width: gw, Depth: gd,
					Size:   scene.Box{X: gw, Y: gd, Z: gw},
					Center: true,
					At: scene.Transform{
						Rotation:    scene.Rotation{Pitch: theta},
						Translation: r3.Vec{X: ridgeX, Y: rise - gd/2, Z: z + gw/2},
					},
					Note: "cap wedge",
				})
			}
		}

		// Ridge board spans the frame depth.
		p.Members = append(p.Members,
			memberAlongZ(RoleRidge, fd, gw, gd, at(ridgeX-gw/2, rise-gd, 0)))

		// Purlins: one at the ridge, then every PurlinStep measured along
		// the slope, with a final station at the true eaves-edge distance.
		for _, s := range slopeStations(rafterLenL, PurlinStep) {
			p.Members = append(p.Members,
				withNote(memberAlongZ(RolePurlin, rd, gw, gd,
					at(ridgeX-s*cosT-gw, rise-s*sinT, -ohF)), "left slope"))
		}
		for _, s := range slopeStations(rafterLenR, PurlinStep) {
			p.Members = append(p.Members,
				withNote(memberAlongZ(RolePurlin, rd, gw, gd,
					at(ridgeX+s*cosT, rise-s*sinT, -ohF)), "right slope"))
		}

		// Fascia at both eaves, barge boards up both gables, and diamond
		// caps where the barge pairs meet at the ridge.
		p.Members = append(p.Members,
			memberAlongZ(RoleFascia, rd, FasciaThickness, FasciaWidth,
				at(-ohL-FasciaThickness, -ohL*tanT+fasciaRaise, -ohF)),
			memberAlongZ(RoleFascia, rd, FasciaThickness, FasciaWidth,
				at(fw+ohR, -ohR*tanT+fasciaRaise, -ohF)),
		)
		for _, z := range []float64{-ohF - FasciaThickness, fd + float64(d.OverhangBack)} {
			p.Members = append(p.Members,
				MemberSpec{
					Role: RoleBarge, Length: rafterLenL, Width: FasciaThickness, Depth: FasciaWidth,
					Size: scene.Box{X: rafterLenL, Y: FasciaWidth, Z: FasciaThickness},
					At: scene.Transform{
						Rotation:    scene.Rotation{Pitch: theta},
						Translation: r3.Vec{X: -ohL, Y: -ohL*tanT + fasciaRaise, Z: z},
					},
				},
				MemberSpec{
					Role: RoleBarge, Length: rafterLenR, Width: FasciaThickness, Depth: FasciaWidth,
					Size: scene.Box{X: rafterLenR, Y: FasciaWidth, Z: FasciaThickness},
					At: scene.Transform{
						Rotation:    scene.Rotation{Pitch: -theta},
						Translation: r3.Vec{X: ridgeX, Y: rise + fasciaRaise, Z: z},
					},
				},
			)
			// 45-degree diamond cap at the ridge-gable intersection. The
			// turn is about the plate's own normal, so the thin face stays
			// flush with the gable plane.
			p.Members = append(p.Members, MemberSpec{
				Role: RoleFascia, Length: FasciaWidth, Width: FasciaWidth, Depth: FasciaThickness,
				Size:   scene.Box{X: FasciaWidth, Y: FasciaWidth, Z: FasciaThickness},
				Center: true,
				At: scene.Transform{
					Rotation:    scene.Rotation{Pitch: math.Pi / 4},
					Translation: r3.Vec{X: ridgeX, Y: rise + fasciaRaise, Z: z + FasciaThickness/2},
				},
				Note: "ridge cap",
			})
		}
	}

	// Slope sheathing planes: the A axis runs up-slope from the eaves edge,
	// the B axis along the depth, offset off the rafters by their depth.
	leftPlane := scene.Transform{
		Rotation:    scene.Rotation{Pitch: theta},
		Translation: r3.Vec{X: -ohL - gd*sinT, Y: -ohL*tanT + gd*cosT, Z: -ohF},
	}
	// The right plane's A axis also ascends toward the ridge: pitched the
	// same way, then yawed half a turn. The yaw flips the B axis too, so
	// its origin sits at the back corner of the right eaves.
	rightPlane := scene.Transform{
		Rotation:    scene.Rotation{Yaw: math.Pi, Pitch: theta},
		Translation: r3.Vec{X: fw + ohR + gd*sinT, Y: -ohR*tanT + gd*cosT, Z: fd + float64(d.OverhangBack)},
	}

	holesL := openings(opts.Openings, b, SlopeApexLeft)
	holesR := openings(opts.Openings, b, SlopeApexRight)

	if b.Parts.OSB {
		// Orientation is fixed: the 2440 sheet dimension runs down-slope.
		appendSlopePanels(p, MaterialOSB, OSBThickness, leftPlane,
			geom.PackWithHoles(rafterLenL, rd, SheetLength, SheetWidth, holesL), "left slope")
		appendSlopePanels(p, MaterialOSB, OSBThickness, rightPlane,
			geom.PackWithHoles(rafterLenR, rd, SheetLength, SheetWidth, holesR), "right slope")
	}

	if b.Parts.Covering {
		// The covering mirrors the OSB with a ridge overlap and fold-downs
		// at the eaves and both verges. No ridge fold: the slopes meet there.
		covL := rafterLenL + RidgeOverlap + CoveringFold
		covR := rafterLenR + RidgeOverlap + CoveringFold
		covB := rd + 2*CoveringFold
		appendSlopePanels(p, MaterialCovering, CoveringThickness, leftPlane,
			geom.PackWithHoles(covL, covB, SheetLength, SheetWidth, shiftHoles(holesL, CoveringFold, CoveringFold)), "left slope")
		appendSlopePanels(p, MaterialCovering, CoveringThickness, rightPlane,
			geom.PackWithHoles(covR, covB, SheetLength, SheetWidth, shiftHoles(holesR, CoveringFold, CoveringFold)), "right slope")
	}

	if b.Walls.Insulated() && tieRaised {
		// The gable infill is a rectangular blank spanning the trapezoid's
		// bounding box; the sloped edges are cut to the rafters on site.
		// A door head rising past the tie is a real hole: the blank splits
		// around it so neither geometry nor the cutting list covers the
		// opening.
		gableRect := geom.Rect{LenA: tieLen, LenB: rise - tieY}
		var doorHole []geom.Rect
		if doorIntrudes {
			head := math.Min(b.Door.Height-wallH-tieY, rise-tieY)
			doorHole = []geom.Rect{{A: doorStub, LenA: b.Door.Width + 2*gw, LenB: head}}
		}
		slopedLen := 0.0
		if sinT > 0 {
			slopedLen = tieY / sinT
		}

		if b.Parts.Insulation {
			for i, z := range []float64{0, fd - InsulationThickness} {
				var holes []geom.Rect
				if i == 0 {
					holes = doorHole
				}
				p.Panels = append(p.Panels, gablePanels(MaterialInsulation,
					InsulationThickness, gableRect, holes, at(ridgeX-halfAtTie, tieY, z))...)
			}
			for i := 0; i+1 < len(trussZ); i++ {
				bay := trussZ[i+1] - (trussZ[i] + gw)
				if bay <= 0 {
					continue
				}
				b0 := trussZ[i] + gw
				if slopedLen > 0 {
					for _, plane := range []scene.Transform{leftPlane, rightPlane} {
						p.Panels = append(p.Panels, PanelSpec{
							Material: MaterialInsulation, Kind: geom.KindCut,
							Rect:      geom.Rect{B: b0 + ohF, LenA: slopedLen, LenB: bay},
							Thickness: InsulationThickness,
							At:        plane,
							Note:      "sloped bay infill",
						})
					}
				}
				p.Panels = append(p.Panels, PanelSpec{
					Material: MaterialInsulation, Kind: geom.KindCut,
					Rect:      geom.Rect{A: ridgeX - halfAtTie, B: b0, LenA: tieLen, LenB: bay},
					Thickness: InsulationThickness,
					At:        at(0, tieY+gd, 0),
					Note:      "horizontal bay infill",
				})
			}
		}

		if b.Parts.Ply {
			for i, z := range []float64{0, fd - LiningThickness} {
				var holes []geom.Rect
				if i == 0 {
					holes = doorHole
				}
				p.Panels = append(p.Panels, gablePanels(MaterialLining,
					LiningThickness, gableRect, holes, at(ridgeX-halfAtTie, tieY, z))...)
			}
			for i := 0; i+1 < len(trussZ); i++ {
				bay := trussZ[i+1] - (trussZ[i] + gw)
				if bay <= 0 {
					continue
				}
				p.Panels = append(p.Panels, PanelSpec{
					Material: MaterialLining, Kind: geom.KindStd,
					Rect:      geom.Rect{A: ridgeX - halfAtTie, B: trussZ[i] + gw, LenA: tieLen, LenB: bay},
					Thickness: LiningThickness,
					At:        at(0, tieY, 0),
					Note:      "ceiling bay",
				})
			}
		}
	}

	// Analytic underside query for wall and cladding builders: the OSB
	// underside plane, anchored off the rafter tops, as a world height.
	ohFq, ohBq := ohF, float64(d.OverhangBack)
	p.Underside = func(x, z float64) (float64, bool) {
		if x < -ohL || x > fw+ohR || z < -ohFq || z > fd+ohBq {
			return 0, false
		}
		drop := math.Abs(x-ridgeX) * tanT
		return wallH + rise - drop + gd/cosT, true
	}

	return p
}

// gablePanels emits one gable infill blank, split around the door head
// hole when present. Pieces keep their offsets within the blank so they
// place correctly against the shared layer transform.
func gablePanels(material string, thickness float64, blank geom.Rect, holes []geom.Rect, at scene.Transform) []PanelSpec {
	note := "gable blank, cut to slope"
	if len(holes) > 0 {
		note = "gable blank, door notch"
	}
	var out []PanelSpec
	for _, piece := range geom.SplitAroundHoles(blank, holes) {
		out = append(out, PanelSpec{
			Material: material, Kind: geom.KindCut,
			Rect: piece.Rect, Thickness: thickness,
			At:   at,
			Note: note,
		})
	}
	return out
}

// withNote sets the note on a member spec.
func withNote(m MemberSpec, note string) MemberSpec {
	m.Note = note
	return m
}

// shiftHoles translates hole rectangles into a plane whose origin moved by
// (-da, -db), e.g. a covering layer that starts a fold below the eaves.
func shiftHoles(holes []Hole, da, db float64) []Hole {
	if len(holes) == 0 {
		return nil
	}
	out := make([]Hole, len(holes))
	for i, h := range holes {
		h.A += da
		h.B += db
		out[i] = h
	}
	return out
}

// appendSlopePanels adds packed pieces onto one slope plane.
func appendSlopePanels(p *Plan, material string, thickness float64, plane scene.Transform, pieces []geom.Piece, note string) {
	for _, piece := range pieces {
		p.Panels = append(p.Panels, PanelSpec{
			Material:  material,
			Kind:      piece.Kind,
			Rect:      piece.Rect,
			Thickness: thickness,
			At:        plane,
			Note:      note,
		})
	}
}
