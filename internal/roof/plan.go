package roof

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/bom"
	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/geom"
	"github.com/gardenkit/roofsmith/internal/scene"
)

// Member roles. They drive both node part tags and BOM item names.
const (
	RoleRim      = "rim"
	RoleRafter   = "rafter"
	RoleRafterL  = "rafter-L"
	RoleRafterR  = "rafter-R"
	RoleTie      = "tie"
	RoleKingpost = "kingpost"
	RolePurlin   = "purlin"
	RoleRidge    = "ridge"
	RoleHip      = "hip"
	RoleCommon   = "common"
	RoleJack     = "jack"
	RoleFascia   = "fascia"
	RoleBarge    = "barge"
)

// Panel materials.
const (
	MaterialOSB        = "osb"
	MaterialCovering   = "covering"
	MaterialInsulation = "insulation"
	MaterialLining     = "lining"
)

// MemberSpec is one timber piece of a build plan: nominal cutting
// dimensions plus the oriented box realizing it in the assembly.
type MemberSpec struct {
	Role   string
	Length float64 // along the member
	Width  float64 // cross-section width
	Depth  float64 // cross-section depth
	Size   scene.Box
	At     scene.Transform
	Center bool // center-anchored instead of corner-anchored
	Note   string
}

// PanelSpec is one sheet piece on a planar layer: a rect in the layer's own
// a/b coordinates plus the transform placing the layer in assembly space.
type PanelSpec struct {
	Material  string
	Kind      geom.Kind
	Rect      geom.Rect
	Thickness float64
	At        scene.Transform
	Note      string
}

// TriSpec is an explicit 3-vertex sheathing panel, used where hip geometry
// cannot be expressed as an axis-aligned box.
type TriSpec struct {
	Material string
	V        [3]r3.Vec
	Note     string
}

// Diagnostics are reported, never enforced. The pent high-edge residual in
// particular is informational only: placement anchors the low edge.
type Diagnostics struct {
	Rise             float64
	Pitch            float64
	SlopeScale       float64
	LowBearing       float64
	HighBearing      float64
	HighEdgeResidual float64
	RafterCount      int
	TrussCount       int
}

// Plan is the complete, immutable output of one style's layout pass. It is
// pure with respect to the configuration: the geometry builder realizes it
// into scene nodes and the BOM aggregator flattens it into rows, so both
// views agree by construction.
type Plan struct {
	Style   string
	Gauge   config.Gauge
	Root    scene.Transform
	Members []MemberSpec
	Panels  []PanelSpec
	Tris    []TriSpec
	Diag    Diagnostics

	// Underside, when set, is published on the scene at Realize time so
	// wall-side builders can stop cladding at the roofline analytically.
	Underside scene.UndersideQuery
}

// memberAlongX creates a member spec running along the local X axis.
func memberAlongX(role string, length, w, d float64, at scene.Transform) MemberSpec {
	return MemberSpec{
		Role: role, Length: length, Width: w, Depth: d,
		Size: scene.Box{X: length, Y: d, Z: w},
		At:   at,
	}
}

// memberAlongZ creates a member spec running along the local Z axis.
func memberAlongZ(role string, length, w, d float64, at scene.Transform) MemberSpec {
	return MemberSpec{
		Role: role, Length: length, Width: w, Depth: d,
		Size: scene.Box{X: w, Y: d, Z: length},
		At:   at,
	}
}

// memberVertical creates a member spec standing along the local Y axis.
func memberVertical(role string, length, w, d float64, at scene.Transform) MemberSpec {
	return MemberSpec{
		Role: role, Length: length, Width: w, Depth: d,
		Size: scene.Box{X: w, Y: length, Z: d},
		At:   at,
	}
}

// materialColors are the session material definitions, created lazily on
// first build and cached for the whole session.
var materialColors = map[string]string{
	"timber":           "#b5854b",
	MaterialOSB:        "#caa472",
	MaterialCovering:   "#3a3a3a",
	MaterialInsulation: "#d9c98f",
	MaterialLining:     "#e8dcc4",
}

func material(s *scene.Scene, name string) *scene.Material {
	m := s.Material(name, materialColors[name])
	return &m
}

// Realize builds the plan into a fresh assembly for (style, section),
// disposing any previous one. The section offset shifts the whole root.
func (p *Plan) Realize(s *scene.Scene, section string, offset r3.Vec) *scene.Assembly {
	root := p.Root
	root.Translation = r3.Add(root.Translation, offset)

	a := scene.NewAssembly(s, p.Style, section, root)

	timber := material(s, "timber")
	for _, m := range p.Members {
		var n *scene.Node
		if m.Center {
			n = a.AddCenteredBox(m.Role, m.Size, m.At)
			a.Members = append(a.Members, n)
		} else {
			n = a.AddMember(m.Role, m.Size, m.At)
		}
		n.Mat = timber
	}

	for _, pn := range p.Panels {
		at := pn.At
		at.Translation = r3.Add(at.Translation, at.Rotation.Apply(r3.Vec{X: pn.Rect.A, Z: pn.Rect.B}))
		n := a.AddPanel(pn.Material, scene.Box{X: pn.Rect.LenA, Y: pn.Thickness, Z: pn.Rect.LenB}, at)
		n.Mat = material(s, pn.Material)
	}

	for _, t := range p.Tris {
		n := a.AddTrianglePanel(t.Material, t.V[0], t.V[1], t.V[2])
		n.Mat = material(s, t.Material)
	}

	if p.Underside != nil {
		s.RegisterUnderside(section, p.Underside)
		s.RegisterTeardown(p.Style, func() { s.DropUnderside(section) })
	}
	return a
}

// Rows flattens the plan into unmerged BOM rows. bom.Build merges and
// sorts them and computes the TOTAL FRAME rollup.
func (p *Plan) Rows() []bom.Row {
	rows := make([]bom.Row, 0, len(p.Members)+len(p.Panels)+len(p.Tris))
	for _, m := range p.Members {
		rows = append(rows, bom.Row{
			Item:     memberItem(m.Role, p.Gauge),
			Quantity: 1,
			Length:   m.Length,
			Width:    m.Width,
			Notes:    m.Note,
		})
	}
	for _, pn := range p.Panels {
		rows = append(rows, bom.Row{
			Item:     panelItem(pn.Material),
			Quantity: 1,
			Length:   pn.Rect.LenA,
			Width:    pn.Rect.LenB,
			Notes:    panelNote(pn),
			Sheet:    true,
		})
	}
	for _, t := range p.Tris {
		la, lb := triExtents(t)
		rows = append(rows, bom.Row{
			Item:     panelItem(t.Material),
			Quantity: 1,
			Length:   la,
			Width:    lb,
			Notes:    joinNotes("triangular", t.Note),
			Sheet:    true,
		})
	}
	return rows
}

func memberItem(role string, g config.Gauge) string {
	var name string
	switch role {
	case RoleRim:
		name = "Rim joist"
	case RoleRafter:
		name = "Rafter"
	case RoleRafterL:
		name = "Rafter (left)"
	case RoleRafterR:
		name = "Rafter (right)"
	case RoleTie:
		name = "Tie beam"
	case RoleKingpost:
		name = "King post"
	case RolePurlin:
		name = "Purlin"
	case RoleRidge:
		name = "Ridge board"
	case RoleHip:
		name = "Hip rafter"
	case RoleCommon:
		name = "Common rafter"
	case RoleJack:
		name = "Jack rafter"
	case RoleFascia:
		return fmt.Sprintf("Fascia %.0fx%.0f", FasciaThickness, FasciaWidth)
	case RoleBarge:
		return fmt.Sprintf("Barge board %.0fx%.0f", FasciaThickness, FasciaWidth)
	default:
		name = role
	}
	return fmt.Sprintf("%s %dx%d", name, g.Width, g.Depth)
}

func panelItem(material string) string {
	switch material {
	case MaterialOSB:
		return fmt.Sprintf("OSB %.0f mm", OSBThickness)
	case MaterialCovering:
		return fmt.Sprintf("Covering %.0f mm", CoveringThickness)
	case MaterialInsulation:
		return fmt.Sprintf("Insulation %.0f mm", InsulationThickness)
	case MaterialLining:
		return fmt.Sprintf("Lining ply %.0f mm", LiningThickness)
	default:
		return material
	}
}

func panelNote(pn PanelSpec) string {
	var kind string
	switch pn.Kind {
	case geom.KindStd:
		kind = "full sheet"
	case geom.KindRip:
		kind = "rip"
	case geom.KindCut:
		kind = "cut around opening"
	}
	return joinNotes(kind, pn.Note)
}

func joinNotes(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ", " + b
	}
}

// triExtents returns the bounding extents of a triangle panel for the
// cutting list, longest first.
func triExtents(t TriSpec) (la, lb float64) {
	minV, maxV := t.V[0], t.V[0]
	for _, v := range t.V[1:] {
		if v.X < minV.X {
			minV.X = v.X
		}
		if v.Y < minV.Y {
			minV.Y = v.Y
		}
		if v.Z < minV.Z {
			minV.Z = v.Z
		}
		if v.X > maxV.X {
			maxV.X = v.X
		}
		if v.Y > maxV.Y {
			maxV.Y = v.Y
		}
		if v.Z > maxV.Z {
			maxV.Z = v.Z
		}
	}
	d := r3.Sub(maxV, minV)
	ext := []float64{d.X, d.Y, d.Z}
	// largest two of the three axis extents
	la, lb = ext[0], ext[1]
	if lb > la {
		la, lb = lb, la
	}
	if ext[2] > la {
		la, lb = ext[2], la
	} else if ext[2] > lb {
		lb = ext[2]
	}
	return la, lb
}
