// Package scene models the render-side ownership tree for built assemblies:
// named nodes with parent/child relationships, local transforms, cached
// material handles, and the per-session services (roof underside queries)
// that replace implicit global scene state.
package scene

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rotation is a yaw/pitch/roll Euler rotation in radians. Application order
// is roll about the local A axis, then pitch, then yaw about the vertical.
type Rotation struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// IsZero reports whether the rotation is identity.
func (r Rotation) IsZero() bool {
	return r.Yaw == 0 && r.Pitch == 0 && r.Roll == 0
}

// Apply rotates v by roll, pitch, then yaw.
func (r Rotation) Apply(v r3.Vec) r3.Vec {
	if r.Roll != 0 {
		v = r3.NewRotation(r.Roll, r3.Vec{X: 1}).Rotate(v)
	}
	if r.Pitch != 0 {
		v = r3.NewRotation(r.Pitch, r3.Vec{Z: 1}).Rotate(v)
	}
	if r.Yaw != 0 {
		v = r3.NewRotation(r.Yaw, r3.Vec{Y: 1}).Rotate(v)
	}
	return v
}

// Transform is a local-to-parent placement: rotate, then translate.
type Transform struct {
	Rotation    Rotation `json:"rotation"`
	Translation r3.Vec   `json:"translation"`
}

// Apply maps a point from local space into the parent's space.
func (t Transform) Apply(v r3.Vec) r3.Vec {
	return r3.Add(t.Rotation.Apply(v), t.Translation)
}

// Metadata tags every dynamically generated primitive so rebuilds can find
// and dispose exactly the nodes belonging to one (style, section) pair.
type Metadata struct {
	Style   string `json:"style"`
	Part    string `json:"part"`
	Section string `json:"section"`
	Dynamic bool   `json:"dynamic"`
}

// Box is a rectangular-prism shape. X, Y and Z are the local extents in mm.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Triangle is an explicit 3-vertex shape with an outward normal, used for
// the hip-end sheathing panels that no axis-aligned box can express.
type Triangle struct {
	V      [3]r3.Vec `json:"v"`
	Normal r3.Vec    `json:"normal"`
}

// TriangleFrom builds a Triangle with its normal computed from the
// triangle's own edges. Degenerate triangles get a zero normal.
func TriangleFrom(a, b, c r3.Vec) Triangle {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if l := r3.Norm(n); l > 0 {
		n = r3.Scale(1/l, n)
	}
	return Triangle{V: [3]r3.Vec{a, b, c}, Normal: n}
}

// Node is one element of the ownership tree. Mesh nodes carry a shape
// payload (Box or Tri); transform nodes only group children.
type Node struct {
	ID   string
	Name string
	Meta Metadata

	Local Transform

	Parent   *Node
	Children []*Node

	Box *Box
	Tri *Triangle

	// Mat is the render material handle assigned at build time. Transform
	// nodes carry none.
	Mat *Material

	disposed bool
}

func newNode(name string, meta Metadata) *Node {
	return &Node{
		ID:   uuid.New().String()[:8],
		Name: name,
		Meta: meta,
	}
}

// IsMesh reports whether the node carries renderable geometry.
func (n *Node) IsMesh() bool {
	return n.Box != nil || n.Tri != nil
}

// Disposed reports whether the node has been removed from its scene.
func (n *Node) Disposed() bool {
	return n.disposed
}

// Depth returns the number of ancestors above the node.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// attach links child under n.
func (n *Node) attach(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// WorldPoint maps a local-space point through every ancestor transform.
func (n *Node) WorldPoint(v r3.Vec) r3.Vec {
	for node := n; node != nil; node = node.Parent {
		v = node.Local.Apply(v)
	}
	return v
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() r3.Vec {
	return n.WorldPoint(r3.Vec{})
}

// Yaw90 is a quarter-turn about the vertical axis.
const Yaw90 = math.Pi / 2
