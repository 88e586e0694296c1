package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Assembly is the per-build ownership root for one (style, section) pair.
// Creating an assembly disposes the previous one for the same pair, so
// exactly one live assembly exists per pair at any time and rebuilds are
// idempotent in any order across sections.
type Assembly struct {
	Scene   *Scene
	Style   string
	Section string
	Root    *Node

	Members []*Node
	Panels  []*Node

	seq int
}

// NewAssembly tears down the style's auxiliary hooks, disposes the previous
// assembly for (style, section), and creates a fresh root with the given
// placement.
func NewAssembly(s *Scene, style, section string, placement Transform) *Assembly {
	s.RunTeardown(style)
	s.DisposeMatching(style, section)

	meta := Metadata{Style: style, Part: "root", Section: section, Dynamic: true}
	root := s.NewRoot(nodeName(style, section, "root", 0), meta, placement)
	return &Assembly{Scene: s, Style: style, Section: section, Root: root}
}

// nodeName builds the style-prefixed name that DisposeMatching keys on.
func nodeName(style, section, part string, seq int) string {
	if section == "" {
		return fmt.Sprintf("%s_%s_%d", style, part, seq)
	}
	return fmt.Sprintf("%s_%s_%s_%d", style, section, part, seq)
}

func (a *Assembly) next() int {
	a.seq++
	return a.seq
}

func (a *Assembly) meta(part string) Metadata {
	return Metadata{Style: a.Style, Part: part, Section: a.Section, Dynamic: true}
}

// AddBox creates a box mesh anchored at its bottom near corner: the local
// origin sits at the minimum corner of the box.
func (a *Assembly) AddBox(part string, size Box, at Transform) *Node {
	n := newNode(nodeName(a.Style, a.Section, part, a.next()), a.meta(part))
	n.Box = &size
	n.Local = at
	a.Root.attach(n)
	return n
}

// AddCenteredBox creates a box mesh anchored at its center.
func (a *Assembly) AddCenteredBox(part string, size Box, at Transform) *Node {
	at.Translation = r3.Sub(at.Translation, at.Rotation.Apply(r3.Vec{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}))
	return a.AddBox(part, size, at)
}

// AddMember creates a timber member box and records it in build order.
func (a *Assembly) AddMember(part string, size Box, at Transform) *Node {
	n := a.AddBox(part, size, at)
	a.Members = append(a.Members, n)
	return n
}

// AddMemberIn is AddMember attached under an existing group node instead of
// the assembly root.
func (a *Assembly) AddMemberIn(group *Node, part string, size Box, at Transform) *Node {
	n := newNode(nodeName(a.Style, a.Section, part, a.next()), a.meta(part))
	n.Box = &size
	n.Local = at
	group.attach(n)
	a.Members = append(a.Members, n)
	return n
}

// AddPanel creates a sheet panel box and records it in build order.
func (a *Assembly) AddPanel(part string, size Box, at Transform) *Node {
	n := a.AddBox(part, size, at)
	a.Panels = append(a.Panels, n)
	return n
}

// AddTrianglePanel creates an explicit triangle panel. Vertices are in the
// assembly's local space; the normal comes from the triangle's own edges.
func (a *Assembly) AddTrianglePanel(part string, v0, v1, v2 r3.Vec) *Node {
	n := newNode(nodeName(a.Style, a.Section, part, a.next()), a.meta(part))
	tri := TriangleFrom(v0, v1, v2)
	n.Tri = &tri
	a.Root.attach(n)
	a.Panels = append(a.Panels, n)
	return n
}

// Group creates a transform node under the root for grouping related
// members (one truss, one slope).
func (a *Assembly) Group(part string, at Transform) *Node {
	n := newNode(nodeName(a.Style, a.Section, part, a.next()), a.meta(part))
	n.Local = at
	a.Root.attach(n)
	return n
}
