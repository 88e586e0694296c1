package scene

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Material is a cached render material handle. Materials are created lazily
// on first access and live for the whole session; they are never disposed
// between rebuilds.
type Material struct {
	Name  string
	Color string
}

// UndersideQuery maps a plan position (x along width, z along depth, roof
// local origin) to the roof's analytic underside height. ok is false when
// the position falls outside the roof plan.
type UndersideQuery func(x, z float64) (y float64, ok bool)

// Scene is the explicit per-session context object: the node registry, the
// lazily cached materials, and the per-section roof services published by
// builders for wall-side collaborators. It replaces implicit global scene
// state with a clear create/replace/teardown lifecycle.
type Scene struct {
	roots []*Node

	materials map[string]Material

	// underside queries keyed by section id; re-registering replaces the
	// previous query so cladding is never trimmed against a stale roof.
	underside map[string]UndersideQuery

	// teardown hooks keyed by style, run before that style rebuilds.
	teardown map[string]func()
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		materials: make(map[string]Material),
		underside: make(map[string]UndersideQuery),
		teardown:  make(map[string]func()),
	}
}

// Material returns the cached material with the given name, creating it on
// first access.
func (s *Scene) Material(name, color string) Material {
	if m, ok := s.materials[name]; ok {
		return m
	}
	m := Material{Name: name, Color: color}
	s.materials[name] = m
	return m
}

// NewRoot creates a top-level transform node.
func (s *Scene) NewRoot(name string, meta Metadata, placement Transform) *Node {
	n := newNode(name, meta)
	n.Local = placement
	s.roots = append(s.roots, n)
	return n
}

// Roots returns the live top-level nodes.
func (s *Scene) Roots() []*Node {
	live := make([]*Node, 0, len(s.roots))
	for _, r := range s.roots {
		if !r.disposed {
			live = append(live, r)
		}
	}
	return live
}

// Nodes returns every live node in the scene, parents before children.
func (s *Scene) Nodes() []*Node {
	var all []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.disposed {
			return
		}
		all = append(all, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range s.Roots() {
		walk(r)
	}
	return all
}

// Collect returns every live node whose name starts with prefix and whose
// metadata marks it dynamic and belonging to the given section.
func (s *Scene) Collect(prefix, section string) []*Node {
	var out []*Node
	for _, n := range s.Nodes() {
		if n.Meta.Dynamic && n.Meta.Section == section && strings.HasPrefix(n.Name, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// DisposeMatching removes every dynamic node of the given style prefix and
// section: meshes first, then transform nodes in descending depth order.
// Children must go before parents; disposing a parent first would orphan
// geometry wherever parent transforms compose implicitly.
func (s *Scene) DisposeMatching(prefix, section string) int {
	matched := s.Collect(prefix, section)

	var meshes, transforms []*Node
	for _, n := range matched {
		if n.IsMesh() {
			meshes = append(meshes, n)
		} else {
			transforms = append(transforms, n)
		}
	}
	sort.SliceStable(transforms, func(i, j int) bool {
		return transforms[i].Depth() > transforms[j].Depth()
	})

	for _, n := range meshes {
		s.dispose(n)
	}
	for _, n := range transforms {
		s.dispose(n)
	}
	return len(meshes) + len(transforms)
}

func (s *Scene) dispose(n *Node) {
	if n.disposed {
		return
	}
	n.disposed = true
	if n.Parent != nil {
		kept := n.Parent.Children[:0]
		for _, c := range n.Parent.Children {
			if c != n {
				kept = append(kept, c)
			}
		}
		n.Parent.Children = kept
		n.Parent = nil
	}
	// Anything still attached below goes with it.
	for _, c := range n.Children {
		c.Parent = nil
		s.dispose(c)
	}
	n.Children = nil
}

// RegisterUnderside publishes (or replaces) the roof underside query for a
// section. Wall and cladding builders call the query directly after the
// roof is built, making the roof-before-cladding dependency explicit.
func (s *Scene) RegisterUnderside(section string, q UndersideQuery) {
	s.underside[section] = q
}

// Underside returns the roof underside query for a section, if published.
func (s *Scene) Underside(section string) (UndersideQuery, bool) {
	q, ok := s.underside[section]
	return q, ok
}

// DropUnderside removes a section's underside query.
func (s *Scene) DropUnderside(section string) {
	delete(s.underside, section)
}

// RegisterTeardown stores a hook run before the given style next rebuilds.
// Registering replaces any previous hook for the style.
func (s *Scene) RegisterTeardown(style string, fn func()) {
	s.teardown[style] = fn
}

// RunTeardown runs and clears the teardown hook for a style, if any.
func (s *Scene) RunTeardown(style string) {
	if fn, ok := s.teardown[style]; ok {
		delete(s.teardown, style)
		fn()
	}
}

// SampleWorld is a convenience for tests and diagnostics: the world-space
// position of a local point under a node.
func SampleWorld(n *Node, local r3.Vec) r3.Vec {
	return n.WorldPoint(local)
}
