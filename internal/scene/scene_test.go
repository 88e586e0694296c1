package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func vecNear(t *testing.T, got, want r3.Vec, msg string) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 || math.Abs(got.Z-want.Z) > 1e-6 {
		t.Errorf("%s: got %+v, want %+v", msg, got, want)
	}
}

func TestRotation_YawAboutVertical(t *testing.T) {
	r := Rotation{Yaw: Yaw90}
	vecNear(t, r.Apply(r3.Vec{X: 1}), r3.Vec{Z: -1}, "yaw 90 of +X")
	vecNear(t, r.Apply(r3.Vec{Z: 1}), r3.Vec{X: 1}, "yaw 90 of +Z")
}

func TestRotation_PitchLiftsXTowardY(t *testing.T) {
	r := Rotation{Pitch: math.Pi / 2}
	vecNear(t, r.Apply(r3.Vec{X: 1}), r3.Vec{Y: 1}, "pitch 90 of +X")
}

func TestRotation_ApplyOrder(t *testing.T) {
	// Roll first, then pitch. +Z rolled 90 about X lands on -Y, and the
	// later pitch about Z carries -Y to +X.
	r := Rotation{Roll: math.Pi / 2, Pitch: math.Pi / 2}
	vecNear(t, r.Apply(r3.Vec{Z: 1}), r3.Vec{X: 1}, "roll then pitch of +Z")
}

func TestRotation_IsZero(t *testing.T) {
	if !(Rotation{}).IsZero() {
		t.Error("zero rotation must report IsZero")
	}
	if (Rotation{Pitch: 0.1}).IsZero() {
		t.Error("pitched rotation must not report IsZero")
	}
}

func TestTransform_RotateThenTranslate(t *testing.T) {
	tr := Transform{
		Rotation:    Rotation{Yaw: Yaw90},
		Translation: r3.Vec{X: 100, Y: 50, Z: 10},
	}
	vecNear(t, tr.Apply(r3.Vec{X: 1}), r3.Vec{X: 100, Y: 50, Z: 9}, "rotation applies before translation")
}

func TestTriangleFrom_NormalFromEdges(t *testing.T) {
	tri := TriangleFrom(r3.Vec{}, r3.Vec{Z: 1}, r3.Vec{X: 1})
	vecNear(t, tri.Normal, r3.Vec{Y: 1}, "counter-clockwise from above faces up")

	if n := r3.Norm(tri.Normal); math.Abs(n-1) > eps {
		t.Errorf("normal not unit length: %v", n)
	}

	degenerate := TriangleFrom(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2})
	vecNear(t, degenerate.Normal, r3.Vec{}, "degenerate triangle gets zero normal")
}

func TestNode_WorldPointComposesAncestors(t *testing.T) {
	s := New()
	a := NewAssembly(s, "pent", "", Transform{Translation: r3.Vec{X: 1000}})
	g := a.Group("truss", Transform{Translation: r3.Vec{Z: 600}})
	n := a.AddMemberIn(g, "rafter", Box{X: 100, Y: 70, Z: 44}, Transform{Translation: r3.Vec{Y: 50}})

	vecNear(t, n.WorldPosition(), r3.Vec{X: 1000, Y: 50, Z: 600}, "nested translations compose")
	vecNear(t, SampleWorld(n, r3.Vec{X: 100}), r3.Vec{X: 1100, Y: 50, Z: 600}, "local offsets ride along")
	if n.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", n.Depth())
	}
}

func TestAssembly_AddCenteredBox(t *testing.T) {
	s := New()
	a := NewAssembly(s, "apex", "", Transform{})
	n := a.AddCenteredBox("cap", Box{X: 200, Y: 100, Z: 40}, Transform{Translation: r3.Vec{X: 1000, Y: 500, Z: 300}})

	// The given translation is the box center, so the anchor corner moves
	// back by half the size.
	vecNear(t, n.WorldPosition(), r3.Vec{X: 900, Y: 450, Z: 280}, "centered box anchor")
	vecNear(t, n.WorldPoint(r3.Vec{X: 100, Y: 50, Z: 20}), r3.Vec{X: 1000, Y: 500, Z: 300}, "centered box center")
}

func TestAssembly_NodeNamesCarrySectionAndSequence(t *testing.T) {
	s := New()
	a := NewAssembly(s, "apex", "east", Transform{})
	n1 := a.AddMember("rafter-L", Box{X: 100, Y: 70, Z: 44}, Transform{})
	n2 := a.AddMember("rafter-R", Box{X: 100, Y: 70, Z: 44}, Transform{})

	if n1.Name != "apex_east_rafter-L_1" {
		t.Errorf("unexpected first member name %q", n1.Name)
	}
	if n2.Name != "apex_east_rafter-R_2" {
		t.Errorf("unexpected second member name %q", n2.Name)
	}
	if a.Root.Name != "apex_east_root_0" {
		t.Errorf("unexpected root name %q", a.Root.Name)
	}
}

func TestNewAssembly_ReplacesPreviousBuild(t *testing.T) {
	s := New()

	a1 := NewAssembly(s, "pent", "", Transform{})
	a1.AddMember("rafter", Box{X: 100, Y: 70, Z: 44}, Transform{})
	a1.AddPanel("osb", Box{X: 2440, Y: 18, Z: 1220}, Transform{})
	first := len(s.Collect("pent", ""))

	a2 := NewAssembly(s, "pent", "", Transform{})
	a2.AddMember("rafter", Box{X: 100, Y: 70, Z: 44}, Transform{})
	a2.AddPanel("osb", Box{X: 2440, Y: 18, Z: 1220}, Transform{})

	if got := len(s.Collect("pent", "")); got != first {
		t.Errorf("rebuild must be idempotent: first build had %d nodes, second %d", first, got)
	}
	if !a1.Root.Disposed() {
		t.Error("previous assembly root must be disposed")
	}
	for _, n := range a1.Members {
		if !n.Disposed() {
			t.Errorf("previous member %q must be disposed", n.Name)
		}
	}
	if a2.Root.Disposed() {
		t.Error("fresh assembly root must be live")
	}
}

func TestNewAssembly_SectionsAreIndependent(t *testing.T) {
	s := New()

	east := NewAssembly(s, "pent", "east", Transform{})
	east.AddMember("rafter", Box{X: 100, Y: 70, Z: 44}, Transform{})
	west := NewAssembly(s, "pent", "west", Transform{})
	west.AddMember("rafter", Box{X: 100, Y: 70, Z: 44}, Transform{})

	// Rebuilding east must not touch west.
	NewAssembly(s, "pent", "east", Transform{})
	if east.Root.Disposed() != true {
		t.Error("east assembly must be replaced")
	}
	if west.Root.Disposed() {
		t.Error("west assembly must survive an east rebuild")
	}
	if got := len(s.Collect("pent", "west")); got != 2 {
		t.Errorf("expected 2 live west nodes, got %d", got)
	}
}

func TestDispose_CascadesToChildren(t *testing.T) {
	s := New()
	a := NewAssembly(s, "apex", "", Transform{})
	g := a.Group("truss", Transform{})
	m := a.AddMemberIn(g, "rafter-L", Box{X: 100, Y: 70, Z: 44}, Transform{})

	s.DisposeMatching("apex", "")

	if !g.Disposed() || !m.Disposed() {
		t.Error("disposing the assembly must cascade to grouped members")
	}
	if len(s.Roots()) != 0 {
		t.Errorf("expected no live roots, got %d", len(s.Roots()))
	}
}

func TestMaterial_CachedOnFirstAccess(t *testing.T) {
	s := New()
	m1 := s.Material("osb", "#caa472")
	m2 := s.Material("osb", "#ffffff")

	if m2.Color != "#caa472" {
		t.Errorf("material must be cached on first access, got color %q", m2.Color)
	}
	if m1 != m2 {
		t.Error("repeated access must return the same material")
	}
}

func TestUnderside_RegisterReplaceDrop(t *testing.T) {
	s := New()

	if _, ok := s.Underside(""); ok {
		t.Error("no query should be published initially")
	}

	s.RegisterUnderside("", func(x, z float64) (float64, bool) { return 100, true })
	s.RegisterUnderside("", func(x, z float64) (float64, bool) { return 200, true })

	q, ok := s.Underside("")
	if !ok {
		t.Fatal("query must be published")
	}
	if y, _ := q(0, 0); y != 200 {
		t.Errorf("re-registering must replace the query, got %v", y)
	}

	s.DropUnderside("")
	if _, ok := s.Underside(""); ok {
		t.Error("dropped query must be gone")
	}
}

func TestRunTeardown_RunsOnceAndClears(t *testing.T) {
	s := New()
	calls := 0
	s.RegisterTeardown("apex", func() { calls++ })

	s.RunTeardown("apex")
	s.RunTeardown("apex")

	if calls != 1 {
		t.Errorf("teardown must run exactly once, ran %d times", calls)
	}
}

func TestNewAssembly_RunsTeardownBeforeDisposal(t *testing.T) {
	s := New()
	a := NewAssembly(s, "apex", "", Transform{})
	a.AddMember("ridge", Box{X: 44, Y: 70, Z: 2400}, Transform{})

	sawLiveNodes := -1
	s.RegisterTeardown("apex", func() {
		sawLiveNodes = len(s.Collect("apex", ""))
	})

	NewAssembly(s, "apex", "", Transform{})

	// The hook observes the previous build still intact.
	if sawLiveNodes != 2 {
		t.Errorf("teardown must run before disposal, saw %d live nodes", sawLiveNodes)
	}
}
