package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/roof"
)

// dxfLayers maps member roles to DXF layer names and colors so CAD users
// can toggle framing families independently. Roles not listed land on the
// framing layer.
var dxfLayers = map[string]struct {
	name string
	col  color.ColorNumber
}{
	roof.RoleRim:      {"RIM", color.Green},
	roof.RoleRafter:   {"RAFTERS", color.Cyan},
	roof.RoleRafterL:  {"RAFTERS", color.Cyan},
	roof.RoleRafterR:  {"RAFTERS", color.Cyan},
	roof.RoleTie:      {"TIES", color.Magenta},
	roof.RoleKingpost: {"TIES", color.Magenta},
	roof.RoleRidge:    {"RIDGE", color.Red},
	roof.RoleHip:      {"HIPS", color.Red},
	roof.RoleCommon:   {"RAFTERS", color.Cyan},
	roof.RoleJack:     {"RAFTERS", color.Cyan},
	roof.RolePurlin:   {"PURLINS", color.Blue},
	roof.RoleFascia:   {"TRIM", color.Yellow},
	roof.RoleBarge:    {"TRIM", color.Yellow},
}

// ExportDXF writes a plan-view (top-down) framing drawing of the roof to a
// DXF file. Each member's footprint is projected onto the plan as a closed
// polyline on a per-role layer, with the building outline on its own layer
// for reference. Units are millimetres, matching the model.
func ExportDXF(path string, b config.Building, p *roof.Plan) error {
	if p == nil {
		return fmt.Errorf("no roof plan for style %q", b.Roof.Style)
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if _, err := d.AddLayer("OUTLINE", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to create outline layer: %w", err)
	}

	dims := config.Resolve(b)
	fw, fd := float64(dims.FrameWidth), float64(dims.FrameDepth)
	if err := planRect(d,
		[]float64{0, 0}, []float64{fw, 0}, []float64{fw, fd}, []float64{0, fd}); err != nil {
		return fmt.Errorf("failed to draw building outline: %w", err)
	}

	created := map[string]bool{"OUTLINE": true}
	for _, m := range p.Members {
		layer, ok := dxfLayers[m.Role]
		if !ok {
			layer.name, layer.col = "FRAMING", color.White
		}
		if !created[layer.name] {
			if _, err := d.AddLayer(layer.name, layer.col, dxf.DefaultLineType, false); err != nil {
				return fmt.Errorf("failed to create layer %s: %w", layer.name, err)
			}
			created[layer.name] = true
		}
		if err := d.ChangeLayer(layer.name); err != nil {
			return fmt.Errorf("failed to switch to layer %s: %w", layer.name, err)
		}

		corners := memberFootprint(p, m)
		if err := planRect(d, corners[0], corners[1], corners[2], corners[3]); err != nil {
			return fmt.Errorf("failed to draw %s member: %w", m.Role, err)
		}
	}

	return d.SaveAs(path)
}

// planRect draws a closed 4-vertex polyline on the current layer.
func planRect(d *drawing.Drawing, a, b, c, e []float64) error {
	_, err := d.LwPolyline(true, a, b, c, e)
	return err
}

// memberFootprint projects a member's bottom face into plan coordinates.
// World X maps to DXF X and world Z to DXF Y, so the drawing reads with
// the front wall at the bottom of the sheet.
func memberFootprint(p *roof.Plan, m roof.MemberSpec) [4][]float64 {
	locals := [4]r3.Vec{
		{},
		{X: m.Size.X},
		{X: m.Size.X, Z: m.Size.Z},
		{Z: m.Size.Z},
	}

	var out [4][]float64
	for i, l := range locals {
		if m.Center {
			l = r3.Sub(l, r3.Scale(0.5, r3.Vec{X: m.Size.X, Y: m.Size.Y, Z: m.Size.Z}))
		}
		w := p.Root.Apply(m.At.Apply(l))
		out[i] = []float64{w.X, w.Z}
	}
	return out
}
