// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/geovista/geovista/geo"
)

// Instance is the flat per-entity record an instanced renderer keeps
// in its arena: everything needed to write the entity's transform and
// color into the batched mesh, indexed by position in the entity list.
type Instance struct {

	// ID is the entity id, used for hit-testing and focus state.
	ID string

	// Pos is the base (ground) position of the instance.
	Pos math32.Vector3

	// Count is the magnitude driving the height curve.
	Count int

	// Class is the classification label for color lookup.
	Class geo.Classification

	// Pct is the derived support percentage for metric coloring.
	Pct float32

	// Unknown marks entities with missing data, rendered neutrally.
	Unknown bool

	// Height is the derived instance height.
	Height float32

	// Tier is the current level-of-detail tier.
	Tier DetailTier

	// Visible is the current frustum-culling result.
	Visible bool

	// ScaleMul is the smoothed visual-state scale multiplier; it
	// approaches targetMul over several frames rather than snapping.
	ScaleMul  float32
	targetMul float32
}

// visual-state scale multipliers: selected > hovered > normal > dimmed
const (
	scaleSelected = 1.15
	scaleHovered  = 1.07
	scaleNormal   = 1.0
	scaleDimmed   = 0.92
)

// scaleSmoothRate is the exponential approach rate for the scale
// multiplier, per second.
const scaleSmoothRate = 8

// InstancedRenderer renders all entities of one kind as a single
// batched mesh: per-instance transform (base-anchored position, height
// from the magnitude curve, visual-state scale) and per-instance color
// are written into one vertex arena, so the draw-call count stays at
// one per kind regardless of entity count.
type InstancedRenderer struct {

	// Kind is the entity kind this renderer draws.
	Kind Kind

	// Params are the kind's sizing parameters.
	Params KindParams

	// Sel is the hover / selection state for this renderer's view.
	Sel Selection

	// Instances is the arena, rebuilt whenever the entity slice
	// reference changes.
	Instances []Instance

	// Batch is the batched mesh for the whole kind.
	Batch GenMesh

	// Rendered is the number of instances written into the current
	// batch, after culling and the instance cap.
	Rendered int

	// Truncated is how many visible instances were dropped by the
	// instance cap on the last build.
	Truncated int

	byID  map[string]int
	dirty bool
}

// NewInstancedRenderer returns a renderer for the given kind.
func NewInstancedRenderer(kind Kind) *InstancedRenderer {
	ir := &InstancedRenderer{Kind: kind, Params: ParamsFor(kind)}
	ir.Batch.Name = "instances-" + kind.String()
	ir.byID = map[string]int{}
	return ir
}

// SetInstances replaces the arena from a freshly converted entity
// list.  Hover / selection ids that no longer resolve are cleared.
func (ir *InstancedRenderer) SetInstances(insts []Instance) {
	ir.Instances = insts
	ir.byID = make(map[string]int, len(insts))
	for i := range insts {
		in := &insts[i]
		in.Height = ir.Params.Height(in.Count)
		in.Visible = true
		in.ScaleMul = scaleNormal
		in.targetMul = scaleNormal
		ir.byID[in.ID] = i
	}
	if ir.Sel.HoveredID != "" {
		if _, ok := ir.byID[ir.Sel.HoveredID]; !ok {
			ir.Sel.Hover("")
		}
	}
	if ir.Sel.SelectedID != "" {
		if _, ok := ir.byID[ir.Sel.SelectedID]; !ok {
			ir.Sel.Clear()
		}
	}
	ir.dirty = true
}

// Index returns the arena index for an entity id, or -1.
func (ir *InstancedRenderer) Index(id string) int {
	if i, ok := ir.byID[id]; ok {
		return i
	}
	return -1
}

// SetDirty marks the batch for rebuild on the next update.
func (ir *InstancedRenderer) SetDirty() {
	ir.dirty = true
}

// Dirty reports whether the batch needs rebuilding.
func (ir *InstancedRenderer) Dirty() bool {
	return ir.dirty
}

// Advance updates the smoothed visual-state scale multipliers for the
// elapsed time in seconds.  Returns true if any instance is still
// blending, which keeps the batch rebuilding until scales settle.
func (ir *InstancedRenderer) Advance(dt float32) bool {
	f := math32.Clamp(dt*scaleSmoothRate, 0, 1)
	moving := false
	for i := range ir.Instances {
		in := &ir.Instances[i]
		in.targetMul = stateScale(ir.Sel.StateFor(in.ID))
		d := in.targetMul - in.ScaleMul
		if math32.Abs(d) < 0.001 {
			in.ScaleMul = in.targetMul
			continue
		}
		in.ScaleMul += d * f
		moving = true
	}
	if moving {
		ir.dirty = true
	}
	return moving
}

func stateScale(vs VisState) float32 {
	switch vs {
	case StateSelected:
		return scaleSelected
	case StateHovered:
		return scaleHovered
	case StateDimmed:
		return scaleDimmed
	}
	return scaleNormal
}

// WorldBBox returns the world bounding box for the instance at index
// i, from the given unit template box scaled by height and footprint.
func (ir *InstancedRenderer) WorldBBox(i int, tmpl *Template) math32.Box3 {
	in := &ir.Instances[i]
	s := in.ScaleMul
	min := math32.Vector3{
		X: in.Pos.X + tmpl.BBox.Min.X*s,
		Y: in.Pos.Y,
		Z: in.Pos.Z + tmpl.BBox.Min.Z*s,
	}
	max := math32.Vector3{
		X: in.Pos.X + tmpl.BBox.Max.X*s,
		Y: in.Pos.Y + in.Height*s,
		Z: in.Pos.Z + tmpl.BBox.Max.Z*s,
	}
	var bb math32.Box3
	bb.Set(&min, &max)
	return bb
}

// BuildBatch rewrites the batched mesh from the arena.  Instances are
// written in arena order; invisible (culled) instances are skipped and
// at most maxInstances are written, with any excess silently dropped.
// Billboard-tier instances are rotated about Y to face the camera.
func (ir *InstancedRenderer) BuildBatch(pool *GeometryPool, mats *MaterialPool,
	display geo.DisplayMode, maxInstances int, camPos math32.Vector3) {

	// size pass
	nv, nidx := 0, 0
	written := 0
	ir.Truncated = 0
	for i := range ir.Instances {
		in := &ir.Instances[i]
		if !in.Visible {
			continue
		}
		if maxInstances > 0 && written >= maxInstances {
			ir.Truncated++
			continue
		}
		written++
		tmpl := pool.Geometry(ir.Kind, in.Tier)
		nv += tmpl.NumVertex
		nidx += tmpl.NumIndex
	}
	ir.Rendered = written
	ir.Batch.SetSize(nv, nidx, true)

	vo, io := 0, 0
	written = 0
	for i := range ir.Instances {
		in := &ir.Instances[i]
		if !in.Visible {
			continue
		}
		if maxInstances > 0 && written >= maxInstances {
			continue
		}
		written++
		tmpl := pool.Geometry(ir.Kind, in.Tier)
		clr := ir.instanceColor(in, mats, display)
		ir.writeInstance(tmpl, in, clr, vo, io, camPos)
		vo += tmpl.NumVertex
		io += tmpl.NumIndex
	}
	ir.dirty = false
}

// instanceColor resolves the per-instance color: neutral for unknown
// data, dimmed gray in focus mode, classification color or metric ramp
// otherwise, with hovered / selected brightening.
func (ir *InstancedRenderer) instanceColor(in *Instance, mats *MaterialPool,
	display geo.DisplayMode) color.RGBA {

	state := ir.Sel.StateFor(in.ID)
	if state == StateDimmed {
		return DimmedGray
	}
	if in.Unknown {
		return geo.NeutralColor
	}
	var base color.RGBA
	if display == geo.MetricColor {
		base = geo.MetricRamp(in.Pct)
	} else {
		base = mats.Material(ir.Kind, in.Class, StateNormal).Color
	}
	switch state {
	case StateSelected:
		return brighten(base, 1.25)
	case StateHovered:
		return brighten(base, 1.1)
	}
	return base
}

func brighten(c color.RGBA, f float32) color.RGBA {
	b := func(v uint8) uint8 {
		x := float32(v) * f
		if x > 255 {
			x = 255
		}
		return uint8(x)
	}
	return color.RGBA{b(c.R), b(c.G), b(c.B), c.A}
}

// writeInstance copies the template geometry into the batch arrays at
// the given offsets, applying the instance transform and color.
func (ir *InstancedRenderer) writeInstance(tmpl *Template, in *Instance,
	clr color.RGBA, vo, io int, camPos math32.Vector3) {

	sx := in.ScaleMul
	sy := in.Height * in.ScaleMul

	// billboard instances yaw about Y to face the camera
	var sinA, cosA float32 = 0, 1
	if tmpl.Billboard {
		dx := camPos.X - in.Pos.X
		dz := camPos.Z - in.Pos.Z
		if dx != 0 || dz != 0 {
			ang := math32.Atan2(dx, dz)
			sinA, cosA = math32.Sin(ang), math32.Cos(ang)
		}
	}

	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255

	for v := 0; v < tmpl.NumVertex; v++ {
		x := tmpl.Vertex[v*3] * sx
		y := tmpl.Vertex[v*3+1] * sy
		z := tmpl.Vertex[v*3+2] * sx
		nx := tmpl.Normal[v*3]
		ny := tmpl.Normal[v*3+1]
		nz := tmpl.Normal[v*3+2]
		if tmpl.Billboard {
			x, z = x*cosA+z*sinA, -x*sinA+z*cosA
			nx, nz = nx*cosA+nz*sinA, -nx*sinA+nz*cosA
		}
		bi := (vo + v) * 3
		ir.Batch.Vertex[bi] = x + in.Pos.X
		ir.Batch.Vertex[bi+1] = y + in.Pos.Y
		ir.Batch.Vertex[bi+2] = z + in.Pos.Z
		ir.Batch.Normal[bi] = nx
		ir.Batch.Normal[bi+1] = ny
		ir.Batch.Normal[bi+2] = nz
		ti := (vo + v) * 2
		ir.Batch.TexCoord[ti] = tmpl.TexCoord[v*2]
		ir.Batch.TexCoord[ti+1] = tmpl.TexCoord[v*2+1]
		ci := (vo + v) * 4
		ir.Batch.Color[ci] = cr
		ir.Batch.Color[ci+1] = cg
		ir.Batch.Color[ci+2] = cb
		ir.Batch.Color[ci+3] = ca
	}
	for x := 0; x < tmpl.NumIndex; x++ {
		ir.Batch.Index[io+x] = tmpl.Index[x] + uint32(vo)
	}
}

// Triangles returns the triangle count of the current batch.
func (ir *InstancedRenderer) Triangles() int {
	return len(ir.Batch.Index) / 3
}
