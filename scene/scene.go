// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the 3D rendering core: instanced entity
// rendering with pooled geometry and materials, distance-based level
// of detail, frustum culling, an orbiting camera with animated focus
// transitions, and adaptive quality control.
//
// The scene is single-threaded and demand-driven.  Callers feed
// elapsed time through [Scene.Advance] and render through
// [Scene.DoUpdate]; nothing in the package blocks, sleeps, or starts
// goroutines.  Without a GPU frame the scene runs headless, keeping
// all bookkeeping (LOD, culling, draw-call accounting) live for tests.
package scene

import (
	"image"
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/geovista/geovista/geo"
	"github.com/geovista/geovista/quality"
)

// Scene composes the rendering core: one instanced renderer per entity
// kind, shared geometry and material pools, LOD and culling, the
// camera, and the quality controller.
type Scene struct {

	// Camera is the scene camera.
	Camera Camera

	// Geo and Mats are the shared geometry and material pools.
	Geo  *GeometryPool
	Mats *MaterialPool

	// LOD recomputes detail tiers on its own cadence.
	LOD *LODManager

	// Cull is the frustum culler.
	Cull *Culler

	// Quality owns the tier and settings.
	Quality *quality.Controller

	// Monitor derives fps and triggers degradation.
	Monitor *quality.Monitor

	// Settings is the active quality bundle.
	Settings quality.Settings

	// ViewMode selects which entity kind is rendered.
	ViewMode geo.ViewMode

	// DisplayMode selects classification vs metric coloring.
	DisplayMode geo.DisplayMode

	// Labels is the ground plate and marker layer.
	Labels *LabelLayer

	// Size is the viewport size in pixels.
	Size image.Point

	// OnSelect, OnHover, and OnFocus notify external collaborators.
	// OnSelect and OnHover receive "" on deselect / leave.
	OnSelect func(id string)
	OnHover  func(id string)
	OnFocus  func(id string)

	// renderers, one per kind, all retained so switching view modes
	// never re-converts entity data
	renderers [KindsN]*InstancedRenderer

	anim      *Anim
	camMoved  bool
	drawCalls int
	triangles int

	rend rendState
}

// NewScene returns a ready scene for the given device, probing the
// initial quality tier and wiring degradation to the fps monitor.
func NewScene(dev quality.Device) *Scene {
	sc := &Scene{
		Geo:  NewGeometryPool(),
		LOD:  NewLODManager(),
		Cull: NewCuller(),
	}
	sc.Mats = NewMaterialPool(geo.ColorTable{})
	sc.Camera.Defaults()
	sc.Size = image.Point{X: 960, Y: 640}
	sc.Labels = NewLabelLayer()

	for k := Kind(0); k < KindsN; k++ {
		ir := NewInstancedRenderer(k)
		ir.Sel.OnSelect = func(id string) {
			if sc.OnSelect != nil {
				sc.OnSelect(id)
			}
		}
		ir.Sel.OnHover = func(id string) {
			if sc.OnHover != nil {
				sc.OnHover(id)
			}
		}
		sc.renderers[k] = ir
	}

	sc.Quality = quality.NewController(dev)
	sc.Quality.OnChange = sc.ApplySettings
	sc.Monitor = quality.NewMonitor()
	sc.Monitor.Stats = sc
	sc.Monitor.OnSustainedLow = func() {
		if sc.Quality.Degrade() {
			slog.Info("quality degraded on sustained low fps",
				"tier", sc.Quality.Tier())
		}
	}
	sc.ApplySettings(sc.Quality.Settings())
	return sc
}

// SetColorTable installs the classification color table, invalidating
// cached materials and current batches.
func (sc *Scene) SetColorTable(ct geo.ColorTable) {
	sc.Mats.SetColorTable(ct)
	sc.dirtyAll()
}

// SetSize sets the viewport size and camera aspect.
func (sc *Scene) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == sc.Size {
		return
	}
	sc.Size = size
	sc.Camera.Aspect = float32(size.X) / float32(size.Y)
	sc.camMoved = true
}

// SetRegions replaces the region entities.
func (sc *Scene) SetRegions(rs []geo.Region) {
	insts := make([]Instance, len(rs))
	for i := range rs {
		r := &rs[i]
		insts[i] = Instance{
			ID:      r.ID,
			Pos:     r.Pos,
			Count:   r.Voters,
			Class:   r.Class,
			Pct:     r.SupportPercent(),
			Unknown: r.Voters == 0 && r.Counts.Sum() == 0,
		}
	}
	sc.setInstances(KindRegion, insts)
}

// SetSubRegions replaces the sub-region entities.
func (sc *Scene) SetSubRegions(ss []geo.SubRegion) {
	insts := make([]Instance, len(ss))
	for i := range ss {
		s := &ss[i]
		insts[i] = Instance{
			ID:      s.ID,
			Pos:     s.Pos,
			Count:   s.Voters,
			Class:   s.Class,
			Pct:     s.SupportPercent(),
			Unknown: s.Voters == 0 && s.Counts.Sum() == 0,
		}
	}
	sc.setInstances(KindSubRegion, insts)
}

// SetHouseholds replaces the household entities.
func (sc *Scene) SetHouseholds(hs []geo.Household) {
	insts := make([]Instance, len(hs))
	for i := range hs {
		h := &hs[i]
		n := h.MemberCount()
		insts[i] = Instance{
			ID:      h.ID,
			Pos:     h.Pos,
			Count:   n,
			Class:   h.Class,
			Pct:     h.SupportPercent(),
			Unknown: n == 0,
		}
	}
	sc.setInstances(KindHousehold, insts)
}

func (sc *Scene) setInstances(k Kind, insts []Instance) {
	ir := sc.renderers[k]
	ir.SetInstances(insts)
	sc.LOD.Assign(ir.Instances, sc.Camera.Pose.Pos)
	sc.Labels.SetMarkers(insts)
}

// SetViewMode switches the rendered entity kind.  Selection and hover
// in the previous view are cleared; the new view starts unfocused.
func (sc *Scene) SetViewMode(vm geo.ViewMode) {
	if vm == sc.ViewMode {
		return
	}
	prev := sc.active()
	prev.Sel.Hover("")
	prev.Sel.Clear()
	sc.ViewMode = vm
	sc.anim = nil
	sc.Labels.SetMarkers(sc.active().Instances)
	sc.dirtyAll()
}

// SetDisplayMode switches between classification and metric coloring.
func (sc *Scene) SetDisplayMode(dm geo.DisplayMode) {
	if dm == sc.DisplayMode {
		return
	}
	sc.DisplayMode = dm
	sc.active().SetDirty()
}

// active returns the renderer for the current view mode.
func (sc *Scene) active() *InstancedRenderer {
	switch sc.ViewMode {
	case geo.SubRegions:
		return sc.renderers[KindSubRegion]
	case geo.Households:
		return sc.renderers[KindHousehold]
	}
	return sc.renderers[KindRegion]
}

// Active returns the renderer for the current view mode.
func (sc *Scene) Active() *InstancedRenderer {
	return sc.active()
}

// Selection returns the hover / selection state of the active view.
func (sc *Scene) Selection() *Selection {
	return &sc.active().Sel
}

// HoverAt updates hover state from a pointer position.  The hovered
// id clears only when the pointer is no longer over the instance.
func (sc *Scene) HoverAt(pos image.Point) {
	ir := sc.active()
	id := ir.Pick(ScreenRay(pos, sc.Size, &sc.Camera), sc.Geo)
	if ir.Sel.Hover(id) {
		ir.SetDirty()
	}
}

// SelectAt applies a click at a pointer position: picking an instance
// selects it (or toggles it off if already selected) and starts a
// focus transition; clicking empty space deselects.
func (sc *Scene) SelectAt(pos image.Point) {
	ir := sc.active()
	id := ir.Pick(ScreenRay(pos, sc.Size, &sc.Camera), sc.Geo)
	if id == "" {
		if ir.Sel.Clear() {
			ir.SetDirty()
		}
		return
	}
	ir.Sel.Select(id)
	ir.SetDirty()
	if ir.Sel.SelectedID == id {
		sc.FocusOn(id)
	}
}

// FocusOn starts an animated camera transition framing the entity.
// Any in-flight transition is replaced outright.  Unknown ids are
// ignored.
func (sc *Scene) FocusOn(id string) {
	ir := sc.active()
	i := ir.Index(id)
	if i < 0 {
		return
	}
	sc.anim = NewFocusAnim(ir.Instances[i].Pos)
	if sc.OnFocus != nil {
		sc.OnFocus(id)
	}
}

// FocusAnimating reports whether a focus transition is in flight.
func (sc *Scene) FocusAnimating() bool {
	return sc.anim != nil
}

// ResetCamera cancels any transition and restores the overview pose.
func (sc *Scene) ResetCamera() {
	sc.anim = nil
	sc.Camera.DefaultPose()
	sc.Camera.UpdateMatrix()
	sc.camMoved = true
}

// OrbitCamera, PanCamera, and ZoomCamera forward user camera input.
// Any manual camera motion cancels an in-flight focus transition.
func (sc *Scene) OrbitCamera(delX, delY float32) {
	sc.anim = nil
	sc.Camera.Orbit(delX, delY)
	sc.camMoved = true
}

func (sc *Scene) PanCamera(delX, delY float32) {
	sc.anim = nil
	sc.Camera.Pan(delX, delY)
	sc.camMoved = true
}

func (sc *Scene) ZoomCamera(zoomPct float32) {
	sc.anim = nil
	sc.Camera.Zoom(zoomPct)
	sc.camMoved = true
}

// OrbitImpulse adds orbit inertia from a drag release.
func (sc *Scene) OrbitImpulse(velX, velY float32) {
	sc.anim = nil
	sc.Camera.OrbitImpulse(velX, velY)
}

// ApplySettings installs a complete quality bundle: LOD bias, instance
// cap, and render-target parameters all change together.
func (sc *Scene) ApplySettings(st quality.Settings) {
	sc.Settings = st
	sc.LOD.SetBias(st.LODBias)
	sc.Labels.Shadows = st.ShadowsEnabled
	sc.rend.settingsChanged = true
	sc.dirtyAll()
}

func (sc *Scene) dirtyAll() {
	for _, ir := range sc.renderers {
		ir.SetDirty()
	}
	sc.Labels.SetDirty()
}

// Advance runs one simulation step of dt seconds: focus transition,
// orbit inertia, scale-state smoothing, LOD recomputation on cadence,
// and the fps monitor.  All time is caller-supplied elapsed time.
func (sc *Scene) Advance(dt float32) {
	if sc.anim != nil {
		if sc.anim.Step(&sc.Camera, dt) {
			sc.anim = nil
		}
		sc.camMoved = true
	}
	if sc.Camera.Advance(dt) {
		sc.camMoved = true
	}

	ir := sc.active()
	ir.Advance(dt)
	if sc.LOD.Due(dt) {
		if sc.LOD.Assign(ir.Instances, sc.Camera.Pose.Pos) {
			ir.SetDirty()
		}
	}
	if sc.camMoved {
		if sc.Cull.Cull(ir, sc.Geo, sc.Camera.Frustum) {
			ir.SetDirty()
		}
		if sc.hasBillboards(ir) {
			ir.SetDirty()
		}
	}
	sc.Monitor.FrameTick(dt)
}

func (sc *Scene) hasBillboards(ir *InstancedRenderer) bool {
	for i := range ir.Instances {
		if ir.Instances[i].Tier == TierBillboard {
			return true
		}
	}
	return false
}

// NeedsRender reports whether anything changed since the last
// DoUpdate, i.e. whether a redraw would produce a different frame.
func (sc *Scene) NeedsRender() bool {
	return sc.camMoved || sc.active().Dirty() || sc.Labels.Dirty()
}

// DoUpdate rebuilds dirty batches and submits the frame, on demand.
// With no GPU frame configured the submission is headless: batches
// and draw-call counters update, nothing is drawn.
func (sc *Scene) DoUpdate() {
	ir := sc.active()
	if ir.Dirty() {
		sc.Cull.Cull(ir, sc.Geo, sc.Camera.Frustum)
		ir.BuildBatch(sc.Geo, sc.Mats, sc.DisplayMode,
			sc.Settings.MaxInstances, sc.Camera.Pose.Pos)
	}
	if sc.Labels.Dirty() {
		sc.Labels.Build(sc.Camera.Pose.Pos)
	}
	sc.Camera.UpdateMatrix()
	sc.render()
	sc.camMoved = false
}

// FrameStats returns draw calls and triangles submitted since the
// last reset.  Implements [quality.FrameStatsSource].
func (sc *Scene) FrameStats() (drawCalls, triangles int) {
	return sc.drawCalls, sc.triangles
}

// ResetFrameStats zeroes the frame counters.
func (sc *Scene) ResetFrameStats() {
	sc.drawCalls = 0
	sc.triangles = 0
}

// Stats returns the latest monitor snapshot for a diagnostic overlay.
func (sc *Scene) Stats() quality.Metrics {
	return sc.Monitor.Last()
}

// EntityPos returns the position of an entity in the active view.
func (sc *Scene) EntityPos(id string) (math32.Vector3, bool) {
	ir := sc.active()
	i := ir.Index(id)
	if i < 0 {
		return math32.Vector3{}, false
	}
	return ir.Instances[i].Pos, true
}
