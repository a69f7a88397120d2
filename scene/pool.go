// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"

	"github.com/geovista/geovista/geo"
)

// Template is an immutable geometry template for one (kind, tier)
// combination: unit-height base geometry that instanced renderers copy
// into their batch arenas with per-instance transform and color.
type Template struct {

	// Key is the pool key this template was built under.
	Key string

	// Vertex, Normal, TexCoord, Index are the mesh data arrays.
	Vertex   math32.ArrayF32
	Normal   math32.ArrayF32
	TexCoord math32.ArrayF32
	Index    math32.ArrayU32

	// NumVertex and NumIndex are the array sizes in points.
	NumVertex int
	NumIndex  int

	// BBox is the local bounding box of the unit geometry.
	BBox math32.Box3

	// Billboard marks the camera-facing quad variant.
	Billboard bool
}

// GeometryPool is a memoizing cache of geometry templates keyed by
// (kind, tier).  The first request for a key constructs the template;
// subsequent requests return the same one, bounding GPU memory growth
// to O(distinct parameter combinations) rather than O(entity count).
// Construction is lazy: view-mode-specific variants that are never
// requested are never built.
//
// The pool is an explicit object constructed once and passed to every
// renderer, not a package-level singleton.
type GeometryPool struct {
	templates ordmap.Map[string, *Template]
	disposed  bool
}

// NewGeometryPool returns an empty pool.
func NewGeometryPool() *GeometryPool {
	return &GeometryPool{}
}

// GeometryKey returns the cache key for a kind and tier.
func GeometryKey(kind Kind, tier DetailTier) string {
	return fmt.Sprintf("%s-%s", kind, tier)
}

// Geometry returns the template for the given kind and tier,
// constructing and caching it on first request.
func (gp *GeometryPool) Geometry(kind Kind, tier DetailTier) *Template {
	key := GeometryKey(kind, tier)
	if t, ok := gp.templates.ValueByKeyTry(key); ok {
		return t
	}
	t := buildTemplate(kind, tier)
	t.Key = key
	gp.templates.Add(key, t)
	return t
}

// Len returns the number of cached templates.
func (gp *GeometryPool) Len() int {
	return gp.templates.Len()
}

// Dispose releases all cached templates.  Call exactly once at
// teardown; no getter may be called afterward.
func (gp *GeometryPool) Dispose() {
	gp.templates.Reset()
	gp.disposed = true
}

// segments per detail tier for radial geometry
var tierRadialSegs = [DetailTiersN]int{TierHigh: 20, TierMedium: 10, TierLow: 5}

// buildTemplate generates the unit geometry for one kind and tier.
// Solid tiers are base-anchored: geometry spans y in [0, 1] so that
// instance scaling stretches upward from the ground plane.
func buildTemplate(kind Kind, tier DetailTier) *Template {
	kp := ParamsFor(kind)
	if tier == TierBillboard {
		return buildBillboard(kp.Radius)
	}
	switch kind {
	case KindRegion:
		return buildCylinder(kp.Radius, tierRadialSegs[tier])
	default:
		return buildBox(kp.Radius, tier)
	}
}

// buildCylinder generates a unit-height cylinder anchored at its base.
func buildCylinder(radius float32, radialSegs int) *Template {
	t := &Template{}
	nv, ni := shape.CylinderSectorN(radialSegs, 1, true, true)
	t.alloc(nv, ni)
	pos := math32.Vec3(0, 0.5, 0) // shift so base sits at y=0
	bb := shape.SetCylinderSector(t.Vertex, t.Normal, t.TexCoord, t.Index,
		0, 0, 1, radius, radius, radialSegs, 1, 0, 360, true, true, pos)
	t.BBox = bb
	return t
}

// buildBox generates a unit-height box anchored at its base.
// Lower tiers keep the box; a box is already minimal.
func buildBox(radius float32, tier DetailTier) *Template {
	t := &Template{}
	segs := math32.Vec3i(1, 1, 1)
	nv, ni := shape.BoxN(segs)
	t.alloc(nv, ni)
	size := math32.Vec3(2*radius, 1, 2*radius)
	pos := math32.Vec3(0, 0.5, 0)
	shape.SetBox(t.Vertex, t.Normal, t.TexCoord, t.Index, 0, 0, size, segs, pos)
	hsz := size.DivScalar(2)
	t.BBox.Set(&math32.Vector3{X: -hsz.X, Y: 0, Z: -hsz.Z},
		&math32.Vector3{X: hsz.X, Y: 1, Z: hsz.Z})
	return t
}

// buildBillboard generates a flat unit-height quad anchored at its
// base, facing +Z.  The instanced renderer rotates billboard instances
// toward the camera when it rebuilds the batch.
func buildBillboard(radius float32) *Template {
	t := &Template{Billboard: true}
	segs := math32.Vec2i(1, 1)
	nv, ni := shape.PlaneN(int(segs.X), int(segs.Y))
	t.alloc(nv, ni)
	size := math32.Vec2(2*radius, 1)
	shape.SetPlaneAxisSize(t.Vertex, t.Normal, t.TexCoord, t.Index,
		0, 0, math32.Z, false, size, segs, 0, math32.Vec3(0, 0.5, 0))
	t.BBox.Set(&math32.Vector3{X: -radius, Y: 0, Z: 0},
		&math32.Vector3{X: radius, Y: 1, Z: 0})
	return t
}

func (t *Template) alloc(nv, ni int) {
	t.NumVertex = nv
	t.NumIndex = ni
	t.Vertex = make(math32.ArrayF32, nv*3)
	t.Normal = make(math32.ArrayF32, nv*3)
	t.TexCoord = make(math32.ArrayF32, nv*2)
	t.Index = make(math32.ArrayU32, ni)
}

// VisState is the visual state dimension of a material key.
type VisState int32

const (
	StateNormal VisState = iota
	StateHovered
	StateSelected
	StateDimmed
)

func (vs VisState) String() string {
	switch vs {
	case StateHovered:
		return "hovered"
	case StateSelected:
		return "selected"
	case StateDimmed:
		return "dimmed"
	}
	return "normal"
}

// DimmedGray is the fixed color for focus-dimmed instances.
var DimmedGray = color.RGBA{90, 90, 96, 255}

// Material holds the surface properties for accent solids (base
// plates, focus markers) and resolves per-instance colors for the
// batched renderers.
type Material struct {

	// Color is the main surface color; alpha is opacity.
	Color color.RGBA

	// Emissive is color emitted independent of lighting, used to make
	// hovered / selected instances glow.
	Emissive color.RGBA

	// Shiny is the specular shininess exponent.
	Shiny float32

	// Bright is an overall multiplier on computed color.
	Bright float32
}

// IsTransparent returns true if the color has alpha < 255.
func (mt *Material) IsTransparent() bool {
	return mt.Color.A < 255
}

// MaterialPool memoizes materials keyed by (kind, classification,
// state).  The distinct-key space is small and fixed, so the pool
// grows to a bounded size regardless of entity count.
type MaterialPool struct {
	materials ordmap.Map[string, *Material]
	colors    geo.ColorTable
}

// NewMaterialPool returns a pool resolving classification colors from
// the given table.
func NewMaterialPool(ct geo.ColorTable) *MaterialPool {
	return &MaterialPool{colors: ct}
}

// SetColorTable replaces the classification color table and drops all
// cached materials, since their colors derive from it.
func (mp *MaterialPool) SetColorTable(ct geo.ColorTable) {
	mp.colors = ct
	mp.materials.Reset()
}

// MaterialKey returns the cache key for a material request.
func MaterialKey(kind Kind, cl geo.Classification, state VisState) string {
	return fmt.Sprintf("%s-%s-%s", kind, cl, state)
}

// Material returns the material for the given kind, classification,
// and visual state, constructing and caching it on first request.
func (mp *MaterialPool) Material(kind Kind, cl geo.Classification, state VisState) *Material {
	key := MaterialKey(kind, cl, state)
	if m, ok := mp.materials.ValueByKeyTry(key); ok {
		return m
	}
	m := mp.build(cl, state)
	mp.materials.Add(key, m)
	return m
}

// Len returns the number of cached materials.
func (mp *MaterialPool) Len() int {
	return mp.materials.Len()
}

// Dispose releases all cached materials.
func (mp *MaterialPool) Dispose() {
	mp.materials.Reset()
}

func (mp *MaterialPool) build(cl geo.Classification, state VisState) *Material {
	m := &Material{Shiny: 30, Bright: 1}
	switch state {
	case StateDimmed:
		m.Color = DimmedGray
	case StateSelected:
		m.Color = mp.colors.Color(cl)
		m.Emissive = color.RGBA{64, 64, 48, 255}
		m.Bright = 1.25
	case StateHovered:
		m.Color = mp.colors.Color(cl)
		m.Emissive = color.RGBA{32, 32, 24, 255}
		m.Bright = 1.1
	default:
		m.Color = mp.colors.Color(cl)
	}
	return m
}
