// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"
)

// PlateColor is the ground plate color.
var PlateColor = color.RGBA{52, 58, 64, 255}

// MarkerColor is the floating marker color.
var MarkerColor = color.RGBA{255, 214, 80, 230}

// shadowColor is the contact-shading color under each marker.
var shadowColor = color.RGBA{20, 22, 24, 140}

// markerGap is the vertical gap between an entity top and its marker.
const markerGap = 0.6

// markerSize is the marker quad size.
const markerSize = 0.8

// LabelLayer renders the ground plate plus a floating marker quad per
// entity, each billboarded toward the camera.  The whole layer builds
// into two meshes, so enabling it adds at most two draw calls.
type LabelLayer struct {

	// Enabled toggles the marker layer.  The ground plate always shows.
	Enabled bool

	// Shadows adds contact shading under each marker, following the
	// active quality settings.
	Shadows bool

	// PlateSize is the side length of the square ground plate.
	PlateSize float32

	// Plate and Markers are the built meshes.
	Plate   GenMesh
	Markers GenMesh

	marks []markerPos
	dirty bool
}

type markerPos struct {
	pos    math32.Vector3
	height float32
}

// NewLabelLayer returns a layer with the plate built on first update.
func NewLabelLayer() *LabelLayer {
	ll := &LabelLayer{PlateSize: 200, dirty: true}
	ll.Plate.Name = "ground-plate"
	ll.Markers.Name = "markers"
	return ll
}

// SetEnabled toggles the marker layer.
func (ll *LabelLayer) SetEnabled(on bool) {
	if ll.Enabled == on {
		return
	}
	ll.Enabled = on
	ll.dirty = true
}

// SetMarkers records marker anchor positions from the active arena.
func (ll *LabelLayer) SetMarkers(insts []Instance) {
	ll.marks = ll.marks[:0]
	for i := range insts {
		in := &insts[i]
		ll.marks = append(ll.marks, markerPos{pos: in.Pos, height: in.Height})
	}
	ll.dirty = true
}

// SetDirty marks the layer for rebuild.
func (ll *LabelLayer) SetDirty() {
	ll.dirty = true
}

// Dirty reports whether the layer needs rebuilding.  Marker quads face
// the camera, so the layer rebuilds whenever the camera moves while
// markers are showing.
func (ll *LabelLayer) Dirty() bool {
	return ll.dirty
}

// Build regenerates the plate and marker meshes.
func (ll *LabelLayer) Build(camPos math32.Vector3) {
	ll.buildPlate()
	ll.buildMarkers(camPos)
	ll.dirty = false
}

func (ll *LabelLayer) buildPlate() {
	segs := math32.Vec2i(1, 1)
	nv, ni := shape.PlaneN(int(segs.X), int(segs.Y))
	ll.Plate.SetSize(nv, ni, true)
	size := math32.Vec2(ll.PlateSize, ll.PlateSize)
	shape.SetPlaneAxisSize(ll.Plate.Vertex, ll.Plate.Normal, ll.Plate.TexCoord,
		ll.Plate.Index, 0, 0, math32.Y, false, size, segs, 0, math32.Vector3{})
	fillColor(ll.Plate.Color, 0, nv, PlateColor)
}

func (ll *LabelLayer) buildMarkers(camPos math32.Vector3) {
	if !ll.Enabled || len(ll.marks) == 0 {
		ll.Markers.SetSize(0, 0, true)
		return
	}
	qv, qi := shape.PlaneN(1, 1)
	per := 1
	if ll.Shadows {
		per = 2
	}
	n := len(ll.marks)
	ll.Markers.SetSize(n*per*qv, n*per*qi, true)

	segs := math32.Vec2i(1, 1)
	size := math32.Vec2(markerSize, markerSize)
	shSize := math32.Vec2(markerSize*1.4, markerSize*1.4)
	vo, io := 0, 0
	for _, mk := range ll.marks {
		at := mk.pos
		at.Y += mk.height + markerGap
		shape.SetPlaneAxisSize(ll.Markers.Vertex, ll.Markers.Normal,
			ll.Markers.TexCoord, ll.Markers.Index, vo, io,
			math32.Z, false, size, segs, 0, at)
		yawToCamera(ll.Markers.Vertex, ll.Markers.Normal, vo, qv, at, camPos)
		fillColor(ll.Markers.Color, vo, qv, MarkerColor)
		vo += qv
		io += qi
		if ll.Shadows {
			sh := mk.pos
			sh.Y += 0.01 // just above the plate
			shape.SetPlaneAxisSize(ll.Markers.Vertex, ll.Markers.Normal,
				ll.Markers.TexCoord, ll.Markers.Index, vo, io,
				math32.Y, false, shSize, segs, 0, sh)
			fillColor(ll.Markers.Color, vo, qv, shadowColor)
			vo += qv
			io += qi
		}
	}
}

// yawToCamera rotates the nv vertices starting at vo about Y around
// the pivot so the quad faces the camera.
func yawToCamera(vtx, norm math32.ArrayF32, vo, nv int, pivot, camPos math32.Vector3) {
	dx := camPos.X - pivot.X
	dz := camPos.Z - pivot.Z
	if dx == 0 && dz == 0 {
		return
	}
	ang := math32.Atan2(dx, dz)
	sinA, cosA := math32.Sin(ang), math32.Cos(ang)
	for v := vo; v < vo+nv; v++ {
		x := vtx[v*3] - pivot.X
		z := vtx[v*3+2] - pivot.Z
		vtx[v*3] = x*cosA + z*sinA + pivot.X
		vtx[v*3+2] = -x*sinA + z*cosA + pivot.Z
		nx := norm[v*3]
		nz := norm[v*3+2]
		norm[v*3] = nx*cosA + nz*sinA
		norm[v*3+2] = -nx*sinA + nz*cosA
	}
}

func fillColor(clr math32.ArrayF32, vo, nv int, c color.RGBA) {
	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255
	a := float32(c.A) / 255
	for v := vo; v < vo+nv; v++ {
		ci := v * 4
		clr[ci] = r
		clr[ci+1] = g
		clr[ci+2] = b
		clr[ci+3] = a
	}
}
