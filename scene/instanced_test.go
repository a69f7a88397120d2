// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geovista/geovista/geo"
)

func testPools() (*GeometryPool, *MaterialPool) {
	return NewGeometryPool(), NewMaterialPool(geo.ColorTable{
		"support": color.RGBA{0, 200, 0, 255},
		"oppose":  color.RGBA{200, 0, 0, 255},
	})
}

func makeInstances(n int) []Instance {
	insts := make([]Instance, n)
	for i := range insts {
		insts[i] = Instance{
			ID:    string(rune('a' + i%26)),
			Pos:   math32.Vec3(float32(i)*2, 0, 0),
			Count: 100,
			Class: "support",
		}
	}
	for i := range insts {
		insts[i].ID = insts[i].ID + string(rune('0'+i/26))
	}
	return insts
}

func TestSetInstancesDerivesHeights(t *testing.T) {
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{
		{ID: "a", Count: 0},
		{ID: "b", Count: 100000},
	})
	kp := ParamsFor(KindRegion)
	assert.Equal(t, kp.BaseMin, ir.Instances[0].Height)
	assert.Greater(t, ir.Instances[1].Height, ir.Instances[0].Height)
	assert.True(t, ir.Dirty())
}

func TestSetInstancesClearsStaleSelection(t *testing.T) {
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{{ID: "a"}, {ID: "b"}})
	ir.Sel.Select("a")
	ir.Sel.Hover("b")

	// replacement keeps ids that still resolve
	ir.SetInstances([]Instance{{ID: "a"}})
	assert.Equal(t, "a", ir.Sel.SelectedID)
	assert.Equal(t, "", ir.Sel.HoveredID)

	// and clears ids that do not
	ir.SetInstances([]Instance{{ID: "x"}})
	assert.Equal(t, "", ir.Sel.SelectedID)
}

func TestBuildBatchSingleDraw(t *testing.T) {
	gp, mp := testPools()
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances(makeInstances(1200))
	ir.BuildBatch(gp, mp, geo.ClassColor, 10000, math32.Vec3(0, 30, 45))

	assert.Equal(t, 1200, ir.Rendered)
	assert.Equal(t, 0, ir.Truncated)
	assert.False(t, ir.Dirty())

	// the whole kind is one mesh: vertex count scales, draw count does not
	tmpl := gp.Geometry(KindRegion, TierHigh)
	nv, ni, hasColor := ir.Batch.MeshSize()
	assert.Equal(t, 1200*tmpl.NumVertex, nv)
	assert.Equal(t, 1200*tmpl.NumIndex, ni)
	assert.True(t, hasColor)
}

func TestBuildBatchSkipsCulled(t *testing.T) {
	gp, mp := testPools()
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances(makeInstances(10))
	ir.Instances[3].Visible = false
	ir.Instances[7].Visible = false
	ir.BuildBatch(gp, mp, geo.ClassColor, 0, math32.Vector3{})
	assert.Equal(t, 8, ir.Rendered)
}

func TestBuildBatchTruncatesAtCap(t *testing.T) {
	gp, mp := testPools()
	ir := NewInstancedRenderer(KindHousehold)
	ir.SetInstances(makeInstances(100))

	// cap applies after culling: invisible instances do not consume it
	for i := 0; i < 50; i++ {
		ir.Instances[i].Visible = false
	}
	ir.BuildBatch(gp, mp, geo.ClassColor, 30, math32.Vector3{})
	assert.Equal(t, 30, ir.Rendered)
	assert.Equal(t, 20, ir.Truncated)

	tmpl := gp.Geometry(KindHousehold, TierHigh)
	nv, _, _ := ir.Batch.MeshSize()
	assert.Equal(t, 30*tmpl.NumVertex, nv)
}

func TestScaleSmoothingApproachesTarget(t *testing.T) {
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{{ID: "a"}, {ID: "b"}})
	ir.Sel.Select("a")

	dt := float32(1.0 / 60.0)
	moving := ir.Advance(dt)
	require.True(t, moving)
	s1 := ir.Instances[0].ScaleMul

	// smoothed, never snapped
	assert.Greater(t, s1, float32(scaleNormal))
	assert.Less(t, s1, float32(scaleSelected))

	for i := 0; i < 300 && ir.Advance(dt); i++ {
	}
	assert.Equal(t, float32(scaleSelected), ir.Instances[0].ScaleMul)
	assert.Equal(t, float32(scaleDimmed), ir.Instances[1].ScaleMul)
	assert.False(t, ir.Advance(dt), "settled scales stop reporting motion")
}

func TestInstanceColorModes(t *testing.T) {
	gp, mp := testPools()
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{
		{ID: "a", Class: "support", Pct: 100},
		{ID: "b", Class: "oppose", Pct: 0},
	})
	_ = gp

	green := ir.instanceColor(&ir.Instances[0], mp, geo.ClassColor)
	red := ir.instanceColor(&ir.Instances[1], mp, geo.ClassColor)
	assert.Greater(t, green.G, green.R)
	assert.Greater(t, red.R, red.G)

	// metric mode uses the ramp, not the class table
	hi := ir.instanceColor(&ir.Instances[0], mp, geo.MetricColor)
	lo := ir.instanceColor(&ir.Instances[1], mp, geo.MetricColor)
	assert.Greater(t, hi.G, hi.R)
	assert.Greater(t, lo.R, lo.G)
}

func TestInstanceColorDimmedAndUnknown(t *testing.T) {
	_, mp := testPools()
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{
		{ID: "a", Class: "support"},
		{ID: "b", Class: "support", Unknown: true},
	})

	// unknown data renders neutral in any mode
	assert.Equal(t, geo.NeutralColor, ir.instanceColor(&ir.Instances[1], mp, geo.ClassColor))
	assert.Equal(t, geo.NeutralColor, ir.instanceColor(&ir.Instances[1], mp, geo.MetricColor))

	// focus mode dims everything not hovered or selected
	ir.Sel.Select("b")
	assert.Equal(t, DimmedGray, ir.instanceColor(&ir.Instances[0], mp, geo.ClassColor))
}

func TestCullerFrustum(t *testing.T) {
	gp, _ := testPools()
	var cam Camera
	cam.Defaults()
	cam.UpdateMatrix()

	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{
		{ID: "infront", Pos: math32.Vector3{}, Count: 100},
		{ID: "behind", Pos: math32.Vec3(0, 0, 500), Count: 100},
	})

	cl := NewCuller()
	changed := cl.Cull(ir, gp, cam.Frustum)
	assert.True(t, changed)
	assert.True(t, ir.Instances[0].Visible)
	assert.False(t, ir.Instances[1].Visible)
	assert.Equal(t, 1, cl.Culled)

	// stable camera: second pass reports no change
	assert.False(t, cl.Cull(ir, gp, cam.Frustum))
}

func TestCullerDisabled(t *testing.T) {
	gp, _ := testPools()
	var cam Camera
	cam.Defaults()
	cam.UpdateMatrix()

	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{{ID: "behind", Pos: math32.Vec3(0, 0, 500)}})
	cl := NewCuller()
	cl.Cull(ir, gp, cam.Frustum)
	require.False(t, ir.Instances[0].Visible)

	cl.Enabled = false
	assert.True(t, cl.Cull(ir, gp, cam.Frustum))
	assert.True(t, ir.Instances[0].Visible)
}

func TestPickNearestFirst(t *testing.T) {
	gp, _ := testPools()
	ir := NewInstancedRenderer(KindRegion)
	// two instances stacked along the ray: the nearer one wins
	ir.SetInstances([]Instance{
		{ID: "far", Pos: math32.Vec3(0, 0, -10), Count: 100},
		{ID: "near", Pos: math32.Vec3(0, 0, 10), Count: 100},
	})

	ray := math32.Ray{Origin: math32.Vec3(0, 1, 40),
		Dir: math32.Vec3(0, 0, -1)}
	assert.Equal(t, "near", ir.Pick(ray, gp))

	// empty space misses
	miss := math32.Ray{Origin: math32.Vec3(50, 1, 40),
		Dir: math32.Vec3(0, 0, -1)}
	assert.Equal(t, "", ir.Pick(miss, gp))
}

func TestPickIgnoresInvisible(t *testing.T) {
	gp, _ := testPools()
	ir := NewInstancedRenderer(KindRegion)
	ir.SetInstances([]Instance{{ID: "a", Count: 10}})
	ir.Instances[0].Visible = false

	ray := math32.Ray{Origin: math32.Vec3(0, 0.5, 20),
		Dir: math32.Vec3(0, 0, -1)}
	assert.Equal(t, "", ir.Pick(ray, gp))
}
