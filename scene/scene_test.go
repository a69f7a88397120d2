// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geovista/geovista/geo"
	"github.com/geovista/geovista/quality"
)

func testRegions(n int) []geo.Region {
	rs := make([]geo.Region, n)
	for i := range rs {
		rs[i] = geo.Region{
			ID:     fmt.Sprintf("R%03d", i+1),
			Code:   fmt.Sprintf("%03d", i+1),
			Pos:    math32.Vec3(float32(i%40)-20, 0, float32(i/40)-15),
			Class:  "support",
			Voters: 1000 + i,
			Counts: geo.Counts{Support: 600, Oppose: 300, Swing: 100},
		}
	}
	return rs
}

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	sc := NewScene(quality.Device{HasContext: true, Renderer: "GeForce RTX 3080"})
	sc.SetColorTable(geo.ColorTable{
		"support": color.RGBA{0, 200, 0, 255},
		"oppose":  color.RGBA{200, 0, 0, 255},
	})
	sc.SetRegions(testRegions(5))
	return sc
}

const frameDT = float32(1.0 / 60.0)

func TestSceneDrawCallsConstant(t *testing.T) {
	sc := NewScene(quality.Device{HasContext: true, Renderer: "GeForce RTX 3080"})
	require.Equal(t, quality.High, sc.Quality.Tier())

	measure := func(n int) int {
		sc.SetRegions(testRegions(n))
		sc.Advance(frameDT)
		sc.DoUpdate()
		sc.ResetFrameStats()
		sc.Advance(frameDT)
		sc.DoUpdate()
		draws, _ := sc.FrameStats()
		return draws
	}

	small := measure(10)
	large := measure(1200)
	assert.Equal(t, small, large,
		"draw calls per frame stay constant as entity count grows")
	assert.Equal(t, 1200, sc.Active().Rendered+sc.Cull.Culled)
}

func TestSceneInstanceCapAppliesAfterCulling(t *testing.T) {
	sc := NewScene(quality.Device{})
	require.Equal(t, quality.UltraLow, sc.Quality.Tier())
	require.Equal(t, 500, sc.Settings.MaxInstances)

	sc.SetRegions(testRegions(1200))
	sc.Advance(frameDT)
	sc.DoUpdate()
	assert.LessOrEqual(t, sc.Active().Rendered, 500)
}

func TestSceneViewModeSwitch(t *testing.T) {
	sc := newTestScene(t)
	sc.SetSubRegions([]geo.SubRegion{
		{ID: "S1", Pos: math32.Vec3(1, 0, 1), Class: "oppose", Voters: 50},
	})

	sc.Selection().Select("R001")
	sc.FocusOn("R001")
	require.True(t, sc.FocusAnimating())

	sc.SetViewMode(geo.SubRegions)
	assert.Equal(t, "", sc.renderers[KindRegion].Sel.SelectedID,
		"previous view selection cleared")
	assert.False(t, sc.FocusAnimating())
	assert.Equal(t, 1, len(sc.Active().Instances))

	// switching back re-renders the retained region arena
	sc.SetViewMode(geo.Regions)
	assert.Equal(t, 5, len(sc.Active().Instances))
}

func TestSceneSelectionCallbacks(t *testing.T) {
	sc := newTestScene(t)
	var selected, hovered []string
	sc.OnSelect = func(id string) { selected = append(selected, id) }
	sc.OnHover = func(id string) { hovered = append(hovered, id) }

	sc.Selection().Select("R001")
	sc.Selection().Select("R001")
	sc.Selection().Hover("R002")
	sc.Selection().Hover("R002")
	sc.Selection().Hover("")

	assert.Equal(t, []string{"R001", ""}, selected)
	assert.Equal(t, []string{"R002", ""}, hovered)
}

func TestSceneFocusUnknownIDIgnored(t *testing.T) {
	sc := newTestScene(t)
	sc.FocusOn("no-such-entity")
	assert.False(t, sc.FocusAnimating())
}

func TestSceneFocusConvergesThroughAdvance(t *testing.T) {
	sc := newTestScene(t)
	var focused string
	sc.OnFocus = func(id string) { focused = id }

	sc.FocusOn("R003")
	assert.Equal(t, "R003", focused)

	for i := 0; i < 600 && sc.FocusAnimating(); i++ {
		sc.Advance(frameDT)
	}
	require.False(t, sc.FocusAnimating())

	pos, ok := sc.EntityPos("R003")
	require.True(t, ok)
	assert.Equal(t, pos.Add(FocusOffset), sc.Camera.Pose.Pos)
	assert.Equal(t, pos, sc.Camera.Target)
}

func TestSceneQualityDegradeOnSustainedLowFPS(t *testing.T) {
	sc := newTestScene(t)
	require.Equal(t, quality.High, sc.Quality.Tier())
	before := sc.Settings.MaxInstances

	// simulate 10fps frames long enough for four bad samples
	for i := 0; i < 4*5; i++ {
		sc.Advance(0.1)
	}
	assert.Equal(t, quality.Medium, sc.Quality.Tier())
	assert.Less(t, sc.Settings.MaxInstances, before,
		"the complete settings bundle swapped with the tier")
}

func TestSceneQualityNeverAutoUpgrades(t *testing.T) {
	sc := newTestScene(t)
	for i := 0; i < 20; i++ {
		sc.Advance(0.1)
	}
	require.Equal(t, quality.Medium, sc.Quality.Tier())

	// smooth frames afterward: tier stays down
	for i := 0; i < 600; i++ {
		sc.Advance(frameDT)
	}
	assert.Equal(t, quality.Medium, sc.Quality.Tier())
}

func TestSceneHeadlessRenderCounts(t *testing.T) {
	sc := newTestScene(t)
	assert.False(t, sc.IsLive())

	sc.Advance(frameDT)
	sc.DoUpdate()
	draws, tris := sc.FrameStats()
	assert.Equal(t, 2, draws, "ground plate plus one instance batch")
	assert.Greater(t, tris, 0)

	// marker layer adds one more draw
	sc.Labels.SetEnabled(true)
	sc.ResetFrameStats()
	sc.Advance(frameDT)
	sc.DoUpdate()
	draws, _ = sc.FrameStats()
	assert.Equal(t, 3, draws)
}

func TestSceneNeedsRenderDemandDriven(t *testing.T) {
	sc := newTestScene(t)
	sc.Advance(frameDT)
	sc.DoUpdate()

	// settle the scale smoothing and any pending state
	for i := 0; i < 300; i++ {
		sc.Advance(frameDT)
		if sc.NeedsRender() {
			sc.DoUpdate()
		}
	}
	assert.False(t, sc.NeedsRender(), "idle scene requests no redraws")

	sc.OrbitCamera(10, 0)
	assert.True(t, sc.NeedsRender())
	sc.DoUpdate()
	assert.False(t, sc.NeedsRender())
}

func TestSceneSelectAtAndHoverAt(t *testing.T) {
	sc := newTestScene(t)
	sc.SetRegions([]geo.Region{{
		ID: "center", Pos: math32.Vector3{}, Class: "support", Voters: 100000,
	}})
	sc.Advance(frameDT)
	sc.DoUpdate()

	// camera looks at the origin, so the viewport center hits the
	// lone entity there
	mid := image.Point{X: sc.Size.X / 2, Y: sc.Size.Y / 2}
	sc.HoverAt(mid)
	assert.Equal(t, "center", sc.Selection().HoveredID)

	sc.SelectAt(mid)
	assert.Equal(t, "center", sc.Selection().SelectedID)
	assert.True(t, sc.FocusAnimating(), "selection starts a focus transition")

	// clicking empty space deselects
	sc.SelectAt(image.Point{X: 5, Y: 5})
	assert.Equal(t, "", sc.Selection().SelectedID)
}

func TestSceneMetricDisplayMode(t *testing.T) {
	sc := newTestScene(t)
	sc.Advance(frameDT)
	sc.DoUpdate()
	require.False(t, sc.Active().Dirty())

	sc.SetDisplayMode(geo.MetricColor)
	assert.True(t, sc.Active().Dirty(), "display mode change rebuilds the batch")
}

func TestSceneSetSizeUpdatesAspect(t *testing.T) {
	sc := newTestScene(t)
	sc.SetSize(image.Point{X: 1000, Y: 500})
	assert.Equal(t, float32(2), sc.Camera.Aspect)

	// degenerate sizes are ignored
	sc.SetSize(image.Point{})
	assert.Equal(t, float32(2), sc.Camera.Aspect)
}
