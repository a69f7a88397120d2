// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image"

	"cogentcore.org/core/math32"
)

// ScreenRay returns the world-space ray through the given pixel
// position, for a viewport of the given size, using the camera's
// current view and projection matrices.
func ScreenRay(pos image.Point, size image.Point, cam *Camera) math32.Ray {
	ndcX := 2*float32(pos.X)/float32(size.X) - 1
	ndcY := -(2*float32(pos.Y)/float32(size.Y) - 1)

	var vp, inv math32.Matrix4
	vp.MulMatrices(&cam.ProjectionMatrix, &cam.ViewMatrix)
	inv.SetInverse(&vp)

	near := math32.Vector4{X: ndcX, Y: ndcY, Z: -1, W: 1}.MulMatrix4(&inv).PerspDiv()
	far := math32.Vector4{X: ndcX, Y: ndcY, Z: 1, W: 1}.MulMatrix4(&inv).PerspDiv()

	dir := far.Sub(near).Normal()
	return math32.Ray{Origin: near, Dir: dir}
}

// Pick returns the id of the nearest visible instance whose world
// bounding box the ray intersects, or "" if none hit.  Instances
// culled or dropped by the instance cap are not pickable.
func (ir *InstancedRenderer) Pick(ray math32.Ray, pool *GeometryPool) string {
	best := ""
	bestDist := float32(-1)
	for i := range ir.Instances {
		in := &ir.Instances[i]
		if !in.Visible {
			continue
		}
		tmpl := pool.Geometry(ir.Kind, in.Tier)
		bb := ir.WorldBBox(i, tmpl)
		pt, has := ray.IntersectBox(bb)
		if !has {
			continue
		}
		d := pt.DistanceTo(ray.Origin)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = in.ID
		}
	}
	return best
}
