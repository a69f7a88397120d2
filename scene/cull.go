// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// Culler runs frustum culling over an instanced renderer's arena,
// setting each instance's Visible flag from its world bounding box
// against the camera frustum.
type Culler struct {

	// Enabled turns culling on.  When off, every instance is visible.
	Enabled bool

	// Culled is the number of instances rejected in the last pass.
	Culled int
}

// NewCuller returns an enabled culler.
func NewCuller() *Culler {
	return &Culler{Enabled: true}
}

// Cull updates the Visible flags on the renderer's instances against
// the camera frustum.  Returns true if any visibility changed, which
// requires a batch rebuild.
func (cl *Culler) Cull(ir *InstancedRenderer, pool *GeometryPool, frustum *math32.Frustum) bool {
	changed := false
	cl.Culled = 0
	if !cl.Enabled || frustum == nil {
		for i := range ir.Instances {
			in := &ir.Instances[i]
			if !in.Visible {
				in.Visible = true
				changed = true
			}
		}
		return changed
	}
	for i := range ir.Instances {
		in := &ir.Instances[i]
		tmpl := pool.Geometry(ir.Kind, in.Tier)
		bb := ir.WorldBBox(i, tmpl)
		vis := frustum.IntersectsBox(bb)
		if !vis {
			cl.Culled++
		}
		if vis != in.Visible {
			in.Visible = vis
			changed = true
		}
	}
	return changed
}
