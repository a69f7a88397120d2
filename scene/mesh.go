// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"
)

// Mesh is an indexed triangle mesh that can be registered with the
// render system.  Only indexed triangle meshes are supported; all
// meshes know their vertex and index counts up front and the Set
// method writes data into pre-allocated arrays.
type Mesh interface {
	shape.Mesh

	// AsMeshBase returns the MeshBase providing core mesh state.
	AsMeshBase() *MeshBase
}

// MeshBase provides the core implementation of the [Mesh] interface.
type MeshBase struct {

	// Name links the mesh to render-system registration.
	Name string

	// NumVertex is the number of vertex points.
	NumVertex int

	// NumIndex is the number of triangle indexes.
	NumIndex int

	// HasColor is whether the mesh has per-vertex colors, as
	// math32.Vector4 per vertex.  Batched instance meshes always do.
	HasColor bool

	// Transparent is whether any vertex color has alpha < 1.
	Transparent bool

	// BBox is the local bounding box, valid after Set.
	BBox math32.Box3
}

func (ms *MeshBase) AsMeshBase() *MeshBase { return ms }

func (ms *MeshBase) MeshSize() (numVertex, numIndex int, hasColor bool) {
	return ms.NumVertex, ms.NumIndex, ms.HasColor
}

func (ms *MeshBase) MeshBBox() math32.Box3 { return ms.BBox }

func (ms *MeshBase) Offsets() (vtxOffset, idxOffset int) { return 0, 0 }

func (ms *MeshBase) SetOffsets(vtxOffset, idxOffset int) {}

// GenMesh is a generic mesh holding its own data arrays.  The batched
// instance meshes are GenMeshes rebuilt by the instanced renderers.
type GenMesh struct {
	MeshBase
	Vertex   math32.ArrayF32
	Normal   math32.ArrayF32
	TexCoord math32.ArrayF32
	Color    math32.ArrayF32
	Index    math32.ArrayU32
}

func (ms *GenMesh) MeshSize() (numVertex, numIndex int, hasColor bool) {
	ms.NumVertex = len(ms.Vertex) / 3
	ms.NumIndex = len(ms.Index)
	ms.HasColor = len(ms.Color) > 0
	return ms.NumVertex, ms.NumIndex, ms.HasColor
}

func (ms *GenMesh) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	copy(vertex, ms.Vertex)
	copy(normal, ms.Normal)
	copy(texcoord, ms.TexCoord)
	if ms.HasColor {
		copy(clrs, ms.Color)
	}
	copy(index, ms.Index)
}

// SetSize pre-allocates the data arrays for the given counts.
func (ms *GenMesh) SetSize(numVertex, numIndex int, hasColor bool) {
	ms.NumVertex = numVertex
	ms.NumIndex = numIndex
	ms.HasColor = hasColor
	ms.Vertex = resizeF32(ms.Vertex, numVertex*3)
	ms.Normal = resizeF32(ms.Normal, numVertex*3)
	ms.TexCoord = resizeF32(ms.TexCoord, numVertex*2)
	if hasColor {
		ms.Color = resizeF32(ms.Color, numVertex*4)
	} else {
		ms.Color = nil
	}
	ms.Index = resizeU32(ms.Index, numIndex)
}

func resizeF32(a math32.ArrayF32, n int) math32.ArrayF32 {
	if cap(a) >= n {
		return a[:n]
	}
	return make(math32.ArrayF32, n)
}

func resizeU32(a math32.ArrayU32, n int) math32.ArrayU32 {
	if cap(a) >= n {
		return a[:n]
	}
	return make(math32.ArrayU32, n)
}
