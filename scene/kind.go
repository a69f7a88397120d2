// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// Kind is the entity kind an instanced renderer draws.
type Kind int32

const (
	KindRegion Kind = iota
	KindSubRegion
	KindHousehold
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindSubRegion:
		return "sub-region"
	case KindHousehold:
		return "household"
	}
	return "unknown"
}

// KindParams are the per-kind sizing and shape parameters.
// Height is derived from the entity's magnitude (voter / member count)
// through a clamped logarithmic curve:
//
//	height = clamp(BaseMin, BaseMin + log10(count+1)*LogK, BaseMax)
//
// Regions are the tallest with the most dramatic scaling; households
// the shortest with the most subtle.
type KindParams struct {

	// BaseMin and BaseMax bound the instance height.
	BaseMin float32
	BaseMax float32

	// LogK scales the log10 magnitude term.
	LogK float32

	// Radius is the footprint half-width of the instance shape.
	Radius float32
}

// kindParams are the fixed per-kind curve parameters.
var kindParams = [KindsN]KindParams{
	KindRegion:    {BaseMin: 1.0, BaseMax: 12, LogK: 2.4, Radius: 0.9},
	KindSubRegion: {BaseMin: 0.6, BaseMax: 6, LogK: 1.4, Radius: 0.55},
	KindHousehold: {BaseMin: 0.3, BaseMax: 2, LogK: 0.5, Radius: 0.3},
}

// KindsN is the number of entity kinds.
const KindsN = 3

// ParamsFor returns the sizing parameters for the given kind.
func ParamsFor(k Kind) KindParams {
	if k < 0 || int(k) >= KindsN {
		return kindParams[KindRegion]
	}
	return kindParams[k]
}

// Height returns the instance height for the given magnitude count.
// It is monotonically non-decreasing in count and bounded in
// [BaseMin, BaseMax]; negative counts clamp to zero.
func (kp KindParams) Height(count int) float32 {
	if count < 0 {
		count = 0
	}
	h := kp.BaseMin + math32.Log10(float32(count)+1)*kp.LogK
	return math32.Clamp(h, kp.BaseMin, kp.BaseMax)
}
