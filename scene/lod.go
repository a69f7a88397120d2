// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// DetailTier is the level-of-detail tier for one instance.
// Tiers are ordered nearest (most detailed) to furthest (cheapest).
type DetailTier int32

const (
	// TierHigh is the full-detail geometry for nearby instances.
	TierHigh DetailTier = iota

	// TierMedium is reduced-polygon geometry.
	TierMedium

	// TierLow is minimal solid geometry.
	TierLow

	// TierBillboard is a flat camera-facing quad, the cheapest tier.
	TierBillboard
)

// DetailTiersN is the number of detail tiers.
const DetailTiersN = 4

func (t DetailTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	case TierBillboard:
		return "billboard"
	}
	return "unknown"
}

// LODInterval is how often level-of-detail and culling are recomputed,
// in seconds.  Distance checks are too cheap to matter per entity but
// not per entity per frame at scale.
const LODInterval = 0.1

// DefaultLODThresholds are the distance cut-offs for the first three
// tiers; anything at or beyond the last threshold is a billboard.
var DefaultLODThresholds = [3]float32{15, 35, 70}

// TierForDistance maps a camera distance to a detail tier given the
// thresholds.  It is a pure function: comparisons are strict `<`, so a
// distance exactly at a threshold deterministically takes the coarser
// tier, stable across repeated calls.
func TierForDistance(dist float32, thresholds [3]float32) DetailTier {
	switch {
	case dist < thresholds[0]:
		return TierHigh
	case dist < thresholds[1]:
		return TierMedium
	case dist < thresholds[2]:
		return TierLow
	}
	return TierBillboard
}

// LODManager assigns detail tiers to instances on a fixed cadence,
// tracking whether per-tier membership actually changed so callers can
// skip needless batch rebuilds.
type LODManager struct {

	// Thresholds are the tier distance cut-offs, after bias.
	Thresholds [3]float32

	// Bias scales the base thresholds; below 1 pulls coarser tiers
	// closer to the camera.  Updated from the quality settings.
	Bias float32

	acc float32
}

// NewLODManager returns a manager with the default thresholds.
func NewLODManager() *LODManager {
	return &LODManager{Thresholds: DefaultLODThresholds, Bias: 1}
}

// SetBias sets the threshold bias from the quality settings.
func (lm *LODManager) SetBias(bias float32) {
	if bias <= 0 {
		bias = 1
	}
	lm.Bias = bias
}

// Due accumulates elapsed time and reports whether a recomputation is
// due, resetting the accumulator when it is.
func (lm *LODManager) Due(dt float32) bool {
	lm.acc += dt
	if lm.acc < LODInterval {
		return false
	}
	lm.acc = 0
	return true
}

// Assign recomputes the tier for every instance from its distance to
// the camera position.  Returns true if any assignment changed since
// the last call, meaning per-tier membership must be regrouped.
func (lm *LODManager) Assign(insts []Instance, camPos math32.Vector3) bool {
	th := lm.Thresholds
	for i := range th {
		th[i] *= lm.Bias
	}
	changed := false
	for i := range insts {
		in := &insts[i]
		tier := TierForDistance(in.Pos.Sub(camPos).Length(), th)
		if tier != in.Tier {
			in.Tier = tier
			changed = true
		}
	}
	return changed
}
