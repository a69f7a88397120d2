// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quality implements adaptive render quality: a one-time device
// capability probe selects an initial quality tier, and a performance
// monitor drives one-way tier degradation when frame rate stays low.
// Each tier is a complete named settings bundle swapped atomically;
// there is no field-by-field interpolation between tiers.
package quality

// Tier is a named quality level.  Tiers are ordered: degradation steps
// exactly one tier down and never goes below UltraLow.
type Tier int32

const (
	// UltraLow is the floor tier, used when no graphics context is
	// available at all.
	UltraLow Tier = iota

	// Low is for mobile devices without a high-end GPU.
	Low

	// Medium is the safe default for anything unclassified.
	Medium

	// High is for desktops with a high-end GPU.
	High
)

func (t Tier) String() string {
	switch t {
	case UltraLow:
		return "ultra-low"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

// Settings is the complete bundle of render settings for one tier.
// One instance is process-wide active at a time; it is replaced
// atomically on tier change and readers must re-read it every frame.
type Settings struct {

	// Tier is the tier this bundle belongs to.
	Tier Tier

	// ShadowsEnabled enables base-plate contact shading under instances.
	ShadowsEnabled bool

	// ShadowMapSize is the shadow texture resolution in texels.
	ShadowMapSize int

	// PixelRatioMin and PixelRatioMax bound the render scale relative
	// to the display's native pixel density.
	PixelRatioMin float32
	PixelRatioMax float32

	// AntialiasEnabled selects multisampling (4x) when true.
	AntialiasEnabled bool

	// MaxInstances caps the number of rendered instances per entity
	// kind.  Entities beyond the cap are silently dropped, not an error.
	MaxInstances int

	// LODBias scales the level-of-detail distance thresholds;
	// values below 1 pull coarser tiers closer to the camera.
	LODBias float32
}

// MultiSample returns the multisample count implied by the settings.
func (s *Settings) MultiSample() int {
	if s.AntialiasEnabled {
		return 4
	}
	return 1
}

// tierSettings are the fixed per-tier bundles.  These are complete
// bundles: a tier change swaps the whole value, never single fields.
var tierSettings = map[Tier]Settings{
	High: {
		Tier:             High,
		ShadowsEnabled:   true,
		ShadowMapSize:    2048,
		PixelRatioMin:    1,
		PixelRatioMax:    2,
		AntialiasEnabled: true,
		MaxInstances:     10000,
		LODBias:          1,
	},
	Medium: {
		Tier:             Medium,
		ShadowsEnabled:   true,
		ShadowMapSize:    1024,
		PixelRatioMin:    0.75,
		PixelRatioMax:    1.5,
		AntialiasEnabled: true,
		MaxInstances:     5000,
		LODBias:          0.8,
	},
	Low: {
		Tier:             Low,
		ShadowsEnabled:   false,
		ShadowMapSize:    512,
		PixelRatioMin:    0.5,
		PixelRatioMax:    1,
		AntialiasEnabled: false,
		MaxInstances:     2000,
		LODBias:          0.6,
	},
	UltraLow: {
		Tier:             UltraLow,
		ShadowsEnabled:   false,
		ShadowMapSize:    0,
		PixelRatioMin:    0.5,
		PixelRatioMax:    0.75,
		AntialiasEnabled: false,
		MaxInstances:     500,
		LODBias:          0.4,
	},
}

// SettingsFor returns a copy of the settings bundle for the given tier.
func SettingsFor(t Tier) Settings {
	s, ok := tierSettings[t]
	if !ok {
		s = tierSettings[Medium]
	}
	return s
}
