// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quality

import (
	"log/slog"
	"strings"
)

// GPUClass is the coarse GPU classification derived from the adapter
// description string.  Classification is best-effort substring matching
// against known vendor tokens; the invariant that matters is that
// anything unrecognized lands on GPUUnknown and therefore the Medium
// tier, never on a crash or an over-ambitious tier.
type GPUClass int32

const (
	GPUUnknown GPUClass = iota
	GPUIntegrated
	GPUHighEnd
)

func (g GPUClass) String() string {
	switch g {
	case GPUIntegrated:
		return "integrated"
	case GPUHighEnd:
		return "high-end"
	}
	return "unknown"
}

// Device describes the probed device capabilities.  The live path fills
// this from the GPU adapter and platform; tests construct it directly.
type Device struct {

	// HasContext is whether a graphics context could be created at all.
	HasContext bool

	// Mobile is whether platform signals indicate a mobile device.
	Mobile bool

	// Renderer is the adapter / renderer identifier string,
	// e.g. "NVIDIA GeForce RTX 4070" or "Apple M2".
	Renderer string
}

// highEndTokens and integratedTokens are illustrative vendor substrings;
// matching is lowercase containment.  The table is policy, not contract.
var (
	highEndTokens = []string{
		"nvidia", "geforce", "rtx", "gtx",
		"radeon rx", "radeon pro",
		"apple m", "apple a17", "apple a18",
	}
	integratedTokens = []string{
		"intel", "uhd", "iris", "hd graphics",
		"mali", "adreno", "powervr", "videocore",
		"swiftshader", "llvmpipe", "software",
	}
)

// ClassifyGPU classifies a renderer identifier string.
// High-end tokens win over integrated tokens when both match
// (e.g. "Intel Arc" marketing strings that also mention partners).
func ClassifyGPU(renderer string) GPUClass {
	r := strings.ToLower(renderer)
	if r == "" {
		return GPUUnknown
	}
	for _, tok := range highEndTokens {
		if strings.Contains(r, tok) {
			return GPUHighEnd
		}
	}
	for _, tok := range integratedTokens {
		if strings.Contains(r, tok) {
			return GPUIntegrated
		}
	}
	return GPUUnknown
}

// Probe selects the initial quality tier for the given device:
//
//   - no graphics context: UltraLow
//   - mobile + high-end GPU: Medium
//   - mobile otherwise: Low
//   - desktop + integrated GPU: Medium
//   - desktop + high-end GPU: High
//   - anything unclassified: Medium
func Probe(dev Device) Tier {
	if !dev.HasContext {
		slog.Warn("quality: no graphics context, using ultra-low tier")
		return UltraLow
	}
	gc := ClassifyGPU(dev.Renderer)
	if dev.Mobile {
		if gc == GPUHighEnd {
			return Medium
		}
		return Low
	}
	switch gc {
	case GPUHighEnd:
		return High
	case GPUIntegrated:
		return Medium
	}
	return Medium
}
