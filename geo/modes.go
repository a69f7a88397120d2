// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "image/color"

// ViewMode selects which entity kind the scene renders.
type ViewMode int32

const (
	// Regions renders the region entities.
	Regions ViewMode = iota

	// SubRegions renders the sub-region entities.
	SubRegions

	// Households renders the household entities.
	Households
)

func (vm ViewMode) String() string {
	switch vm {
	case Regions:
		return "regions"
	case SubRegions:
		return "sub-regions"
	case Households:
		return "households"
	}
	return "unknown"
}

// DisplayMode selects how instances are colored.
type DisplayMode int32

const (
	// ClassColor colors each instance by its classification label.
	ClassColor DisplayMode = iota

	// MetricColor colors each instance by its derived support
	// percentage through a diverging ramp.
	MetricColor
)

func (dm DisplayMode) String() string {
	switch dm {
	case ClassColor:
		return "classification"
	case MetricColor:
		return "metric"
	}
	return "unknown"
}

// MetricRamp maps a support percentage in [0, 100] onto a diverging
// red to gray to green ramp.  Out-of-range input is clamped.
func MetricRamp(pct float32) color.RGBA {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	lo := color.RGBA{204, 51, 51, 255}   // full oppose
	mid := color.RGBA{128, 128, 128, 255}
	hi := color.RGBA{51, 170, 85, 255}   // full support
	if pct < 50 {
		return lerpRGBA(lo, mid, pct/50)
	}
	return lerpRGBA(mid, hi, (pct-50)/50)
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}
