// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyGPU(t *testing.T) {
	assert.Equal(t, GPUHighEnd, ClassifyGPU("NVIDIA GeForce RTX 3060"))
	assert.Equal(t, GPUHighEnd, ClassifyGPU("AMD Radeon RX 6800"))
	assert.Equal(t, GPUIntegrated, ClassifyGPU("Intel(R) UHD Graphics 620"))
	assert.Equal(t, GPUUnknown, ClassifyGPU("Some Future GPU 9000"))
	assert.Equal(t, GPUUnknown, ClassifyGPU(""))
}

func TestProbePolicy(t *testing.T) {
	tests := []struct {
		name string
		dev  Device
		want Tier
	}{
		{"no context", Device{}, UltraLow},
		{"mobile high-end", Device{HasContext: true, Mobile: true, Renderer: "Apple M2 GPU RTX"}, Medium},
		{"mobile", Device{HasContext: true, Mobile: true, Renderer: "Mali-G78"}, Low},
		{"desktop integrated", Device{HasContext: true, Renderer: "Intel Iris Xe"}, Medium},
		{"desktop high-end", Device{HasContext: true, Renderer: "GeForce GTX 1080"}, High},
		{"desktop unknown", Device{HasContext: true, Renderer: "Mystery Adapter"}, Medium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Probe(tt.dev))
		})
	}
}

func TestSettingsBundles(t *testing.T) {
	for _, tier := range []Tier{UltraLow, Low, Medium, High} {
		st := SettingsFor(tier)
		assert.Equal(t, tier, st.Tier)
		assert.Greater(t, st.MaxInstances, 0)
		assert.Greater(t, st.LODBias, float32(0))
	}

	// each step down reduces the instance budget
	assert.Greater(t, SettingsFor(High).MaxInstances, SettingsFor(Medium).MaxInstances)
	assert.Greater(t, SettingsFor(Medium).MaxInstances, SettingsFor(Low).MaxInstances)
	assert.Greater(t, SettingsFor(Low).MaxInstances, SettingsFor(UltraLow).MaxInstances)

	assert.True(t, SettingsFor(High).ShadowsEnabled)
	assert.False(t, SettingsFor(UltraLow).ShadowsEnabled)
}

func TestControllerDegrade(t *testing.T) {
	c := NewController(Device{HasContext: true, Renderer: "GeForce RTX 4090"})
	require.Equal(t, High, c.Tier())
	require.Equal(t, High, c.Ceiling())

	var changes []Tier
	c.OnChange = func(st Settings) {
		changes = append(changes, st.Tier)
	}

	assert.True(t, c.Degrade())
	assert.Equal(t, Medium, c.Tier())
	assert.True(t, c.Degrade())
	assert.True(t, c.Degrade())
	assert.Equal(t, UltraLow, c.Tier())

	// floor: no further degradation
	assert.False(t, c.Degrade())
	assert.Equal(t, UltraLow, c.Tier())

	assert.Equal(t, []Tier{Medium, Low, UltraLow}, changes)
}

func TestControllerUpgradeIsExplicitAndCapped(t *testing.T) {
	c := NewController(Device{HasContext: true, Renderer: "Intel HD Graphics"})
	require.Equal(t, Medium, c.Tier())

	c.Degrade()
	assert.Equal(t, Low, c.Tier())

	// upgrade steps back up, but never past the probed ceiling
	assert.True(t, c.Upgrade())
	assert.Equal(t, Medium, c.Tier())
	assert.False(t, c.Upgrade())
	assert.Equal(t, Medium, c.Tier())
}

func TestControllerSettingsSwapAtomically(t *testing.T) {
	c := NewController(Device{HasContext: true, Renderer: "GeForce RTX 3080"})
	before := c.Settings()
	c.Degrade()
	after := c.Settings()

	// a complete bundle changes, never a single field
	assert.NotEqual(t, before.Tier, after.Tier)
	assert.Equal(t, SettingsFor(after.Tier), after)
}

type fakeStats struct {
	draws, tris int
	resets      int
}

func (f *fakeStats) FrameStats() (int, int) { return f.draws, f.tris }
func (f *fakeStats) ResetFrameStats()       { f.resets++ }

func TestMonitorSampling(t *testing.T) {
	m := NewMonitor()
	fs := &fakeStats{draws: 3, tris: 9000}
	m.Stats = fs

	// 30 frames over 0.5s = 60fps
	for i := 0; i < 30; i++ {
		m.FrameTick(1.0 / 60.0)
	}
	last := m.Last()
	assert.InDelta(t, 60, last.FPS, 1)
	assert.Equal(t, 3, last.DrawCalls)
	assert.Equal(t, 9000, last.Triangles)
	assert.Equal(t, 1, fs.resets)
	assert.InDelta(t, 60, m.AverageFPS(), 1)
}

func TestMonitorDebounce(t *testing.T) {
	m := NewMonitor()
	fired := 0
	m.OnSustainedLow = func() { fired++ }

	badSample := func() {
		// 5 frames over 0.5s = 10fps
		for i := 0; i < 5; i++ {
			m.FrameTick(0.1)
		}
	}
	goodSample := func() {
		for i := 0; i < 30; i++ {
			m.FrameTick(1.0 / 60.0)
		}
	}

	// a one-off stall never fires
	badSample()
	goodSample()
	assert.Equal(t, 0, fired)

	// bad samples interleaved with good ones decrement the counter
	badSample()
	badSample()
	goodSample()
	badSample()
	assert.Equal(t, 0, fired)

	// four net bad samples fire exactly once, then the counter resets
	badSample()
	badSample()
	assert.Equal(t, 1, fired)

	badSample()
	badSample()
	badSample()
	assert.Equal(t, 1, fired)
	badSample()
	assert.Equal(t, 2, fired)
}

func TestMonitorAverageBeforeSamples(t *testing.T) {
	m := NewMonitor()
	assert.Equal(t, float32(0), m.AverageFPS())
	m.FrameTick(0.01)
	assert.Equal(t, float32(0), m.AverageFPS())
}
