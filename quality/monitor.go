// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quality

// FrameStatsSource provides cumulative-since-reset draw-call and
// triangle counts.  The scene's render submission implements this;
// the monitor reads and resets the counters at each sample.
type FrameStatsSource interface {

	// FrameStats returns draw calls and triangles submitted since the
	// last ResetFrameStats call.
	FrameStats() (drawCalls, triangles int)

	// ResetFrameStats zeroes the counters.
	ResetFrameStats()
}

// Metrics is a snapshot of the monitor's derived values, suitable for
// a diagnostic overlay in development builds.
type Metrics struct {
	FPS       float32
	FrameTime float32 // milliseconds per frame
	DrawCalls int
	Triangles int
}

// fpsWindow is the number of fps samples in the rolling average.
const fpsWindow = 10

// Monitor derives fps and frame time from the render loop and detects
// sustained low frame rate.  All timing is accumulated elapsed seconds
// fed through [Monitor.FrameTick]; the monitor never blocks or starts
// timers of its own.
//
// Sustained-low detection is debounced: each sample below threshold
// increments a counter, each sample at or above decrements it (floored
// at zero), and the degradation callback fires once when the counter
// reaches BadSamples, after which the counter resets.  A one-off stall
// (e.g. a garbage-collection pause) therefore never triggers quality
// loss.
type Monitor struct {

	// SampleEvery is the sampling period in seconds.
	SampleEvery float32

	// LowFPS is the threshold below which a sample counts as bad.
	LowFPS float32

	// BadSamples is how many net bad samples fire the callback.
	BadSamples int

	// OnSustainedLow is called when sustained low fps is detected.
	OnSustainedLow func()

	// Stats is the optional source of draw/triangle counters.
	Stats FrameStatsSource

	elapsed   float32
	frames    int
	window    [fpsWindow]float32
	nWindow   int
	wIdx      int
	badCount  int
	last      Metrics
}

// NewMonitor returns a Monitor with the standard cadence:
// 500ms samples, 30fps threshold, 4 net bad samples to degrade.
func NewMonitor() *Monitor {
	return &Monitor{
		SampleEvery: 0.5,
		LowFPS:      30,
		BadSamples:  4,
	}
}

// FrameTick records one rendered frame taking dt seconds.
// When enough time has accumulated it takes a sample.
func (m *Monitor) FrameTick(dt float32) {
	m.frames++
	m.elapsed += dt
	if m.elapsed >= m.SampleEvery {
		m.sample()
	}
}

func (m *Monitor) sample() {
	if m.elapsed <= 0 || m.frames == 0 {
		m.elapsed = 0
		m.frames = 0
		return
	}
	fps := float32(m.frames) / m.elapsed
	m.last.FPS = fps
	m.last.FrameTime = 1000 * m.elapsed / float32(m.frames)
	if m.Stats != nil {
		m.last.DrawCalls, m.last.Triangles = m.Stats.FrameStats()
		m.Stats.ResetFrameStats()
	}
	m.window[m.wIdx] = fps
	m.wIdx = (m.wIdx + 1) % fpsWindow
	if m.nWindow < fpsWindow {
		m.nWindow++
	}
	m.elapsed = 0
	m.frames = 0

	if fps < m.LowFPS {
		m.badCount++
		if m.badCount >= m.BadSamples {
			m.badCount = 0
			if m.OnSustainedLow != nil {
				m.OnSustainedLow()
			}
		}
	} else if m.badCount > 0 {
		m.badCount--
	}
}

// AverageFPS returns the rolling average over the last samples,
// or 0 before any sample has been taken.
func (m *Monitor) AverageFPS() float32 {
	if m.nWindow == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < m.nWindow; i++ {
		sum += m.window[i]
	}
	return sum / float32(m.nWindow)
}

// Last returns the most recent metrics snapshot.
func (m *Monitor) Last() Metrics {
	return m.last
}
