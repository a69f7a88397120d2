// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"image"

	"cogentcore.org/core/math32"
)

// gesture thresholds
const (
	// TapMaxTime is the longest press that still counts as a tap,
	// in seconds.
	TapMaxTime = 0.3

	// TapMaxDist is the furthest a tap may wander, in pixels.
	TapMaxDist = 10

	// DoubleTapTime is the window after a tap in which a second tap
	// becomes a double tap, in seconds.
	DoubleTapTime = 0.3

	// LongPressTime is the hold duration that fires a long press,
	// in seconds.
	LongPressTime = 0.5

	// SwipeMinDist is the minimum travel for a swipe, in pixels.
	SwipeMinDist = 50

	// SwipeMinSpeed is the minimum swipe speed in pixels per second.
	SwipeMinSpeed = 300
)

// GestureKinds are the gestures the recognizer classifies.
type GestureKinds int32

const (
	NoGesture GestureKinds = iota
	Tap
	DoubleTap
	LongPress
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
	Pinch
	TwoFingerPan
)

func (gk GestureKinds) String() string {
	switch gk {
	case Tap:
		return "tap"
	case DoubleTap:
		return "double-tap"
	case LongPress:
		return "long-press"
	case SwipeLeft:
		return "swipe-left"
	case SwipeRight:
		return "swipe-right"
	case SwipeUp:
		return "swipe-up"
	case SwipeDown:
		return "swipe-down"
	case Pinch:
		return "pinch"
	case TwoFingerPan:
		return "two-finger-pan"
	}
	return "none"
}

// Gesture is one classified gesture.
type Gesture struct {

	// Kind is what was recognized.
	Kind GestureKinds

	// Pos is the anchor position: the touch point for taps and
	// presses, the midpoint for two-finger gestures.
	Pos image.Point

	// Delta is the per-event movement for pans and the single-finger
	// drag, in pixels.
	Delta math32.Vector2

	// Scale is the pinch scale factor relative to the previous event
	// (1 = no change).
	Scale float32
}

type touchPoint struct {
	id      int
	start   image.Point
	pos     image.Point
	elapsed float32
	moved   bool // exceeded TapMaxDist at some point
}

// Recognizer classifies raw touch events into gestures.  It is a pure
// state machine: callers feed Start / Move / End plus elapsed time
// through Advance, and classified gestures come out of OnGesture.
// One-finger drags that are not taps also stream through OnDrag for
// orbit control.
type Recognizer struct {

	// OnGesture receives each classified gesture.
	OnGesture func(g Gesture)

	// OnDrag receives one-finger drag deltas once a touch has moved
	// beyond the tap distance.
	OnDrag func(delta math32.Vector2)

	points []touchPoint

	// single-finger tracking
	pressFired   bool
	sinceLastTap float32
	tapPending   bool
	lastTapPos   image.Point

	// two-finger tracking
	lastSpread float32
	lastMid    math32.Vector2
	twoActive  bool
}

// NewRecognizer returns an empty recognizer.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// Reset drops all touch state, as on a touch-cancel event.
// A pending long press never fires after a reset.
func (rz *Recognizer) Reset() {
	rz.points = rz.points[:0]
	rz.pressFired = false
	rz.twoActive = false
}

// NumTouches returns the number of active touch points.
func (rz *Recognizer) NumTouches() int {
	return len(rz.points)
}

// Start begins tracking a touch point.
func (rz *Recognizer) Start(id int, pos image.Point) {
	rz.points = append(rz.points, touchPoint{id: id, start: pos, pos: pos})
	rz.pressFired = false
	if len(rz.points) == 2 {
		rz.twoActive = true
		rz.lastSpread = rz.spread()
		rz.lastMid = rz.midpoint()
	}
}

func (rz *Recognizer) find(id int) *touchPoint {
	for i := range rz.points {
		if rz.points[i].id == id {
			return &rz.points[i]
		}
	}
	return nil
}

// Move updates a touch point's position, emitting drag or two-finger
// gestures as appropriate.
func (rz *Recognizer) Move(id int, pos image.Point) {
	tp := rz.find(id)
	if tp == nil {
		return
	}
	prev := tp.pos
	tp.pos = pos
	if dist(tp.start, pos) > TapMaxDist {
		tp.moved = true
	}

	switch len(rz.points) {
	case 1:
		if tp.moved && !rz.pressFired && rz.OnDrag != nil {
			rz.OnDrag(math32.Vec2(float32(pos.X-prev.X), float32(pos.Y-prev.Y)))
		}
	case 2:
		rz.moveTwo()
	}
}

func (rz *Recognizer) moveTwo() {
	sp := rz.spread()
	mid := rz.midpoint()
	if rz.lastSpread > 0 && sp > 0 {
		scale := sp / rz.lastSpread
		if math32.Abs(scale-1) > 0.01 && rz.OnGesture != nil {
			rz.OnGesture(Gesture{Kind: Pinch, Pos: midPoint(mid), Scale: scale})
		}
	}
	del := mid.Sub(rz.lastMid)
	if del.Length() > 0.5 && rz.OnGesture != nil {
		rz.OnGesture(Gesture{Kind: TwoFingerPan, Pos: midPoint(mid), Delta: del, Scale: 1})
	}
	rz.lastSpread = sp
	rz.lastMid = mid
}

// End finishes a touch point, classifying tap, double tap, or swipe.
// Lifting one finger of a two-finger gesture ends the pair.
func (rz *Recognizer) End(id int) {
	tp := rz.find(id)
	if tp == nil {
		return
	}
	single := len(rz.points) == 1
	if single && !rz.pressFired {
		rz.classifyEnd(tp)
	}
	rz.remove(id)
	if rz.twoActive && len(rz.points) < 2 {
		rz.twoActive = false
	}
	rz.pressFired = false
}

func (rz *Recognizer) classifyEnd(tp *touchPoint) {
	d := dist(tp.start, tp.pos)
	if tp.elapsed <= TapMaxTime && !tp.moved {
		if rz.tapPending && rz.sinceLastTap <= DoubleTapTime &&
			dist(rz.lastTapPos, tp.pos) <= TapMaxDist {
			rz.tapPending = false
			rz.emit(Gesture{Kind: DoubleTap, Pos: tp.pos, Scale: 1})
		} else {
			rz.tapPending = true
			rz.sinceLastTap = 0
			rz.lastTapPos = tp.pos
			rz.emit(Gesture{Kind: Tap, Pos: tp.pos, Scale: 1})
		}
		return
	}
	if d < SwipeMinDist || tp.elapsed <= 0 {
		return
	}
	speed := d / tp.elapsed
	if speed < SwipeMinSpeed {
		return
	}
	dx := float32(tp.pos.X - tp.start.X)
	dy := float32(tp.pos.Y - tp.start.Y)
	kind := SwipeRight
	if math32.Abs(dx) >= math32.Abs(dy) {
		if dx < 0 {
			kind = SwipeLeft
		}
	} else {
		kind = SwipeDown
		if dy < 0 {
			kind = SwipeUp
		}
	}
	rz.emit(Gesture{Kind: kind, Pos: tp.pos,
		Delta: math32.Vec2(dx, dy), Scale: 1})
}

// Advance accumulates elapsed time in seconds: long presses fire here,
// and the double-tap window expires here.  All waiting is accumulated
// elapsed time; the recognizer owns no timers.
func (rz *Recognizer) Advance(dt float32) {
	for i := range rz.points {
		rz.points[i].elapsed += dt
	}
	if rz.tapPending {
		rz.sinceLastTap += dt
		if rz.sinceLastTap > DoubleTapTime {
			rz.tapPending = false
		}
	}
	if len(rz.points) == 1 && !rz.pressFired {
		tp := &rz.points[0]
		if !tp.moved && tp.elapsed >= LongPressTime {
			rz.pressFired = true
			rz.emit(Gesture{Kind: LongPress, Pos: tp.pos, Scale: 1})
		}
	}
}

func (rz *Recognizer) emit(g Gesture) {
	if rz.OnGesture != nil {
		rz.OnGesture(g)
	}
}

func (rz *Recognizer) remove(id int) {
	for i := range rz.points {
		if rz.points[i].id == id {
			rz.points = append(rz.points[:i], rz.points[i+1:]...)
			return
		}
	}
}

func (rz *Recognizer) spread() float32 {
	if len(rz.points) < 2 {
		return 0
	}
	return dist(rz.points[0].pos, rz.points[1].pos)
}

func (rz *Recognizer) midpoint() math32.Vector2 {
	a, b := rz.points[0].pos, rz.points[1].pos
	return math32.Vec2(float32(a.X+b.X)/2, float32(a.Y+b.Y)/2)
}

func midPoint(v math32.Vector2) image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

func dist(a, b image.Point) float32 {
	dx := float32(a.X - b.X)
	dy := float32(a.Y - b.Y)
	return math32.Sqrt(dx*dx + dy*dy)
}
