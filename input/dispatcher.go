// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"cogentcore.org/core/events"
	"cogentcore.org/core/events/key"
	"cogentcore.org/core/math32"

	"github.com/geovista/geovista/scene"
)

var (
	// OrbitFactor scales drag pixels to orbit degrees.
	OrbitFactor = float32(0.025)

	// PanFactor scales drag pixels to pan distance.
	PanFactor = float32(0.001)

	// KeyOrbitDeg is the orbit step for arrow keys.
	KeyOrbitDeg = float32(5)

	// KeyZoomPct is the zoom step for keyboard zoom.
	KeyZoomPct = float32(0.05)
)

// Dispatcher routes window events onto a scene: pointer drags orbit or
// pan the camera, scroll zooms, clicks pick, key chords run mapped
// actions, and touch events feed the gesture recognizer.
type Dispatcher struct {

	// Scene is the target scene.
	Scene *scene.Scene

	// Keys is the active key binding.
	Keys KeyMap

	// Touch classifies raw touch events.
	Touch *Recognizer

	// TextFocus suppresses all keyboard actions while an external
	// text field has focus, so typing never moves the camera.
	TextFocus bool

	// OnAction receives actions the dispatcher cannot apply itself
	// (fullscreen, stats overlay); may be nil.
	OnAction func(a Actions)

	// ShowStats mirrors the stats-overlay toggle for the host.
	ShowStats bool
}

// NewDispatcher returns a dispatcher for the scene with the default
// key map and a wired touch recognizer.
func NewDispatcher(sc *scene.Scene) *Dispatcher {
	dp := &Dispatcher{Scene: sc, Keys: DefaultKeyMap, Touch: NewRecognizer()}
	dp.Touch.OnGesture = dp.gesture
	dp.Touch.OnDrag = func(del math32.Vector2) {
		cdist := math32.Max(sc.Camera.DistanceTo(sc.Camera.Target), 1.0)
		orbDel := OrbitFactor * cdist
		sc.OrbitCamera(-del.X*orbDel, -del.Y*orbDel)
	}
	return dp
}

// SetTextFocus sets whether keyboard input is routed to a text field
// instead of the viewer.
func (dp *Dispatcher) SetTextFocus(focus bool) {
	dp.TextFocus = focus
}

// HandleEvent routes one event.  Handled events are marked so outer
// widgets do not also process them.
func (dp *Dispatcher) HandleEvent(e events.Event) {
	switch e.Type() {
	case events.MouseMove:
		dp.Scene.HoverAt(e.Pos())
	case events.MouseDrag:
		dp.dragEvent(e)
		e.SetHandled()
	case events.Scroll:
		dp.scrollEvent(e.(*events.MouseScroll))
		e.SetHandled()
	case events.Click:
		dp.Scene.SelectAt(e.Pos())
		e.SetHandled()
	case events.DoubleClick:
		dp.Scene.ResetCamera()
		e.SetHandled()
	case events.KeyChord:
		dp.keyEvent(e)
	case events.TouchStart:
		dp.Touch.Start(0, e.Pos())
		e.SetHandled()
	case events.TouchMove:
		dp.Touch.Move(0, e.Pos())
		e.SetHandled()
	case events.TouchEnd:
		dp.Touch.End(0)
		e.SetHandled()
	}
}

// Advance feeds elapsed time to the gesture recognizer.
func (dp *Dispatcher) Advance(dt float32) {
	dp.Touch.Advance(dt)
}

// dragEvent orbits by default, pans with Shift, matching the usual 3D
// viewer convention.  Orbit locks to the dominant drag axis.
func (dp *Dispatcher) dragEvent(e events.Event) {
	sc := dp.Scene
	cdist := math32.Max(sc.Camera.DistanceTo(sc.Camera.Target), 1.0)
	orbDel := OrbitFactor * cdist
	panDel := PanFactor * cdist

	del := e.PrevDelta()
	dx := float32(del.X)
	dy := float32(del.Y)
	switch {
	case e.HasAllModifiers(key.Shift):
		sc.PanCamera(dx*panDel, -dy*panDel)
	default:
		if math32.Abs(dx) > math32.Abs(dy) {
			dy = 0
		} else {
			dx = 0
		}
		sc.OrbitCamera(-dx*orbDel, -dy*orbDel)
	}
}

func (dp *Dispatcher) scrollEvent(e *events.MouseScroll) {
	zoom := e.Delta.Y
	dp.Scene.ZoomCamera(zoom * 0.002)
}

func (dp *Dispatcher) keyEvent(e events.Event) {
	if dp.TextFocus {
		return
	}
	act := dp.Keys.Of(e.KeyChord())
	if act == None {
		return
	}
	sc := dp.Scene
	switch act {
	case ResetCamera:
		sc.ResetCamera()
	case ToggleLabels:
		sc.Labels.SetEnabled(!sc.Labels.Enabled)
	case ToggleStats:
		dp.ShowStats = !dp.ShowStats
	case NextEntity:
		dp.cycleSelection(1)
	case PrevEntity:
		dp.cycleSelection(-1)
	case Confirm:
		if id := sc.Selection().SelectedID; id != "" {
			sc.FocusOn(id)
		}
	case Cancel:
		sc.Selection().Clear()
		sc.Active().SetDirty()
	case ZoomIn:
		sc.ZoomCamera(-KeyZoomPct)
	case ZoomOut:
		sc.ZoomCamera(KeyZoomPct)
	case OrbitLeft:
		sc.OrbitCamera(KeyOrbitDeg, 0)
	case OrbitRight:
		sc.OrbitCamera(-KeyOrbitDeg, 0)
	case OrbitUp:
		sc.OrbitCamera(0, KeyOrbitDeg)
	case OrbitDown:
		sc.OrbitCamera(0, -KeyOrbitDeg)
	default:
		if dp.OnAction != nil {
			dp.OnAction(act)
			return
		}
		return
	}
	if dp.OnAction != nil {
		dp.OnAction(act)
	}
	e.SetHandled()
}

// cycleSelection steps selection through the active arena in order,
// wrapping at the ends.
func (dp *Dispatcher) cycleSelection(step int) {
	sc := dp.Scene
	ir := sc.Active()
	n := len(ir.Instances)
	if n == 0 {
		return
	}
	cur := ir.Index(ir.Sel.SelectedID)
	next := cur + step
	if cur < 0 {
		next = 0
		if step < 0 {
			next = n - 1
		}
	}
	next = (next + n) % n
	id := ir.Instances[next].ID
	if ir.Sel.SelectedID != "" {
		ir.Sel.Clear()
	}
	ir.Sel.Select(id)
	ir.SetDirty()
	sc.FocusOn(id)
}

// gesture applies classified touch gestures to the scene.
func (dp *Dispatcher) gesture(g Gesture) {
	sc := dp.Scene
	switch g.Kind {
	case Tap:
		sc.SelectAt(g.Pos)
	case DoubleTap:
		sc.ResetCamera()
	case LongPress:
		sc.HoverAt(g.Pos)
	case Pinch:
		// scale > 1 spreads fingers apart = zoom in
		sc.ZoomCamera(1 - g.Scale)
	case TwoFingerPan:
		cdist := math32.Max(sc.Camera.DistanceTo(sc.Camera.Target), 1.0)
		panDel := PanFactor * cdist
		sc.PanCamera(g.Delta.X*panDel, -g.Delta.Y*panDel)
	case SwipeLeft:
		sc.OrbitCamera(KeyOrbitDeg*3, 0)
	case SwipeRight:
		sc.OrbitCamera(-KeyOrbitDeg*3, 0)
	case SwipeUp, SwipeDown:
		// vertical swipes reserved for host navigation
	}
}
