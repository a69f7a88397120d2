// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input translates keyboard, pointer, and touch events into
// scene operations.  The keyboard layer is a chord-to-action map, the
// touch layer is a pure gesture classifier, and the dispatcher wires
// both plus pointer events onto a scene.
package input

import "cogentcore.org/core/events/key"

// Actions are the functions keyboard events can perform on the viewer.
type Actions int32

const (
	None Actions = iota

	// ResetCamera restores the default overview pose.
	ResetCamera

	// ToggleLabels shows or hides the marker layer.
	ToggleLabels

	// ToggleStats shows or hides the performance overlay.
	ToggleStats

	// ToggleFullscreen enters or leaves fullscreen.
	ToggleFullscreen

	// NextEntity and PrevEntity cycle selection through the entities
	// of the active view.
	NextEntity
	PrevEntity

	// Confirm focuses the current selection.
	Confirm

	// Cancel clears selection and any in-flight focus transition.
	Cancel

	// ZoomIn and ZoomOut step the camera along the view axis.
	ZoomIn
	ZoomOut

	// OrbitLeft, OrbitRight, OrbitUp, and OrbitDown nudge the orbit.
	OrbitLeft
	OrbitRight
	OrbitUp
	OrbitDown
)

func (a Actions) String() string {
	switch a {
	case ResetCamera:
		return "reset-camera"
	case ToggleLabels:
		return "toggle-labels"
	case ToggleStats:
		return "toggle-stats"
	case ToggleFullscreen:
		return "toggle-fullscreen"
	case NextEntity:
		return "next-entity"
	case PrevEntity:
		return "prev-entity"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	case ZoomIn:
		return "zoom-in"
	case ZoomOut:
		return "zoom-out"
	case OrbitLeft:
		return "orbit-left"
	case OrbitRight:
		return "orbit-right"
	case OrbitUp:
		return "orbit-up"
	case OrbitDown:
		return "orbit-down"
	}
	return "none"
}

// KeyMap maps a key chord to an action.  Each chord has one action;
// multiple chords can trigger the same action.
type KeyMap map[key.Chord]Actions

// DefaultKeyMap is the standard binding.
var DefaultKeyMap = KeyMap{
	"r":          ResetCamera,
	"Home":       ResetCamera,
	"l":          ToggleLabels,
	"s":          ToggleStats,
	"f":          ToggleFullscreen,
	"Tab":        NextEntity,
	"Shift+Tab":  PrevEntity,
	"ReturnEnter": Confirm,
	"Escape":     Cancel,
	"+":          ZoomIn,
	"=":          ZoomIn,
	"-":          ZoomOut,
	"_":          ZoomOut,
	"LeftArrow":  OrbitLeft,
	"RightArrow": OrbitRight,
	"UpArrow":    OrbitUp,
	"DownArrow":  OrbitDown,
}

// Of translates a chord into its bound action, None if unbound.
func (km KeyMap) Of(chord key.Chord) Actions {
	return km[chord]
}
