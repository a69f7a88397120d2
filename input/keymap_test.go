// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"testing"

	"cogentcore.org/core/events/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	tests := []struct {
		chord key.Chord
		want  Actions
	}{
		{"r", ResetCamera},
		{"Home", ResetCamera},
		{"l", ToggleLabels},
		{"s", ToggleStats},
		{"f", ToggleFullscreen},
		{"Tab", NextEntity},
		{"Shift+Tab", PrevEntity},
		{"ReturnEnter", Confirm},
		{"Escape", Cancel},
		{"+", ZoomIn},
		{"=", ZoomIn},
		{"-", ZoomOut},
		{"_", ZoomOut},
		{"LeftArrow", OrbitLeft},
		{"RightArrow", OrbitRight},
		{"UpArrow", OrbitUp},
		{"DownArrow", OrbitDown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultKeyMap.Of(tt.chord), string(tt.chord))
	}
}

func TestKeyMapUnboundChord(t *testing.T) {
	assert.Equal(t, None, DefaultKeyMap.Of("Control+Alt+q"))
	assert.Equal(t, None, KeyMap{}.Of("r"))
}

func TestActionsString(t *testing.T) {
	assert.Equal(t, "reset-camera", ResetCamera.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "orbit-down", OrbitDown.String())
}

func TestKeyMapRebinding(t *testing.T) {
	km := KeyMap{"x": ResetCamera}
	assert.Equal(t, ResetCamera, km.Of("x"))
	km["x"] = ToggleLabels
	assert.Equal(t, ToggleLabels, km.Of("x"))
}
