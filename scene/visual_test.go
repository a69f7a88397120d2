// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggle(t *testing.T) {
	var sel Selection
	var events []string
	sel.OnSelect = func(id string) { events = append(events, id) }

	sel.Select("a")
	assert.Equal(t, "a", sel.SelectedID)

	// selecting another id replaces, never two at once
	sel.Select("b")
	assert.Equal(t, "b", sel.SelectedID)

	// re-selecting toggles off
	sel.Select("b")
	assert.Equal(t, "", sel.SelectedID)

	assert.Equal(t, []string{"a", "b", ""}, events)
}

func TestSelectionClear(t *testing.T) {
	var sel Selection
	assert.False(t, sel.Clear(), "clearing nothing reports no change")
	sel.Select("x")
	assert.True(t, sel.Clear())
	assert.Equal(t, "", sel.SelectedID)
}

func TestHoverChangesOnly(t *testing.T) {
	var sel Selection
	hovers := 0
	sel.OnHover = func(id string) { hovers++ }

	assert.True(t, sel.Hover("a"))
	// pointer still over the same instance: no event
	assert.False(t, sel.Hover("a"))
	assert.False(t, sel.Hover("a"))
	assert.Equal(t, 1, hovers)

	// actual leave
	assert.True(t, sel.Hover(""))
	assert.Equal(t, 2, hovers)
}

func TestHoverAndSelectionCoexist(t *testing.T) {
	var sel Selection
	sel.Select("a")
	sel.Hover("b")
	assert.Equal(t, "a", sel.SelectedID)
	assert.Equal(t, "b", sel.HoveredID)

	assert.Equal(t, StateSelected, sel.StateFor("a"))
	assert.Equal(t, StateHovered, sel.StateFor("b"))
	assert.Equal(t, StateDimmed, sel.StateFor("c"))
}

func TestStateForSelectedWinsOverHovered(t *testing.T) {
	var sel Selection
	sel.Select("a")
	sel.Hover("a")
	assert.Equal(t, StateSelected, sel.StateFor("a"))
}

func TestStateForNoFocus(t *testing.T) {
	var sel Selection
	assert.False(t, sel.FocusActive())
	assert.Equal(t, StateNormal, sel.StateFor("anything"))

	sel.Hover("h")
	assert.True(t, sel.FocusActive())
	assert.Equal(t, StateDimmed, sel.StateFor("other"))

	sel.Hover("")
	assert.Equal(t, StateNormal, sel.StateFor("other"))
}
