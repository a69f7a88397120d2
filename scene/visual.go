// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Selection is the shared hover / selection state for one view.
// It holds at most one selected id and one hovered id; every other
// visual flag (dimming) is derived from these two scalars each frame
// rather than stored per entity.
type Selection struct {

	// HoveredID is the entity currently under the pointer ("" = none).
	HoveredID string

	// SelectedID is the entity currently selected ("" = none).
	SelectedID string

	// OnSelect is called with the new selected id ("" on deselect).
	OnSelect func(id string)

	// OnHover is called when the hovered id changes ("" on leave).
	OnHover func(id string)
}

// Select applies a selection event for the given entity id.
// Selecting the already-selected id toggles selection off.
// Returns true if the selection changed.
func (sel *Selection) Select(id string) bool {
	if id == "" {
		return sel.Clear()
	}
	if sel.SelectedID == id {
		sel.SelectedID = ""
	} else {
		sel.SelectedID = id
	}
	if sel.OnSelect != nil {
		sel.OnSelect(sel.SelectedID)
	}
	return true
}

// Clear deselects any selected entity.  Returns true if there was one.
func (sel *Selection) Clear() bool {
	if sel.SelectedID == "" {
		return false
	}
	sel.SelectedID = ""
	if sel.OnSelect != nil {
		sel.OnSelect("")
	}
	return true
}

// Hover sets the hovered entity id ("" = pointer over nothing).
// The hover state clears only when the pointer actually leaves the
// hovered instance: callers report the instance under the pointer and
// this method no-ops while it is unchanged.  Returns true on change.
func (sel *Selection) Hover(id string) bool {
	if sel.HoveredID == id {
		return false
	}
	sel.HoveredID = id
	if sel.OnHover != nil {
		sel.OnHover(id)
	}
	return true
}

// FocusActive reports whether any entity is hovered or selected,
// i.e. whether focus-mode dimming applies to the rest of the view.
func (sel *Selection) FocusActive() bool {
	return sel.HoveredID != "" || sel.SelectedID != ""
}

// StateFor derives the visual state for an entity id from the two
// focus scalars.  Selected wins over hovered; anything else is dimmed
// while focus is active, normal otherwise.
func (sel *Selection) StateFor(id string) VisState {
	switch {
	case id != "" && id == sel.SelectedID:
		return StateSelected
	case id != "" && id == sel.HoveredID:
		return StateHovered
	case sel.FocusActive():
		return StateDimmed
	}
	return StateNormal
}
