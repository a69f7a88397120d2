// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo defines the entity data model consumed by the rendering core:
// regions, sub-regions, and households with their classification labels and
// support counts.  Entities are immutable per frame: the host mutates only
// by replacing the slice it supplies to the scene.
package geo

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Classification is a classification label attached to an entity
// (e.g., "support", "oppose", "swing").  The core attaches no semantics
// to the label beyond color lookup.
type Classification string

// Unclassified is the zero classification, rendered in neutral gray.
const Unclassified Classification = ""

// ColorTable maps classification labels to display colors.
// It is supplied by the host; the core never defines business color
// semantics of its own.
type ColorTable map[Classification]color.RGBA

// NeutralColor is used for any classification missing from the table,
// and for entities in the unknown visual state.
var NeutralColor = color.RGBA{128, 128, 128, 255}

// Color returns the color for the given classification,
// or NeutralColor if the classification is not in the table.
func (ct ColorTable) Color(cl Classification) color.RGBA {
	if c, ok := ct[cl]; ok {
		return c
	}
	return NeutralColor
}

// Counts holds the classification sub-counts for an entity.
// The invariant is sum at most the entity's total count; it is checked by
// [Counts.ExceedsTotal] during validation but never enforced fatally,
// since counts arrive from an external pipeline and may lag.
type Counts struct {

	// Support is the number classified as supporting.
	Support int

	// Oppose is the number classified as opposing.
	Oppose int

	// Swing is the number classified as undecided / swing.
	Swing int

	// Unknown is the number with no classification.
	Unknown int
}

// Sum returns the total across all sub-counts.
func (c Counts) Sum() int {
	return c.Support + c.Oppose + c.Swing + c.Unknown
}

// ExceedsTotal reports whether the sub-counts sum past the given total.
func (c Counts) ExceedsTotal(total int) bool {
	return c.Sum() > total
}

// SupportPercent returns the support share of total as a percentage
// in [0, 100].  A zero or negative total clamps to 0 (never divides
// by zero).
func SupportPercent(support, total int) float32 {
	if total <= 0 || support <= 0 {
		return 0
	}
	pct := 100 * float32(support) / float32(total)
	return math32.Clamp(pct, 0, 100)
}

// Region is the coarsest entity: one bar in the regions view.
type Region struct {

	// ID uniquely identifies the region across all views.
	ID string

	// Code is the region code shared with its sub-regions.
	Code string

	// Name is the human-readable region name.
	Name string

	// Pos is the pre-computed layout position (the core does no geocoding).
	Pos math32.Vector3

	// Class is the current classification label.
	Class Classification

	// Voters is the authoritative voter / member count.
	Voters int

	// Counts are the classification sub-counts.
	Counts Counts
}

// SupportPercent returns the derived support percentage for the region.
func (r *Region) SupportPercent() float32 {
	return SupportPercent(r.Counts.Support, r.Voters)
}

// SubRegion has the same shape as Region at a finer granularity.
// It belongs conceptually to exactly one Region via the shared
// RegionCode; the core never dereferences this relation.
type SubRegion struct {
	ID         string
	RegionCode string
	Name       string
	Pos        math32.Vector3
	Class      Classification
	Voters     int
	Counts     Counts
}

// SupportPercent returns the derived support percentage for the sub-region.
func (s *SubRegion) SupportPercent() float32 {
	return SupportPercent(s.Counts.Support, s.Voters)
}

// Member is one member of a household.
type Member struct {
	ID     string
	Name   string
	Age    int
	Gender string
	Class  Classification
}

// Household is the finest entity.  Members are optional; the aggregate
// Counts are computed independently upstream and may lag the member
// list until re-fetched.
type Household struct {
	ID      string
	Name    string
	Pos     math32.Vector3
	Class   Classification
	Members []Member
	Counts  Counts
}

// MemberCount returns the effective member count used for sizing:
// the aggregate counts sum if present, else the member list length.
func (h *Household) MemberCount() int {
	if n := h.Counts.Sum(); n > 0 {
		return n
	}
	return len(h.Members)
}

// SupportPercent returns the derived support percentage for the household.
func (h *Household) SupportPercent() float32 {
	return SupportPercent(h.Counts.Support, h.MemberCount())
}

// GroupSubRegions groups sub-regions by their region code.
// This is the only relation operation the core exposes; it is requested
// by external collaborators and never used during rendering.
func GroupSubRegions(subs []SubRegion) map[string][]SubRegion {
	gm := make(map[string][]SubRegion)
	for _, s := range subs {
		gm[s.RegionCode] = append(gm[s.RegionCode], s)
	}
	return gm
}
