// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quality

import "log/slog"

// Controller owns the active quality tier.  The initial tier comes from
// the capability probe and is the ceiling: the controller only ever
// steps down automatically, one tier at a time.  Upgrading is an
// explicit operator action, since the hardware conditions that caused a
// downgrade rarely self-resolve mid-session.
//
// The controller is the single writer of the active settings; readers
// get the bundle through OnChange or [Controller.Settings] and must
// re-read it every frame rather than caching values across frames.
type Controller struct {

	// OnChange is called with the new complete settings bundle
	// whenever the tier changes.
	OnChange func(Settings)

	ceiling Tier
	tier    Tier
	active  Settings
}

// NewController probes the device and returns a controller whose
// active tier is the probe result.
func NewController(dev Device) *Controller {
	t := Probe(dev)
	return &Controller{
		ceiling: t,
		tier:    t,
		active:  SettingsFor(t),
	}
}

// Tier returns the active tier.
func (c *Controller) Tier() Tier {
	return c.tier
}

// Ceiling returns the probed tier, the highest the controller will
// ever select.
func (c *Controller) Ceiling() Tier {
	return c.ceiling
}

// Settings returns the active settings bundle.
func (c *Controller) Settings() Settings {
	return c.active
}

// Degrade steps exactly one tier down.  At UltraLow it is a no-op.
// Returns true if the tier changed.
func (c *Controller) Degrade() bool {
	if c.tier <= UltraLow {
		return false
	}
	c.setTier(c.tier - 1)
	slog.Info("quality: degraded tier", "tier", c.tier.String())
	return true
}

// Upgrade steps one tier up, never above the probed ceiling.
// It exists only for explicit operator action; nothing in the core
// calls it automatically.  Returns true if the tier changed.
func (c *Controller) Upgrade() bool {
	if c.tier >= c.ceiling {
		return false
	}
	c.setTier(c.tier + 1)
	return true
}

func (c *Controller) setTier(t Tier) {
	c.tier = t
	c.active = SettingsFor(t)
	if c.OnChange != nil {
		c.OnChange(c.active)
	}
}
