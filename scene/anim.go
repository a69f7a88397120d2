// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// AnimEpsilon is the convergence distance for camera animations:
// once both position and target are within this distance of their
// destinations, the animation terminates.
const AnimEpsilon = 0.05

// FocusOffset is the default camera offset from a focused entity,
// placing the camera above and in front of it.
var FocusOffset = math32.Vec3(0, 6, 10)

// Anim is an in-flight camera transition toward a focus target.
// It is a one-shot transient value: the scene holds at most one
// (nil when idle), and a new focus request overwrites any in-flight
// animation outright.  There is no queue.
//
// Duration is a soft target used to derive the per-frame blend rate;
// the real terminal condition is convergence within [AnimEpsilon].
type Anim struct {

	// EndPos and EndTarget are the destination camera position and
	// look-at target.
	EndPos    math32.Vector3
	EndTarget math32.Vector3

	// Duration is the soft duration target in seconds.
	Duration float32

	// Elapsed is the accumulated animation time in seconds.
	Elapsed float32
}

// NewFocusAnim returns an animation that frames the given entity
// position using the standard focus offset.
func NewFocusAnim(pos math32.Vector3) *Anim {
	return &Anim{
		EndPos:    pos.Add(FocusOffset),
		EndTarget: pos,
		Duration:  0.8,
	}
}

// easeOutCubic is the easing curve for focus transitions: fast start,
// smooth landing.
func easeOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// Step advances the animation by dt seconds, blending the camera
// position and target toward the destinations.  Returns true when the
// animation has converged and should be discarded.
//
// A degenerate request (camera already at the destination) converges
// on the first step without dividing by zero or stalling.
func (an *Anim) Step(cam *Camera, dt float32) bool {
	an.Elapsed += dt
	dur := an.Duration
	if dur <= 0 {
		dur = 0.0001
	}
	t := math32.Clamp(an.Elapsed/dur, 0, 1)
	// blend factor for this frame: eased fraction of remaining distance
	alpha := easeOutCubic(t)
	if alpha >= 1 {
		alpha = 1
	}

	cam.Pose.Pos = lerpVec(cam.Pose.Pos, an.EndPos, alpha, dt)
	target := lerpVec(cam.Target, an.EndTarget, alpha, dt)
	cam.LookAt(target, cam.UpDir)

	posDone := cam.Pose.Pos.Sub(an.EndPos).Length() < AnimEpsilon
	tgtDone := cam.Target.Sub(an.EndTarget).Length() < AnimEpsilon
	if posDone && tgtDone {
		// snap exactly and finish
		cam.Pose.Pos = an.EndPos
		cam.LookAt(an.EndTarget, cam.UpDir)
		return true
	}
	return false
}

// lerpVec moves cur a frame-rate-independent fraction of the way to
// end: the eased overall progress sets the approach rate, scaled by dt
// so convergence speed does not depend on the tick rate.
func lerpVec(cur, end math32.Vector3, alpha, dt float32) math32.Vector3 {
	f := math32.Clamp(alpha*dt*10, 0, 1)
	return cur.Add(end.Sub(cur).MulScalar(f))
}
