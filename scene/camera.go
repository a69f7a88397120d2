// Copyright (c) 2025, Geovista Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

// Pose is the camera's position and orientation.
type Pose struct {

	// Pos is the position of the camera.
	Pos math32.Vector3

	// Quat is the rotation relative to pointing at negative Z with up
	// along positive Y.
	Quat math32.Quat

	// Matrix contains the full local transform.
	Matrix math32.Matrix4
}

// Defaults sets identity rotation if not yet initialized.
func (ps *Pose) Defaults() {
	if ps.Quat == (math32.Quat{}) {
		ps.Quat.SetIdentity()
	}
}

// UpdateMatrix updates the transform matrix from position and rotation.
func (ps *Pose) UpdateMatrix() {
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, math32.Vec3(1, 1, 1))
}

// LookAt points the pose at the given target location using the given
// up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	ps.Quat.SetFromRotationMatrix(math32.NewLookAt(ps.Pos, target, upDir))
}

// Camera defines the properties of the scene camera: a perspective view
// onto the entity field, with user-driven orbit / pan / zoom.
// Orbit carries inertial damping: drag impulses accumulate into an
// angular velocity that decays over subsequent frames.
type Camera struct {

	// Pose is the overall orientation and position of the camera.
	Pose Pose

	// Target is where the camera is pointing; moves with panning and
	// is reset by LookAt.
	Target math32.Vector3

	// UpDir is which way is up; reset by LookAt.
	UpDir math32.Vector3

	// FOV is the field of view in degrees.
	FOV float32

	// Aspect is the width / height ratio.
	Aspect float32

	// Near and Far are the clip plane z coordinates.
	Near float32
	Far  float32

	// ViewMatrix is the inverse of the Pose matrix.
	ViewMatrix math32.Matrix4

	// ProjectionMatrix defines the perspective transform.
	ProjectionMatrix math32.Matrix4

	// InvProjectionMatrix is its inverse, used for ray picking.
	InvProjectionMatrix math32.Matrix4

	// Frustum is the viewable volume, updated with the matrices.
	Frustum *math32.Frustum

	// OrbitDamping is the per-second decay factor for orbit inertia,
	// in [0, 1); 0 disables inertia entirely.
	OrbitDamping float32

	orbitVel math32.Vector2
}

// Defaults sets standard camera parameters and pose.
func (cm *Camera) Defaults() {
	cm.FOV = 40
	cm.Aspect = 1.5
	cm.Near = 0.1
	cm.Far = 1000
	cm.OrbitDamping = 0.85
	cm.DefaultPose()
}

// DefaultPose resets the camera to the standard overview position,
// looking at the origin from above and behind.
func (cm *Camera) DefaultPose() {
	cm.Pose.Defaults()
	cm.Pose.Pos.Set(0, 30, 45)
	cm.orbitVel.Set(0, 0)
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// UpdateMatrix updates the view, projection, and frustum.
func (cm *Camera) UpdateMatrix() {
	cm.Pose.UpdateMatrix()
	cm.ViewMatrix.SetInverse(&cm.Pose.Matrix)
	cm.ProjectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	cm.InvProjectionMatrix.SetInverse(&cm.ProjectionMatrix)
	var proj math32.Matrix4
	proj.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
	cm.Frustum = math32.NewFrustumFromMatrix(&proj)
}

// LookAt points the camera at the given target location with the given
// up direction, and saves both for future movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.Pose.LookAt(target, upDir)
	cm.UpdateMatrix()
}

// LookAtTarget points the camera at the current target.
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector from the target to the camera position.
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// DistanceTo returns the distance from the camera to the given point.
func (cm *Camera) DistanceTo(pt math32.Vector3) float32 {
	return cm.Pose.Pos.Sub(pt).Length()
}

// Orbit rotates the camera around the target by the given degrees
// (delX = left / right, delY = up / down), keeping the distance to the
// target and rotating the up vector along.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir == (math32.Vector3{}) {
		ctdir.Set(0, 0, 1)
	}
	dir := ctdir.Normal()

	up := cm.UpDir
	right := cm.UpDir.Cross(dir).Normal()

	// delX rotates around the up vector, delY around the right vector
	dxq := math32.NewQuatAxisAngle(up, math32.DegToRad(delX))
	dx := ctdir.MulQuat(dxq).Sub(ctdir)
	dyq := math32.NewQuatAxisAngle(right, math32.DegToRad(delY))
	dy := ctdir.MulQuat(dyq).Sub(ctdir)

	cm.Pose.Pos = cm.Pose.Pos.Add(dx).Add(dy)
	cm.UpDir = cm.UpDir.MulQuat(dyq) // only dy affects up

	cm.LookAtTarget()
}

// OrbitImpulse adds to the orbit inertia, in degrees per second.
// The velocity decays by OrbitDamping each second via Advance.
func (cm *Camera) OrbitImpulse(velX, velY float32) {
	cm.orbitVel.X += velX
	cm.orbitVel.Y += velY
}

// Advance applies orbit inertia for the elapsed time in seconds.
// Returns true if the camera moved.
func (cm *Camera) Advance(dt float32) bool {
	if cm.orbitVel == (math32.Vector2{}) {
		return false
	}
	cm.Orbit(cm.orbitVel.X*dt, cm.orbitVel.Y*dt)
	decay := math32.Pow(1-cm.OrbitDamping, dt)
	cm.orbitVel = cm.orbitVel.MulScalar(decay)
	if cm.orbitVel.Length() < 0.01 {
		cm.orbitVel.Set(0, 0)
	}
	return true
}

// Pan moves the camera and target along the plane of the current view.
func (cm *Camera) Pan(delX, delY float32) {
	dx := math32.Vec3(-delX, 0, 0).MulQuat(cm.Pose.Quat)
	dy := math32.Vec3(0, -delY, 0).MulQuat(cm.Pose.Quat)
	td := dx.Add(dy)
	cm.Pose.Pos.SetAdd(td)
	cm.Target.SetAdd(td)
	cm.UpdateMatrix()
}

// Zoom moves the camera along the view axis by the given fraction of
// the current distance to the target, positive = further away.
// When zooming in close, the target is dragged along so the camera
// never crosses it.
func (cm *Camera) Zoom(zoomPct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis == (math32.Vector3{}) {
		ctaxis.Set(0, 0, 1)
	}
	dist := ctaxis.Length()
	del := ctaxis.MulScalar(zoomPct)
	cm.Pose.Pos.SetAdd(del)
	if zoomPct < 0 && dist < 1 {
		cm.Target.SetAdd(del)
	}
	cm.UpdateMatrix()
}
