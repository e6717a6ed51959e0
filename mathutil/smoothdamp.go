package mathutil

import (
	"goki.dev/mat32/v2"
)

// SmoothDamp advances current toward target with a critically damped spring,
// updating *velocity in place so repeated calls carry momentum across frames.
// smoothTime is the approximate time to reach the target; maxSpeed caps the
// per-call change at maxSpeed*smoothTime (pass mat32.Infinity for no cap).
// The step uses the standard closed-form exponential coefficient for the
// elapsed deltaTime, and snaps to the target (zeroing the velocity) when the
// damped step would overshoot it. The approach is monotonic and never
// oscillates.
func SmoothDamp(current, target float32, velocity *float32, smoothTime, maxSpeed, deltaTime float32) float32 {
	if smoothTime < Epsilon {
		smoothTime = Epsilon
	}
	omega := 2 / smoothTime

	// Pade approximant of exp(-omega*dt), stable for large steps.
	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTarget := target

	maxChange := maxSpeed * smoothTime
	change = mat32.Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * deltaTime
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// Output crossed the target within this frame: snap and kill the
	// velocity so the spring stays put on later calls.
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		*velocity = 0
	}
	return output
}

// SmoothDampVec3 is the vector generalization of SmoothDamp. Integration is
// componentwise, but the max-speed clamp applies to the magnitude of the
// change so the direction of travel is preserved while speed is capped.
func SmoothDampVec3(current, target mat32.Vec3, velocity *mat32.Vec3, smoothTime, maxSpeed, deltaTime float32) mat32.Vec3 {
	if smoothTime < Epsilon {
		smoothTime = Epsilon
	}
	omega := 2 / smoothTime

	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	originalTarget := target

	maxChange := maxSpeed * smoothTime
	if l := change.Length(); l > maxChange && l > 0 {
		change = change.MulScalar(maxChange / l)
	}
	target = current.Sub(change)

	temp := velocity.Add(change.MulScalar(omega)).MulScalar(deltaTime)
	*velocity = velocity.Sub(temp.MulScalar(omega)).MulScalar(exp)
	output := target.Add(change.Add(temp).MulScalar(exp))

	// Overshoot check: the step carried output past the original target.
	if output.Sub(originalTarget).Dot(originalTarget.Sub(current)) > 0 {
		output = originalTarget
		*velocity = mat32.Vec3{}
	}
	return output
}

// SmoothDampQuat advances current toward target by spherical-linear
// interpolation with fraction min(1, deltaTime/smoothTime), and slerps
// *velocity toward the target at rate 1/smoothTime. This is deliberately a
// different law from the scalar/vector spring: rotation uses plain
// time-fraction slerp, which is sufficient for orientation feel and avoids
// spring artifacts on the unit sphere.
func SmoothDampQuat(current, target mat32.Quat, velocity *mat32.Quat, smoothTime, deltaTime float32) mat32.Quat {
	if smoothTime < Epsilon {
		smoothTime = Epsilon
	}
	t := deltaTime / smoothTime
	if t > 1 {
		t = 1
	}

	velocity.Slerp(target, t)

	out := current
	out.Slerp(target, t)
	out.Normalize()
	return out
}
