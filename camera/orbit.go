package camera

import (
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// OrbitState parameterizes the camera with spherical coordinates around an
// explicit up axis: azimuth theta, polar angle phi measured from up, and
// distance. Phi is locked away from the poles; theta is unconstrained during
// interaction so the interpolator can travel through multiple full turns,
// and is only wrapped by Normalize.
type OrbitState struct {
	center   mat32.Vec3
	theta    float32
	phi      float32
	distance float32
	up       mat32.Vec3

	// upRot maps world space into the up frame (up -> world Y);
	// upRotInv maps back. Cached, re-derived whenever up changes.
	upRot    mat32.Quat
	upRotInv mat32.Quat
}

// NewOrbitState returns an orbit state looking at the origin from (0, 0, 1)
// with world Y up.
func NewOrbitState() *OrbitState {
	s := &OrbitState{
		theta:    0,
		phi:      mat32.Pi / 2,
		distance: 1,
	}
	s.setUp(worldUp)
	return s
}

func (s *OrbitState) Mode() Mode { return ModeOrbit }

// setUp installs a new up axis and rebuilds the cached up-frame rotation.
// Degenerate inputs fall back to world Y.
func (s *OrbitState) setUp(up mat32.Vec3) {
	if up.Length() < mathutil.Epsilon {
		up = worldUp
	}
	s.up = up.Normal()
	s.upRot.SetFromUnitVectors(s.up, worldUp)
	s.upRotInv = s.upRot.Inverse()
}

// setFromOffset re-derives theta, phi and distance from a world-space
// offset, preserving accumulated full turns of theta. A zero offset keeps
// the current angles and floors the distance.
func (s *OrbitState) setFromOffset(offset mat32.Vec3) {
	r := offset.Length()
	if r == 0 {
		s.distance = MinDistance
		return
	}
	s.distance = r
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
	local := offset.MulQuat(s.upRot)
	s.phi = clampPolar(mat32.Acos(mat32.Clamp(local.Y/r, -1, 1)))
	s.theta = nearestTurn(mat32.Atan2(local.X, local.Z), s.theta)
}

func (s *OrbitState) OrbitCenter() mat32.Vec3 { return s.center }

// Offset returns the spherical offset rotated out of the up frame.
func (s *OrbitState) Offset() mat32.Vec3 {
	sinPhi := mat32.Sin(s.phi)
	local := mat32.V3(
		s.distance*sinPhi*mat32.Sin(s.theta),
		s.distance*mat32.Cos(s.phi),
		s.distance*sinPhi*mat32.Cos(s.theta),
	)
	return local.MulQuat(s.upRotInv)
}

func (s *OrbitState) Position() mat32.Vec3 { return s.center.Add(s.Offset()) }

func (s *OrbitState) Orientation() mat32.Quat {
	return lookOrientation(s.Offset().Negate(), s.up)
}

func (s *OrbitState) Forward() mat32.Vec3 { return localForward(s.Orientation()) }
func (s *OrbitState) Up() mat32.Vec3      { return localUp(s.Orientation()) }
func (s *OrbitState) Right() mat32.Vec3   { return localRight(s.Orientation()) }

func (s *OrbitState) Distance() float32 { return s.distance }

func (s *OrbitState) SetFromObject(position mat32.Vec3, orientation mat32.Quat, up mat32.Vec3) {
	s.setUp(up)
	s.center = position.Add(localForward(orientation).MulScalar(s.distance))
	s.setFromOffset(position.Sub(s.center))
}

func (s *OrbitState) SetPosition(to mat32.Vec3) {
	s.setFromOffset(to.Sub(s.center))
}

func (s *OrbitState) SetOrbitCenter(to mat32.Vec3) {
	pos := s.Position()
	s.center = to
	s.setFromOffset(pos.Sub(to))
}

// LookAt moves the pivot: forward always points at the orbit center.
func (s *OrbitState) LookAt(target mat32.Vec3) {
	s.SetOrbitCenter(target)
}

func (s *OrbitState) Dolly(scale, minStep, minDistance, maxDistance float32) {
	s.distance = steppedDistance(s.distance, scale, minStep, minDistance, maxDistance)
}

func (s *OrbitState) RotateLeft(theta float32) {
	s.theta += theta
}

func (s *OrbitState) RotateUp(phi float32) {
	s.phi = clampPolar(s.phi - phi)
}

func (s *OrbitState) PanLeft(delta, fov float32) {
	step := panScale(delta, fov, s.distance)
	s.center.SetAdd(s.Right().MulScalar(-step))
}

// PanUp moves the pivot along the up-frame tangent, keeping its height
// relative to the up axis.
func (s *OrbitState) PanUp(delta, fov float32) {
	step := panScale(delta, fov, s.distance)
	tangent := s.up.Cross(s.Right())
	s.center.SetAdd(tangent.MulScalar(step))
}

func (s *OrbitState) ClampDistance(min, max float32) {
	s.distance = clampedDistance(s.distance, min, max)
}

func (s *OrbitState) Normalize() {
	s.theta = wrapAngle(s.theta)
	s.phi = clampPolar(s.phi)
	s.setUp(s.up)
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

func (s *OrbitState) Save() SaveState {
	return SaveState{
		OrbitCenter: s.center,
		Offset:      s.Offset(),
		Forward:     s.Forward(),
		Up:          s.up,
	}
}

func (s *OrbitState) Load(st SaveState) {
	s.center = st.OrbitCenter
	s.setUp(st.Up)
	offset := st.Offset
	if mathutil.ApproxZeroVec3(offset) {
		offset = st.Forward.MulScalar(-mathutil.Epsilon)
	}
	s.setFromOffset(offset)
}

func (s *OrbitState) components() []component {
	return []component{
		{name: "center", kind: kindVector, vec: &s.center},
		{name: "theta", kind: kindScalar, scalar: &s.theta},
		{name: "phi", kind: kindScalar, scalar: &s.phi},
		{name: "distance", kind: kindScalar, scalar: &s.distance},
		{name: "up", kind: kindVector, vec: &s.up},
	}
}

// refresh rebuilds the up frame after the interpolator wrote the up vector
// directly, and re-applies the numeric floors.
func (s *OrbitState) refresh() {
	s.setUp(s.up)
	s.phi = clampPolar(s.phi)
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

func (s *OrbitState) applyTranslation(delta mat32.Vec3) {}

func (s *OrbitState) clone() State {
	c := *s
	return &c
}
