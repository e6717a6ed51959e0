package camera

import (
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// IsotropicState parameterizes the camera with one free quaternion plus a
// distance. There is no pole lock: the axes are the quaternion applied to
// the fixed world axes, so continued vertical rotation can roll the camera
// upside down, trackball style.
type IsotropicState struct {
	center   mat32.Vec3
	rot      mat32.Quat
	distance float32
}

// NewIsotropicState returns an isotropic state looking at the origin from
// (0, 0, 1).
func NewIsotropicState() *IsotropicState {
	return &IsotropicState{
		rot:      mat32.NewQuat(0, 0, 0, 1),
		distance: 1,
	}
}

func (s *IsotropicState) Mode() Mode { return ModeIsotropic }

// setFromOffset re-derives the quaternion and distance from a world-space
// offset, keeping the current camera up as the first basis candidate so
// roll is preserved where possible. A zero offset keeps the rotation and
// floors the distance.
func (s *IsotropicState) setFromOffset(offset mat32.Vec3) {
	r := offset.Length()
	if r == 0 {
		s.distance = MinDistance
		return
	}
	s.distance = r
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
	s.rot = lookOrientation(offset.Negate(), s.Up())
}

func (s *IsotropicState) OrbitCenter() mat32.Vec3 { return s.center }

// Offset is the rotated world Z axis scaled by distance: the camera sits
// behind the pivot along its own back axis.
func (s *IsotropicState) Offset() mat32.Vec3 {
	return worldBack.MulQuat(s.rot).MulScalar(s.distance)
}

func (s *IsotropicState) Position() mat32.Vec3 { return s.center.Add(s.Offset()) }

func (s *IsotropicState) Orientation() mat32.Quat { return s.rot }

func (s *IsotropicState) Forward() mat32.Vec3 { return localForward(s.rot) }
func (s *IsotropicState) Up() mat32.Vec3      { return localUp(s.rot) }
func (s *IsotropicState) Right() mat32.Vec3   { return localRight(s.rot) }

func (s *IsotropicState) Distance() float32 { return s.distance }

// SetFromObject adopts the object orientation wholesale; the up argument is
// implied by the quaternion and ignored here.
func (s *IsotropicState) SetFromObject(position mat32.Vec3, orientation mat32.Quat, up mat32.Vec3) {
	s.rot = orientation
	s.rot.Normalize()
	s.center = position.Add(s.Forward().MulScalar(s.distance))
}

func (s *IsotropicState) SetPosition(to mat32.Vec3) {
	s.setFromOffset(to.Sub(s.center))
}

func (s *IsotropicState) SetOrbitCenter(to mat32.Vec3) {
	pos := s.Position()
	s.center = to
	s.setFromOffset(pos.Sub(to))
}

// LookAt moves the pivot: forward always points at the orbit center.
func (s *IsotropicState) LookAt(target mat32.Vec3) {
	s.SetOrbitCenter(target)
}

func (s *IsotropicState) Dolly(scale, minStep, minDistance, maxDistance float32) {
	s.distance = steppedDistance(s.distance, scale, minStep, minDistance, maxDistance)
}

// RotateLeft swings the offset about world Y, matching the orbit variant's
// azimuth direction.
func (s *IsotropicState) RotateLeft(theta float32) {
	r := mat32.NewQuatAxisAngle(worldUp, theta)
	s.rot = r.Mul(s.rot)
	s.rot.Normalize()
}

// RotateUp pitches about the camera's local X axis; nothing stops the
// rotation at the poles.
func (s *IsotropicState) RotateUp(phi float32) {
	s.rot.SetMul(mat32.NewQuatAxisAngle(worldRight, -phi))
	s.rot.Normalize()
}

func (s *IsotropicState) PanLeft(delta, fov float32) {
	step := panScale(delta, fov, s.distance)
	s.center.SetAdd(s.Right().MulScalar(-step))
}

// PanUp moves the pivot along the camera's own up axis, which may be
// tilted or inverted.
func (s *IsotropicState) PanUp(delta, fov float32) {
	step := panScale(delta, fov, s.distance)
	s.center.SetAdd(s.Up().MulScalar(step))
}

func (s *IsotropicState) ClampDistance(min, max float32) {
	s.distance = clampedDistance(s.distance, min, max)
}

func (s *IsotropicState) Normalize() {
	s.rot.Normalize()
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

func (s *IsotropicState) Save() SaveState {
	return SaveState{
		OrbitCenter: s.center,
		Offset:      s.Offset(),
		Forward:     s.Forward(),
		Up:          s.Up(),
	}
}

func (s *IsotropicState) Load(st SaveState) {
	s.center = st.OrbitCenter
	offset := st.Offset
	if mathutil.ApproxZeroVec3(offset) {
		offset = st.Forward.MulScalar(-mathutil.Epsilon)
	}
	l := offset.Length()
	if l == 0 {
		s.distance = MinDistance
		return
	}
	s.distance = l
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
	s.rot = lookOrientation(offset.Negate(), offset.DivScalar(l), st.Up)
}

func (s *IsotropicState) components() []component {
	return []component{
		{name: "center", kind: kindVector, vec: &s.center},
		{name: "rotation", kind: kindQuat, quat: &s.rot},
		{name: "distance", kind: kindScalar, scalar: &s.distance},
	}
}

func (s *IsotropicState) refresh() {
	s.rot.Normalize()
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

func (s *IsotropicState) applyTranslation(delta mat32.Vec3) {}

func (s *IsotropicState) clone() State {
	c := *s
	return &c
}
