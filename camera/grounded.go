package camera

import (
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// GroundedState walks the camera over a sphere around the orbit center. Its
// parameters are an offset quaternion whose local +Z is the radial axis from
// the center to the camera, a look-up angle measured from straight down
// (toward the center) to forward, the radius, and a pending translation
// vector accumulating linear moves not yet folded into rotation and
// distance. Viewing direction is independent of the offset: the camera can
// stand in place and look around.
type GroundedState struct {
	center    mat32.Vec3
	offsetRot mat32.Quat
	lookUp    float32
	distance  float32

	// translation pools world-space moves (dolly steps, damped chunks)
	// until applyTranslation folds them into offsetRot and distance.
	translation mat32.Vec3
}

// NewGroundedState returns a grounded state standing at (0, 0, 1) around
// the origin, looking along the horizon.
func NewGroundedState() *GroundedState {
	return &GroundedState{
		offsetRot: mat32.NewQuat(0, 0, 0, 1),
		lookUp:    mat32.Pi / 2,
		distance:  1,
	}
}

func (s *GroundedState) Mode() Mode { return ModeGrounded }

// radial returns the unit axis from the orbit center to the camera, the
// rotated local +Z.
func (s *GroundedState) radial() mat32.Vec3 {
	return worldBack.MulQuat(s.offsetRot)
}

func (s *GroundedState) OrbitCenter() mat32.Vec3 { return s.center }

// Offset includes any pending translation, so the derived position is
// always the true one even before the pool is folded.
func (s *GroundedState) Offset() mat32.Vec3 {
	return s.radial().MulScalar(s.distance).Add(s.translation)
}

func (s *GroundedState) Position() mat32.Vec3 { return s.center.Add(s.Offset()) }

// Orientation pitches the offset frame about its local X by the look-up
// angle: lookUp 0 faces the center, pi/2 faces the horizon, pi faces away.
func (s *GroundedState) Orientation() mat32.Quat {
	q := s.offsetRot
	q.SetMul(mat32.NewQuatAxisAngle(worldRight, s.lookUp))
	q.Normalize()
	return q
}

func (s *GroundedState) Forward() mat32.Vec3 { return localForward(s.Orientation()) }
func (s *GroundedState) Up() mat32.Vec3      { return localUp(s.Orientation()) }
func (s *GroundedState) Right() mat32.Vec3   { return localRight(s.Orientation()) }

func (s *GroundedState) Distance() float32 { return s.distance }

// applyTranslation folds a world-space move into the offset rotation and
// distance: the radial axis swings toward the moved position and the radius
// becomes its length. The pending pool is deliberately untouched; callers
// that drain the pool subtract from it themselves.
func (s *GroundedState) applyTranslation(delta mat32.Vec3) {
	off := s.radial().MulScalar(s.distance).Add(delta)
	l := off.Length()
	if l == 0 {
		s.distance = MinDistance
		return
	}
	swing := mat32.Quat{}
	swing.SetFromUnitVectors(s.radial(), off.DivScalar(l))
	s.offsetRot = swing.Mul(s.offsetRot)
	s.offsetRot.Normalize()
	s.distance = l
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

// foldTranslation drains the whole pending pool at once.
func (s *GroundedState) foldTranslation() {
	if mathutil.ApproxZeroVec3(s.translation) {
		s.translation = mat32.Vec3{}
		return
	}
	t := s.translation
	s.translation = mat32.Vec3{}
	s.applyTranslation(t)
}

// lookAlong turns the camera in place toward a world direction: yaw around
// the radial axis from the tangential projections, then the look-up angle
// from the radial/direction angle. No-ops on degenerate directions and when
// forward is already aligned.
func (s *GroundedState) lookAlong(dir mat32.Vec3) {
	if dir.Length() < mathutil.Epsilon {
		return
	}
	d := dir.Normal()
	if mathutil.ApproxParallel(d, s.Forward()) {
		return
	}
	u := s.radial()
	lookUp := clampPolar(mat32.Pi - mathutil.AngleBetween(u, d))

	// Tangential projections of current forward and desired direction.
	pf := s.Forward().Sub(u.MulScalar(s.Forward().Dot(u)))
	pd := d.Sub(u.MulScalar(d.Dot(u)))
	if pf.Length() >= mathutil.Epsilon && pd.Length() >= mathutil.Epsilon {
		yaw := mat32.Atan2(pf.Cross(pd).Dot(u), pf.Dot(pd))
		s.offsetRot.SetMul(mat32.NewQuatAxisAngle(worldBack, yaw))
		s.offsetRot.Normalize()
	}
	s.lookUp = lookUp
}

func (s *GroundedState) SetFromObject(position mat32.Vec3, orientation mat32.Quat, up mat32.Vec3) {
	s.translation = mat32.Vec3{}
	f := localForward(orientation)
	center := position.Add(f.MulScalar(s.distance))
	s.Load(SaveState{
		OrbitCenter: center,
		Offset:      position.Sub(center),
		Forward:     f,
		Up:          up,
	})
}

// SetPosition moves the camera over the sphere, then restores the previous
// viewing direction where it is still representable.
func (s *GroundedState) SetPosition(to mat32.Vec3) {
	s.foldTranslation()
	forward := s.Forward()
	s.applyTranslation(to.Sub(s.Position()))
	s.lookAlong(forward)
}

// SetOrbitCenter moves the pivot, keeping the camera position fixed.
// Orientation is re-derived only when the implied radial axis actually
// changed; the previous forward direction is then restored when the
// variant can still represent it.
func (s *GroundedState) SetOrbitCenter(to mat32.Vec3) {
	s.foldTranslation()
	pos := s.Position()
	forward := s.Forward()
	oldRadial := s.radial()
	s.center = to

	off := pos.Sub(to)
	l := off.Length()
	if l == 0 {
		s.distance = MinDistance
		return
	}
	if l < MinDistance {
		l = MinDistance
	}
	u := off.DivScalar(off.Length())
	if mathutil.ApproxParallel(u, oldRadial) {
		s.distance = l
		return
	}
	swing := mat32.Quat{}
	swing.SetFromUnitVectors(oldRadial, u)
	s.offsetRot = swing.Mul(s.offsetRot)
	s.offsetRot.Normalize()
	s.distance = l
	s.lookAlong(forward)
}

// LookAt turns in place without moving the orbit center.
func (s *GroundedState) LookAt(target mat32.Vec3) {
	s.foldTranslation()
	s.lookAlong(target.Sub(s.Position()))
}

// Dolly walks along the viewing direction: the step goes into the pending
// translation pool instead of the radius, then the pooled position is
// pulled back inside the distance limits.
func (s *GroundedState) Dolly(scale, minStep, minDistance, maxDistance float32) {
	delta := s.distance * (scale - 1)
	if delta != 0 {
		step := mat32.Abs(delta)
		if step < minStep {
			step = minStep
		}
		s.translation.SetAdd(s.Forward().MulScalar(-mat32.Sign(delta) * step))
	}

	off := s.Offset()
	l := off.Length()
	cl := clampedDistance(l, minDistance, maxDistance)
	if l < MinDistance {
		s.translation.SetAdd(s.radial().MulScalar(cl).Sub(off))
		return
	}
	if cl != l {
		s.translation.SetAdd(off.MulScalar(cl/l - 1))
	}
}

// RotateLeft turns the camera about its radial axis, in place.
func (s *GroundedState) RotateLeft(theta float32) {
	s.offsetRot.SetMul(mat32.NewQuatAxisAngle(worldBack, theta))
	s.offsetRot.Normalize()
}

// RotateUp tilts the look-up angle; the poles stay locked.
func (s *GroundedState) RotateUp(phi float32) {
	s.lookUp = clampPolar(s.lookUp + phi)
}

// PanLeft walks sideways around the pivot: a small rotation of the offset
// frame about its local Y axis, with arc length matching the translation
// the other variants would make.
func (s *GroundedState) PanLeft(delta, fov float32) {
	angle := 2 * mat32.Tan(mat32.DegToRad(fov)*0.5) * delta
	s.offsetRot.SetMul(mat32.NewQuatAxisAngle(worldUp, -angle))
	s.offsetRot.Normalize()
}

// PanUp walks forward around the pivot.
func (s *GroundedState) PanUp(delta, fov float32) {
	angle := 2 * mat32.Tan(mat32.DegToRad(fov)*0.5) * delta
	s.offsetRot.SetMul(mat32.NewQuatAxisAngle(worldRight, -angle))
	s.offsetRot.Normalize()
}

func (s *GroundedState) ClampDistance(min, max float32) {
	s.foldTranslation()
	s.distance = clampedDistance(s.distance, min, max)
}

func (s *GroundedState) Normalize() {
	s.foldTranslation()
	s.offsetRot.Normalize()
	s.lookUp = clampPolar(s.lookUp)
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

// Save reports the radial axis as the snapshot's up: for a grounded camera
// "up" is the surface normal, and Load recovers the look-up angle from it
// exactly.
func (s *GroundedState) Save() SaveState {
	return SaveState{
		OrbitCenter: s.center,
		Offset:      s.Offset(),
		Forward:     s.Forward(),
		Up:          s.radial(),
	}
}

// Load reconstructs the parameters from a snapshot: the offset direction
// becomes the radial axis (falling back to -forward on a zero offset), the
// heading comes from the tangential projection of forward, and the look-up
// angle from the angle between up and forward.
func (s *GroundedState) Load(st SaveState) {
	s.center = st.OrbitCenter
	s.translation = mat32.Vec3{}

	up := st.Up
	offset := st.Offset
	if mathutil.ApproxZeroVec3(offset) {
		// The fallback radial points against forward, so the snapshot's up
		// no longer relates to it; derive the look-up angle from the
		// fallback axis instead, which keeps the view direction.
		offset = st.Forward.MulScalar(-mathutil.Epsilon)
		up = st.Forward.Negate()
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
	u := offset.DivScalar(l)

	// Heading: first usable tangential projection among forward, up and
	// the world axes.
	var heading mat32.Vec3
	for _, c := range []mat32.Vec3{st.Forward, st.Up, worldUp, worldBack} {
		p := c.Sub(u.MulScalar(c.Dot(u)))
		if p.Length() >= mathutil.Epsilon {
			heading = p.Normal()
			break
		}
	}
	if heading == (mat32.Vec3{}) {
		heading = worldUp
	}
	s.offsetRot = quatFromBasis(heading.Cross(u), heading, u)
	s.lookUp = clampPolar(mat32.Pi - mathutil.AngleBetween(up, st.Forward))
}

func (s *GroundedState) components() []component {
	return []component{
		{name: "center", kind: kindVector, vec: &s.center},
		{name: "offsetRot", kind: kindQuat, quat: &s.offsetRot},
		{name: "lookUp", kind: kindScalar, scalar: &s.lookUp},
		{name: "distance", kind: kindScalar, scalar: &s.distance},
		{name: "translation", kind: kindPending, vec: &s.translation},
	}
}

func (s *GroundedState) refresh() {
	s.offsetRot.Normalize()
	s.lookUp = clampPolar(s.lookUp)
	if s.distance < MinDistance {
		s.distance = MinDistance
	}
}

func (s *GroundedState) clone() State {
	c := *s
	return &c
}
