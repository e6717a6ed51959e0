// Package camera maintains a camera viewpoint as one of three
// parameterizations (orbit, isotropic, grounded) and smoothly interpolates a
// displayed state toward an interaction target. Hosts mutate the target
// through transform operations, call Update once per frame, and read the
// displayed state back out through a Transform.
package camera

import (
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// MinDistance is the smallest distance any state will hold between the
// camera and its orbit center. Keeping it strictly positive keeps the
// offset and forward directions well-defined.
const MinDistance = mathutil.Epsilon

// World-space reference axes.
var (
	worldRight = mat32.V3(1, 0, 0)
	worldUp    = mat32.V3(0, 1, 0)
	worldBack  = mat32.V3(0, 0, 1)
)

// Mode identifies a camera state parameterization.
type Mode int

const (
	// ModeOrbit parameterizes the camera with spherical angles around an
	// explicit up axis; the poles are locked.
	ModeOrbit Mode = iota
	// ModeIsotropic parameterizes the camera with one free quaternion;
	// there is no pole lock and up may invert.
	ModeIsotropic
	// ModeGrounded walks the camera over a sphere around the orbit
	// center, with an independent look-up angle.
	ModeGrounded
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeIsotropic:
		return "isotropic"
	case ModeGrounded:
		return "grounded"
	}
	return "unknown"
}

// Transform is the host-side bridge: the world position, orientation and up
// vector of whatever scene node the camera drives.
type Transform struct {
	Position mat32.Vec3
	Rotation mat32.Quat
	Up       mat32.Vec3
}

// SaveState is the neutral snapshot used to translate between
// parameterizations on mode switch, and the record a host would persist.
// The translation is inherently lossy: grounded states cannot hold an up
// vector independent of the offset direction, and no state can hold a zero
// offset.
type SaveState struct {
	OrbitCenter mat32.Vec3
	Offset      mat32.Vec3
	Forward     mat32.Vec3
	Up          mat32.Vec3
}

// State is the contract shared by the three parameterizations. Derived
// quantities (position, orientation, axes) are recomputed from the variant's
// minimal parameter set on every read. Mutators clamp rather than fail:
// distance floors at MinDistance, polar-type angles stay inside
// (epsilon, pi-epsilon), and degenerate inputs fall back to documented
// substitutes. No operation panics or produces NaN.
type State interface {
	// Mode identifies the parameterization.
	Mode() Mode

	// OrbitCenter returns the pivot the camera offsets from.
	OrbitCenter() mat32.Vec3
	// Position returns the derived world-space camera position.
	Position() mat32.Vec3
	// Offset returns Position minus OrbitCenter.
	Offset() mat32.Vec3
	// Orientation returns the derived unit camera rotation.
	Orientation() mat32.Quat
	// Forward, Up and Right return the derived orthonormal camera axes.
	Forward() mat32.Vec3
	Up() mat32.Vec3
	Right() mat32.Vec3
	// Distance returns the camera-to-center distance, always >= MinDistance.
	Distance() float32

	// SetFromObject recomputes the parameters so the derived pose matches
	// the given object pose, keeping the prior distance where the variant
	// allows.
	SetFromObject(position mat32.Vec3, orientation mat32.Quat, up mat32.Vec3)
	// SetPosition moves the camera, holding the orbit center fixed.
	SetPosition(to mat32.Vec3)
	// SetOrbitCenter moves the pivot, holding the camera position fixed.
	SetOrbitCenter(to mat32.Vec3)
	// LookAt points the camera at target. Orbit and isotropic states
	// conflate forward with the offset direction, so for them this moves
	// the pivot; grounded states rotate in place.
	LookAt(target mat32.Vec3)
	// Dolly scales the camera-to-center distance, stepping at least
	// minStep, and clamps the result to [minDistance, maxDistance].
	Dolly(scale, minStep, minDistance, maxDistance float32)
	// RotateLeft and RotateUp rotate the viewpoint by the given angle in
	// radians; positive values move the camera left/up around the pivot.
	RotateLeft(theta float32)
	RotateUp(phi float32)
	// PanLeft and PanUp translate or turn the viewpoint sideways. delta
	// is a normalized screen-space distance and fov the vertical field of
	// view in degrees used to scale it to world units.
	PanLeft(delta, fov float32)
	PanUp(delta, fov float32)
	// ClampDistance constrains the distance to [min, max].
	ClampDistance(min, max float32)
	// Normalize canonicalizes the parameters: wraps angles into [0, 2pi),
	// renormalizes quaternions, folds any pending translation. Idempotent.
	Normalize()

	// Save captures the neutral snapshot; Load reconstructs the variant's
	// parameters from one, best effort (see SaveState).
	Save() SaveState
	Load(s SaveState)

	// components exposes the variant's damped parameter set to the
	// interpolation engine as pointers into this instance.
	components() []component
	// refresh re-derives cached values and renormalizes quaternions after
	// components were written directly.
	refresh()
	// applyTranslation folds a world-space linear move into the variant's
	// rotation and distance. Only grounded states carry pending
	// translation; for the others this is a no-op.
	applyTranslation(delta mat32.Vec3)
	// clone returns an independent copy.
	clone() State
}

// NewState returns a fresh state of the given mode with default parameters:
// orbit center at the origin, distance 1, camera on the world Z axis.
func NewState(mode Mode) State {
	switch mode {
	case ModeIsotropic:
		return NewIsotropicState()
	case ModeGrounded:
		return NewGroundedState()
	default:
		return NewOrbitState()
	}
}

// componentKind selects the damping law applied to a component.
type componentKind int

const (
	kindScalar componentKind = iota
	kindVector
	kindQuat
	// kindPending marks a translation pool that is drained into the
	// state's rotation and distance rather than converged toward.
	kindPending
)

// component is one damped parameter of a state, exposed as pointers into
// the owning instance so the interpolation engine can read and write it
// in place.
type component struct {
	name   string
	kind   componentKind
	scalar *float32
	vec    *mat32.Vec3
	quat   *mat32.Quat
}

// clampPolar locks a polar-type angle away from the poles, where the
// azimuth becomes undefined.
func clampPolar(a float32) float32 {
	return mat32.Clamp(a, mathutil.Epsilon, mat32.Pi-mathutil.Epsilon)
}

// wrapAngle wraps an angle into [0, 2pi).
func wrapAngle(a float32) float32 {
	a = mat32.Mod(a, 2*mat32.Pi)
	if a < 0 {
		a += 2 * mat32.Pi
	}
	return a
}

// nearestTurn shifts raw by whole turns so it lands as close as possible to
// prev. Re-derived azimuths keep the number of full turns already taken, so
// damped travel never unwinds them.
func nearestTurn(raw, prev float32) float32 {
	turns := mat32.Round((prev - raw) / (2 * mat32.Pi))
	return raw + turns*2*mat32.Pi
}

// quatFromBasis returns the rotation whose local X/Y/Z axes are the given
// orthonormal world-space vectors.
func quatFromBasis(x, y, z mat32.Vec3) mat32.Quat {
	var m mat32.Mat4
	m[0], m[1], m[2] = x.X, x.Y, x.Z
	m[4], m[5], m[6] = y.X, y.Y, y.Z
	m[8], m[9], m[10] = z.X, z.Y, z.Z
	m[15] = 1
	var q mat32.Quat
	q.SetFromRotationMatrix(&m)
	q.Normalize()
	return q
}

// lookOrientation returns a camera orientation looking along forward. The
// right axis is derived from the first up candidate not collinear with
// forward; world up and world Z are appended as final fallbacks so the
// result is always valid.
func lookOrientation(forward mat32.Vec3, candidates ...mat32.Vec3) mat32.Quat {
	if forward.Length() < mathutil.Epsilon {
		return mat32.NewQuat(0, 0, 0, 1)
	}
	f := forward.Normal()
	candidates = append(candidates, worldUp, worldBack)
	for _, c := range candidates {
		if c.Length() < mathutil.Epsilon || mathutil.ApproxCollinear(f, c) {
			continue
		}
		right := f.Cross(c.Normal()).Normal()
		up := right.Cross(f)
		return quatFromBasis(right, up, f.Negate())
	}
	return mat32.NewQuat(0, 0, 0, 1)
}

// localForward returns the camera forward axis for an orientation.
func localForward(q mat32.Quat) mat32.Vec3 {
	return worldBack.Negate().MulQuat(q)
}

// localUp returns the camera up axis for an orientation.
func localUp(q mat32.Quat) mat32.Vec3 {
	return worldUp.MulQuat(q)
}

// localRight returns the camera right axis for an orientation.
func localRight(q mat32.Quat) mat32.Vec3 {
	return worldRight.MulQuat(q)
}

// panScale converts a normalized screen-space pan delta to world units at
// the given distance, for a vertical field of view in degrees.
func panScale(delta, fov, distance float32) float32 {
	return 2 * mat32.Tan(mat32.DegToRad(fov)*0.5) * distance * delta
}

// steppedDistance applies the dolly law shared by the orbit and isotropic
// states: scale the distance, stepping at least minStep, then clamp.
func steppedDistance(distance, scale, minStep, minDistance, maxDistance float32) float32 {
	delta := distance * (scale - 1)
	if delta != 0 {
		step := mat32.Abs(delta)
		if step < minStep {
			step = minStep
		}
		distance += mat32.Sign(delta) * step
	}
	return clampedDistance(distance, minDistance, maxDistance)
}

// clampedDistance clamps to [min, max] and floors at MinDistance.
func clampedDistance(distance, min, max float32) float32 {
	d := mat32.Clamp(distance, min, max)
	if d < MinDistance {
		d = MinDistance
	}
	return d
}
