package camera

import (
	"testing"

	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

func TestOrbitSetFromObject(t *testing.T) {
	// Hand-off: an object at (0,0,10) facing the origin with world Y up,
	// adopted at distance 10.
	s := NewOrbitState()
	s.ClampDistance(10, 10)
	s.SetFromObject(mat32.V3(0, 0, 10), mat32.NewQuat(0, 0, 0, 1), mat32.V3(0, 1, 0))

	if !mathutil.ApproxZeroVec3(s.center, 1e-4) {
		t.Errorf("expected orbit center at origin, got %v", s.center)
	}
	if mat32.Abs(s.theta) > 1e-4 {
		t.Errorf("expected theta 0, got %f", s.theta)
	}
	if mat32.Abs(s.phi-mat32.Pi/2) > 1e-4 {
		t.Errorf("expected phi pi/2, got %f", s.phi)
	}
	if mat32.Abs(s.distance-10) > 1e-4 {
		t.Errorf("expected distance 10, got %f", s.distance)
	}
}

func TestOrbitRotateLeftQuarterTurn(t *testing.T) {
	s := NewOrbitState()
	s.SetPosition(mat32.V3(2, -8, 10))
	s.RotateLeft(mat32.Pi / 2)

	want := mat32.V3(10, -8, -2)
	if !mathutil.ApproxEqualVec3(s.Offset(), want, 1e-3) {
		t.Errorf("expected offset %v after quarter turn, got %v", want, s.Offset())
	}
}

func TestOrbitRotateRoundTrip(t *testing.T) {
	s := NewOrbitState()
	s.SetPosition(mat32.V3(3, 4, 5))
	before := s.Offset()

	s.RotateLeft(0.7)
	s.RotateUp(0.3)
	s.RotateUp(-0.3)
	s.RotateLeft(-0.7)

	if !mathutil.ApproxEqualVec3(s.Offset(), before, 1e-4) {
		t.Errorf("expected offset restored to %v, got %v", before, s.Offset())
	}
}

func TestOrbitPoleLock(t *testing.T) {
	s := NewOrbitState()
	s.RotateUp(10) // far past the top pole
	if s.phi < mathutil.Epsilon/2 || s.phi > mat32.Pi/2 {
		t.Errorf("expected phi clamped near the top pole, got %f", s.phi)
	}
	s.RotateUp(-20) // far past the bottom pole
	if s.phi > mat32.Pi-mathutil.Epsilon/2 {
		t.Errorf("expected phi clamped near the bottom pole, got %f", s.phi)
	}
	// Axes stay orthonormal at the clamp.
	if mat32.Abs(s.Forward().Dot(s.Up())) > 1e-3 {
		t.Errorf("expected forward and up orthogonal at the pole, got dot %f", s.Forward().Dot(s.Up()))
	}
}

func TestOrbitThetaTurnPreserved(t *testing.T) {
	s := NewOrbitState()
	s.RotateLeft(4 * mat32.Pi) // two full turns
	theta := s.theta

	// Re-deriving from the same position must not unwind the turns.
	s.SetPosition(s.Position())
	if mat32.Abs(s.theta-theta) > 1e-3 {
		t.Errorf("expected theta to stay near %f, got %f", theta, s.theta)
	}

	// Normalize wraps it back into [0, 2pi).
	s.Normalize()
	if s.theta < 0 || s.theta >= 2*mat32.Pi {
		t.Errorf("expected theta wrapped into [0, 2pi), got %f", s.theta)
	}
}

func TestOrbitZeroOffsetFloorsDistance(t *testing.T) {
	s := NewOrbitState()
	s.SetPosition(s.center) // camera onto the pivot
	if s.distance < mathutil.Epsilon {
		t.Errorf("expected distance floored at epsilon, got %g", s.distance)
	}
}

func TestOrbitDolly(t *testing.T) {
	s := NewOrbitState()
	s.SetPosition(mat32.V3(0, 0, 10))

	s.Dolly(1.5, 0.01, 0.1, 100)
	if mat32.Abs(s.distance-15) > 1e-3 {
		t.Errorf("expected distance 15 after dolly 1.5, got %f", s.distance)
	}

	// Tiny scale still moves by at least the minimum step.
	before := s.distance
	s.Dolly(1.0000001, 0.5, 0.1, 100)
	if mat32.Abs(s.distance-before-0.5) > 1e-3 {
		t.Errorf("expected minimum step 0.5, got delta %f", s.distance-before)
	}

	// Clamp wins over the step.
	s.Dolly(100, 0.01, 0.1, 20)
	if s.distance != 20 {
		t.Errorf("expected distance clamped to 20, got %f", s.distance)
	}
}

func TestOrbitPanKeepsOffset(t *testing.T) {
	s := NewOrbitState()
	s.SetPosition(mat32.V3(0, 0, 10))
	offset := s.Offset()

	s.PanLeft(0.1, 60)
	s.PanUp(0.05, 60)

	// Panning moves the pivot; the relative offset is untouched.
	if !mathutil.ApproxEqualVec3(s.Offset(), offset, 1e-3) {
		t.Errorf("expected offset unchanged by pan, got %v want %v", s.Offset(), offset)
	}
	if mathutil.ApproxZeroVec3(s.center, 1e-4) {
		t.Errorf("expected pan to move the orbit center")
	}
}

func TestOrbitCustomUpAxis(t *testing.T) {
	// With X as up, the polar angle is measured from X.
	s := NewOrbitState()
	s.setUp(mat32.V3(1, 0, 0))
	s.SetPosition(mat32.V3(10, 0, 0))
	if mat32.Abs(s.phi-mathutil.Epsilon) > 1e-4 {
		t.Errorf("expected phi at the pole clamp, got %f", s.phi)
	}

	s.SetPosition(mat32.V3(0, 0, 10))
	if mat32.Abs(s.phi-mat32.Pi/2) > 1e-3 {
		t.Errorf("expected phi pi/2 on the equator of the X-up frame, got %f", s.phi)
	}
}
