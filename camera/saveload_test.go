package camera

import (
	"testing"

	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// buildPose moves an interpolator into a non-trivial settled pose.
func buildPose(mode Mode) *Interpolator {
	ip := NewInterpolator(mode)
	ip.SetOrbitCenter(mat32.V3(1, 2, 3))
	ip.SetPosition(mat32.V3(5, 6, -2))
	ip.RotateLeft(0.4)
	ip.RotateUp(-0.2)
	ip.JumpToEnd()
	return ip
}

func TestSaveLoadSameVariantRoundTrip(t *testing.T) {
	for _, mode := range allModes {
		ip := buildPose(mode)
		st := ip.SaveState()

		loaded := NewInterpolator(mode)
		loaded.LoadState(st)
		loaded.JumpToEnd()

		if !mathutil.ApproxEqualVec3(loaded.now.Position(), ip.now.Position(), 1e-3) {
			t.Errorf("%v: expected position %v, got %v", mode, ip.now.Position(), loaded.now.Position())
		}
		if !mathutil.ApproxEqualVec3(loaded.now.Forward(), ip.now.Forward(), 1e-3) {
			t.Errorf("%v: expected forward %v, got %v", mode, ip.now.Forward(), loaded.now.Forward())
		}
	}
}

func TestLoadStateTakesEffectOnEndOnly(t *testing.T) {
	ip := NewInterpolator(ModeOrbit)
	st := SaveState{
		OrbitCenter: mat32.V3(0, 0, 0),
		Offset:      mat32.V3(0, 0, 10),
		Forward:     mat32.V3(0, 0, -1),
		Up:          mat32.V3(0, 1, 0),
	}
	before := ip.now.Position()
	ip.LoadState(st)

	if !mathutil.ApproxEqualVec3(ip.now.Position(), before, 1e-5) {
		t.Errorf("expected load to leave now untouched, got %v", ip.now.Position())
	}
	if !mathutil.ApproxEqualVec3(ip.end.Position(), mat32.V3(0, 0, 10), 1e-3) {
		t.Errorf("expected end at the loaded position, got %v", ip.end.Position())
	}
}

func TestLoadZeroOffsetFallsBackToForward(t *testing.T) {
	st := SaveState{
		OrbitCenter: mat32.V3(1, 1, 1),
		Offset:      mat32.Vec3{},
		Forward:     mat32.V3(0, 0, -1),
		Up:          mat32.V3(0, 1, 0),
	}
	for _, mode := range allModes {
		s := NewState(mode)
		s.Load(st)

		// The offset substitutes -forward*epsilon: a representable
		// camera a hair behind the pivot, still facing forward.
		if s.Distance() < mathutil.Epsilon {
			t.Errorf("%v: expected floored distance, got %g", mode, s.Distance())
		}
		if !mathutil.ApproxEqualVec3(s.Forward(), st.Forward, 1e-2) {
			t.Errorf("%v: expected forward %v, got %v", mode, st.Forward, s.Forward())
		}
	}
}

func TestSwitchModePreservesPosition(t *testing.T) {
	for _, from := range allModes {
		for _, to := range allModes {
			ip := buildPose(from)
			pos := ip.now.Position()

			switched := ip.SwitchMode(to)
			switched.JumpToEnd()

			if !mathutil.ApproxEqualVec3(switched.now.Position(), pos, 1e-3) {
				t.Errorf("%v -> %v: expected position %v, got %v", from, to, pos, switched.now.Position())
			}
		}
	}
}

func TestSwitchModeOrbitIsotropicKeepsForward(t *testing.T) {
	// Orbit and isotropic both define forward as -offset, so the bridge
	// preserves the viewing direction between them exactly.
	ip := buildPose(ModeOrbit)
	fwd := ip.now.Forward()

	switched := ip.SwitchMode(ModeIsotropic)
	switched.JumpToEnd()

	if !mathutil.ApproxEqualVec3(switched.now.Forward(), fwd, 1e-3) {
		t.Errorf("expected forward %v preserved, got %v", fwd, switched.now.Forward())
	}

	back := switched.SwitchMode(ModeOrbit)
	back.JumpToEnd()
	if !mathutil.ApproxEqualVec3(back.now.Forward(), fwd, 1e-3) {
		t.Errorf("expected forward %v after round trip, got %v", fwd, back.now.Forward())
	}
}

func TestSwitchModeSameModeIsIdentity(t *testing.T) {
	ip := buildPose(ModeGrounded)
	if ip.SwitchMode(ModeGrounded) != ip {
		t.Errorf("expected switching to the current mode to return the same interpolator")
	}
}

func TestSwitchModeStartsConverged(t *testing.T) {
	// now and end were settled before the switch; the fresh interpolator
	// must not invent motion.
	ip := buildPose(ModeOrbit)
	switched := ip.SwitchMode(ModeGrounded)

	if switched.Update(testSmoothTime, testFrame) {
		t.Errorf("expected a settled switch to start converged")
	}
}
