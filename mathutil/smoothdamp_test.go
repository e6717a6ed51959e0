package mathutil

import (
	"testing"

	"goki.dev/mat32/v2"
)

const frame = float32(1.0 / 60.0)

func TestSmoothDampConverges(t *testing.T) {
	current, target := float32(0), float32(10)
	var velocity float32

	prevGap := mat32.Abs(target - current)
	converged := false
	for i := 0; i < 2000; i++ {
		current = SmoothDamp(current, target, &velocity, 0.25, mat32.Infinity, frame)
		gap := mat32.Abs(target - current)
		if gap > prevGap+1e-7 {
			t.Fatalf("gap grew on frame %d: %f -> %f", i, prevGap, gap)
		}
		if current > target {
			t.Fatalf("overshot target on frame %d: %f", i, current)
		}
		prevGap = gap
		if gap < Epsilon {
			converged = true
			break
		}
	}
	if !converged {
		t.Errorf("expected convergence within 2000 frames, gap still %f", prevGap)
	}
}

func TestSmoothDampOvershootSnaps(t *testing.T) {
	// A large carried velocity would cross the target within one frame;
	// the step must snap to the target instead of passing it.
	velocity := float32(500)
	out := SmoothDamp(9.9, 10, &velocity, 0.25, mat32.Infinity, frame)
	if out != 10 {
		t.Errorf("expected snap to 10, got %f", out)
	}
	if velocity != 0 {
		t.Errorf("expected velocity recomputed to 0 after snap, got %f", velocity)
	}
}

func TestSmoothDampZeroDeltaTimeStaysFinite(t *testing.T) {
	// A zero frame time while already at the target must hold position
	// without poisoning the velocity.
	velocity := float32(3)
	out := SmoothDamp(10, 10, &velocity, 0.25, mat32.Infinity, 0)
	if out != 10 {
		t.Errorf("expected to hold at 10, got %f", out)
	}
	if mat32.IsNaN(velocity) {
		t.Errorf("expected a finite velocity, got %f", velocity)
	}
}

func TestSmoothDampMaxSpeedClamp(t *testing.T) {
	var vFast, vSlow float32
	fast := SmoothDamp(0, 100, &vFast, 1, mat32.Infinity, frame)
	slow := SmoothDamp(0, 100, &vSlow, 1, 1, frame)
	if slow >= fast {
		t.Errorf("expected capped step %f to be smaller than uncapped %f", slow, fast)
	}
	if slow <= 0 || slow > 1 {
		t.Errorf("expected capped step within (0, 1], got %f", slow)
	}
}

func TestSmoothDampVec3PreservesDirection(t *testing.T) {
	target := mat32.V3(30, 40, 0)
	var velocity mat32.Vec3
	out := SmoothDampVec3(mat32.Vec3{}, target, &velocity, 1, 1, frame)

	// Magnitude clamping must not bend the direction of travel.
	if out.Cross(target).Length() > 1e-4 {
		t.Errorf("expected step along %v, got %v", target, out)
	}
	if out.Length() == 0 {
		t.Errorf("expected a nonzero step")
	}
}

func TestSmoothDampVec3Converges(t *testing.T) {
	current := mat32.V3(-3, 7, 2)
	target := mat32.V3(5, -1, 0)
	var velocity mat32.Vec3

	for i := 0; i < 2000; i++ {
		current = SmoothDampVec3(current, target, &velocity, 0.25, mat32.Infinity, frame)
		if ApproxEqualVec3(current, target) {
			return
		}
	}
	t.Errorf("expected convergence within 2000 frames, at %v", current)
}

func TestSmoothDampQuatFraction(t *testing.T) {
	axis := mat32.V3(0, 1, 0)
	current := mat32.NewQuat(0, 0, 0, 1)
	target := mat32.NewQuatAxisAngle(axis, mat32.Pi/2)
	velocity := current

	// Half the smooth time elapses: expect the halfway rotation.
	out := SmoothDampQuat(current, target, &velocity, 1, 0.5)
	want := mat32.NewQuatAxisAngle(axis, mat32.Pi/4)
	if !ApproxEqualQuat(out, want, 1e-4) {
		t.Errorf("expected halfway rotation %v, got %v", want, out)
	}

	// Elapsed time at or beyond the smooth time lands on the target.
	velocity = current
	out = SmoothDampQuat(current, target, &velocity, 1, 2)
	if !ApproxEqualQuat(out, target, 1e-5) {
		t.Errorf("expected target rotation, got %v", out)
	}
}
