package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/camera"
)

// handleInput maps mouse and keyboard gestures onto transform operations.
// All operations land on the interpolator's target; damping does the rest.
func (v *Viewer) handleInput() {
	d := v.cfg.Derived

	// Left drag rotates, right (or middle) drag pans. Deltas are
	// normalized by screen height so the gesture feel is resolution
	// independent.
	delta := rl.GetMouseDelta()
	dx := delta.X / d.ScreenH32
	dy := delta.Y / d.ScreenH32
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && (dx != 0 || dy != 0) {
		v.ip.RotateLeft(dx * d.RotateSpeed32)
		v.ip.RotateUp(dy * d.RotateSpeed32)
	}
	if (rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)) && (dx != 0 || dy != 0) {
		v.ip.PanLeft(dx*d.PanSpeed32, d.FOV32)
		v.ip.PanUp(dy*d.PanSpeed32, d.FOV32)
	}

	// Wheel dollies toward or away from the pivot.
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		scale := d.DollyScale32
		if wheel > 0 {
			scale = 1 / scale
		}
		v.ip.Dolly(scale, d.DollyStep32, d.MinDist32, d.MaxDist32)
	}

	// Mode switching bridges the pose through the neutral snapshot.
	if rl.IsKeyPressed(rl.KeyOne) {
		v.switchMode(camera.ModeOrbit)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		v.switchMode(camera.ModeIsotropic)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		v.switchMode(camera.ModeGrounded)
	}

	if rl.IsKeyPressed(rl.KeyJ) {
		v.ip.JumpToEnd()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		v.ip.DiscardEnd()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		v.ip.LookAt(mat32.Vec3{})
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.reset()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.showHUD = !v.showHUD
	}
}

func (v *Viewer) switchMode(mode camera.Mode) {
	v.ip = v.ip.SwitchMode(mode)
}

// reset rebuilds the interpolator at the start pose for the current mode.
func (v *Viewer) reset() {
	v.ip = camera.NewInterpolator(v.ip.Mode())
	v.ip.SetPosition(startPosition)
	v.ip.JumpToEnd()
}
