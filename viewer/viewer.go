// Package viewer hosts the interactive camera demo: it maps raylib input
// onto camera transform operations, steps the interpolator once per frame,
// and renders a marker scene from the displayed state.
package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/camera"
	"github.com/pthm-cable/gimbal/config"
)

// startPosition is the demo's initial camera position.
var startPosition = mat32.V3(6, 4, 8)

// Viewer ties the interpolator, the demo scene and the HUD together.
type Viewer struct {
	cfg   *config.Config
	ip    *camera.Interpolator
	scene *Scene

	smoothTime float32
	showHUD    bool
	converging bool
}

// New builds a viewer in the configured start mode.
func New(cfg *config.Config) *Viewer {
	mode := camera.ModeOrbit
	switch cfg.Camera.StartMode {
	case "isotropic":
		mode = camera.ModeIsotropic
	case "grounded":
		mode = camera.ModeGrounded
	}

	v := &Viewer{
		cfg:        cfg,
		ip:         camera.NewInterpolator(mode),
		scene:      NewScene(cfg),
		smoothTime: cfg.Derived.SmoothTime32,
		showHUD:    cfg.Viewer.ShowHUD,
	}
	v.ip.SetPosition(startPosition)
	v.ip.JumpToEnd()
	return v
}

// Interpolator exposes the active interpolator, e.g. for tracing.
func (v *Viewer) Interpolator() *camera.Interpolator { return v.ip }

// Converging reports whether the last Update still had components moving.
func (v *Viewer) Converging() bool { return v.converging }

// Update consumes input and advances the interpolation by the elapsed
// frame time.
func (v *Viewer) Update(deltaTime float32) {
	v.handleInput()
	v.converging = v.ip.Update(v.smoothTime, deltaTime)
}

// Draw renders the scene from the displayed camera state, then the HUD.
func (v *Viewer) Draw() {
	var t camera.Transform
	v.ip.ApplyToObject(&t)

	target := t.Position.Add(v.ip.Now().Forward())
	cam := rl.Camera3D{
		Position:   toRl(t.Position),
		Target:     toRl(target),
		Up:         toRl(t.Up),
		Fovy:       v.cfg.Derived.FOV32,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	v.scene.Draw()

	// Pivot gizmo and, while converging, the target ghost.
	rl.DrawSphere(toRl(v.ip.Now().OrbitCenter()), 0.08, rl.Red)
	if v.converging {
		rl.DrawSphereWires(toRl(v.ip.End().Position()), 0.15, 6, 6, rl.Fade(rl.DarkGray, 0.6))
	}
	rl.EndMode3D()

	if v.showHUD {
		v.drawHUD()
	}
}

func (v *Viewer) drawHUD() {
	now := v.ip.Now()
	pos := now.Position()

	rl.DrawText(fmt.Sprintf("mode: %s", v.ip.Mode()), 10, 10, 20, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("pos: (%.2f, %.2f, %.2f)  dist: %.2f", pos.X, pos.Y, pos.Z, now.Distance()), 10, 34, 16, rl.Gray)
	state := "settled"
	if v.converging {
		state = "converging"
	}
	rl.DrawText(state, 10, 54, 16, rl.Gray)
	rl.DrawText("drag: rotate | right-drag: pan | wheel: dolly | 1/2/3: mode | J/X/L/R/H", 10, int32(v.cfg.Screen.Height)-24, 14, rl.Gray)

	// Mode buttons and smooth-time slider.
	panelX := v.cfg.Derived.ScreenW32 - 190
	if gui.Button(rl.Rectangle{X: panelX, Y: 10, Width: 180, Height: 26}, "Orbit") {
		v.switchMode(camera.ModeOrbit)
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: 42, Width: 180, Height: 26}, "Isotropic") {
		v.switchMode(camera.ModeIsotropic)
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: 74, Width: 180, Height: 26}, "Grounded") {
		v.switchMode(camera.ModeGrounded)
	}

	rl.DrawText(fmt.Sprintf("smooth time: %.2fs", v.smoothTime), int32(panelX), 108, 14, rl.Gray)
	v.smoothTime = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: 126, Width: 180, Height: 18},
		"0.01", "1.0",
		v.smoothTime, 0.01, 1.0,
	)
}

func toRl(v mat32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}
