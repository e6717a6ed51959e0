package viewer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gimbal/config"
)

// Marker is a fixed reference shape in the demo scene; the scattered
// markers give the eye parallax cues while the camera moves.
type Marker struct {
	X, Y, Z float32
}

// Shape holds a marker's size and color.
type Shape struct {
	Radius float32
	Color  rl.Color
}

var markerColors = []rl.Color{
	rl.SkyBlue, rl.Orange, rl.Lime, rl.Violet, rl.Gold, rl.Maroon,
}

// Scene owns the ECS world holding the demo markers.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map2[Marker, Shape]
	filter *ecs.Filter2[Marker, Shape]

	gridExtent int32
}

// NewScene scatters markers around the origin per the viewer config.
func NewScene(cfg *config.Config) *Scene {
	world := ecs.NewWorld()
	s := &Scene{
		world:      world,
		mapper:     ecs.NewMap2[Marker, Shape](world),
		filter:     ecs.NewFilter2[Marker, Shape](world),
		gridExtent: int32(cfg.Viewer.GridExtent),
	}

	rng := rand.New(rand.NewSource(cfg.Viewer.MarkerSeed))
	scatter := float32(cfg.Viewer.MarkerRange)
	for i := 0; i < cfg.Viewer.MarkerCount; i++ {
		m := Marker{
			X: (rng.Float32()*2 - 1) * scatter,
			Y: rng.Float32() * scatter * 0.4,
			Z: (rng.Float32()*2 - 1) * scatter,
		}
		sh := Shape{
			Radius: 0.2 + rng.Float32()*0.5,
			Color:  markerColors[i%len(markerColors)],
		}
		s.mapper.NewEntity(&m, &sh)
	}
	return s
}

// Draw renders the ground grid and every marker. Must run inside a 3D mode
// block.
func (s *Scene) Draw() {
	rl.DrawGrid(s.gridExtent*2, 1.0)

	query := s.filter.Query()
	for query.Next() {
		m, sh := query.Get()
		rl.DrawSphere(rl.Vector3{X: m.X, Y: m.Y, Z: m.Z}, sh.Radius, sh.Color)
	}
}
