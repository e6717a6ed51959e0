package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gimbal/config"
	"github.com/pthm-cable/gimbal/trace"
	"github.com/pthm-cable/gimbal/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	traceDir := flag.String("trace-dir", "", "Directory for interpolation trace CSV (empty = disabled)")
	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rec, err := trace.NewRecorder(*traceDir)
	if err != nil {
		slog.Error("failed to create trace recorder", "error", err)
		os.Exit(1)
	}
	defer rec.Close()
	if rec != nil {
		if err := rec.WriteConfig(cfg); err != nil {
			slog.Error("failed to write trace config", "error", err)
			os.Exit(1)
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "gimbal camera demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := viewer.New(cfg)
	slog.Info("starting viewer",
		"mode", v.Interpolator().Mode().String(),
		"smooth_time", cfg.Camera.SmoothTime,
		"trace_dir", rec.Dir(),
	)

	frame := 0
	elapsed := float32(0)
	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		elapsed += dt
		v.Update(dt)

		if rec != nil {
			r := trace.Capture(v.Interpolator(), frame, elapsed, v.Converging())
			if err := rec.WriteFrame(r); err != nil {
				slog.Error("failed to write trace frame", "frame", frame, "error", err)
				os.Exit(1)
			}
		}
		frame++

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		v.Draw()
		rl.EndDrawing()
	}
}
