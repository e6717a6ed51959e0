// Package main runs a headless camera interpolation and reports convergence
// statistics, writing the per-frame trace to CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"goki.dev/mat32/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gimbal/camera"
	"github.com/pthm-cable/gimbal/config"
	"github.com/pthm-cable/gimbal/trace"
)

func parseMode(s string) (camera.Mode, error) {
	switch s {
	case "orbit":
		return camera.ModeOrbit, nil
	case "isotropic":
		return camera.ModeIsotropic, nil
	case "grounded":
		return camera.ModeGrounded, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	modeName := flag.String("mode", "orbit", "Camera mode: orbit, isotropic or grounded")
	maxFrames := flag.Int("max-frames", 3600, "Frame cap for the run")
	dt := flag.Float64("dt", 1.0/60.0, "Fixed frame time in seconds")
	smoothTime := flag.Float64("smooth-time", 0, "Damping time constant (0 = from config)")
	outputDir := flag.String("output", "", "Output directory for the trace")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	mode, err := parseMode(*modeName)
	if err != nil {
		log.Fatalf("bad --mode: %v", err)
	}

	st := cfg.Derived.SmoothTime32
	if *smoothTime > 0 {
		st = float32(*smoothTime)
	}
	frameDT := float32(*dt)

	rec, err := trace.NewRecorder(*outputDir)
	if err != nil {
		log.Fatalf("failed to create recorder: %v", err)
	}
	defer rec.Close()
	if err := rec.WriteConfig(cfg); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	// A fixed interaction burst, then let the interpolator settle.
	ip := camera.NewInterpolator(mode)
	ip.SetPosition(mat32.V3(8, 5, 12))
	ip.RotateLeft(mat32.Pi / 2)
	ip.Dolly(cfg.Derived.DollyScale32, cfg.Derived.DollyStep32, cfg.Derived.MinDist32, cfg.Derived.MaxDist32)
	ip.PanLeft(0.2, cfg.Derived.FOV32)

	gaps := make([]float64, 0, *maxFrames)
	settled := -1
	for frame := 0; frame < *maxFrames; frame++ {
		active := ip.Update(st, frameDT)
		r := trace.Capture(ip, frame, float32(frame+1)*frameDT, active)
		if err := rec.WriteFrame(r); err != nil {
			log.Fatalf("failed to write frame %d: %v", frame, err)
		}
		gaps = append(gaps, float64(r.PositionGap))
		if !active {
			settled = frame
			break
		}
	}

	if settled < 0 {
		log.Fatalf("did not settle within %d frames", *maxFrames)
	}

	// Per-frame shrink ratios of the position gap, ignoring frames where
	// the gap was already numerically zero.
	ratios := make([]float64, 0, len(gaps))
	for i := 1; i < len(gaps); i++ {
		if gaps[i-1] > 0 {
			ratios = append(ratios, gaps[i]/gaps[i-1])
		}
	}
	sort.Float64s(ratios)

	fmt.Printf("mode: %s\n", mode)
	fmt.Printf("smooth time: %.3fs  dt: %.4fs\n", st, frameDT)
	fmt.Printf("settled after %d frames (%.2fs)\n", settled+1, float64(settled+1)*(*dt))
	if len(ratios) > 0 {
		fmt.Printf("gap shrink ratio: mean %.4f  stddev %.4f\n",
			stat.Mean(ratios, nil), stat.StdDev(ratios, nil))
		fmt.Printf("gap shrink ratio: p50 %.4f  p95 %.4f\n",
			stat.Quantile(0.5, stat.Empirical, ratios, nil),
			stat.Quantile(0.95, stat.Empirical, ratios, nil))
	}
	fmt.Printf("trace written to %s\n", rec.Dir())
}
