// Package trace records per-frame camera interpolation state to CSV for
// offline inspection of convergence behavior.
package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gimbal/camera"
	"github.com/pthm-cable/gimbal/config"
)

// FrameRecord is one row of an interpolation trace: the displayed and
// target poses plus their gap, after one Update call.
type FrameRecord struct {
	Frame       int     `csv:"frame"`
	Time        float32 `csv:"time"`
	Mode        string  `csv:"mode"`
	Active      bool    `csv:"active"`
	PosX        float32 `csv:"pos_x"`
	PosY        float32 `csv:"pos_y"`
	PosZ        float32 `csv:"pos_z"`
	TargetX     float32 `csv:"target_x"`
	TargetY     float32 `csv:"target_y"`
	TargetZ     float32 `csv:"target_z"`
	Distance    float32 `csv:"distance"`
	PositionGap float32 `csv:"position_gap"`
	ForwardGap  float32 `csv:"forward_gap"`
}

// Capture builds a record from an interpolator's current state.
func Capture(ip *camera.Interpolator, frame int, time float32, active bool) FrameRecord {
	nowPos := ip.Now().Position()
	endPos := ip.End().Position()
	return FrameRecord{
		Frame:       frame,
		Time:        time,
		Mode:        ip.Mode().String(),
		Active:      active,
		PosX:        nowPos.X,
		PosY:        nowPos.Y,
		PosZ:        nowPos.Z,
		TargetX:     endPos.X,
		TargetY:     endPos.Y,
		TargetZ:     endPos.Z,
		Distance:    ip.Now().Distance(),
		PositionGap: endPos.Sub(nowPos).Length(),
		ForwardGap:  ip.End().Forward().Sub(ip.Now().Forward()).Length(),
	}
}

// Recorder writes interpolation traces into an output directory.
// A nil Recorder is valid and discards everything (tracing disabled).
type Recorder struct {
	dir       string
	frameFile *os.File

	frameHeaderWritten bool
}

// NewRecorder creates a recorder writing into dir. Returns nil if dir is
// empty (tracing disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	r := &Recorder{dir: dir}

	framePath := filepath.Join(dir, "frames.csv")
	f, err := os.Create(framePath)
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	r.frameFile = f

	return r, nil
}

// WriteConfig saves the configuration alongside the trace.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// WriteFrame appends one record to frames.csv.
func (r *Recorder) WriteFrame(rec FrameRecord) error {
	if r == nil {
		return nil
	}

	records := []FrameRecord{rec}

	if !r.frameHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.frameFile); err != nil {
			return fmt.Errorf("writing frame record: %w", err)
		}
		r.frameHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.frameFile); err != nil {
			return fmt.Errorf("writing frame record: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close flushes and closes the trace files.
func (r *Recorder) Close() error {
	if r == nil || r.frameFile == nil {
		return nil
	}
	return r.frameFile.Close()
}
