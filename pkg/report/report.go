package report

import (
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
	"github.com/robotalks/edgeline/pkg/report/pb"
)

// Action tells what the repeater did with a frame.
type Action = pb.Action

// Actions
const (
	ActionCapture = pb.Action_CAPTURE
	ActionStore   = pb.Action_STORE
	ActionReplay  = pb.Action_REPLAY
)

// Report wraps the FrameReport wire message.
type Report struct {
	pb.FrameReport
}

// FromFrame builds a Report from the first n halves of f and renders its
// trace at width.
func FromFrame(f *pulse.Frame, n int, init edge.InitLevel, action Action, width int) *Report {
	r := &Report{FrameReport: pb.FrameReport{
		Action:   action,
		InitHigh: init.IsHigh(),
	}}
	if limit := 2 * f.Cap(); n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		level, d := f.At(i / 2).Half(i % 2)
		if d == 0 {
			break
		}
		r.Levels = append(r.Levels, level)
		r.Durations = append(r.Durations, uint32(d))
		r.TotalTicks += uint64(d)
	}
	r.Length = int32(len(r.Levels))
	r.Trace = pulse.RenderN(f, int(r.Length), width)
	return r
}

// Init returns the line level preceding the frame.
func (r *Report) Init() edge.InitLevel {
	return edge.LevelOf(r.InitHigh)
}

// Frame rebuilds the pulse frame carried by the report.
func (r *Report) Frame(capacity int) (*pulse.Frame, error) {
	if len(r.Levels) != len(r.Durations) {
		return nil, fmt.Errorf("report %d: %d levels but %d durations", r.Seq, len(r.Levels), len(r.Durations))
	}
	f := pulse.NewFrame(capacity)
	if len(r.Levels) > 2*capacity {
		return nil, pulse.ErrOverflow
	}
	for i, level := range r.Levels {
		d := r.Durations[i]
		if d == 0 || d > uint32(pulse.MaxTicks) {
			return nil, fmt.Errorf("report %d: half %d: %w", r.Seq, i, pulse.ErrPeriod)
		}
		f.SetHalf(i, level, uint16(d))
	}
	return f, nil
}

// Summary is a one line description for logs.
func (r *Report) Summary() string {
	s := fmt.Sprintf("#%d %s %s init=%s len=%d total=%d", r.Seq, r.Device, r.Action, r.Init(), r.Length, r.TotalTicks)
	if r.Truncated {
		s += " truncated"
	}
	return s
}

// Encode encodes the Report to bytes.
func (r *Report) Encode() ([]byte, error) {
	return proto.Marshal(&r.FrameReport)
}

// Decode decodes bytes into a Report.
func Decode(data []byte) (*Report, error) {
	var r Report
	if err := proto.Unmarshal(data, &r.FrameReport); err != nil {
		return nil, err
	}
	return &r, nil
}
