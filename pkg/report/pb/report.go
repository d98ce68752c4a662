// Package pb holds the wire messages described in report.proto.
package pb

import "github.com/golang/protobuf/proto"

// Action is what the repeater did with a frame.
type Action int32

// Actions.
const (
	Action_CAPTURE Action = 0
	Action_STORE   Action = 1
	Action_REPLAY  Action = 2
)

// Action_name maps values to names.
var Action_name = map[int32]string{
	0: "CAPTURE",
	1: "STORE",
	2: "REPLAY",
}

// Action_value maps names to values.
var Action_value = map[string]int32{
	"CAPTURE": 0,
	"STORE":   1,
	"REPLAY":  2,
}

func (x Action) String() string {
	return proto.EnumName(Action_name, int32(x))
}

// FrameReport describes one frame handled by a repeater.
type FrameReport struct {
	Seq        uint64   `protobuf:"varint,1,opt,name=seq,proto3" json:"seq,omitempty"`
	Device     string   `protobuf:"bytes,2,opt,name=device,proto3" json:"device,omitempty"`
	Action     Action   `protobuf:"varint,3,opt,name=action,proto3,enum=edgeline.v1.Action" json:"action,omitempty"`
	InitHigh   bool     `protobuf:"varint,4,opt,name=init_high,json=initHigh,proto3" json:"init_high,omitempty"`
	Length     int32    `protobuf:"varint,5,opt,name=length,proto3" json:"length,omitempty"`
	TotalTicks uint64   `protobuf:"varint,6,opt,name=total_ticks,json=totalTicks,proto3" json:"total_ticks,omitempty"`
	Levels     []bool   `protobuf:"varint,7,rep,packed,name=levels,proto3" json:"levels,omitempty"`
	Durations  []uint32 `protobuf:"varint,8,rep,packed,name=durations,proto3" json:"durations,omitempty"`
	Trace      string   `protobuf:"bytes,9,opt,name=trace,proto3" json:"trace,omitempty"`
	Truncated  bool     `protobuf:"varint,10,opt,name=truncated,proto3" json:"truncated,omitempty"`
}

// Reset implements proto.Message.
func (m *FrameReport) Reset() { *m = FrameReport{} }

// String implements proto.Message.
func (m *FrameReport) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*FrameReport) ProtoMessage() {}

func init() {
	proto.RegisterEnum("edgeline.v1.Action", Action_name, Action_value)
	proto.RegisterType((*FrameReport)(nil), "edgeline.v1.FrameReport")
}
