// Package report publishes the frames handled by a repeater.
//
// A Report is serialized as a protobuf FrameReport and handed to a
// PacketWriter: an MQTT topic, a length-prefixed stream or a websocket.
package report
