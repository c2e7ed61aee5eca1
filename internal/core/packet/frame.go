package packet

import (
	"time"

	"firestige.xyz/strix/internal/core"
)

// MicrosecondsPerSecond is the decomposition base for frame timestamps.
const MicrosecondsPerSecond = 1000000

// Frame is one raw captured unit. A packet reassembled from a TCP stream
// carries several frames; most packets carry exactly one. The frame's byte
// buffer is owned by its packet and never shared.
type Frame struct {
	// Timestamp is the capture time in microseconds since the Unix epoch.
	Timestamp uint64
	// Data is the raw frame content as captured off the wire.
	Data []byte
	// CaptureLen is the number of bytes actually captured.
	CaptureLen uint32
	// WireLen is the original frame length on the wire.
	WireLen uint32
}

// NewFrame builds a frame from capture metadata.
func NewFrame(ts time.Time, data []byte, wireLen uint32) *Frame {
	return &Frame{
		Timestamp:  uint64(ts.UnixMicro()),
		Data:       data,
		CaptureLen: uint32(len(data)),
		WireLen:    wireLen,
	}
}

// Seconds returns the integer-seconds component of the frame timestamp.
func (f *Frame) Seconds() uint64 {
	return f.Timestamp / MicrosecondsPerSecond
}

// Microseconds returns the sub-second component of the frame timestamp.
func (f *Frame) Microseconds() uint64 {
	return f.Timestamp % MicrosecondsPerSecond
}

// AppendFrame adds a frame at the end of the packet's frame list, keeping
// arrival order. Only the dissection pipeline appends, before sealing.
func (p *Packet) AppendFrame(f *Frame) error {
	if p.sealed.Load() {
		return core.ErrPacketSealed
	}
	p.frames = append(p.frames, f)
	return nil
}

// Frames returns the packet's frames in arrival order, oldest first.
// The returned slice must be treated as read-only.
func (p *Packet) Frames() []*Frame {
	return p.frames
}

// FirstFrame returns the earliest captured frame.
func (p *Packet) FirstFrame() (*Frame, error) {
	if len(p.frames) == 0 {
		return nil, core.ErrNoFrames
	}
	return p.frames[0], nil
}

// LastFrame returns the most recently appended frame.
func (p *Packet) LastFrame() (*Frame, error) {
	if len(p.frames) == 0 {
		return nil, core.ErrNoFrames
	}
	return p.frames[len(p.frames)-1], nil
}

// Timestamp returns the packet's reported capture time in microseconds:
// the timestamp of the LAST constituent frame. For reassembled packets the
// unit is not complete until its final frame arrives, so the newest frame
// carries the packet's time. A packet with no frames was never populated
// and the caller should treat the error as a defect.
func (p *Packet) Timestamp() (uint64, error) {
	last, err := p.LastFrame()
	if err != nil {
		return 0, err
	}
	return last.Timestamp, nil
}
