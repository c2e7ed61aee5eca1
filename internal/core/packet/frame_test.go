package packet

import (
	"errors"
	"testing"
	"time"

	"firestige.xyz/strix/internal/core"
)

func TestFrameStore(t *testing.T) {
	t.Run("AppendOrder", func(t *testing.T) {
		p := New(nil, nil)
		defer p.Unref()

		f1 := &Frame{Timestamp: 1000000, Data: []byte{0x01}}
		f2 := &Frame{Timestamp: 1500000, Data: []byte{0x02}}
		if err := p.AppendFrame(f1); err != nil {
			t.Fatalf("AppendFrame failed: %v", err)
		}
		if err := p.AppendFrame(f2); err != nil {
			t.Fatalf("AppendFrame failed: %v", err)
		}

		first, err := p.FirstFrame()
		if err != nil {
			t.Fatalf("FirstFrame failed: %v", err)
		}
		if first != f1 {
			t.Error("expected oldest frame first")
		}

		last, err := p.LastFrame()
		if err != nil {
			t.Fatalf("LastFrame failed: %v", err)
		}
		if last != f2 {
			t.Error("expected newest frame last")
		}
	})

	t.Run("AppendAfterSeal", func(t *testing.T) {
		p := New(nil, nil)
		defer p.Unref()

		p.Seal()
		err := p.AppendFrame(&Frame{Timestamp: 1})
		if !errors.Is(err, core.ErrPacketSealed) {
			t.Errorf("expected ErrPacketSealed, got %v", err)
		}
	})

	t.Run("EmptyStore", func(t *testing.T) {
		p := New(nil, nil)
		defer p.Unref()

		if _, err := p.FirstFrame(); !errors.Is(err, core.ErrNoFrames) {
			t.Errorf("expected ErrNoFrames from FirstFrame, got %v", err)
		}
		if _, err := p.LastFrame(); !errors.Is(err, core.ErrNoFrames) {
			t.Errorf("expected ErrNoFrames from LastFrame, got %v", err)
		}
		if _, err := p.Timestamp(); !errors.Is(err, core.ErrNoFrames) {
			t.Errorf("expected ErrNoFrames from Timestamp, got %v", err)
		}
	})
}

func TestPacketTimestamp(t *testing.T) {
	// A reassembled packet reports the time of its most recent frame,
	// not its first.
	p := New(nil, nil)
	defer p.Unref()

	if err := p.AppendFrame(&Frame{Timestamp: 1000000}); err != nil {
		t.Fatalf("AppendFrame failed: %v", err)
	}
	if err := p.AppendFrame(&Frame{Timestamp: 1500000}); err != nil {
		t.Fatalf("AppendFrame failed: %v", err)
	}
	p.Seal()

	ts, err := p.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts != 1500000 {
		t.Errorf("expected timestamp 1500000, got %d", ts)
	}
}

func TestFrameDecomposition(t *testing.T) {
	f := &Frame{Timestamp: 1500000}
	if got := f.Seconds(); got != 1 {
		t.Errorf("expected 1 second, got %d", got)
	}
	if got := f.Microseconds(); got != 500000 {
		t.Errorf("expected 500000 microseconds, got %d", got)
	}

	// Exact division, no rounding.
	f = &Frame{Timestamp: 2999999}
	if got := f.Seconds(); got != 2 {
		t.Errorf("expected 2 seconds, got %d", got)
	}
	if got := f.Microseconds(); got != 999999 {
		t.Errorf("expected 999999 microseconds, got %d", got)
	}
}

func TestNewFrame(t *testing.T) {
	ts := time.UnixMicro(1700000001500000)
	data := []byte{0xde, 0xad, 0xbe, 0xef}

	f := NewFrame(ts, data, 128)
	if f.Timestamp != 1700000001500000 {
		t.Errorf("expected timestamp 1700000001500000, got %d", f.Timestamp)
	}
	if f.CaptureLen != 4 {
		t.Errorf("expected capture length 4, got %d", f.CaptureLen)
	}
	if f.WireLen != 128 {
		t.Errorf("expected wire length 128, got %d", f.WireLen)
	}
}
