package hbios

import (
	"testing"
	"time"

	"romwbw/pkg/hostio"
	"romwbw/pkg/membank"
)

func newTestDispatch() (*Dispatch, *hostio.Headless) {
	h := hostio.NewHeadless(time.Time{})
	d := New(membank.New(), h, Config{})
	return d, h
}

func TestCIOInTranslatesLFToCR(t *testing.T) {
	d, h := newTestDispatch()
	h.QueueChar(int32('\n'))
	r := &fakeRegs{b: cioIn}
	d.Handle(r)
	if r.e != 0x0D {
		t.Fatalf("E = %#02x, want CR", r.e)
	}
	if r.a != StatusOK.Byte() {
		t.Fatalf("A = %#02x, want StatusOK", r.a)
	}
}

func TestCIOInNonBlockingWithNoInputReturnsTimeout(t *testing.T) {
	d, _ := newTestDispatch()
	r := &fakeRegs{b: cioIn}
	d.Handle(r)
	if Status(int8(r.a)) != StatusTimeout {
		t.Fatalf("status = %d, want StatusTimeout", int8(r.a))
	}
	if !d.WaitingForInput() {
		t.Fatalf("expected WaitingForInput latch set")
	}
}

func TestCIOOutStripsHighBitAndSuppressesCR(t *testing.T) {
	d, h := newTestDispatch()
	r := &fakeRegs{b: cioOut, e: 'A' | 0x80}
	d.Handle(r)
	r2 := &fakeRegs{b: cioOut, e: 0x0D}
	d.Handle(r2)
	if h.Output.String() != "A" {
		t.Fatalf("output = %q, want %q", h.Output.String(), "A")
	}
}

func TestCIOInputStatusReflectsQueue(t *testing.T) {
	d, h := newTestDispatch()
	r := &fakeRegs{b: cioInStat}
	d.Handle(r)
	if r.a != 0 || !r.zero {
		t.Fatalf("expected no input ready")
	}
	h.QueueChar('x')
	r2 := &fakeRegs{b: cioInStat}
	d.Handle(r2)
	if r2.a != 1 || r2.zero {
		t.Fatalf("expected input ready")
	}
}
