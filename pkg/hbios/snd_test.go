package hbios

import "testing"

func TestSNDToneThenQueryReportsPlaying(t *testing.T) {
	d, _ := newTestDispatch()
	tone := &fakeRegs{b: sndTone, e: 69}
	d.Handle(tone)
	if Status(int8(tone.a)) != StatusOK {
		t.Fatalf("tone status = %d, want StatusOK", int8(tone.a))
	}

	query := &fakeRegs{b: sndQuery}
	d.Handle(query)
	if Status(int8(query.a)) != StatusOK {
		t.Fatalf("query status = %d, want StatusOK", int8(query.a))
	}
	if query.e != 1 {
		t.Fatalf("query E = %d, want 1 (playing)", query.e)
	}
}

func TestSNDToneZeroNoteStopsPlayback(t *testing.T) {
	d, _ := newTestDispatch()
	d.Handle(&fakeRegs{b: sndTone, e: 40})
	d.Handle(&fakeRegs{b: sndTone, e: 0})

	query := &fakeRegs{b: sndQuery}
	d.Handle(query)
	if query.e != 0 {
		t.Fatalf("query E = %d, want 0 (stopped)", query.e)
	}
}

func TestSNDInitResetsState(t *testing.T) {
	d, _ := newTestDispatch()
	d.Handle(&fakeRegs{b: sndTone, e: 40})
	d.Handle(&fakeRegs{b: sndInit})

	query := &fakeRegs{b: sndQuery}
	d.Handle(query)
	if query.e != 0 {
		t.Fatalf("query E after init = %d, want 0", query.e)
	}
}
