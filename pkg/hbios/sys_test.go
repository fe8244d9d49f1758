package hbios

import "testing"

func TestSYSVersionReportsPackedVersionAndPlatform(t *testing.T) {
	d, _ := newTestDispatch()
	r := &fakeRegs{b: 0xF0, c: sysVersion}
	d.Handle(r)
	if r.DE() != uint16(hbiosVersionMajor)<<8|uint16(hbiosVersionMinor) {
		t.Fatalf("DE = %#04x, want packed version", r.DE())
	}
	if r.l != hbiosPlatformID {
		t.Fatalf("L = %#02x, want platform id", r.l)
	}
}

func TestSYSSetBankThenGetBankAgree(t *testing.T) {
	d, _ := newTestDispatch()
	set := &fakeRegs{b: 0xF0, c: sysSetBank, e: 0x82}
	d.Handle(set)
	if Status(int8(set.a)) != StatusOK {
		t.Fatalf("set-bank failed: %d", int8(set.a))
	}
	if set.c != 0x00 {
		t.Fatalf("previous bank = %#02x, want 0x00", set.c)
	}

	get := &fakeRegs{b: 0xF0, c: sysGetBank}
	d.Handle(get)
	if get.c != 0x82 {
		t.Fatalf("get-bank = %#02x, want 0x82", get.c)
	}
}

func TestSYSCopyHonoursCommonAreaOverride(t *testing.T) {
	d, _ := newTestDispatch()
	d.Mem.SelectBank(0x81)
	d.Mem.Store(0x9000, 0x77) // common-area write, lands in bank 0x8F

	stage := &fakeRegs{b: 0xF0, c: sysSetCopy, d: 0x80, e: 0x81}
	stage.SetHL(4)
	d.Handle(stage)

	exec := &fakeRegs{b: 0xF0, c: sysExecCopy}
	exec.SetHL(0x9000) // common-area source, should ignore staged src bank 0x80
	exec.SetDE(0x0010)
	d.Handle(exec)

	if Status(int8(exec.a)) != StatusOK {
		t.Fatalf("exec-copy failed: %d", int8(exec.a))
	}
	if got := d.Mem.ReadBank(0x81, 0x0010); got != 0x77 {
		t.Fatalf("copied byte = %#02x, want 0x77", got)
	}
}

func TestSYSAllocBumpsAndRejectsOverflow(t *testing.T) {
	d, _ := newTestDispatch()
	first := &fakeRegs{b: 0xF0, c: sysAlloc}
	first.SetHL(0x100)
	d.Handle(first)
	if first.HL() != heapBase {
		t.Fatalf("first alloc addr = %#04x, want %#04x", first.HL(), heapBase)
	}

	second := &fakeRegs{b: 0xF0, c: sysAlloc}
	second.SetHL(0x100)
	d.Handle(second)
	if second.HL() != heapBase+0x100 {
		t.Fatalf("second alloc addr = %#04x, want %#04x", second.HL(), heapBase+0x100)
	}

	huge := &fakeRegs{b: 0xF0, c: sysAlloc}
	huge.SetHL(0xFFFF)
	d.Handle(huge)
	if Status(int8(huge.a)) != StatusNoMemory {
		t.Fatalf("status = %d, want StatusNoMemory", int8(huge.a))
	}
}

func TestSYSPeekPokeRoundTrip(t *testing.T) {
	d, _ := newTestDispatch()
	poke := &fakeRegs{b: 0xF0, c: sysPoke, d: 0x82, e: 0x99}
	poke.SetHL(0x1234)
	d.Handle(poke)

	peek := &fakeRegs{b: 0xF0, c: sysPeek, d: 0x82}
	peek.SetHL(0x1234)
	d.Handle(peek)
	if peek.e != 0x99 {
		t.Fatalf("peeked byte = %#02x, want 0x99", peek.e)
	}
}

func TestSYSResetReselectsBankZeroAndReportsNoReturn(t *testing.T) {
	d, _ := newTestDispatch()
	d.Mem.SelectBank(0x85)
	resetCalled := false
	d.ResetFunc = func() { resetCalled = true }

	r := &fakeRegs{b: 0xF0, c: sysReset}
	outcome := d.Handle(r)
	if outcome != OutcomeNoReturn {
		t.Fatalf("outcome = %v, want OutcomeNoReturn", outcome)
	}
	if d.Mem.CurrentBank() != 0x00 {
		t.Fatalf("bank = %#02x, want 0x00", d.Mem.CurrentBank())
	}
	if !resetCalled {
		t.Fatalf("expected ResetFunc to be invoked")
	}
}
