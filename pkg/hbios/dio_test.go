package hbios

import (
	"testing"

	"romwbw/pkg/memdisk"
)

func TestDIOSeekAndTransferRoundTrip(t *testing.T) {
	d, _ := newTestDispatch()
	d.MemDisks[0] = &memdisk.MemDisk{FirstBank: 0x80, BankCount: 2, Enabled: true}

	// Seed guest memory at 0x4000 with a pattern to write out.
	d.Mem.SelectBank(0x81)
	for i := 0; i < 512; i++ {
		d.Mem.Store(uint16(0x4000+i), byte(i))
	}

	seek := &fakeRegs{b: dioSeek, c: 0, d: 0, e: 3}
	d.Handle(seek)
	if Status(int8(seek.a)) != StatusOK {
		t.Fatalf("seek failed: %d", int8(seek.a))
	}

	write := &fakeRegs{b: dioWrite, c: 0, e: 1}
	write.SetHL(0x4000)
	d.Handle(write)
	if Status(int8(write.a)) != StatusOK || write.e != 1 {
		t.Fatalf("write failed: status=%d count=%d", int8(write.a), write.e)
	}

	seek2 := &fakeRegs{b: dioSeek, c: 0, e: 3}
	d.Handle(seek2)
	read := &fakeRegs{b: dioRead, c: 0, e: 1}
	read.SetHL(0x5000)
	d.Handle(read)
	if Status(int8(read.a)) != StatusOK || read.e != 1 {
		t.Fatalf("read failed: status=%d count=%d", int8(read.a), read.e)
	}
	for i := 0; i < 512; i++ {
		if got := d.Mem.Fetch(uint16(0x5000 + i)); got != byte(i) {
			t.Fatalf("byte %d mismatch: got %#02x want %#02x", i, got, byte(i))
		}
	}
}

func TestDIOWriteToROMDiskReturnsReadOnly(t *testing.T) {
	d, _ := newTestDispatch()
	d.MemDisks[1] = &memdisk.MemDisk{FirstBank: 0x00, BankCount: 1, IsROM: true, Enabled: true}

	write := &fakeRegs{b: dioWrite, c: 1, e: 1}
	write.SetHL(0x4000)
	d.Handle(write)
	if Status(int8(write.a)) != StatusReadOnly {
		t.Fatalf("status = %d, want StatusReadOnly", int8(write.a))
	}
}

func TestDIOUnknownUnitReturnsBadUnit(t *testing.T) {
	d, _ := newTestDispatch()
	r := &fakeRegs{b: dioSeek, c: 5} // unit 5: hard disk 3, unattached
	d.Handle(r)
	if Status(int8(r.a)) != StatusBadUnit {
		t.Fatalf("status = %d, want StatusBadUnit", int8(r.a))
	}
}

func TestResolveUnitAliasesSaturateAtMD1(t *testing.T) {
	for _, u := range []byte{0x81, 0x85, 0x8F, 0xC3} {
		kind, idx := resolveUnit(u)
		if kind != unitMemDisk || idx != 1 {
			t.Fatalf("resolveUnit(%#02x) = %v,%d, want memdisk,1", u, kind, idx)
		}
	}
	if kind, idx := resolveUnit(0x80); kind != unitMemDisk || idx != 0 {
		t.Fatalf("resolveUnit(0x80) = %v,%d, want memdisk,0", kind, idx)
	}
}
