package memdisk

import (
	"bytes"
	"testing"

	"romwbw/pkg/membank"
)

func TestReadWriteSectorRoundTrip(t *testing.T) {
	mem := membank.New()
	md := &MemDisk{FirstBank: 0x80, BankCount: 2, Enabled: true}

	want := bytes.Repeat([]byte{0xAB}, SectorSize)
	if err := md.WriteSector(mem, 5, want); err != nil {
		t.Fatalf("WriteSector: %v", err)
	}
	got := make([]byte, SectorSize)
	md.ReadSector(mem, 5, got)
	if !bytes.Equal(got, want) {
		t.Fatalf("sector mismatch")
	}
}

func TestROMBackedUnitRejectsWrites(t *testing.T) {
	mem := membank.New()
	md := &MemDisk{FirstBank: 0x00, BankCount: 1, IsROM: true, Enabled: true}
	if err := md.WriteSector(mem, 0, make([]byte, SectorSize)); err == nil {
		t.Fatalf("expected write rejection on ROM-backed unit")
	}
}

func TestSectorCountMatchesBankSpan(t *testing.T) {
	md := &MemDisk{BankCount: 2}
	if got, want := md.SectorCount(), uint32(2*SectorsPerBank); got != want {
		t.Fatalf("SectorCount() = %d, want %d", got, want)
	}
}

func TestReadAtSpansSectorBoundary(t *testing.T) {
	mem := membank.New()
	md := &MemDisk{FirstBank: 0x80, BankCount: 1, Enabled: true}
	sector := make([]byte, SectorSize)
	for i := range sector {
		sector[i] = byte(i)
	}
	md.WriteSector(mem, 0, sector)
	sector2 := make([]byte, SectorSize)
	for i := range sector2 {
		sector2[i] = byte(255 - i)
	}
	md.WriteSector(mem, 1, sector2)

	data, err := md.ReadAt(mem, SectorSize-4, 8)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	want := append(append([]byte{}, sector[SectorSize-4:]...), sector2[:4]...)
	if !bytes.Equal(data, want) {
		t.Fatalf("ReadAt across boundary mismatch: got %v want %v", data, want)
	}
}
