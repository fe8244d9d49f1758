// Package memdisk implements the memory-disk engine: RAM- or ROM-backed
// block devices addressed as a contiguous run of banks in a
// membank.Controller, with 512-byte sectors (64 sectors per 32KiB bank).
package memdisk

import "romwbw/pkg/membank"

const (
	SectorSize       = 512
	SectorsPerBank   = membank.BankSize / SectorSize
	sectorShift      = 9 // log2(SectorSize)
)

// MemDisk is one memory-disk unit: a run of BankCount consecutive banks
// starting at FirstBank, RAM- or ROM-backed.
type MemDisk struct {
	FirstBank  byte
	BankCount  int
	IsROM      bool
	Enabled    bool
	CurrentLBA uint32
}

// SectorCount returns the unit's total addressable sector count.
func (m *MemDisk) SectorCount() uint32 {
	return uint32(m.BankCount * SectorsPerBank)
}

func (m *MemDisk) bankAndOffset(lba uint32) (byte, uint16) {
	bank := m.FirstBank + byte(lba/SectorsPerBank)
	offset := uint16(lba%SectorsPerBank) * SectorSize
	return bank, offset
}

// ReadSector reads one 512-byte sector into buf (which must be at least
// SectorSize long) via the controller's direct bank accessors.
func (m *MemDisk) ReadSector(mem *membank.Controller, lba uint32, buf []byte) {
	bank, offset := m.bankAndOffset(lba)
	for i := 0; i < SectorSize; i++ {
		buf[i] = mem.ReadBank(bank, offset+uint16(i))
	}
}

// WriteSector writes one 512-byte sector. Writes to a ROM-backed unit are
// rejected; the caller (hbios.Dispatch) maps that to StatusReadOnly.
func (m *MemDisk) WriteSector(mem *membank.Controller, lba uint32, buf []byte) error {
	if m.IsROM {
		return errReadOnly
	}
	bank, offset := m.bankAndOffset(lba)
	for i := 0; i < SectorSize; i++ {
		mem.WriteBank(bank, offset+uint16(i), buf[i])
	}
	return nil
}

// ReadAt reads length bytes starting at byte offset offset, spanning
// sector boundaries as needed. hbios's SYS boot uses it to read boot
// metadata and payload, so a memory disk can be a boot source just as a
// file-backed hard disk can.
func (m *MemDisk) ReadAt(mem *membank.Controller, offset int64, length int) ([]byte, error) {
	out := make([]byte, length)
	lba := uint32(offset >> sectorShift)
	inSector := int(offset & (SectorSize - 1))
	var sector [SectorSize]byte
	written := 0
	for written < length {
		m.ReadSector(mem, lba, sector[:])
		n := copy(out[written:], sector[inSector:])
		written += n
		inSector = 0
		lba++
	}
	return out, nil
}
