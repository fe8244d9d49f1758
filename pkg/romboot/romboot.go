// Package romboot implements the ROM-loader and HCB (HBIOS Configuration
// Block) builder: it loads a ROM image into the banked memory
// controller, seeds RAM bank 0x80 from ROM bank 0, writes the
// identification signature, and builds the disk-unit, drive-map, and
// bank-topology tables a booted guest reads to discover configured
// storage (spec.md §3/§4.3).
package romboot

import "romwbw/pkg/membank"

// HCB layout, all offsets relative to the seeded RAM bank's own base
// (bank-relative, matching membank.Controller.WriteBank's offset
// convention), per spec.md §3.
const (
	// HCBBank is the RAM bank the HCB is built into (and the bank a
	// freshly reset CPU starts executing from via shadow-RAM).
	HCBBank = membank.ShadowRAMBank

	apitypeOffset = 0x0112 // 0 selects HBIOS, matching Dispatch.firstTouchRAMBank's patch

	// deviceCountOffset holds the number of drive letters assigned in
	// the drive-map table.
	deviceCountOffset = 0x0C

	// driveMapOffset..+0x0F holds up to 16 drive-letter entries, one
	// per CP/M-visible device A..P; each byte is (slice<<4)|unit, 0xFF
	// for an unassigned letter.
	driveMapOffset = 0x20
	driveMapSlots  = 16

	// diskUnitTableOffset..+0x3F holds up to 16 four-byte entries:
	// {device-type, unit-within-type, attributes, reserved}.
	diskUnitTableOffset = 0x60
	diskUnitEntrySize    = 4
	diskUnitSlots        = 16

	// bankTopologyOffset..+9 holds the bank-topology block.
	bankTopologyOffset = 0xD8

	// Ident signature, in the common area (0xFE00-0xFE02 and
	// 0xFF00-0xFF02, plus the pointer at 0xFFFC-0xFFFD), frozen by
	// MarkIdentPopulated after being written here.
	identSignatureAddr = 0xFE00
	platformSignature  = 0xFF00
	identPointerAddr    = 0xFFFC

	// identVersionMajor/Minor are packed into the ident signature's
	// third byte as (major<<4)|minor; they mirror hbios's reported HBIOS
	// version (hbios.hbiosVersionMajor/Minor) and must be kept in step
	// with it.
	identVersionMajor = 3
	identVersionMinor = 4
)

// Device-type codes recorded in the HCB's disk-unit table (spec.md §3).
const (
	deviceTypeMemDisk byte = 0x00
	deviceTypeHDSK    byte = 0x09
	deviceTypeEmpty   byte = 0xFF
)

// hdAttrHighCapacity is the attributes byte recorded for every hard-disk
// entry in the disk-unit table: bit 5 (high capacity) is always set.
const hdAttrHighCapacity byte = 0x20

// driveMapUnassigned marks an unused drive-map slot.
const driveMapUnassigned byte = 0xFF

// defaultHardDiskSlices is the drive-letter count a configured hard disk
// contributes when Config.HardDiskSlices leaves it unspecified (spec.md
// §4.3's "typically 4, configurable per disk").
const defaultHardDiskSlices = 4

// DiskUnitKind values describing a memory-disk unit's backing (used by
// Config.MemDiskKinds; the HCB disk-unit table itself only distinguishes
// memory-disk vs. hard-disk, not RAM vs. ROM).
const (
	DiskUnitAbsent byte = 0x00
	DiskUnitMemRAM byte = 0x01
	DiskUnitMemROM byte = 0x02
)

// BankTopology is the HCB's bank-topology block: the fixed common/user/
// bios/aux bank IDs plus the memory-disk and app-bank extents a booted
// guest (and, here, the CLI driver) reads back to learn how storage was
// configured.
type BankTopology struct {
	CommonBank byte
	UserBank   byte
	BiosBank   byte
	AuxBank    byte

	RAMDiskFirstBank byte
	RAMDiskBankCount byte
	ROMDiskFirstBank byte
	ROMDiskBankCount byte

	AppBankFirst byte
	AppBankCount byte
}

func (t BankTopology) bytes() [10]byte {
	return [10]byte{
		t.CommonBank, t.UserBank, t.BiosBank, t.AuxBank,
		t.RAMDiskFirstBank, t.RAMDiskBankCount,
		t.ROMDiskFirstBank, t.ROMDiskBankCount,
		t.AppBankFirst, t.AppBankCount,
	}
}

// Config describes the storage configuration to record in the HCB.
type Config struct {
	// MemDiskKinds[i] is DiskUnitAbsent, DiskUnitMemRAM, or
	// DiskUnitMemROM for memory-disk unit i (0 or 1).
	MemDiskKinds [2]byte
	// HardDiskPresent[i] reports whether hard-disk unit i is attached.
	HardDiskPresent [16]bool
	// HardDiskSlices[i], if nonzero, overrides the default drive-letter
	// count hard-disk unit i contributes to the drive map.
	HardDiskSlices [16]int

	// Topology carries the bank IDs/extents written to the HCB's
	// bank-topology block. CommonBank/UserBank/BiosBank are normally
	// fixed by the memory model; RAMDiskFirstBank/Count and
	// ROMDiskFirstBank/Count describe the configured memory disks.
	Topology BankTopology
}

var identSignature = [2]byte{'W', ^byte('W')}

// Init loads rom into the memory controller, seeds the HCB bank, writes
// the identification signature, freezes it against further writes, and
// builds the disk-unit, drive-map, and bank-topology tables.
func Init(mem *membank.Controller, rom []byte, cfg Config) error {
	if err := mem.LoadROM(rom); err != nil {
		return err
	}
	mem.CopyROMBankToRAM(HCBBank, 0x0200)
	mem.WriteBank(HCBBank, apitypeOffset, 0x00)

	deviceCount := writeDriveMapAndDiskUnitTable(mem, cfg)
	mem.WriteBank(HCBBank, deviceCountOffset, byte(deviceCount))
	writeBankTopology(mem, cfg.Topology)

	versionByte := byte(identVersionMajor<<4 | identVersionMinor)
	writeIdent(mem, identSignatureAddr, versionByte)
	writeIdent(mem, platformSignature, versionByte)
	mem.Store(identPointerAddr, byte(platformSignature&0xFF))
	mem.Store(identPointerAddr+1, byte(platformSignature>>8))
	mem.MarkIdentPopulated()

	return nil
}

func writeIdent(mem *membank.Controller, base uint16, versionByte byte) {
	mem.Store(base, identSignature[0])
	mem.Store(base+1, identSignature[1])
	mem.Store(base+2, versionByte)
}

// writeDriveMapAndDiskUnitTable builds both tables together since they
// share the same enabled-memory-disks-then-hard-disks ordering (spec.md
// §4.3), and returns the number of drive letters assigned.
func writeDriveMapAndDiskUnitTable(mem *membank.Controller, cfg Config) int {
	driveMap := make([]byte, driveMapSlots)
	for i := range driveMap {
		driveMap[i] = driveMapUnassigned
	}
	unitTable := make([][diskUnitEntrySize]byte, diskUnitSlots)
	for i := range unitTable {
		unitTable[i] = [diskUnitEntrySize]byte{deviceTypeEmpty, deviceTypeEmpty, deviceTypeEmpty, deviceTypeEmpty}
	}

	driveIdx := 0
	unitIdx := 0

	for md := 0; md < 2; md++ {
		if cfg.MemDiskKinds[md] == DiskUnitAbsent {
			continue
		}
		if driveIdx < driveMapSlots {
			driveMap[driveIdx] = byte(md) // (slice 0 << 4) | unit
			driveIdx++
		}
		if unitIdx < diskUnitSlots {
			unitTable[unitIdx] = [diskUnitEntrySize]byte{deviceTypeMemDisk, byte(md), 0x00, 0x00}
			unitIdx++
		}
	}

	for hd := 0; hd < 16; hd++ {
		if !cfg.HardDiskPresent[hd] {
			continue
		}
		hbiosUnit := byte(hd + 2) // resolveUnit's hard-disk unit numbering
		if unitIdx < diskUnitSlots {
			unitTable[unitIdx] = [diskUnitEntrySize]byte{deviceTypeHDSK, byte(hd), hdAttrHighCapacity, 0x00}
			unitIdx++
		}
		slices := cfg.HardDiskSlices[hd]
		if slices <= 0 {
			slices = defaultHardDiskSlices
		}
		for s := 0; s < slices && driveIdx < driveMapSlots; s++ {
			driveMap[driveIdx] = byte(s<<4) | hbiosUnit
			driveIdx++
		}
	}

	for i, b := range driveMap {
		mem.WriteBank(HCBBank, uint16(driveMapOffset+i), b)
	}
	for i, entry := range unitTable {
		base := diskUnitTableOffset + i*diskUnitEntrySize
		for j, b := range entry {
			mem.WriteBank(HCBBank, uint16(base+j), b)
		}
	}
	return driveIdx
}

func writeBankTopology(mem *membank.Controller, t BankTopology) {
	b := t.bytes()
	for i, v := range b {
		mem.WriteBank(HCBBank, uint16(bankTopologyOffset+i), v)
	}
}

// ReadBankTopology reads back the HCB's bank-topology block. The CLI
// driver uses this after Init to initialise memory disks from the HCB,
// per spec.md §4.3, rather than from its own flags directly.
func ReadBankTopology(mem *membank.Controller) BankTopology {
	raw := make([]byte, 10)
	for i := range raw {
		raw[i] = mem.ReadBank(HCBBank, uint16(bankTopologyOffset+i))
	}
	return BankTopology{
		CommonBank: raw[0], UserBank: raw[1], BiosBank: raw[2], AuxBank: raw[3],
		RAMDiskFirstBank: raw[4], RAMDiskBankCount: raw[5],
		ROMDiskFirstBank: raw[6], ROMDiskBankCount: raw[7],
		AppBankFirst: raw[8], AppBankCount: raw[9],
	}
}

// DriveMap reads back the drive-map table for tests and diagnostics.
func DriveMap(mem *membank.Controller) [driveMapSlots]byte {
	var out [driveMapSlots]byte
	for i := range out {
		out[i] = mem.ReadBank(HCBBank, uint16(driveMapOffset+i))
	}
	return out
}

// DeviceCount reads back the assigned-drive-letter count at HCB+0x0C.
func DeviceCount(mem *membank.Controller) byte {
	return mem.ReadBank(HCBBank, deviceCountOffset)
}

// DiskUnitTable reads back the disk-unit table for tests and
// diagnostics.
func DiskUnitTable(mem *membank.Controller) [diskUnitSlots][diskUnitEntrySize]byte {
	var out [diskUnitSlots][diskUnitEntrySize]byte
	for i := range out {
		base := diskUnitTableOffset + i*diskUnitEntrySize
		for j := range out[i] {
			out[i][j] = mem.ReadBank(HCBBank, uint16(base+j))
		}
	}
	return out
}
