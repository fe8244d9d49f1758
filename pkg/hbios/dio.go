package hbios

import "fmt"

// Disk I/O function codes (function group 0x10-0x1F; unit in C).
const (
	dioSeek     = 0x10
	dioRead     = 0x11
	dioWrite    = 0x12
	dioCapacity = 0x13
	dioGeometry = 0x14
	dioMediaID  = 0x15
	dioFormat   = 0x16
	dioDefMedia = 0x17
)

// Media-ID codes returned in C by dioMediaID.
const (
	mediaMDRAM byte = 0x00
	mediaMDROM byte = 0x01
	mediaHD    byte = 0x02
	mediaHDNEW byte = 0x03
)

type unitKind int

const (
	unitNone unitKind = iota
	unitMemDisk
	unitHardDisk
)

// resolveUnit maps an HBIOS disk-unit byte to a memory-disk or hard-disk
// index, per spec.md's unit numbering: 0/1 are MD0/MD1 directly; the low
// nibble of 0x80-0x8F and all of 0xC0-0xCF alias MD0/MD1 (saturating at
// MD1 for any nonzero nibble); 2-17 and 0x90-0x9F address hard disks 0-15.
func resolveUnit(u byte) (unitKind, int) {
	switch {
	case u == 0:
		return unitMemDisk, 0
	case u == 1:
		return unitMemDisk, 1
	case u >= 0x80 && u <= 0x8F:
		if u&0x0F == 0 {
			return unitMemDisk, 0
		}
		return unitMemDisk, 1
	case u >= 0xC0 && u <= 0xCF:
		return unitMemDisk, 1
	case u >= 2 && u <= 17:
		return unitHardDisk, int(u - 2)
	case u >= 0x90 && u <= 0x9F:
		return unitHardDisk, int(u - 0x90)
	default:
		return unitNone, 0
	}
}

func (d *Dispatch) handleDIO(r Registers) {
	switch r.B() {
	case dioSeek:
		d.dioDoSeek(r)
	case dioRead:
		d.dioTransfer(r, false)
	case dioWrite:
		d.dioTransfer(r, true)
	case dioCapacity:
		d.dioDoCapacity(r)
	case dioGeometry:
		d.dioDoGeometry(r)
	case dioMediaID:
		d.dioDoMediaID(r)
	case dioFormat, dioDefMedia:
		setResult(r, StatusNotImplemented)
	default:
		setResult(r, StatusBadFunction)
	}
}

func (d *Dispatch) dioDoSeek(r Registers) {
	lba := (uint32(r.DE()) << 16) | uint32(r.HL())
	lba &^= 0x80000000 // high bit flags LBA-mode in real firmware; this engine is LBA-only
	kind, idx := resolveUnit(r.C())
	switch kind {
	case unitMemDisk:
		md := d.MemDisks[idx]
		if md == nil || !md.Enabled {
			setResult(r, StatusBadUnit)
			return
		}
		md.CurrentLBA = lba
	case unitHardDisk:
		hd := d.HardDisks[idx]
		if hd == nil {
			setResult(r, StatusBadUnit)
			return
		}
		hd.CurrentLBA = lba
	default:
		setResult(r, StatusBadUnit)
		return
	}
	setResult(r, StatusOK)
}

// dioTransfer moves r.E() sectors between the seeked-to LBA of the
// addressed unit and guest memory at HL, bank-qualified by D (bit 7 =
// explicit bank in D&0x7F; common-area addresses always go to bank
// 0x8F). The actual sector count transferred is returned in E.
func (d *Dispatch) dioTransfer(r Registers, isWrite bool) {
	unit := r.C()
	explicit := r.D()&0x80 != 0
	bank := r.D() &^ 0x80
	addr := r.HL()
	want := int(r.E())

	kind, idx := resolveUnit(unit)
	var sectorIO func(lba uint32, buf []byte, write bool) error
	var advance func(n uint32)
	var isROM bool

	switch kind {
	case unitMemDisk:
		md := d.MemDisks[idx]
		if md == nil || !md.Enabled {
			setResult(r, StatusBadUnit)
			r.SetE(0)
			return
		}
		isROM = md.IsROM
		base := md.CurrentLBA
		sectorIO = func(lba uint32, buf []byte, write bool) error {
			if write {
				return md.WriteSector(d.Mem, lba, buf)
			}
			md.ReadSector(d.Mem, lba, buf)
			return nil
		}
		advance = func(n uint32) { md.CurrentLBA = base + n }
	case unitHardDisk:
		hd := d.HardDisks[idx]
		if hd == nil {
			setResult(r, StatusBadUnit)
			r.SetE(0)
			return
		}
		base := hd.CurrentLBA
		sectorIO = func(lba uint32, buf []byte, write bool) error {
			if write {
				return hd.WriteSector(lba, buf)
			}
			return hd.ReadSector(lba, buf)
		}
		advance = func(n uint32) { hd.CurrentLBA = base + n }
	default:
		setResult(r, StatusBadUnit)
		r.SetE(0)
		return
	}

	var baseLBA uint32
	switch kind {
	case unitMemDisk:
		baseLBA = d.MemDisks[idx].CurrentLBA
	case unitHardDisk:
		baseLBA = d.HardDisks[idx].CurrentLBA
	}

	transferred := 0
	buf := make([]byte, 512)
	for i := 0; i < want; i++ {
		if isWrite {
			for j := range buf {
				buf[j] = d.peekGuest(addr+uint16(j), explicit, bank)
			}
			if err := sectorIO(baseLBA+uint32(i), buf, true); err != nil {
				break
			}
		} else {
			if err := sectorIO(baseLBA+uint32(i), buf, false); err != nil {
				break
			}
			for j := range buf {
				d.pokeGuest(addr+uint16(j), explicit, bank, buf[j])
			}
		}
		transferred++
		addr += 512
	}
	advance(uint32(transferred))
	r.SetE(byte(transferred))

	switch {
	case transferred == want:
		setResult(r, StatusOK)
	case isWrite && isROM:
		setResult(r, StatusReadOnly)
	default:
		setResult(r, StatusIOError)
	}
}

func (d *Dispatch) dioDoCapacity(r Registers) {
	kind, idx := resolveUnit(r.C())
	var total uint32
	switch kind {
	case unitMemDisk:
		md := d.MemDisks[idx]
		if md == nil || !md.Enabled {
			setResult(r, StatusBadUnit)
			return
		}
		total = md.SectorCount()
	case unitHardDisk:
		hd := d.HardDisks[idx]
		if hd == nil {
			setResult(r, StatusBadUnit)
			return
		}
		total = hd.Capacity()
	default:
		setResult(r, StatusBadUnit)
		return
	}
	r.SetDE(uint16(total >> 16))
	r.SetHL(uint16(total))
	setResult(r, StatusOK)
}

// Synthetic CHS geometry this engine reports for every unit: 16 heads,
// 63 sectors/track, enough tracks to cover the unit's capacity.
const (
	geomHeads        = 16
	geomSectorsTrack = 63
)

func (d *Dispatch) dioDoGeometry(r Registers) {
	kind, idx := resolveUnit(r.C())
	var total uint32
	switch kind {
	case unitMemDisk:
		md := d.MemDisks[idx]
		if md == nil || !md.Enabled {
			setResult(r, StatusBadUnit)
			return
		}
		total = md.SectorCount()
	case unitHardDisk:
		hd := d.HardDisks[idx]
		if hd == nil {
			setResult(r, StatusBadUnit)
			return
		}
		total = hd.Capacity()
	default:
		setResult(r, StatusBadUnit)
		return
	}
	tracks := (total + geomHeads*geomSectorsTrack - 1) / (geomHeads * geomSectorsTrack)
	r.SetD(geomHeads)
	r.SetE(geomSectorsTrack)
	r.SetHL(uint16(tracks))
	setResult(r, StatusOK)
}

// printDeviceSummary writes the boot menu's "d" command output: a
// banner line, a column header, and one line per configured
// memory-disk or hard-disk unit naming its capacity (spec.md §4.2
// invocation path 3, §8 scenario 2). hostio.Host only exposes
// byte-at-a-time console output, so each line is written through
// writeHostLine.
func (d *Dispatch) printDeviceSummary() {
	d.writeHostLine("Disk Device Summary")
	d.writeHostLine("Unit Dev  Type  Capacity")
	if md := d.MemDisks[0]; md != nil && md.Enabled {
		d.writeHostLine(fmt.Sprintf("  0  MD0   MDRAM %s", formatCapacityKB(md.SectorCount()/2)))
	}
	if md := d.MemDisks[1]; md != nil && md.Enabled {
		d.writeHostLine(fmt.Sprintf("  1  MD1   MDROM %s", formatCapacityKB(md.SectorCount()/2)))
	}
	for i, hd := range d.HardDisks {
		if hd == nil {
			continue
		}
		d.writeHostLine(fmt.Sprintf(" %2d  HDSK%d HDSK  %s", i+2, i, formatCapacityKB(hd.Capacity()/2)))
	}
}

// formatCapacityKB renders a capacity given in KiB as "NNNKB" below
// 1024 KiB, or "NNNMB" at or above it (spec.md §8 scenario 2).
func formatCapacityKB(kib uint32) string {
	if kib < 1024 {
		return fmt.Sprintf("%dKB", kib)
	}
	return fmt.Sprintf("%dMB", kib/1024)
}

// writeHostLine writes s followed by a CRLF to the console, one byte
// at a time, matching the CRLF convention guest output uses.
func (d *Dispatch) writeHostLine(s string) {
	for i := 0; i < len(s); i++ {
		d.Host.WriteChar(s[i])
	}
	d.Host.WriteChar(0x0D)
	d.Host.WriteChar(0x0A)
}

func (d *Dispatch) dioDoMediaID(r Registers) {
	kind, idx := resolveUnit(r.C())
	switch kind {
	case unitMemDisk:
		md := d.MemDisks[idx]
		if md == nil || !md.Enabled {
			setResult(r, StatusBadUnit)
			return
		}
		if md.IsROM {
			r.SetC(mediaMDROM)
		} else {
			r.SetC(mediaMDRAM)
		}
	case unitHardDisk:
		hd := d.HardDisks[idx]
		if hd == nil {
			setResult(r, StatusBadUnit)
			return
		}
		id, err := hd.MediaID()
		if err != nil {
			setResult(r, StatusIOError)
			return
		}
		if id == "HDNEW" {
			r.SetC(mediaHDNEW)
		} else {
			r.SetC(mediaHD)
		}
	default:
		setResult(r, StatusBadUnit)
		return
	}
	setResult(r, StatusOK)
}
