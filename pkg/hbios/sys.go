package hbios

import "romwbw/pkg/membank"

// System function codes: group byte in B is anywhere in 0xF0-0xFF; the
// real subfunction selector is in C and reuses the same hex literals
// RomWBW documents (spec.md §4.2).
const (
	sysReset       = 0xF0
	sysVersion     = 0xF1
	sysSetBank     = 0xF2
	sysGetBank     = 0xF3
	sysSetCopy     = 0xF4
	sysExecCopy    = 0xF5
	sysAlloc       = 0xF6
	sysFree        = 0xF7
	sysGetInfo     = 0xF8
	sysSetInfo     = 0xF9
	sysPeek        = 0xFA
	sysPoke        = 0xFB
	sysIntConfig   = 0xFC
	sysBoot        = 0xFE
)

// HBIOS version reported by SYS version: packed major.minor in DE, a
// platform identifier byte in L.
const (
	hbiosVersionMajor = 3
	hbiosVersionMinor = 4
	hbiosPlatformID   = 0x0C // this emulator's platform slot
)

func (d *Dispatch) handleSYS(r Registers) {
	switch r.C() {
	case sysReset:
		d.sysDoReset(r)
	case sysVersion:
		d.sysDoVersion(r)
	case sysSetBank:
		d.sysDoSetBank(r)
	case sysGetBank:
		d.sysDoGetBank(r)
	case sysSetCopy:
		d.sysDoSetCopy(r)
	case sysExecCopy:
		d.sysDoExecCopy(r)
	case sysAlloc:
		d.sysDoAlloc(r)
	case sysFree:
		setResult(r, StatusOK)
	case sysGetInfo:
		d.sysDoGetInfo(r)
	case sysSetInfo:
		setResult(r, StatusOK) // accepted, not persisted: no host-side effect needed yet
	case sysPeek:
		d.sysDoPeek(r)
	case sysPoke:
		d.sysDoPoke(r)
	case sysIntConfig:
		setResult(r, StatusOK)
	case sysBoot:
		d.sysDoBoot(r)
	default:
		setResult(r, StatusBadFunction)
	}
}

// sysDoReset re-selects ROM bank 0, clears the input-wait latch, and
// invokes the driver's ResetFunc to rewind PC; it does not synthesize a
// return (spec.md §9).
func (d *Dispatch) sysDoReset(r Registers) {
	d.Mem.SelectBank(0)
	d.ClearWaitingForInput()
	if d.ResetFunc != nil {
		d.ResetFunc()
	}
	d.outcome = OutcomeNoReturn
}

func (d *Dispatch) sysDoVersion(r Registers) {
	r.SetDE(uint16(hbiosVersionMajor)<<8 | uint16(hbiosVersionMinor))
	r.SetL(hbiosPlatformID)
	setResult(r, StatusOK)
}

// sysDoSetBank selects the bank named in E, seeding it on first touch if
// it is a RAM bank, and returns the previously selected bank in C.
func (d *Dispatch) sysDoSetBank(r Registers) {
	prev := d.Mem.CurrentBank()
	next := r.E()
	d.Mem.SelectBank(next)
	if next&membank.RamBankFlag != 0 {
		d.firstTouchRAMBank(next)
	}
	r.SetC(prev)
	setResult(r, StatusOK)
}

func (d *Dispatch) sysDoGetBank(r Registers) {
	r.SetC(d.Mem.CurrentBank())
	setResult(r, StatusOK)
}

func (d *Dispatch) sysDoSetCopy(r Registers) {
	d.copyStage = bankCopyStaging{
		set:     true,
		srcBank: r.D(),
		dstBank: r.E(),
		count:   r.HL(),
	}
	setResult(r, StatusOK)
}

// sysDoExecCopy consumes the staged {src_bank, dst_bank, count} with the
// source address in HL and destination in DE, explicit-bank-qualified
// (so a common-area address still overrides to bank 0x8F).
func (d *Dispatch) sysDoExecCopy(r Registers) {
	if !d.copyStage.set {
		setResult(r, StatusBadConfig)
		return
	}
	st := d.copyStage
	src, dst := r.HL(), r.DE()
	for i := uint16(0); i < st.count; i++ {
		v := d.peekGuest(src+i, true, st.srcBank)
		d.pokeGuest(dst+i, true, st.dstBank, v)
	}
	d.copyStage.set = false
	setResult(r, StatusOK)
}

// sysDoAlloc is a bump allocator over bank 0x80's 0x0200-0x7FFF range.
func (d *Dispatch) sysDoAlloc(r Registers) {
	size := r.HL()
	if size == 0 || uint32(d.heapCursor)+uint32(size) > heapLimit {
		setResult(r, StatusNoMemory)
		return
	}
	addr := d.heapCursor
	d.heapCursor += size
	r.SetHL(addr)
	setResult(r, StatusOK)
}

// Get-info keys, selected by register E (spec.md line 126's "CPU info,
// memory info, bank info, app-bank info, switch value, timer, boot
// info, device list" family).
const (
	infoKeyCPUFreq    = 0
	infoKeyMemSize    = 1
	infoKeyBank       = 2
	infoKeyAppBank    = 3
	infoKeyBootInfo   = 4
	infoKeySwitchVal  = 5
	infoKeyTimer      = 6
	infoKeyDeviceList = 7
)

func (d *Dispatch) sysDoGetInfo(r Registers) {
	switch r.E() {
	case infoKeyCPUFreq:
		r.SetHL(0) // no wall-clock CPU frequency to report
	case infoKeyMemSize:
		r.SetHL(uint16(membank.RomBankCount+membank.RamBankCount) * (membank.BankSize / 1024))
	case infoKeyBank:
		r.SetC(d.Mem.CurrentBank())
	case infoKeyAppBank:
		r.SetC(membank.CommonBank)
	case infoKeyBootInfo:
		r.SetHL(0)
	case infoKeySwitchVal:
		r.SetC(0) // no physical configuration-switch bank to report
	case infoKeyTimer:
		r.SetHL(0) // no periodic timer tick counter maintained
	case infoKeyDeviceList:
		r.SetC(d.deviceCount())
	default:
		setResult(r, StatusNotImplemented)
		return
	}
	setResult(r, StatusOK)
}

// deviceCount returns the number of configured disk devices (both
// memory-disk units and hard-disk units), backing the get-info
// device-list key.
func (d *Dispatch) deviceCount() byte {
	n := 0
	for _, md := range d.MemDisks {
		if md != nil && md.Enabled {
			n++
		}
	}
	for _, hd := range d.HardDisks {
		if hd != nil {
			n++
		}
	}
	return byte(n)
}

func (d *Dispatch) sysDoPeek(r Registers) {
	v := d.peekGuest(r.HL(), true, r.D())
	r.SetE(v)
	setResult(r, StatusOK)
}

func (d *Dispatch) sysDoPoke(r Registers) {
	d.pokeGuest(r.HL(), true, r.D(), r.E())
	setResult(r, StatusOK)
}
