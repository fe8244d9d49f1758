// Package hbios implements the HBIOS dispatch engine: it decodes
// function-group codes placed in register B (with a unit/subfunction in
// C) and services them in host code, following the contract in
// spec.md §4.2.
package hbios

import (
	"romwbw/pkg/boothelp"
	"romwbw/pkg/hddisk"
	"romwbw/pkg/hostio"
	"romwbw/pkg/memdisk"
	"romwbw/pkg/membank"
)

// Config is the subset of the configuration surface (spec.md §6) that
// shapes dispatch behaviour.
type Config struct {
	BlockingInput bool
	StrictIO      bool
	Debug         bool
	EscapeChar    byte
}

// bankCopyStaging holds the {src_bank, dst_bank, count} set by
// SYS set-copy-parameters and consumed by SYS execute-copy.
type bankCopyStaging struct {
	set      bool
	srcBank  byte
	dstBank  byte
	count    uint16
}

// Dispatch is the HBIOS dispatch engine. It owns no CPU state of its
// own; every call receives a Registers accessor bound to the guest CPU
// for the duration of the call.
type Dispatch struct {
	Mem  *membank.Controller
	Host hostio.Host
	Cfg  Config

	MemDisks  [2]*memdisk.MemDisk // index 0 = MD0 (RAM), 1 = MD1 (ROM)
	HardDisks [16]*hddisk.Unit

	// heap cursor: bump allocator in bank 0x80 between 0x0200 and 0x8000
	heapCursor uint16

	// RAM-bank-initialised set: bit i set means bank (0x80|i) has been
	// seeded with page-zero + HCB from ROM bank 0.
	ramInitMask uint16

	copyStage bankCopyStaging

	// waitingForInput is set when CIO input blocking is disabled and no
	// character is ready. That call returns StatusTimeout to the guest;
	// the driver loop does not re-issue it when input arrives.
	waitingForInput bool

	// cursor/video + sound stub state
	vda vdaState
	snd sndState

	// ResetFunc performs the driver-side side effects of SYS reset
	// (rewinding PC to 0); sysDoReset itself re-selects ROM bank 0 and
	// clears the input-wait latch before calling it. Supplied by the
	// driver that owns CPU wiring.
	ResetFunc func()

	romAppsByKey map[byte]RomApp

	outcome Outcome
}

// RomApp is a ROM-application boot entry: a host file bound to a single
// boot-key letter.
type RomApp = boothelp.RomApp

// Outcome tells the driver loop how to treat the guest's PC/SP after a
// Handle call, since the dispatch-port and trap-PC invocation paths
// synthesize a "return" differently (spec.md §9).
type Outcome int

const (
	// OutcomeNormal: synthesize a return exactly as the invocation path
	// normally would.
	OutcomeNormal Outcome = iota
	// OutcomeNoReturn: the handler already repointed PC itself (SYS
	// reset, SYS boot); the driver must not synthesize a return.
	OutcomeNoReturn
)

const (
	heapBase  = 0x0200
	heapLimit = 0x8000
)

// New constructs a Dispatch engine bound to the given memory controller
// and host capability interface.
func New(mem *membank.Controller, host hostio.Host, cfg Config) *Dispatch {
	d := &Dispatch{
		Mem:          mem,
		Host:         host,
		Cfg:          cfg,
		heapCursor:   heapBase,
		romAppsByKey: make(map[byte]RomApp),
	}
	return d
}

// RegisterRomApp adds a ROM-application boot entry.
func (d *Dispatch) RegisterRomApp(app RomApp) {
	d.romAppsByKey[lowerASCII(app.BootKey)] = app
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

// ResetHeap resets the bump allocator; called on core reset.
func (d *Dispatch) ResetHeap() {
	d.heapCursor = heapBase
}

// ResetRamInit clears the RAM-bank-initialised mask; called on core
// reset.
func (d *Dispatch) ResetRamInit() {
	d.ramInitMask = 0
}

// WaitingForInput reports whether the last CIO input call is latched
// waiting for a character (non-blocking mode only).
func (d *Dispatch) WaitingForInput() bool {
	return d.waitingForInput
}

// ClearWaitingForInput clears the input-wait latch; called by SYSRESET.
func (d *Dispatch) ClearWaitingForInput() {
	d.waitingForInput = false
}

// Handle decodes the function-group code in B and routes to the
// appropriate handler family. It is invoked identically from both the
// dispatch-port path and the trap-PC path; the caller is responsible for
// the return-address convention appropriate to its invocation path (see
// Ports.dispatchViaPort and Ports.HandleTrapPC).
func (d *Dispatch) Handle(r Registers) Outcome {
	d.outcome = OutcomeNormal
	fn := r.B()
	switch {
	case fn <= 0x0F:
		d.handleCIO(r)
	case fn >= 0x10 && fn <= 0x1F:
		d.handleDIO(r)
	case fn >= 0x20 && fn <= 0x2F:
		d.handleRTC(r)
	case fn >= 0x30 && fn <= 0x3F:
		setResult(r, StatusNoHardware) // DSKY: no hardware
	case fn >= 0x40 && fn <= 0x4F:
		d.handleVDA(r)
	case fn >= 0x50 && fn <= 0x5F:
		d.handleSND(r)
	case fn >= 0xE0 && fn <= 0xE7:
		d.handleEXT(r)
	case fn >= 0xF0:
		d.handleSYS(r)
	default:
		setResult(r, StatusBadFunction)
	}
	return d.outcome
}

// firstTouchRAMBank seeds page zero (0x0000-0x00FF) and the HCB
// (0x0100-0x01FF) into a RAM bank from ROM bank 0 the first time that
// bank is selected, then patches APITYPE to HBIOS (0) at 0x0112.
func (d *Dispatch) firstTouchRAMBank(bank byte) {
	idx := bank & 0x0F
	mask := uint16(1) << idx
	if d.ramInitMask&mask != 0 {
		return
	}
	for off := uint16(0); off < 0x0200; off++ {
		d.Mem.WriteBank(bank, off, d.Mem.ReadBank(0x00, off))
	}
	d.Mem.WriteBank(bank, 0x0112, 0x00)
	d.ramInitMask |= mask
}
