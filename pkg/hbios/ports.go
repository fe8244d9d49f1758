package hbios

import (
	"romwbw/pkg/signalport"
)

// Bank-select, bank-call, signal, and dispatch I/O ports (spec.md §2/§4).
const (
	PortBankSelectA = 0x78
	PortBankSelectB = 0x7C
	PortBankCall    = 0xED
	PortSignal      = 0xEE
	PortDispatch    = 0xEF
)

// deviceSummaryCallAddr is the bank-call target address the boot menu's
// "d" console command uses to request the device summary (spec.md §4.2
// invocation path 3, §8 scenario 2). It is intercepted by the host
// rather than jumped to: nothing in guest ROM lives there.
const deviceSummaryCallAddr = 0x0406

// Ports adapts the dispatch engine to the z80.PortAccessor contract.
// It is bound to a Registers accessor over the same CPU the dispatcher
// services, since port writes carry no register file of their own.
type Ports struct {
	D    *Dispatch
	Regs Registers
	Sig  *signalport.State
}

// NewPorts returns a Ports bound to the given dispatch engine, register
// accessor, and signal-port state machine.
func NewPorts(d *Dispatch, regs Registers, sig *signalport.State) *Ports {
	return &Ports{D: d, Regs: regs, Sig: sig}
}

func (p *Ports) ReadPort(address uint16) byte {
	switch address & 0xFF {
	case PortBankSelectA, PortBankSelectB:
		return p.D.Mem.CurrentBank()
	case PortSignal:
		return p.Sig.Read()
	default:
		return 0xFF
	}
}

func (p *Ports) WritePort(address uint16, v byte) {
	switch address & 0xFF {
	case PortBankSelectA, PortBankSelectB:
		p.selectBank(v)
	case PortBankCall:
		p.bankCall(v)
	case PortSignal:
		p.Sig.Write(v)
	case PortDispatch:
		p.dispatchViaPort()
	}
}

func (p *Ports) selectBank(bank byte) {
	p.D.Mem.SelectBank(bank)
	if bank&0x80 != 0 {
		p.D.firstTouchRAMBank(bank)
	}
}

// bankCall implements an inter-bank subroutine call: it pushes the
// current PC onto the guest stack, switches to the named bank, and
// jumps to the address the guest left in HL (RomWBW's bank-call
// convention places the target there, not at a fixed vector),
// mirroring a Z80 CALL whose target bank differs from the caller's.
//
// A target of deviceSummaryCallAddr is special-cased: it is not guest
// code to run but the boot menu's request for the host-synthesized
// disk device summary, so it is serviced directly and the bank/PC are
// left untouched.
func (p *Ports) bankCall(bank byte) {
	target := p.Regs.HL()
	if target == deviceSummaryCallAddr {
		p.D.printDeviceSummary()
		return
	}
	sp := p.Regs.SP() - 2
	p.Regs.SetSP(sp)
	ret := p.Regs.PC()
	p.D.Mem.Store(sp, byte(ret))
	p.D.Mem.Store(sp+1, byte(ret>>8))
	p.selectBank(bank)
	p.Regs.SetPC(target)
}

// dispatchViaPort services an HBIOS call issued through the classic
// "OUT (0EFh),A" convention: the guest reaches this port from a small
// ROM stub whose own RET will fire immediately after this call returns,
// so the normal case needs no PC/SP adjustment. SYS reset and SYS boot
// set PC to a target themselves and report OutcomeNoReturn; for those,
// the pending return address on the stack is overwritten with that
// target so the stub's RET lands there instead of back at the caller.
func (p *Ports) dispatchViaPort() {
	outcome := p.D.Handle(p.Regs)
	if outcome == OutcomeNoReturn {
		target := p.Regs.PC()
		sp := p.Regs.SP()
		p.D.Mem.Store(sp, byte(target))
		p.D.Mem.Store(sp+1, byte(target>>8))
	}
}

// HandleTrapPC services an HBIOS call reached by the guest's PC landing
// on a registered (or default) dispatch address, rather than by an OUT
// instruction. There is no guest RET to rely on: the dispatcher must
// synthesize the return itself by popping the address a CALL to this
// vector pushed, unless the call repointed PC itself (reset/boot), in
// which case that pushed return address is simply discarded. The driver
// loop calls this instead of executing the trapped address's guest
// code.
func (p *Ports) HandleTrapPC() {
	outcome := p.D.Handle(p.Regs)
	sp := p.Regs.SP()
	if outcome == OutcomeNoReturn {
		p.Regs.SetSP(sp + 2)
		return
	}
	lo := p.D.Mem.Fetch(sp)
	hi := p.D.Mem.Fetch(sp + 1)
	p.Regs.SetSP(sp + 2)
	p.Regs.SetPC(uint16(lo) | uint16(hi)<<8)
}

func (p *Ports) ReadPortInternal(address uint16, contend bool) byte {
	return p.ReadPort(address)
}

func (p *Ports) WritePortInternal(address uint16, v byte, contend bool) {
	p.WritePort(address, v)
}

func (p *Ports) ContendPortPreio(address uint16)  {}
func (p *Ports) ContendPortPostio(address uint16) {}
