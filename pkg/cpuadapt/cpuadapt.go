// Package cpuadapt binds github.com/remogatto/z80's CPU core to
// hbios.Registers, the narrow accessor the dispatch engine uses to read
// and mutate guest register state, per the external-interpreter contract
// in spec.md §6.
package cpuadapt

import (
	"github.com/remogatto/z80"

	"romwbw/pkg/hbios"
)

// Z80 flag-register bit positions (standard Z80 status flag layout).
const (
	flagC  = 0x01
	flagN  = 0x02
	flagPV = 0x04
	flagF3 = 0x08
	flagH  = 0x10
	flagF5 = 0x20
	flagZ  = 0x40
	flagS  = 0x80
)

// Adapter implements hbios.Registers over a live *z80.Z80.
type Adapter struct {
	cpu *z80.Z80
}

// New returns an Adapter bound to cpu.
func New(cpu *z80.Z80) *Adapter {
	return &Adapter{cpu: cpu}
}

func (a *Adapter) A() byte     { return a.cpu.A }
func (a *Adapter) SetA(v byte) { a.cpu.A = v }
func (a *Adapter) F() byte     { return a.cpu.F }
func (a *Adapter) SetF(v byte) { a.cpu.F = v }
func (a *Adapter) B() byte     { return a.cpu.B }
func (a *Adapter) SetB(v byte) { a.cpu.B = v }
func (a *Adapter) C() byte     { return a.cpu.C }
func (a *Adapter) SetC(v byte) { a.cpu.C = v }
func (a *Adapter) D() byte     { return a.cpu.D }
func (a *Adapter) SetD(v byte) { a.cpu.D = v }
func (a *Adapter) E() byte     { return a.cpu.E }
func (a *Adapter) SetE(v byte) { a.cpu.E = v }
func (a *Adapter) H() byte     { return a.cpu.H }
func (a *Adapter) SetH(v byte) { a.cpu.H = v }
func (a *Adapter) L() byte     { return a.cpu.L }
func (a *Adapter) SetL(v byte) { a.cpu.L = v }

func (a *Adapter) BC() uint16     { return a.cpu.BC() }
func (a *Adapter) SetBC(v uint16) { a.cpu.SetBC(v) }
func (a *Adapter) DE() uint16     { return a.cpu.DE() }
func (a *Adapter) SetDE(v uint16) { a.cpu.SetDE(v) }
func (a *Adapter) HL() uint16     { return a.cpu.HL() }
func (a *Adapter) SetHL(v uint16) { a.cpu.SetHL(v) }

func (a *Adapter) IX() uint16     { return a.cpu.IX() }
func (a *Adapter) SetIX(v uint16) { a.cpu.SetIX(v) }
func (a *Adapter) IY() uint16     { return a.cpu.IY() }
func (a *Adapter) SetIY(v uint16) { a.cpu.SetIY(v) }
func (a *Adapter) SP() uint16     { return a.cpu.SP() }
func (a *Adapter) SetSP(v uint16) { a.cpu.SetSP(v) }
func (a *Adapter) PC() uint16     { return a.cpu.PC() }
func (a *Adapter) SetPC(v uint16) { a.cpu.SetPC(v) }

func (a *Adapter) SetZeroFlag(z bool) {
	if z {
		a.cpu.F |= flagZ
	} else {
		a.cpu.F &^= flagZ
	}
}

func (a *Adapter) SetCarryFlag(c bool) {
	if c {
		a.cpu.F |= flagC
	} else {
		a.cpu.F &^= flagC
	}
}

var _ hbios.Registers = (*Adapter)(nil)
