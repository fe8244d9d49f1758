package cpuadapt

import (
	"testing"

	"github.com/remogatto/z80"

	"romwbw/pkg/hbios"
)

// nullMemory and nullPorts give z80.NewZ80 the accessors it requires
// without pulling in the banked memory controller, keeping this test
// scoped to the register-adapter contract.
type nullMemory struct{}

func (nullMemory) ReadByte(uint16) byte                             { return 0 }
func (nullMemory) WriteByte(uint16, byte)                           {}
func (nullMemory) ReadByteInternal(uint16) byte                     { return 0 }
func (nullMemory) WriteByteInternal(uint16, byte)                   {}
func (nullMemory) ContendRead(uint16, int)                          {}
func (nullMemory) ContendReadNoMreq(uint16, int)                    {}
func (nullMemory) ContendReadNoMreq_loop(uint16, int, uint)         {}
func (nullMemory) ContendWriteNoMreq(uint16, int)                   {}
func (nullMemory) ContendWriteNoMreq_loop(uint16, int, uint)        {}
func (nullMemory) Read(uint16) byte                                 { return 0 }
func (nullMemory) Write(uint16, byte, bool)                         {}
func (nullMemory) Data() []byte                                     { return nil }

type nullPorts struct{}

func (nullPorts) ReadPort(uint16) byte                     { return 0xFF }
func (nullPorts) WritePort(uint16, byte)                   {}
func (nullPorts) ReadPortInternal(uint16, bool) byte        { return 0xFF }
func (nullPorts) WritePortInternal(uint16, byte, bool)      {}
func (nullPorts) ContendPortPreio(uint16)                   {}
func (nullPorts) ContendPortPostio(uint16)                  {}

func TestAdapterRegisterRoundTrip(t *testing.T) {
	cpu := z80.NewZ80(nullMemory{}, nullPorts{})
	a := New(cpu)

	a.SetA(0x42)
	if a.A() != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", a.A())
	}

	a.SetBC(0x1234)
	if a.BC() != 0x1234 || a.B() != 0x12 || a.C() != 0x34 {
		t.Fatalf("BC = %#04x (B=%#02x C=%#02x), want 0x1234", a.BC(), a.B(), a.C())
	}

	a.SetHL(0x8000)
	if a.HL() != 0x8000 {
		t.Fatalf("HL = %#04x, want 0x8000", a.HL())
	}

	a.SetSP(0xFFFE)
	a.SetPC(0x0100)
	if a.SP() != 0xFFFE || a.PC() != 0x0100 {
		t.Fatalf("SP/PC = %#04x/%#04x, want 0xFFFE/0x0100", a.SP(), a.PC())
	}

	a.SetZeroFlag(true)
	if a.F()&flagZ == 0 {
		t.Fatalf("F = %#02x, want zero flag set", a.F())
	}
	a.SetZeroFlag(false)
	if a.F()&flagZ != 0 {
		t.Fatalf("F = %#02x, want zero flag clear", a.F())
	}

	a.SetCarryFlag(true)
	if a.F()&flagC == 0 {
		t.Fatalf("F = %#02x, want carry flag set", a.F())
	}
}

var _ hbios.Registers = (*Adapter)(nil)
