package hbios

// Registers abstracts the guest CPU's register file. The dispatcher never
// touches raw CPU state except through this accessor, so it can be bound
// to any CPU interpreter satisfying the contract in spec.md §6 (here,
// pkg/cpuadapt wraps github.com/remogatto/z80).
type Registers interface {
	A() byte
	SetA(byte)
	F() byte
	SetF(byte)
	B() byte
	SetB(byte)
	C() byte
	SetC(byte)
	D() byte
	SetD(byte)
	E() byte
	SetE(byte)
	H() byte
	SetH(byte)
	L() byte
	SetL(byte)

	BC() uint16
	SetBC(uint16)
	DE() uint16
	SetDE(uint16)
	HL() uint16
	SetHL(uint16)

	IX() uint16
	SetIX(uint16)
	IY() uint16
	SetIY(uint16)
	SP() uint16
	SetSP(uint16)
	PC() uint16
	SetPC(uint16)

	SetZeroFlag(bool)
	SetCarryFlag(bool)
}

// setResult writes the standard HBIOS result convention: status byte in
// A, Zero flag reflecting success.
func setResult(r Registers, s Status) {
	r.SetA(s.Byte())
	r.SetZeroFlag(s.Zero())
}
