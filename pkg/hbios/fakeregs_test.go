package hbios

// fakeRegs is a plain in-memory Registers implementation for tests; it
// needs no real CPU, only the accessors Dispatch calls.
type fakeRegs struct {
	a, f, b, c, d, e, h, l byte
	ix, iy, sp, pc         uint16
	zero, carry            bool
}

func (r *fakeRegs) A() byte     { return r.a }
func (r *fakeRegs) SetA(v byte) { r.a = v }
func (r *fakeRegs) F() byte     { return r.f }
func (r *fakeRegs) SetF(v byte) { r.f = v }
func (r *fakeRegs) B() byte     { return r.b }
func (r *fakeRegs) SetB(v byte) { r.b = v }
func (r *fakeRegs) C() byte     { return r.c }
func (r *fakeRegs) SetC(v byte) { r.c = v }
func (r *fakeRegs) D() byte     { return r.d }
func (r *fakeRegs) SetD(v byte) { r.d = v }
func (r *fakeRegs) E() byte     { return r.e }
func (r *fakeRegs) SetE(v byte) { r.e = v }
func (r *fakeRegs) H() byte     { return r.h }
func (r *fakeRegs) SetH(v byte) { r.h = v }
func (r *fakeRegs) L() byte     { return r.l }
func (r *fakeRegs) SetL(v byte) { r.l = v }

func (r *fakeRegs) BC() uint16     { return uint16(r.b)<<8 | uint16(r.c) }
func (r *fakeRegs) SetBC(v uint16) { r.b, r.c = byte(v>>8), byte(v) }
func (r *fakeRegs) DE() uint16     { return uint16(r.d)<<8 | uint16(r.e) }
func (r *fakeRegs) SetDE(v uint16) { r.d, r.e = byte(v>>8), byte(v) }
func (r *fakeRegs) HL() uint16     { return uint16(r.h)<<8 | uint16(r.l) }
func (r *fakeRegs) SetHL(v uint16) { r.h, r.l = byte(v>>8), byte(v) }

func (r *fakeRegs) IX() uint16     { return r.ix }
func (r *fakeRegs) SetIX(v uint16) { r.ix = v }
func (r *fakeRegs) IY() uint16     { return r.iy }
func (r *fakeRegs) SetIY(v uint16) { r.iy = v }
func (r *fakeRegs) SP() uint16     { return r.sp }
func (r *fakeRegs) SetSP(v uint16) { r.sp = v }
func (r *fakeRegs) PC() uint16     { return r.pc }
func (r *fakeRegs) SetPC(v uint16) { r.pc = v }

func (r *fakeRegs) SetZeroFlag(z bool)  { r.zero = z }
func (r *fakeRegs) SetCarryFlag(c bool) { r.carry = c }

var _ Registers = (*fakeRegs)(nil)
