package membank

// This file adapts Controller to the external CPU interpreter's memory
// accessor contract (github.com/remogatto/z80's MemoryAccessor), the
// same shape the teacher's pkg/emulator.Memory implements, but backed by
// the full bank-switched model instead of a flat 64KiB array.

// ReadByte implements z80.MemoryAccessor.
func (c *Controller) ReadByte(address uint16) byte {
	return c.Fetch(address)
}

// WriteByte implements z80.MemoryAccessor.
func (c *Controller) WriteByte(address uint16, value byte) {
	c.Store(address, value)
}

// ReadByteInternal implements z80.MemoryAccessor.
func (c *Controller) ReadByteInternal(address uint16) byte {
	return c.Fetch(address)
}

// WriteByteInternal implements z80.MemoryAccessor.
func (c *Controller) WriteByteInternal(address uint16, value byte) {
	c.Store(address, value)
}

// Contention hooks are no-ops: spec.md's Non-goals exclude cycle
// accuracy and hardware timing.
func (c *Controller) ContendRead(address uint16, time int)                    {}
func (c *Controller) ContendReadNoMreq(address uint16, time int)              {}
func (c *Controller) ContendReadNoMreq_loop(address uint16, time int, n uint) {}
func (c *Controller) ContendWriteNoMreq(address uint16, time int)             {}
func (c *Controller) ContendWriteNoMreq_loop(address uint16, time int, n uint) {}

// Read and Write are the remaining MemoryAccessor methods the teacher's
// pkg/emulator.Memory implements alongside ReadByte/WriteByte.
func (c *Controller) Read(address uint16) byte { return c.Fetch(address) }

func (c *Controller) Write(address uint16, value byte, protectROM bool) {
	c.Store(address, value)
}

// Data returns a flat snapshot of the currently windowed 64KiB, for
// debuggers/disassemblers; it has no effect on the bank-switched model
// itself.
func (c *Controller) Data() []byte {
	out := make([]byte, 0x10000)
	for addr := 0; addr < 0x10000; addr++ {
		out[addr] = c.Fetch(uint16(addr))
	}
	return out
}
