// Package membank implements the banked memory controller: a 64KiB
// CPU-visible window over 512KiB of ROM and 512KiB of RAM, with
// shadow-RAM-on-write semantics and ident-region write protection.
package membank

const (
	// BankSize is the size of one ROM or RAM bank (lower 32KiB window).
	BankSize = 0x8000

	// RomBankCount and RamBankCount are the number of banks of each kind.
	RomBankCount = 16
	RamBankCount = 16

	// CommonBank is the RAM bank pinned to the upper 32KiB of the window.
	CommonBank byte = 0x8F

	// ShadowRAMBank is the RAM bank that receives shadow writes made
	// while a ROM bank is selected.
	ShadowRAMBank byte = 0x80

	// RamBankFlag distinguishes RAM bank IDs (high bit set) from ROM (clear).
	RamBankFlag byte = 0x80

	// UpperHalf is the address at which the window switches to the
	// common area.
	UpperHalf = 0x8000
)

// identRange is a half-open [start, end) byte range in the common area
// that, once populated, silently rejects further writes.
type identRange struct {
	start, end uint16
}

// identProtectedRanges gives the ranges, as offsets from the common
// bank's own base (address minus 0x8000), that the ROM-loader/HCB
// builder populates and freezes: the identification signature at
// 0xFE00-0xFE02, the platform signature at 0xFF00-0xFF02, and the
// HBIOS entry pointer at 0xFFFC-0xFFFD (absolute addresses; see
// Store's and WriteBank's ident-protection check).
var identProtectedRanges = []identRange{
	{0xFE00 - UpperHalf, 0xFE03 - UpperHalf},
	{0xFF00 - UpperHalf, 0xFF03 - UpperHalf},
	{0xFFFC - UpperHalf, 0xFFFE - UpperHalf},
}

func isIdentProtected(addr uint16) bool {
	for _, r := range identProtectedRanges {
		if addr >= r.start && addr < r.end {
			return true
		}
	}
	return false
}

// identGate tracks whether the ident-protected bytes have been
// written at least once; writes before that point are allowed so the
// ROM-loader and HCB builder can seed the signature (see romboot).
type identGate struct {
	populated bool
}

// Controller is the banked memory controller. It owns 512KiB of ROM and
// 512KiB of RAM, a per-address shadow-write bitmap over the lower 32KiB,
// and the current bank selection.
type Controller struct {
	rom [RomBankCount][BankSize]byte
	ram [RamBankCount][BankSize]byte

	current byte // currently selected lower-half bank ID

	// shadow records, per lower-half byte offset, whether a write has
	// occurred while a ROM bank was current. Served from ShadowRAMBank
	// on subsequent reads with a ROM bank selected.
	shadow [BankSize / 8]byte

	ident identGate
}

// New returns a Controller with bank 0 (ROM) selected and all memory
// zeroed.
func New() *Controller {
	c := &Controller{current: 0}
	return c
}

func shadowBit(offset uint16) (byteIdx uint16, mask byte) {
	return offset / 8, 1 << (offset % 8)
}

func (c *Controller) shadowSet(offset uint16) bool {
	idx, mask := shadowBit(offset)
	return c.shadow[idx]&mask != 0
}

func (c *Controller) setShadow(offset uint16) {
	idx, mask := shadowBit(offset)
	c.shadow[idx] |= mask
}

// isRAM reports whether a bank ID names a RAM bank.
func isRAM(bank byte) bool {
	return bank&RamBankFlag != 0
}

func ramIndex(bank byte) int {
	return int(bank & 0x0F)
}

func romIndex(bank byte) int {
	return int(bank & 0x0F)
}

// SelectBank changes the current lower-half bank. It is a pure state
// change; it never moves memory contents.
func (c *Controller) SelectBank(bank byte) {
	c.current = bank
}

// CurrentBank returns the currently selected lower-half bank ID.
func (c *Controller) CurrentBank() byte {
	return c.current
}

// Fetch reads one byte from the CPU's 16-bit address space.
func (c *Controller) Fetch(addr uint16) byte {
	if addr >= UpperHalf {
		return c.ram[ramIndex(CommonBank)][addr-UpperHalf]
	}
	if isRAM(c.current) {
		return c.ram[ramIndex(c.current)][addr]
	}
	if c.shadowSet(addr) {
		return c.ram[ramIndex(ShadowRAMBank)][addr]
	}
	return c.rom[romIndex(c.current)][addr]
}

// Store writes one byte to the CPU's 16-bit address space, honoring
// shadow-RAM and ident-region write-protection semantics.
func (c *Controller) Store(addr uint16, v byte) {
	if addr >= UpperHalf {
		c.storeCommon(addr-UpperHalf, v)
		return
	}
	if isRAM(c.current) {
		c.ram[ramIndex(c.current)][addr] = v
		return
	}
	// ROM bank current: writes always land in the shadow RAM bank.
	c.ram[ramIndex(ShadowRAMBank)][addr] = v
	c.setShadow(addr)
}

func (c *Controller) storeCommon(offset uint16, v byte) {
	if isIdentProtected(offset) && c.ident.populated {
		return
	}
	c.ram[ramIndex(CommonBank)][offset] = v
}

// MarkIdentPopulated freezes the ident-protected ranges against further
// writes. Called by the ROM-loader/HCB builder once it has written the
// signature bytes.
func (c *Controller) MarkIdentPopulated() {
	c.ident.populated = true
}

// ReadBank reads a byte directly from a named bank at a lower-half
// offset, bypassing bank selection. Used by DMA-style paths (sector
// transfer, inter-bank copy, HCB seeding). Out-of-range offsets return
// 0xFF.
func (c *Controller) ReadBank(bank byte, offset uint16) byte {
	if offset >= BankSize {
		return 0xFF
	}
	if isRAM(bank) {
		return c.ram[ramIndex(bank)][offset]
	}
	return c.rom[romIndex(bank)][offset]
}

// WriteBank writes a byte directly to a named bank at a lower-half
// offset, bypassing bank selection but still honoring ident-region
// write-protection when the target bank is the common bank.
// Out-of-range offsets are silently dropped.
func (c *Controller) WriteBank(bank byte, offset uint16, v byte) {
	if offset >= BankSize {
		return
	}
	if bank == CommonBank && isIdentProtected(offset) && c.ident.populated {
		return
	}
	if isRAM(bank) {
		c.ram[ramIndex(bank)][offset] = v
		return
	}
	// Writes to a ROM bank's backing array are permitted only through
	// the ROM-loader path (LoadROM); ordinary guest writes to a ROM
	// bank via WriteBank would defeat write protection, so WriteBank
	// never targets c.rom for bank IDs without RamBankFlag set except
	// through LoadROM below.
}

// LoadROM loads raw ROM image bytes into ROM banks starting at bank 0,
// up to 512KiB. Returns an error if data exceeds the ROM capacity or is
// empty.
func (c *Controller) LoadROM(data []byte) error {
	if len(data) == 0 {
		return errEmptyROM
	}
	if len(data) > RomBankCount*BankSize {
		return errROMTooLarge
	}
	for i, b := range data {
		bank := i / BankSize
		offset := i % BankSize
		c.rom[bank][offset] = b
	}
	return nil
}

// CopyROMBankToRAM copies the first n bytes of ROM bank 0 into the given
// RAM bank at offset 0. Used by the ROM-loader to seed a working bank
// and by first-touch RAM-bank initialisation.
func (c *Controller) CopyROMBankToRAM(ramBank byte, n int) {
	copy(c.ram[ramIndex(ramBank)][:n], c.rom[0][:n])
}
