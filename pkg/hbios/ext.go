package hbios

// Extension function codes (function group 0xE0-0xE7): hard-disk slice
// geometry calculation and host-file transfer (load/save a range of guest
// memory from/to a plain host file, and report a host file's size).
const (
	extSliceCalc = 0xE0
	extFileLoad  = 0xE1
	extFileSave  = 0xE2
	extFileSize  = 0xE3
)

func (d *Dispatch) handleEXT(r Registers) {
	switch r.B() {
	case extSliceCalc:
		d.extDoSliceCalc(r)
	case extFileLoad:
		d.extDoFileLoad(r)
	case extFileSave:
		d.extDoFileSave(r)
	case extFileSize:
		d.extDoFileSize(r)
	default:
		setResult(r, StatusBadFunction)
	}
}

// extDoSliceCalc resolves a (hard-disk unit, slice) pair to an absolute
// LBA, returned in DE:HL, with the unit's media-ID byte in C. Memory-disk
// units do not slice; only hard-disk units (2-17, 0x90-0x9F) are valid.
func (d *Dispatch) extDoSliceCalc(r Registers) {
	kind, idx := resolveUnit(r.C())
	if kind != unitHardDisk {
		setResult(r, StatusBadUnit)
		return
	}
	hd := d.HardDisks[idx]
	if hd == nil {
		setResult(r, StatusBadUnit)
		return
	}
	base, err := hd.ResolveSlice(int(r.E()))
	if err != nil {
		setResult(r, StatusOutOfRange)
		return
	}
	id, err := hd.MediaID()
	if err != nil {
		setResult(r, StatusIOError)
		return
	}
	mediaCode := mediaHD
	if id == "HDNEW" {
		mediaCode = mediaHDNEW
	}
	r.SetDE(uint16(base >> 16))
	r.SetHL(uint16(base))
	r.SetC(mediaCode)
	setResult(r, StatusOK)
}

const maxHostFileTransfer = 0xFFFF

// readGuestCString reads a NUL-terminated string from guest memory at
// addr in the currently selected bank, capped at maxLen bytes.
func (d *Dispatch) readGuestCString(addr uint16, maxLen int) string {
	buf := make([]byte, 0, 64)
	for i := 0; i < maxLen; i++ {
		b := d.peekGuest(addr+uint16(i), false, 0)
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// extDoFileLoad loads the host file named by the NUL-terminated path at
// HL into guest memory at DE, returning the byte count in BC.
func (d *Dispatch) extDoFileLoad(r Registers) {
	path := d.readGuestCString(r.HL(), 255)
	if !d.Host.FileExists(path) {
		setResult(r, StatusNoMedia)
		return
	}
	data, err := d.Host.FileLoad(path)
	if err != nil {
		setResult(r, StatusIOError)
		return
	}
	if len(data) > maxHostFileTransfer {
		data = data[:maxHostFileTransfer]
	}
	dest := r.DE()
	for i, b := range data {
		d.pokeGuest(dest+uint16(i), false, 0, b)
	}
	r.SetBC(uint16(len(data)))
	setResult(r, StatusOK)
}

// extDoFileSave writes BC bytes of guest memory at DE to the host file
// named by the NUL-terminated path at HL.
func (d *Dispatch) extDoFileSave(r Registers) {
	path := d.readGuestCString(r.HL(), 255)
	length := int(r.BC())
	src := r.DE()
	data := make([]byte, length)
	for i := range data {
		data[i] = d.peekGuest(src+uint16(i), false, 0)
	}
	if err := d.Host.FileSave(path, data); err != nil {
		setResult(r, StatusIOError)
		return
	}
	setResult(r, StatusOK)
}

// extDoFileSize returns the host file's size in BC.
func (d *Dispatch) extDoFileSize(r Registers) {
	path := d.readGuestCString(r.HL(), 255)
	sz, err := d.Host.FileSize(path)
	if err != nil {
		setResult(r, StatusNoMedia)
		return
	}
	if sz > maxHostFileTransfer {
		sz = maxHostFileTransfer
	}
	r.SetBC(uint16(sz))
	setResult(r, StatusOK)
}
