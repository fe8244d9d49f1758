package hbios

// Video-display-adapter function codes (function group 0x40-0x4F). No
// display hardware is emulated; cursor position is tracked so a guest
// that queries its own last-set position gets a consistent answer, and
// everything else is a benign no-op rather than StatusNoHardware, since
// RomWBW's VDA is commonly absent on real hardware too and firmware
// treats that as routine.
const (
	vdaInit       = 0x40
	vdaQuery      = 0x41
	vdaGetCursor  = 0x42
	vdaSetCursor  = 0x43
	vdaWriteChar  = 0x44
)

type vdaState struct {
	row, col byte
}

func (d *Dispatch) handleVDA(r Registers) {
	switch r.B() {
	case vdaInit, vdaQuery, vdaWriteChar:
		setResult(r, StatusOK)
	case vdaGetCursor:
		r.SetD(d.vda.row)
		r.SetE(d.vda.col)
		setResult(r, StatusOK)
	case vdaSetCursor:
		d.vda.row = r.D()
		d.vda.col = r.E()
		setResult(r, StatusOK)
	default:
		setResult(r, StatusBadFunction)
	}
}
