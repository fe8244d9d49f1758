package hbios

import "romwbw/pkg/boothelp"

// bootUserBank is the RAM bank a booted image runs from once control
// transfers to it (typically 0x8E in real RomWBW configurations).
const bootUserBank = 0x8E

// sysDoBoot reads a boot command string from guest memory at HL,
// resolves it to a ROM application or a disk unit/slice, reads the boot
// metadata block at source offset 0x5E0, copies the payload at offset
// 0x600 into guest memory at its load address, and repoints PC at the
// entry point. It does not synthesize a return: control passes directly
// to the booted image.
func (d *Dispatch) sysDoBoot(r Registers) {
	raw := make([]byte, 0, 64)
	for i := 0; i < 64; i++ {
		b := d.peekGuest(r.HL()+uint16(i), false, 0)
		raw = append(raw, b)
		if b == 0 || b == '\r' || b == '\n' {
			break
		}
	}
	req, err := boothelp.ParseCommand(raw)
	if err != nil {
		setResult(r, StatusBadConfig)
		return
	}

	readAt, bootDevice, logicalUnit, status := d.resolveBootSource(req)
	if status != StatusOK {
		setResult(r, status)
		return
	}

	metaBlock, err := readAt(0x5E0, 32)
	if err != nil {
		setResult(r, StatusIOError)
		return
	}
	meta, err := boothelp.DecodeMetadata(metaBlock)
	if err != nil {
		setResult(r, StatusBadConfig)
		return
	}
	payload, err := readAt(0x600, int(meta.End-meta.Load))
	if err != nil {
		setResult(r, StatusIOError)
		return
	}

	d.Mem.SelectBank(bootUserBank)
	d.firstTouchRAMBank(bootUserBank)
	for i, b := range payload {
		d.pokeGuest(meta.Load+uint16(i), false, 0, b)
	}

	r.SetPC(meta.Entry)
	r.SetD(bootDevice)
	r.SetE(logicalUnit)
	setResult(r, StatusOK)
	d.outcome = OutcomeNoReturn
}

// resolveBootSource maps a parsed boot request to a byte-range reader
// over the selected ROM app file, memory disk, or hard disk.
func (d *Dispatch) resolveBootSource(req boothelp.Request) (readAt func(offset int64, length int) ([]byte, error), bootDevice, logicalUnit byte, status Status) {
	if req.IsRomApp {
		app, ok := d.romAppsByKey[lowerASCII(req.RomKey)]
		if !ok {
			return nil, 0, 0, StatusBadUnit
		}
		data, err := d.Host.FileLoad(app.FilePath)
		if err != nil {
			return nil, 0, 0, StatusNoMedia
		}
		return func(offset int64, length int) ([]byte, error) {
			if offset+int64(length) > int64(len(data)) {
				return nil, errShortBootImage
			}
			return data[offset : offset+int64(length)], nil
		}, 0xFF, 0, StatusOK
	}

	switch req.DiskKind {
	case "MD":
		if req.UnitNum < 0 || req.UnitNum > 1 || d.MemDisks[req.UnitNum] == nil || !d.MemDisks[req.UnitNum].Enabled {
			return nil, 0, 0, StatusBadUnit
		}
		md := d.MemDisks[req.UnitNum]
		mem := d.Mem
		return func(offset int64, length int) ([]byte, error) {
			return md.ReadAt(mem, offset, length)
		}, 0, byte(req.UnitNum), StatusOK
	default: // "HD"
		if req.UnitNum < 0 || req.UnitNum > 15 || d.HardDisks[req.UnitNum] == nil {
			return nil, 0, 0, StatusBadUnit
		}
		hd := d.HardDisks[req.UnitNum]
		sliceBase := int64(0)
		if req.HasSlice {
			base, err := hd.ResolveSlice(req.Slice)
			if err != nil {
				return nil, 0, 0, StatusOutOfRange
			}
			sliceBase = int64(base) * 512
		}
		return func(offset int64, length int) ([]byte, error) {
			return hd.ReadAt(sliceBase+offset, length)
		}, 1, byte(req.UnitNum), StatusOK
	}
}
