// Package hddisk implements the file-backed hard-disk engine: up to 16
// units, each a host file addressed in 512-byte sectors, with slice
// geometry derived by probing the image for an MBR partition of
// RomWBW's reserved type 0x2E.
package hddisk

import "romwbw/pkg/hostio"

const (
	SectorSize = 512

	// partitionTypeReserved is the MBR partition-type byte RomWBW
	// reserves to mark a hd1k-geometry image.
	partitionTypeReserved = 0x2E

	// Slice sizes, in sectors, for the two geometries this engine
	// distinguishes (spec.md §2/§4.2/§8): hd1k is 8 MiB/slice, hd512 is
	// 8.32 MiB/slice.
	hd1kSliceSectors  = 16384
	hd512SliceSectors = 16640

	// hd1kWholeFileBytes is the size of a bare, unpartitioned single-slice
	// hd1k image (spec.md §4.2/§8): exactly 8 MiB with no 0x2E partition
	// still probes as hd1k rather than falling through to hd512.
	hd1kWholeFileBytes = 8 * 1024 * 1024

	// deviceAttrHighCapacity is always set in the device-attributes byte
	// (spec.md §9): every unit this engine exposes reports high capacity.
	deviceAttrHighCapacity = 0x20
)

// Unit is one file-backed hard-disk unit.
type Unit struct {
	Path string
	File hostio.DiskFile
	Host hostio.Host
	Size int64

	CurrentLBA uint32

	probed        bool
	isHD1K        bool
	partitionBase uint32
	sliceSectors  uint32
	sliceCount    int
}

// probe inspects sector 0 for an MBR signature and a type-0x2E
// partition entry. Absent a matching partition, a file of exactly 8 MiB
// is still treated as a single-slice hd1k image (spec.md §4.2); anything
// else is a bare hd512 image occupying its whole file.
func (u *Unit) probe() error {
	if u.probed {
		return nil
	}
	mbr, err := u.File.ReadAt(0, 512)
	if err != nil {
		return err
	}
	if len(mbr) == 512 && mbr[510] == 0x55 && mbr[511] == 0xAA {
		for i := 0; i < 4; i++ {
			e := mbr[446+i*16 : 446+i*16+16]
			if e[4] == partitionTypeReserved {
				u.partitionBase = le32(e[8:12])
				sectors := le32(e[12:16])
				u.isHD1K = true
				u.sliceSectors = hd1kSliceSectors
				u.sliceCount = int(sectors / u.sliceSectors)
				u.probed = true
				return nil
			}
		}
	}
	if u.Size == hd1kWholeFileBytes {
		u.partitionBase = 0
		u.isHD1K = true
		u.sliceSectors = hd1kSliceSectors
		u.sliceCount = 1
		u.probed = true
		return nil
	}
	u.partitionBase = 0
	u.isHD1K = false
	u.sliceSectors = hd512SliceSectors
	total := uint32(u.Size / SectorSize)
	if u.sliceSectors > 0 {
		u.sliceCount = int(total / u.sliceSectors)
	}
	u.probed = true
	return nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// MediaID reports the unit's media identifier: "HDNEW" for the hd1k
// geometry (a type-0x2E partition, or a bare image of exactly 8 MiB),
// "HD" for bare hd512 images.
func (u *Unit) MediaID() (string, error) {
	if err := u.probe(); err != nil {
		return "", err
	}
	if u.isHD1K {
		return "HDNEW", nil
	}
	return "HD", nil
}

// SliceCount returns the number of addressable slices (logical drives)
// on this unit.
func (u *Unit) SliceCount() (int, error) {
	if err := u.probe(); err != nil {
		return 0, err
	}
	return u.sliceCount, nil
}

// ResolveSlice returns the absolute starting LBA of the given slice:
// partition_base + slice * slice_size (spec.md §4.2's slice-calculation
// extension). The firmware is responsible for only requesting slices a
// disk actually has; this is pure arithmetic and does not consult
// SliceCount, since spec.md §8's scenario 5 requires a slice beyond a
// single-slice image's nominal count to still resolve correctly.
func (u *Unit) ResolveSlice(slice int) (uint32, error) {
	if err := u.probe(); err != nil {
		return 0, err
	}
	if slice < 0 {
		return 0, errBadSlice
	}
	return u.partitionBase + uint32(slice)*u.sliceSectors, nil
}

// DeviceAttributes returns the device-attributes byte; bit 5
// (high-capacity) is always set (spec.md §9).
func (u *Unit) DeviceAttributes() byte {
	return deviceAttrHighCapacity
}

// Capacity returns the unit's total sector count.
func (u *Unit) Capacity() uint32 {
	return uint32(u.Size / SectorSize)
}

// ReadSector reads one 512-byte sector at absolute LBA lba.
func (u *Unit) ReadSector(lba uint32, buf []byte) error {
	data, err := u.File.ReadAt(int64(lba)*SectorSize, SectorSize)
	if err != nil {
		return err
	}
	copy(buf, data)
	return nil
}

// WriteSector writes one 512-byte sector at absolute LBA lba.
func (u *Unit) WriteSector(lba uint32, buf []byte) error {
	_, err := u.File.WriteAt(int64(lba)*SectorSize, buf)
	if err != nil {
		return err
	}
	return u.File.Flush()
}

// ReadAt reads length bytes at an absolute byte offset, for boot-sector
// metadata reads; it does not consult CurrentLBA or slice geometry.
func (u *Unit) ReadAt(offset int64, length int) ([]byte, error) {
	return u.File.ReadAt(offset, length)
}
