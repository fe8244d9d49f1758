package membank

import "errors"

var (
	errEmptyROM    = errors.New("membank: ROM image is empty")
	errROMTooLarge = errors.New("membank: ROM image exceeds 512KiB")
)
