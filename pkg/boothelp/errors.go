package boothelp

import "errors"

var (
	errEmptyCommand    = errors.New("boothelp: empty boot command")
	errBadCommand      = errors.New("boothelp: unrecognized boot command")
	errShortBlock      = errors.New("boothelp: boot metadata block too short")
	errCorruptMetadata = errors.New("boothelp: boot metadata end precedes load address")
)
