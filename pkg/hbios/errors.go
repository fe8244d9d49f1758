package hbios

import "errors"

var errShortBootImage = errors.New("hbios: boot image too short for requested range")
