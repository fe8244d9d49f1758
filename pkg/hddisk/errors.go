package hddisk

import "errors"

var errBadSlice = errors.New("hddisk: slice out of range")
