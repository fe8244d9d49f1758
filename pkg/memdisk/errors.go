package memdisk

import "errors"

var errReadOnly = errors.New("memdisk: unit is read-only")
