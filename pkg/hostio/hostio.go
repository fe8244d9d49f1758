// Package hostio defines the narrow capability interface the core calls
// into for console I/O, host file access, time, and logging. Concrete
// implementations live in internal/hostio (a real terminal/filesystem
// backend) and in this package's Headless (an in-memory backend for
// tests).
package hostio

// Mode selects how a disk file is opened.
type Mode int

const (
	ModeRead Mode = iota
	ModeReadWrite
	ModeReadWriteCreate
)

// DiskFile is a host file backing a file-backed hard disk unit.
type DiskFile interface {
	ReadAt(offset int64, length int) ([]byte, error)
	WriteAt(offset int64, data []byte) (int, error)
	Flush() error
	Size() (int64, error)
	Close() error
}

// Time is the host's wall-clock time, broken into the fields the RTC
// handler encodes as BCD bytes.
type Time struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Weekday              int
}

// Host is the capability surface the core consumes. Outside tests (which
// construct Headless), only cmd/romwbw constructs one, via
// internal/hostio; the core packages only consume the interface.
type Host interface {
	// Console
	HasInput() bool
	ReadChar() int32 // -1 on EOF/no data
	PeekInput() (c int32, ok bool) // next pending char without consuming it
	WriteChar(b byte)
	QueueChar(c int32) // programmatic input injection

	// Plain host files (ROM images, ROM-application binaries)
	FileExists(path string) bool
	FileSize(path string) (int64, error)
	FileLoad(path string) ([]byte, error)
	FileSave(path string, data []byte) error

	// Disk-backed files (file-backed hard disks)
	DiskOpen(path string, mode Mode) (DiskFile, error)

	// Time
	GetLocalTime() Time

	// Logging
	Info(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Status(format string, args ...any)
}
