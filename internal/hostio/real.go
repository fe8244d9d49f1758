// Package hostio provides the production hostio.Host implementation: a
// real terminal (optionally raw-mode via golang.org/x/term), real files,
// real wall-clock time, and log/slog-backed logging.
package hostio

import (
	"bufio"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"romwbw/pkg/hostio"
)

// osFile adapts *os.File to hostio.DiskFile.
type osFile struct {
	f *os.File
}

func (o *osFile) ReadAt(offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := o.f.ReadAt(buf, offset)
	if n < length {
		// Short reads past EOF are zero-filled; callers (sector I/O)
		// treat a disk as a fixed-size block device.
		for i := n; i < length; i++ {
			buf[i] = 0
		}
	}
	if err != nil && n > 0 {
		err = nil
	}
	return buf, err
}

func (o *osFile) WriteAt(offset int64, data []byte) (int, error) {
	return o.f.WriteAt(data, offset)
}

func (o *osFile) Flush() error { return o.f.Sync() }

func (o *osFile) Size() (int64, error) {
	info, err := o.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (o *osFile) Close() error { return o.f.Close() }

// Terminal is the production Host: reads console input from stdin
// (optionally in raw mode), writes console output to stdout, and logs
// through a *slog.Logger.
type Terminal struct {
	log    *slog.Logger
	pending []int32

	stdinFD   int
	rawState  *term.State
	rawActive bool

	in *bufio.Reader
}

// New returns a Terminal host. When raw is true, stdin is switched to
// raw mode so CIO input is delivered byte-by-byte instead of
// line-buffered; the caller must call Close to restore the terminal.
func New(log *slog.Logger, raw bool) (*Terminal, error) {
	t := &Terminal{log: log, in: bufio.NewReader(os.Stdin)}
	if raw {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				return nil, err
			}
			t.stdinFD = fd
			t.rawState = state
			t.rawActive = true
		}
	}
	return t, nil
}

// Close restores the terminal to its prior mode, if raw mode was
// entered.
func (t *Terminal) Close() error {
	if t.rawActive {
		return term.Restore(t.stdinFD, t.rawState)
	}
	return nil
}

func (t *Terminal) QueueChar(c int32) { t.pending = append(t.pending, c) }

func (t *Terminal) HasInput() bool {
	if len(t.pending) > 0 {
		return true
	}
	return t.in.Buffered() > 0
}

func (t *Terminal) ReadChar() int32 {
	if len(t.pending) > 0 {
		c := t.pending[0]
		t.pending = t.pending[1:]
		return c
	}
	b, err := t.in.ReadByte()
	if err != nil {
		return -1
	}
	return int32(b)
}

func (t *Terminal) PeekInput() (int32, bool) {
	if len(t.pending) > 0 {
		return t.pending[0], true
	}
	b, err := t.in.Peek(1)
	if err != nil {
		return 0, false
	}
	return int32(b[0]), true
}

func (t *Terminal) WriteChar(b byte) {
	os.Stdout.Write([]byte{b})
}

func (t *Terminal) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (t *Terminal) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (t *Terminal) FileLoad(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (t *Terminal) FileSave(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (t *Terminal) DiskOpen(path string, mode hostio.Mode) (hostio.DiskFile, error) {
	var flag int
	switch mode {
	case hostio.ModeRead:
		flag = os.O_RDONLY
	case hostio.ModeReadWrite:
		flag = os.O_RDWR
	case hostio.ModeReadWriteCreate:
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

func (t *Terminal) GetLocalTime() hostio.Time {
	now := time.Now()
	return hostio.Time{
		Year: now.Year() % 100, Month: int(now.Month()), Day: now.Day(),
		Hour: now.Hour(), Minute: now.Minute(), Second: now.Second(),
		Weekday: int(now.Weekday()),
	}
}

func (t *Terminal) Info(format string, args ...any)   { t.log.Info(sprintf(format, args...)) }
func (t *Terminal) Errorf(format string, args ...any) { t.log.Error(sprintf(format, args...)) }
func (t *Terminal) Fatalf(format string, args ...any) { t.log.Error(sprintf(format, args...)) }
func (t *Terminal) Status(format string, args ...any) { t.log.Debug(sprintf(format, args...)) }
