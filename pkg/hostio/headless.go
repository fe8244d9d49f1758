package hostio

import (
	"bytes"
	"fmt"
	"os"
	"time"
)

// memFile is an in-memory DiskFile backed by a pointer to the owning
// Headless's file slot, so writes are visible to later DiskOpen calls
// and to FileLoad.
type memFile struct {
	data *[]byte
}

func (f *memFile) ReadAt(offset int64, length int) ([]byte, error) {
	d := *f.data
	if offset >= int64(len(d)) {
		return make([]byte, length), nil
	}
	end := offset + int64(length)
	if end > int64(len(d)) {
		end = int64(len(d))
	}
	out := make([]byte, length)
	copy(out, d[offset:end])
	return out, nil
}

func (f *memFile) WriteAt(offset int64, data []byte) (int, error) {
	d := *f.data
	need := offset + int64(len(data))
	if need > int64(len(d)) {
		grown := make([]byte, need)
		copy(grown, d)
		d = grown
	}
	copy(d[offset:], data)
	*f.data = d
	return len(data), nil
}

func (f *memFile) Flush() error         { return nil }
func (f *memFile) Size() (int64, error) { return int64(len(*f.data)), nil }
func (f *memFile) Close() error         { return nil }

// Headless is a Host implementation with no real terminal or clock,
// intended for unit tests and non-interactive embeddings. Console output
// accumulates in Output; console input is served from a FIFO fed by
// QueueChar.
type Headless struct {
	Output  bytes.Buffer
	pending []int32

	files map[string]*[]byte
	now   time.Time

	logs []string
}

// NewHeadless returns a Headless host. now, if non-zero, fixes the value
// GetLocalTime reports; otherwise it uses the current host time.
func NewHeadless(now time.Time) *Headless {
	return &Headless{files: make(map[string]*[]byte), now: now}
}

func (h *Headless) HasInput() bool { return len(h.pending) > 0 }

func (h *Headless) ReadChar() int32 {
	if len(h.pending) == 0 {
		return -1
	}
	c := h.pending[0]
	h.pending = h.pending[1:]
	return c
}

func (h *Headless) PeekInput() (int32, bool) {
	if len(h.pending) == 0 {
		return 0, false
	}
	return h.pending[0], true
}

func (h *Headless) WriteChar(b byte) { h.Output.WriteByte(b) }

func (h *Headless) QueueChar(c int32) { h.pending = append(h.pending, c) }

func (h *Headless) FileExists(path string) bool {
	if _, ok := h.files[path]; ok {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

func (h *Headless) FileSize(path string) (int64, error) {
	if data, ok := h.files[path]; ok {
		return int64(len(*data)), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *Headless) FileLoad(path string) ([]byte, error) {
	if data, ok := h.files[path]; ok {
		out := make([]byte, len(*data))
		copy(out, *data)
		return out, nil
	}
	return os.ReadFile(path)
}

func (h *Headless) FileSave(path string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	h.files[path] = &cp
	return nil
}

// PutFile seeds an in-memory file for tests, bypassing the filesystem.
func (h *Headless) PutFile(path string, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	h.files[path] = &cp
}

func (h *Headless) DiskOpen(path string, mode Mode) (DiskFile, error) {
	data, ok := h.files[path]
	if !ok {
		if mode == ModeReadWriteCreate {
			empty := []byte{}
			h.files[path] = &empty
			data = &empty
		} else {
			return nil, fmt.Errorf("hostio: no such in-memory file %q", path)
		}
	}
	return &memFile{data: data}, nil
}

func (h *Headless) GetLocalTime() Time {
	t := h.now
	if t.IsZero() {
		t = time.Now()
	}
	return Time{
		Year: t.Year() % 100, Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Weekday: int(t.Weekday()),
	}
}

func (h *Headless) Info(format string, args ...any) {
	h.logs = append(h.logs, "INFO: "+fmt.Sprintf(format, args...))
}
func (h *Headless) Errorf(format string, args ...any) {
	h.logs = append(h.logs, "ERROR: "+fmt.Sprintf(format, args...))
}
func (h *Headless) Fatalf(format string, args ...any) {
	h.logs = append(h.logs, "FATAL: "+fmt.Sprintf(format, args...))
}
func (h *Headless) Status(format string, args ...any) {
	h.logs = append(h.logs, "STATUS: "+fmt.Sprintf(format, args...))
}

// Logs returns the accumulated log lines, for test assertions.
func (h *Headless) Logs() []string { return h.logs }
