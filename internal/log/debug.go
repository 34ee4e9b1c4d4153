// Package log is the debug trace for git-twig. Output is buffered in memory
// until a destination file is configured, so messages written during startup
// (before flags and config are parsed) are not lost.
package log

import (
	"log"
	"os"
	"sync"
)

// Writer buffers trace output until SetFile decides where it goes.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	global = &Writer{}
	std    = log.New(global, "twig ", log.LstdFlags|log.Lmicroseconds)
)

// maxBuffered bounds the in-memory backlog kept before SetFile is called.
const maxBuffered = 1 << 20

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}
	if w.file != nil {
		n, err := w.file.Write(p)
		_ = w.file.Sync()
		return n, err
	}
	if len(w.buffer)+len(p) > maxBuffered {
		return len(p), nil
	}
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// SetFile routes the trace to path, flushing anything buffered so far.
// An empty path drops the backlog and silences further output.
func SetFile(path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		_ = global.file.Close()
		global.file = nil
	}

	if path == "" {
		global.discard = true
		global.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		global.discard = true
		global.buffer = nil
		return err
	}

	global.file = f
	global.discard = false
	if len(global.buffer) > 0 {
		_, _ = f.Write(global.buffer)
		_ = f.Sync()
		global.buffer = nil
	}
	return nil
}

// Printf writes a formatted trace line.
func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

// Println writes a trace line.
func Println(v ...any) {
	std.Println(v...)
}

// Close releases the trace file, if any.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file == nil {
		return nil
	}
	err := global.file.Close()
	global.file = nil
	return err
}
