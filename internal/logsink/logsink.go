// Package logsink provides the durable append-only record of provisioning
// activity. Every byte a provisioning step writes to stdout or stderr is
// mirrored here in execution order so a failed node bootstrap can be
// diagnosed after the machine has been recycled.
package logsink

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultPath is where provisioning output is recorded unless overridden by
// the step plan or the --log-file flag.
const DefaultPath = "/var/log/provision/provision.log"

// Sink is an append-only destination for provisioning output.
type Sink interface {
	io.Writer
	io.Closer
}

// FileSink appends to a log file on disk.
type FileSink struct {
	file *os.File
	path string
}

// OpenFile opens (or creates) an append-only log file, creating the parent
// directory first. The file is never truncated; successive provisioning runs
// accumulate in the same log.
func OpenFile(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &FileSink{file: f, path: path}, nil
}

// Write implements Sink.
func (s *FileSink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Close implements Sink.
func (s *FileSink) Close() error {
	return s.file.Close()
}

// Path returns the location of the underlying log file.
func (s *FileSink) Path() string {
	return s.path
}

// Buffer is an in-memory Sink used as a test double.
type Buffer struct {
	buf bytes.Buffer
}

// Write implements Sink.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Close implements Sink.
func (b *Buffer) Close() error {
	return nil
}

// String returns everything written so far.
func (b *Buffer) String() string {
	return b.buf.String()
}
