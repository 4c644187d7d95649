package streamio

import (
	"fmt"
	"io"
	"os"

	"micro_stream/streambuf"
)

// FileTransport moves buffer contents to and from a local file. Drain
// appends the outbound buffer at the write offset; Fill reads from the
// read offset into an inbound buffer. The two offsets are independent so
// the same transport can replay what it has written.
type FileTransport struct {
	Path        string
	readOffset  int64
	writeOffset int64
	readHandle  *os.File
	writeHandle *os.File
	scratch     []byte
}

// Constructor for FileTransport rooted at the given path.
func NewFileTransport(path string) *FileTransport {
	return &FileTransport{Path: path}
}

func (t *FileTransport) Fill(b *streambuf.Buffer) error {
	if t.readHandle == nil {
		var err error
		t.readHandle, err = os.Open(t.Path)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
	}
	if len(t.scratch) < b.Capacity() {
		t.scratch = make([]byte, b.Capacity())
	}
	n, err := t.readHandle.ReadAt(t.scratch[:b.Capacity()], t.readOffset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from file: %w", err)
	}
	put := b.Put(t.scratch[:n])
	// Bytes the buffer had no room for are re-read next time.
	t.readOffset += int64(put)
	return nil
}

func (t *FileTransport) Drain(b *streambuf.Buffer) error {
	if t.writeHandle == nil {
		var err error
		// Try opening the file for writing
		t.writeHandle, err = os.OpenFile(t.Path, os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			return fmt.Errorf("failed to open or create file: %w", err)
		}
	}
	data := b.Take()
	n, err := t.writeHandle.WriteAt(data, t.writeOffset)
	if err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	t.writeOffset += int64(n)
	if n != len(data) {
		return fmt.Errorf("short file write: wrote %d of %d bytes", n, len(data))
	}
	b.Reset()
	return nil
}

// Rewind moves both offsets back to the start of the file.
func (t *FileTransport) Rewind() {
	t.readOffset = 0
	t.writeOffset = 0
}

// Close releases the file handles.
func (t *FileTransport) Close() error {
	if t.readHandle != nil {
		t.readHandle.Close()
		t.readHandle = nil
	}
	if t.writeHandle != nil {
		if err := t.writeHandle.Close(); err != nil {
			return err
		}
		t.writeHandle = nil
	}
	return nil
}

var _ Transport = (*FileTransport)(nil)
