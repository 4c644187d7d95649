package streamio

import (
	"fmt"

	"micro_stream/streambuf"
)

// Filler moves bytes from a real source into a stream's buffer. Transports
// implement this for the inbound direction.
type Filler interface {
	Fill(b *streambuf.Buffer) error
}

// Drainer moves buffered bytes out to a real sink. Transports implement
// this for the outbound direction.
type Drainer interface {
	Drain(b *streambuf.Buffer) error
}

// Transport is a duplex capability: a type that can both refill an inbound
// buffer and drain an outbound one. A duplex Stream composes the two roles
// by holding them, one per direction.
type Transport interface {
	Filler
	Drainer
}

// InputStream exposes byte and block reads over one inbound buffer. Its
// error record is distinct from the buffer's and accumulates across calls
// rather than resetting per call.
type InputStream struct {
	buf streambuf.Buffer
	err streambuf.Flags
	src Filler
}

// NewInputStream binds storage to a fresh inbound buffer and attaches the
// transport that refills it. A nil storage slice leaves the stream
// unusable until Bind is called with real memory.
func NewInputStream(storage []byte, src Filler) *InputStream {
	s := &InputStream{src: src}
	s.buf.Bind(storage)
	return s
}

// Bind rebinds the inbound buffer to new storage.
func (s *InputStream) Bind(storage []byte) {
	s.buf.Bind(storage)
}

// Buffer returns the inbound buffer, mainly for transports.
func (s *InputStream) Buffer() *streambuf.Buffer {
	return &s.buf
}

// Available returns the number of buffered bytes not yet consumed.
func (s *InputStream) Available() int {
	return s.buf.Available()
}

// ReadByte consumes one buffered byte.
func (s *InputStream) ReadByte() (byte, int) {
	return s.buf.GetByte()
}

// Read copies up to len(p) buffered bytes into p.
func (s *InputStream) Read(p []byte) int {
	return s.buf.Get(p)
}

// ReadAll drains everything currently available into p. If p cannot hold
// it the stream records an overflow and merges in the buffer's flags, and
// the count tells how much was actually copied.
func (s *InputStream) ReadAll(p []byte) int {
	want := s.buf.Available()
	n := s.buf.Get(p)
	if n != want {
		s.err |= streambuf.FlagOverflow
		s.err.Merge(s.buf.Err())
	}
	return n
}

// Sync asks the transport to pull fresh bytes from the real source into
// the buffer. Reading without a prior Sync is legal but may return stale
// or no data.
func (s *InputStream) Sync() error {
	if s.src == nil {
		return fmt.Errorf("input stream has no transport to sync from")
	}
	return s.src.Fill(&s.buf)
}

// Err returns the stream's accumulated error flags.
func (s *InputStream) Err() streambuf.Flags {
	return s.err
}

// ClearErr resets the stream's own error record. The buffer's flags are
// untouched; those clear on the buffer's Reset.
func (s *InputStream) ClearErr() {
	s.err.Clear()
}

// OutputStream exposes byte and block writes over one outbound buffer.
// Each write compares requested and actual counts; a shortfall records an
// overflow and folds the buffer's flags into the stream's error record, so
// "ever overflowed" and "buffer currently unbound" stay distinguishable.
type OutputStream struct {
	buf  streambuf.Buffer
	err  streambuf.Flags
	sink Drainer
}

// NewOutputStream binds storage to a fresh outbound buffer and attaches
// the transport that drains it.
func NewOutputStream(storage []byte, sink Drainer) *OutputStream {
	s := &OutputStream{sink: sink}
	s.buf.Bind(storage)
	return s
}

// Bind rebinds the outbound buffer to new storage.
func (s *OutputStream) Bind(storage []byte) {
	s.buf.Bind(storage)
}

// Buffer returns the outbound buffer, mainly for transports.
func (s *OutputStream) Buffer() *streambuf.Buffer {
	return &s.buf
}

// WriteByte appends one byte to the buffer.
func (s *OutputStream) WriteByte(c byte) int {
	n := s.buf.PutByte(c)
	if n != 1 {
		s.overflow()
	}
	return n
}

// Write appends p to the buffer, as much of it as fits.
func (s *OutputStream) Write(p []byte) int {
	n := s.buf.Put(p)
	if n != len(p) {
		s.overflow()
	}
	return n
}

// WriteString appends str to the buffer.
func (s *OutputStream) WriteString(str string) int {
	n := s.buf.Put([]byte(str))
	if n != len(str) {
		s.overflow()
	}
	return n
}

// Flush asks the transport to move the buffered bytes to the real sink.
// The stream never flushes on its own; callers control the cadence.
func (s *OutputStream) Flush() error {
	if s.sink == nil {
		return fmt.Errorf("output stream has no transport to flush to")
	}
	return s.sink.Drain(&s.buf)
}

// Err returns the stream's accumulated error flags.
func (s *OutputStream) Err() streambuf.Flags {
	return s.err
}

// ClearErr resets the stream's own error record.
func (s *OutputStream) ClearErr() {
	s.err.Clear()
}

func (s *OutputStream) overflow() {
	s.err |= streambuf.FlagOverflow
	s.err.Merge(s.buf.Err())
}

// Stream is the duplex composition: an input role and an output role over
// two independent buffers, typically served by one Transport. No state
// beyond the union of both.
type Stream struct {
	In  InputStream
	Out OutputStream
}

// NewStream wires a duplex stream over the given transport with one
// buffer per direction.
func NewStream(inStorage, outStorage []byte, t Transport) *Stream {
	s := &Stream{}
	s.In.Bind(inStorage)
	s.In.src = t
	s.Out.Bind(outStorage)
	s.Out.sink = t
	return s
}
