package streamio

import "micro_stream/streambuf"

// Loopback is an in-memory transport for testing and local wiring: Drain
// queues the outbound buffer's content, Fill feeds the queue back into an
// inbound buffer. Bytes come out in the order they were drained.
type Loopback struct {
	pending []byte
}

// NewLoopback returns an empty loopback transport.
func NewLoopback() *Loopback {
	return &Loopback{pending: make([]byte, 0)}
}

// Drain copies the buffer's written region onto the queue and resets the
// buffer for reuse.
func (l *Loopback) Drain(b *streambuf.Buffer) error {
	l.pending = append(l.pending, b.Take()...)
	b.Reset()
	return nil
}

// Fill moves as many queued bytes into the buffer as fit. Whatever does
// not fit stays queued for the next Fill.
func (l *Loopback) Fill(b *streambuf.Buffer) error {
	n := b.Put(l.pending)
	l.pending = l.pending[n:]
	return nil
}

// Len returns the number of queued bytes not yet filled into a buffer.
func (l *Loopback) Len() int {
	return len(l.pending)
}

var _ Transport = (*Loopback)(nil)
