package streambuf

// Buffer is a fixed-capacity byte buffer with independent get and put
// cursors over caller-supplied storage. It never allocates, never grows,
// and never returns a Go error: every operation yields a byte count and
// degrades to a partial or zero-length result, with error conditions
// accumulated in a Flags word.
//
// The buffer does not own its storage. Validity is bounded by the
// lifetime of the slice handed to Bind; rebinding or releasing that
// memory is the caller's business.
//
// A fully drained buffer is not rewound immediately. Draining the last
// byte arms a pending reset, and the next put rewinds both cursors to
// zero first. Deferring the rewind keeps Size and the storage contents
// stable for whoever is still looking at the drained buffer, while
// reclaiming full capacity before anything new is written. Partial
// drains never recycle: a slow consumer holds capacity hostage until it
// catches up, which is the intended backpressure.
type Buffer struct {
	storage      []byte
	readPos      int
	writePos     int
	pendingReset bool
	err          Flags
}

// New returns an unbound buffer. Every operation fails soft with
// FlagUninitialized until storage is bound.
func New() *Buffer {
	return &Buffer{err: FlagUninitialized}
}

// Bind points the buffer at new backing storage and rewinds both
// cursors. Capacity is len(storage); a nil slice leaves the buffer
// unbound. Bind only recomputes FlagUninitialized; clearing the rest of
// the error record is Reset's job.
func (b *Buffer) Bind(storage []byte) *Buffer {
	b.storage = storage
	b.readPos = 0
	b.writePos = 0
	b.pendingReset = false
	b.setUninit()
	return b
}

// Available returns the number of buffered bytes not yet consumed.
func (b *Buffer) Available() int {
	return b.writePos - b.readPos
}

// Size returns the total bytes produced since the last recycle. Unlike
// Available it does not subtract bytes already consumed.
func (b *Buffer) Size() int {
	return b.writePos
}

// Capacity returns the length of the bound storage.
func (b *Buffer) Capacity() int {
	return len(b.storage)
}

// Err returns the buffer's accumulated error flags.
func (b *Buffer) Err() Flags {
	return b.err
}

// GetByte consumes one byte. The count is 0 when the buffer is empty
// (not an error) or unbound (sets FlagUninitialized).
func (b *Buffer) GetByte() (byte, int) {
	if b.storage == nil {
		b.err |= FlagUninitialized
		return 0, 0
	}
	if b.writePos-b.readPos <= 0 {
		return 0, 0
	}
	c := b.storage[b.readPos]
	b.readPos++
	b.pendingReset = b.readPos == b.writePos
	return c, 1
}

// Get copies up to len(p) buffered bytes into p and returns the count.
// Consuming the last buffered byte arms the pending reset.
func (b *Buffer) Get(p []byte) int {
	if b.storage == nil {
		b.err |= FlagUninitialized
		return 0
	}
	n := min(b.writePos-b.readPos, len(p))
	copy(p[:n], b.storage[b.readPos:b.readPos+n])
	b.readPos += n
	b.pendingReset = b.readPos == b.writePos
	return n
}

// PutByte appends one byte. The count is 0 when the buffer is full (the
// caller decides whether that is an error) or unbound.
func (b *Buffer) PutByte(c byte) int {
	if b.storage == nil {
		b.err |= FlagUninitialized
		return 0
	}
	b.recycle()
	if len(b.storage)-b.writePos <= 0 {
		return 0
	}
	b.storage[b.writePos] = c
	b.writePos++
	return 1
}

// Put appends up to the remaining capacity from p and returns the count
// copied. A short count signals backpressure; no flag is set here.
func (b *Buffer) Put(p []byte) int {
	if b.storage == nil {
		b.err |= FlagUninitialized
		return 0
	}
	b.recycle()
	n := min(len(b.storage)-b.writePos, len(p))
	copy(b.storage[b.writePos:b.writePos+n], p[:n])
	b.writePos += n
	return n
}

// Reset rewinds both cursors, clears the error record (re-asserting
// FlagUninitialized when unbound) and returns the number of buffered
// but unread bytes that were discarded.
func (b *Buffer) Reset() int {
	n := b.writePos - b.readPos
	b.readPos = 0
	b.writePos = 0
	b.pendingReset = false
	b.err = 0
	b.setUninit()
	return n
}

// Take returns the written region of the backing storage and arms the
// pending reset: the caller is assumed to consume the whole buffer
// externally. The slice is valid only until the next put.
func (b *Buffer) Take() []byte {
	b.pendingReset = true
	return b.storage[:b.writePos]
}

// recycle rewinds a fully drained buffer before the next write.
func (b *Buffer) recycle() {
	if b.pendingReset {
		b.readPos = 0
		b.writePos = 0
		b.pendingReset = false
	}
}

func (b *Buffer) setUninit() {
	if b.storage == nil {
		b.err |= FlagUninitialized
	} else {
		b.err &^= FlagUninitialized
	}
}
