package streamframe

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"micro_stream/streamio"
)

// ErrIncomplete reports that the input does not yet hold a whole
// envelope; callers should gather more bytes and retry.
var ErrIncomplete = errors.New("incomplete envelope")

// Envelope wraps a payload with an identity so receivers can tell
// transfers apart and detect truncation. On the wire: 4 header bytes
// (magic + version), the 16 raw UUID bytes, a big-endian int64 payload
// length, then the payload itself.
type Envelope struct {
	ID      string
	Payload []byte
}

// New wraps payload in an envelope with a fresh UUID.
func New(payload []byte) *Envelope {
	return &Envelope{
		ID:      GenerateUUID(),
		Payload: payload,
	}
}

// EncodedSize returns the number of bytes the envelope occupies on the
// wire.
func (e *Envelope) EncodedSize() int {
	return PrefixSize + len(e.Payload)
}

// EncodeTo stages the envelope into the stream's buffer. The buffer must
// have room for the whole envelope; a short write leaves the stream's
// overflow flag set and returns an error. Flushing is left to the
// caller.
func (e *Envelope) EncodeTo(out *streamio.OutputStream) error {
	uid, err := uuid.Parse(e.ID)
	if err != nil {
		return fmt.Errorf("envelope has invalid id %q: %w", e.ID, err)
	}

	var length [lengthLen]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(e.Payload)))

	written := out.Write(ENVELOPE_HEADER_1)
	written += out.Write(uid[:])
	written += out.Write(length[:])
	written += out.Write(e.Payload)
	if written != e.EncodedSize() {
		return fmt.Errorf("envelope does not fit buffer: staged %d of %d bytes", written, e.EncodedSize())
	}
	return nil
}

// DecodeFrom consumes one envelope from the stream's buffer. The caller
// is expected to Sync first; a buffer holding less than a whole envelope
// is a truncation error.
func DecodeFrom(in *streamio.InputStream) (*Envelope, error) {
	var header [headerLen]byte
	if n := in.Read(header[:]); n != headerLen {
		return nil, fmt.Errorf("truncated envelope: read %d of %d header bytes", n, headerLen)
	}
	for i := 0; i < headerLen; i++ {
		if header[i] != ENVELOPE_HEADER_1[i] {
			return nil, fmt.Errorf("bad envelope header % x", header)
		}
	}

	var rawID [idLen]byte
	if n := in.Read(rawID[:]); n != idLen {
		return nil, fmt.Errorf("truncated envelope: read %d of %d id bytes", n, idLen)
	}
	uid, err := uuid.FromBytes(rawID[:])
	if err != nil {
		return nil, fmt.Errorf("bad envelope id: %w", err)
	}

	var rawLength [lengthLen]byte
	if n := in.Read(rawLength[:]); n != lengthLen {
		return nil, fmt.Errorf("truncated envelope: read %d of %d length bytes", n, lengthLen)
	}
	length := int64(binary.BigEndian.Uint64(rawLength[:]))
	if length < 0 || length > int64(in.Available()) {
		return nil, fmt.Errorf("envelope claims %d payload bytes but %d are buffered", length, in.Available())
	}

	payload := make([]byte, length)
	if n := in.Read(payload); n != int(length) {
		return nil, fmt.Errorf("truncated envelope: read %d of %d payload bytes", n, length)
	}

	return &Envelope{ID: uid.String(), Payload: payload}, nil
}

// Decode parses one envelope from the front of p and returns it together
// with the number of bytes consumed. Returns ErrIncomplete while p holds
// less than a whole envelope, so callers reassembling from partial fills
// can keep gathering.
func Decode(p []byte) (*Envelope, int, error) {
	if len(p) < PrefixSize {
		return nil, 0, ErrIncomplete
	}
	for i := 0; i < headerLen; i++ {
		if p[i] != ENVELOPE_HEADER_1[i] {
			return nil, 0, fmt.Errorf("bad envelope header % x", p[:headerLen])
		}
	}
	uid, err := uuid.FromBytes(p[headerLen : headerLen+idLen])
	if err != nil {
		return nil, 0, fmt.Errorf("bad envelope id: %w", err)
	}
	length := int64(binary.BigEndian.Uint64(p[headerLen+idLen : PrefixSize]))
	if length < 0 {
		return nil, 0, fmt.Errorf("envelope claims negative payload length %d", length)
	}
	total := PrefixSize + int(length)
	if len(p) < total {
		return nil, 0, ErrIncomplete
	}
	payload := make([]byte, length)
	copy(payload, p[PrefixSize:total])
	return &Envelope{ID: uid.String(), Payload: payload}, total, nil
}
