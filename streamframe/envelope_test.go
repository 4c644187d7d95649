package streamframe

import (
	"bytes"
	"testing"

	"micro_stream/streambuf"
	"micro_stream/streamio"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	lb := streamio.NewLoopback()
	out := streamio.NewOutputStream(make([]byte, 128), lb)
	in := streamio.NewInputStream(make([]byte, 128), lb)

	env := New([]byte("payload bytes"))
	if err := env.EncodeTo(out); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := in.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	got, err := DecodeFrom(in)
	if err != nil {
		t.Fatalf("DecodeFrom failed: %v", err)
	}
	if got.ID != env.ID {
		t.Fatalf("ID mismatch: got %s, want %s", got.ID, env.ID)
	}
	if !bytes.Equal(got.Payload, env.Payload) {
		t.Fatalf("payload mismatch: got %q, want %q", got.Payload, env.Payload)
	}
	if in.Available() != 0 {
		t.Fatalf("decode should consume the whole envelope, %d bytes left", in.Available())
	}
}

func TestEnvelopeTooBigForBuffer(t *testing.T) {
	out := streamio.NewOutputStream(make([]byte, 16), streamio.NewLoopback())
	env := New(bytes.Repeat([]byte{0xab}, 64))
	if err := env.EncodeTo(out); err == nil {
		t.Fatalf("EncodeTo into a small buffer should fail")
	}
	if !out.Err().Has(streambuf.FlagOverflow) {
		t.Fatalf("short encode should set overflow, got %08b", out.Err())
	}
}

func TestEnvelopeBadHeader(t *testing.T) {
	lb := streamio.NewLoopback()
	out := streamio.NewOutputStream(make([]byte, 64), lb)
	in := streamio.NewInputStream(make([]byte, 64), lb)

	out.WriteString("this is not an envelope header")
	out.Flush()
	in.Sync()

	if _, err := DecodeFrom(in); err == nil {
		t.Fatalf("DecodeFrom should reject a bad header")
	}
}

func TestEnvelopeTruncated(t *testing.T) {
	lb := streamio.NewLoopback()
	out := streamio.NewOutputStream(make([]byte, 128), lb)
	in := streamio.NewInputStream(make([]byte, 128), lb)

	env := New([]byte("abcdefgh"))
	if err := env.EncodeTo(out); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}
	// Drop the tail of the encoded envelope before it reaches the reader.
	staged := out.Buffer().Take()
	trunc := streambuf.New().Bind(make([]byte, 128))
	trunc.Put(staged[:len(staged)-4])
	lb.Drain(trunc)
	in.Sync()

	if _, err := DecodeFrom(in); err == nil {
		t.Fatalf("DecodeFrom should reject a truncated envelope")
	}
}

func TestGenerateUUIDUnique(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()
	if a == b {
		t.Fatalf("GenerateUUID returned duplicate values: %s", a)
	}
}
