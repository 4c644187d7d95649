package streamio

import (
	"testing"
	"time"
)

func TestTCPTransportRoundTrip(t *testing.T) {
	address := "127.0.0.1:9151"
	receiver := NewTCPTransport(address)
	defer receiver.Close()

	go receiver.Serve()

	// wait for listener to start
	time.Sleep(100 * time.Millisecond)

	sender := NewTCPTransport(address)
	defer sender.Close()

	out := NewOutputStream(make([]byte, 64), sender)
	data := "stream integration test"
	if n := out.WriteString(data); n != len(data) {
		t.Fatalf("WriteString count: got %d, want %d", n, len(data))
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	// Flush returns after the receiver acknowledged, so the payload is
	// queued by now.
	if receiver.Pending() != len(data) {
		t.Fatalf("Pending: got %d, want %d", receiver.Pending(), len(data))
	}

	in := NewInputStream(make([]byte, 64), receiver)
	if err := in.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	buf := make([]byte, len(data))
	n := in.Read(buf)
	if n != len(data) {
		t.Fatalf("Read count: got %d, want %d", n, len(data))
	}
	if string(buf) != data {
		t.Fatalf("Read data mismatch: got %s, want %s", buf, data)
	}
}

func TestTCPTransportMultipleFlushes(t *testing.T) {
	address := "127.0.0.1:9152"
	receiver := NewTCPTransport(address)
	defer receiver.Close()

	go receiver.Serve()
	time.Sleep(100 * time.Millisecond)

	sender := NewTCPTransport(address)
	defer sender.Close()

	out := NewOutputStream(make([]byte, 16), sender)
	for _, chunk := range []string{"abc", "def", "ghi"} {
		out.WriteString(chunk)
		if err := out.Flush(); err != nil {
			t.Fatalf("Flush of %q failed: %v", chunk, err)
		}
	}

	if receiver.Pending() != 9 {
		t.Fatalf("Pending: got %d, want 9", receiver.Pending())
	}

	in := NewInputStream(make([]byte, 16), receiver)
	in.Sync()
	buf := make([]byte, 9)
	if n := in.Read(buf); n != 9 || string(buf) != "abcdefghi" {
		t.Fatalf("reassembled data: got (%d, %q), want (9, %q)", n, buf, "abcdefghi")
	}
}

func TestTCPTransportDrainEmptyBuffer(t *testing.T) {
	// Nothing buffered means nothing on the wire and no connection.
	sender := NewTCPTransport("127.0.0.1:1") // nothing listens here
	out := NewOutputStream(make([]byte, 8), sender)
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush of empty buffer should be a no-op, got %v", err)
	}
}
