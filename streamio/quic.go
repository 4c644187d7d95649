package streamio

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"sync"

	quic "github.com/quic-go/quic-go"

	"micro_stream/streambuf"
)

// QUICTransport implements the same contract as TCPTransport over QUIC.
// Each Drain opens a fresh stream, sends one length-prefixed payload and
// waits for the byte-count acknowledgement.
type QUICTransport struct {
	Address   string
	tlsConfig *tls.Config

	listener *quic.Listener

	mu       sync.Mutex
	received []byte
}

func NewQUICTransport(address string, tlsConfigIn *tls.Config) *QUICTransport {
	return &QUICTransport{
		Address:   address,
		tlsConfig: tlsConfigIn,
	}
}

// Serve accepts QUIC sessions and queues received payloads until the
// listener is closed. Blocks; run it in a goroutine.
func (q *QUICTransport) Serve() error {
	listener, err := quic.ListenAddr(q.Address, q.tlsConfig, nil)
	if err != nil {
		return err
	}
	q.listener = listener

	fmt.Println("QUIC Listening on", q.Address)
	for {
		sess, err := listener.Accept(context.Background())
		if err != nil {
			return err
		}
		go func(session *quic.Conn) {
			stream, err := session.AcceptStream(context.Background())
			if err != nil {
				return
			}
			length, err := readInt64(stream)
			if err != nil {
				return
			}
			payload := make([]byte, length)
			if _, err := io.ReadFull(stream, payload); err != nil {
				return
			}
			q.mu.Lock()
			q.received = append(q.received, payload...)
			q.mu.Unlock()
			writeInt64(stream, int64(len(payload)))
		}(sess)
	}
}

// send pushes one payload over a fresh stream and waits for the count
// acknowledgement.
func (q *QUICTransport) send(data []byte) (int, error) {
	sess, err := quic.DialAddr(context.Background(), q.Address, q.tlsConfig, nil)
	if err != nil {
		return 0, err
	}
	defer sess.CloseWithError(0, "")
	stream, err := sess.OpenStreamSync(context.Background())
	if err != nil {
		return 0, err
	}
	if err := writeInt64(stream, int64(len(data))); err != nil {
		return 0, err
	}
	n, err := stream.Write(data)
	if err != nil {
		return n, err
	}
	ack, err := readInt64(stream)
	if err != nil {
		return n, fmt.Errorf("failed to read response: %w", err)
	}
	if int(ack) != n {
		return n, fmt.Errorf("could not write over quic transport: sent %d, got response %d", n, ack)
	}
	return n, nil
}

// Drain sends the outbound buffer's content and resets the buffer once
// the receiver acknowledges the full count.
func (q *QUICTransport) Drain(b *streambuf.Buffer) error {
	data := b.Take()
	if len(data) == 0 {
		return nil
	}
	if _, err := q.send(data); err != nil {
		return err
	}
	b.Reset()
	return nil
}

// Fill moves queued received bytes into the inbound buffer, as many as
// fit.
func (q *QUICTransport) Fill(b *streambuf.Buffer) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := b.Put(q.received)
	q.received = q.received[n:]
	return nil
}

// Pending returns the number of received bytes not yet filled into a
// buffer.
func (q *QUICTransport) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.received)
}

// Close shuts the listener.
func (q *QUICTransport) Close() error {
	if q.listener != nil {
		q.listener.Close()
		q.listener = nil
	}
	return nil
}

var _ Transport = (*QUICTransport)(nil)
