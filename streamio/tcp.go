package streamio

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"micro_stream/streambuf"
)

// Wire header values for the TCP transport
const (
	tcpKeepalive = 1
	tcpData      = 2
	tcpClose     = 3
)

// TCPTransport moves buffer contents over a TCP connection. The drain
// side dials the address and sends length-prefixed payloads, waiting for
// a byte-count acknowledgement. The serve side accepts one connection at
// a time and queues received payloads for Fill.
type TCPTransport struct {
	Address string

	listener    net.Listener
	conn        net.Conn
	cancelServe context.CancelFunc

	mu       sync.Mutex
	received []byte
}

// Constructor for TCPTransport that sets the address.
func NewTCPTransport(address string) *TCPTransport {
	return &TCPTransport{Address: address}
}

func (t *TCPTransport) handleServe(ctx context.Context, c net.Conn) {
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("TCP handler cancelled")
			return
		default:
			header, err := readInt64(c)
			if err != nil {
				if err != io.EOF {
					fmt.Printf("TCP read failed: %v\n", err)
				}
				return
			}
			switch header {
			case tcpClose:
				return
			case tcpKeepalive:
				writeInt64(c, int64(tcpKeepalive))
			case tcpData:
				length, err := readInt64(c)
				if err != nil {
					fmt.Printf("TCP length read failed: %v\n", err)
					return
				}
				payload := make([]byte, length)
				if _, err := io.ReadFull(c, payload); err != nil {
					fmt.Printf("TCP payload read failed: %v\n", err)
					return
				}
				t.mu.Lock()
				t.received = append(t.received, payload...)
				t.mu.Unlock()
				writeInt64(c, int64(len(payload)))
			default:
				fmt.Printf("Unknown TCP header type: %d\n", header)
				return
			}
		}
	}
}

// Serve accepts connections and queues received payloads until the
// listener is closed. Blocks; run it in a goroutine.
func (t *TCPTransport) Serve() error {
	ln, err := net.Listen("tcp", t.Address)
	if err != nil {
		fmt.Println("Failed to listen on", t.Address)
		return err
	}
	t.listener = ln
	fmt.Println("Listening on", t.Address)

	ctx, cancel := context.WithCancel(context.Background())
	t.cancelServe = cancel

	var handlerRunning bool

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err // this will happen when listener is closed
		}
		if handlerRunning {
			fmt.Println("Stopping new connection attempted while another is running on address", t.Address)
			conn.Close()
			continue
		}
		handlerRunning = true
		go func() {
			t.handleServe(ctx, conn)
			handlerRunning = false
		}()
	}
}

// send pushes one payload and waits for the count acknowledgement.
func (t *TCPTransport) send(data []byte) (int, error) {
	if t.conn != nil && t.conn.RemoteAddr() != nil {
		err := writeInt64(t.conn, int64(tcpKeepalive))
		resp, err2 := readInt64(t.conn)
		if err != nil || err2 != nil || resp != int64(tcpKeepalive) {
			t.conn.Close()
			t.conn = nil
			fmt.Printf("TCP keepalive failed: %v\n", err)
		}
	}

	if t.conn == nil {
		con, err := net.Dial("tcp", t.Address)
		if err != nil {
			fmt.Printf("TCP dial failed: %v\n", err)
			return 0, err
		}
		t.conn = con
	}
	if err := writeInt64(t.conn, int64(tcpData)); err != nil {
		return 0, err
	}
	if err := writeInt64(t.conn, int64(len(data))); err != nil {
		return 0, err
	}
	n, err := t.conn.Write(data)
	if err != nil {
		return n, err
	}
	// Wait for response
	ack, err := readInt64(t.conn)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	if int(ack) != n {
		return 0, fmt.Errorf("could not write over tcp transport: sent %d, got response %d", n, ack)
	}
	return n, nil
}

// Drain sends the outbound buffer's content over the connection and
// resets the buffer once the receiver acknowledges the full count.
func (t *TCPTransport) Drain(b *streambuf.Buffer) error {
	data := b.Take()
	if len(data) == 0 {
		return nil
	}
	if _, err := t.send(data); err != nil {
		return err
	}
	b.Reset()
	return nil
}

// Fill moves queued received bytes into the inbound buffer, as many as
// fit. Leftovers stay queued.
func (t *TCPTransport) Fill(b *streambuf.Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := b.Put(t.received)
	t.received = t.received[n:]
	return nil
}

// Pending returns the number of received bytes not yet filled into a
// buffer.
func (t *TCPTransport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.received)
}

// Close shuts the listener, serve handlers and any dialled connection.
func (t *TCPTransport) Close() error {
	if t.conn != nil {
		writeInt64(t.conn, int64(tcpClose))
		t.conn.Close()
		t.conn = nil
	}
	if t.listener != nil {
		t.listener.Close()
		t.listener = nil
	}
	if t.cancelServe != nil {
		t.cancelServe()
		t.cancelServe = nil
	}
	return nil
}

var _ Transport = (*TCPTransport)(nil)
