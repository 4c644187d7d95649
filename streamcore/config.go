package streamcore

import "crypto/tls"

// Transport type names accepted by Config.
const (
	TransportLoopback = "loopback"
	TransportFile     = "file"
	TransportTCP      = "tcp"
	TransportQUIC     = "quic"
)

// DefaultBufferSize is used when Config.BufferSize is zero.
const DefaultBufferSize = 4096

// Config holds the wiring for a duplex stream: which transport to use
// and how big the per-direction buffers are.
type Config struct {
	Transport  string // "loopback", "file", "tcp" or "quic"
	Address    string // tcp/quic listen or dial address
	FilePath   string // file transport backing path
	BufferSize int    // per-direction buffer capacity in bytes
	TLS        *tls.Config
}

func (c Config) bufferSize() int {
	if c.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return c.BufferSize
}
