package streamcore

import (
	"fmt"

	"micro_stream/streamio"
)

// server is implemented by transports that accept inbound connections.
type server interface {
	Serve() error
}

// Core assembles a duplex stream over the configured transport, owning
// the backing storage for both directions.
type Core struct {
	Config    Config
	Transport streamio.Transport
	Stream    *streamio.Stream
}

// New builds the transport named by the config and wires a duplex stream
// over it with one freshly allocated buffer per direction.
func New(cfg Config) (*Core, error) {
	var transport streamio.Transport
	switch cfg.Transport {
	case TransportLoopback:
		transport = streamio.NewLoopback()
	case TransportFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file transport requires a file path")
		}
		transport = streamio.NewFileTransport(cfg.FilePath)
	case TransportTCP:
		if cfg.Address == "" {
			return nil, fmt.Errorf("tcp transport requires an address")
		}
		transport = streamio.NewTCPTransport(cfg.Address)
	case TransportQUIC:
		if cfg.Address == "" {
			return nil, fmt.Errorf("quic transport requires an address")
		}
		if cfg.TLS == nil {
			return nil, fmt.Errorf("quic transport requires a TLS config")
		}
		transport = streamio.NewQUICTransport(cfg.Address, cfg.TLS)
	default:
		return nil, fmt.Errorf("unknown transport type %q", cfg.Transport)
	}

	size := cfg.bufferSize()
	stream := streamio.NewStream(make([]byte, size), make([]byte, size), transport)
	return &Core{
		Config:    cfg,
		Transport: transport,
		Stream:    stream,
	}, nil
}

// Serve starts the transport's listener when it has one. Blocks; run it
// in a goroutine.
func (c *Core) Serve() error {
	srv, ok := c.Transport.(server)
	if !ok {
		return fmt.Errorf("transport %q does not accept connections", c.Config.Transport)
	}
	return srv.Serve()
}

// Close releases the transport's resources when it holds any.
func (c *Core) Close() error {
	if closer, ok := c.Transport.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
