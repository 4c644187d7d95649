package main

import (
	"flag"
	"fmt"
	"os"

	"micro_stream/streamcore"
)

func main() {
	listen := flag.Bool("listen", false, "receive envelopes and append their payloads to -file")
	transport := flag.String("transport", streamcore.TransportTCP, "transport type: loopback, file, tcp or quic")
	addr := flag.String("addr", "127.0.0.1:9100", "listen or dial address for tcp/quic")
	path := flag.String("file", "", "file to send, or output path in listen mode")
	bufferSize := flag.Int("buffer", streamcore.DefaultBufferSize, "per-direction buffer capacity in bytes")
	flag.Parse()

	if *path == "" {
		fmt.Println("a -file is required")
		os.Exit(1)
	}

	core, err := streamcore.New(streamcore.Config{
		Transport:  *transport,
		Address:    *addr,
		BufferSize: *bufferSize,
	})
	if err != nil {
		fmt.Println("Setup error:", err)
		os.Exit(1)
	}
	defer core.Close()

	if *listen {
		err = runListener(core, *path)
	} else {
		err = runSender(core, *path)
	}
	if err != nil {
		fmt.Println("Transfer error:", err)
		os.Exit(1)
	}
}
