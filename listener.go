package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"micro_stream/streamcore"
	"micro_stream/streamframe"
)

// Listener (Server)
func runListener(core *streamcore.Core, path string) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer out.Close()

	go func() {
		if err := core.Serve(); err != nil {
			fmt.Println("Listener stopped:", err)
		}
	}()

	fmt.Println("Receiving envelopes to", path)
	scratch := make([]byte, core.Stream.In.Buffer().Capacity())
	var assembly []byte
	received := 0
	for {
		if err := core.Stream.In.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		n := core.Stream.In.ReadAll(scratch)
		if n == 0 {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		assembly = append(assembly, scratch[:n]...)

		// An envelope can straddle buffer fills; decode what is whole.
		for {
			env, consumed, err := streamframe.Decode(assembly)
			if errors.Is(err, streamframe.ErrIncomplete) {
				break
			}
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}
			assembly = assembly[consumed:]
			if _, err := out.Write(env.Payload); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
			received++
			fmt.Printf("Received envelope %s (%d bytes, %d total)\n", env.ID, len(env.Payload), received)
		}
	}
}
