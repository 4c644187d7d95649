package main

import (
	"fmt"
	"os"

	"micro_stream/streamcore"
	"micro_stream/streamframe"
)

// chunkPayloads splits data so each chunk's envelope fits the outbound
// buffer.
func chunkPayloads(data []byte, bufferSize int) [][]byte {
	max := bufferSize - streamframe.PrefixSize
	if max <= 0 {
		return nil
	}
	chunks := make([][]byte, 0, (len(data)+max-1)/max)
	for len(data) > max {
		chunks = append(chunks, data[:max])
		data = data[max:]
	}
	chunks = append(chunks, data)
	return chunks
}

// Sender (Client)
func runSender(core *streamcore.Core, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	chunks := chunkPayloads(data, core.Stream.Out.Buffer().Capacity())
	if chunks == nil {
		return fmt.Errorf("buffer size %d cannot hold an envelope", core.Stream.Out.Buffer().Capacity())
	}
	fmt.Printf("Sending %s (%d bytes, %d envelopes)\n", path, len(data), len(chunks))

	for i, chunk := range chunks {
		env := streamframe.New(chunk)
		if err := env.EncodeTo(&core.Stream.Out); err != nil {
			return err
		}
		if err := core.Stream.Out.Flush(); err != nil {
			return fmt.Errorf("flush of envelope %d failed: %w", i, err)
		}
		fmt.Printf("Sent envelope %d/%d\n", i+1, len(chunks))
	}
	if core.Stream.Out.Err().Any() {
		return fmt.Errorf("send finished with stream flags %08b", core.Stream.Out.Err())
	}
	fmt.Println("File send complete.")
	return nil
}
