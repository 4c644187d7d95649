package streamio

import (
	"crypto/tls"
	"fmt"
	"io"
)

// Helper to read a big-endian int64 from a wire
func readInt64(r io.Reader) (int64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	val := int64(buf[0])<<56 | int64(buf[1])<<48 | int64(buf[2])<<40 | int64(buf[3])<<32 |
		int64(buf[4])<<24 | int64(buf[5])<<16 | int64(buf[6])<<8 | int64(buf[7])
	return val, nil
}

// Helper to write a big-endian int64 to a wire
func writeInt64(w io.Writer, val int64) error {
	buf := []byte{
		byte(val >> 56), byte(val >> 48), byte(val >> 40), byte(val >> 32),
		byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val),
	}
	_, err := w.Write(buf)
	return err
}

// TLSConfigFromPEM builds a TLS config from a cert/key pair for the QUIC
// transport. Verification is skipped; use proper certificates in
// production deployments.
func TLSConfigFromPEM(certPEM, keyPEM []byte, nextProto string) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to load key pair: %w", err)
	}
	return &tls.Config{
		Certificates:       []tls.Certificate{cert},
		InsecureSkipVerify: true,
		NextProtos:         []string{nextProto},
	}, nil
}
