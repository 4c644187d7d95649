package streamframe

// Raw bytes for the envelope headers
var (
	ENVELOPE_HEADER_1 = []byte{0x3e, 0x1a, 0xf5, 0x01} // Envelope v1 header
)

const (
	headerLen  = 4
	idLen      = 16
	lengthLen  = 8
	PrefixSize = headerLen + idLen + lengthLen
)
