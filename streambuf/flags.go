package streambuf

// Flags records stream error conditions as a fixed-width bit-set.
// Bits 2 and up are reserved for applications; Merge treats the whole
// word as opaque so application bits pass through unchanged.
type Flags uint8

const (
	// FlagUninitialized is set when an operation runs against a buffer
	// with no backing storage bound.
	FlagUninitialized Flags = 1 << iota
	// FlagOverflow is set by a stream when a request could not be fully
	// satisfied. The buffer itself never sets it.
	FlagOverflow

	// Application condition codes. Opaque to this layer.
	FlagApp0
	FlagApp1
	FlagApp2
	FlagApp3
)

// Any reports whether at least one bit, named or reserved, is set.
func (f Flags) Any() bool {
	return f != 0
}

// Has reports whether every bit in v is set.
func (f Flags) Has(v Flags) bool {
	return (f & v) == v
}

// Clear resets every bit to zero.
func (f *Flags) Clear() {
	*f = 0
}

// Merge ORs other's bits into f. Commutative and idempotent.
func (f *Flags) Merge(other Flags) {
	*f |= other
}
