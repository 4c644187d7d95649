package streambuf

import "testing"

func TestFlagsAnyClear(t *testing.T) {
	var f Flags
	if f.Any() {
		t.Fatalf("zero flags should report Any() == false")
	}
	f.Merge(FlagOverflow)
	if !f.Any() {
		t.Fatalf("flags with overflow set should report Any() == true")
	}
	if !f.Has(FlagOverflow) {
		t.Fatalf("Has(FlagOverflow) should be true after merge")
	}
	if f.Has(FlagUninitialized) {
		t.Fatalf("Has(FlagUninitialized) should be false")
	}
	f.Clear()
	if f.Any() {
		t.Fatalf("flags should be empty after Clear")
	}
}

func TestFlagsMergeCommutativeIdempotent(t *testing.T) {
	a := FlagUninitialized | FlagApp1
	b := FlagOverflow | FlagApp3

	ab := a
	ab.Merge(b)
	ba := b
	ba.Merge(a)
	if ab != ba {
		t.Fatalf("merge not commutative: got %08b and %08b", ab, ba)
	}

	aa := a
	aa.Merge(a)
	if aa != a {
		t.Fatalf("merge not idempotent: got %08b, want %08b", aa, a)
	}
}

func TestFlagsReservedBitsPassThrough(t *testing.T) {
	// Application bits are opaque to this layer but must survive a merge.
	var f Flags
	f.Merge(FlagApp0 | FlagApp2)
	if !f.Has(FlagApp0 | FlagApp2) {
		t.Fatalf("reserved bits lost in merge: got %08b", f)
	}
	if !f.Any() {
		t.Fatalf("Any() should see reserved bits")
	}
}
