package packwire

import "testing"

func TestSwapHelpersAreInvolutions(t *testing.T) {
	if got := swap16(swap16(0xABCD)); got != 0xABCD {
		t.Fatalf("swap16 not an involution: %x", got)
	}
	if got := swap32(swap32(0x01020304)); got != 0x01020304 {
		t.Fatalf("swap32 not an involution: %x", got)
	}
	if got := swap64(swap64(0x0102030405060708)); got != 0x0102030405060708 {
		t.Fatalf("swap64 not an involution: %x", got)
	}
}

func TestSwap32ByteOrder(t *testing.T) {
	if got := swap32(0x01020304); got != 0x04030201 {
		t.Fatalf("swap32(0x01020304) = %x, want 04030201", got)
	}
}

func TestSwapNeededMatchesHostComparison(t *testing.T) {
	wireMatchesHost := Little
	if !hostLittle() {
		wireMatchesHost = Big
	}
	if swapNeeded(wireMatchesHost) {
		t.Fatal("swap should not be needed when wire endianness matches host")
	}
	other := Big
	if wireMatchesHost == Big {
		other = Little
	}
	if !swapNeeded(other) {
		t.Fatal("swap should be needed when wire endianness differs from host")
	}
}

func TestFloatBitReinterpretRoundTrip(t *testing.T) {
	if got := float32frombits(float32bits(1.25)); got != 1.25 {
		t.Fatalf("float32 bit round-trip = %v", got)
	}
	if got := float64frombits(float64bits(-3.5)); got != -3.5 {
		t.Fatalf("float64 bit round-trip = %v", got)
	}
}
