package brotli

import (
	"testing"

	"github.com/deepteams/brotlidec/internal/bitio"
)

func TestDecodeStreamHeader_WithSize(t *testing.T) {
	var w bitWriter
	w.writeBits(1, 3)   // k=1 -> an 8-bit decoded size follows
	w.writeBits(200, 8) // decoded size = 200, bitLength(200) == 8 <= 16

	br := bitio.NewReader(w.bytes())
	hdr, err := decodeStreamHeader(br)
	if err != nil {
		t.Fatalf("decodeStreamHeader: %v", err)
	}
	if !hdr.hasSize || hdr.decodedSize != 200 {
		t.Fatalf("got hasSize=%v decodedSize=%d, want true/200", hdr.hasSize, hdr.decodedSize)
	}
	if hdr.windowBits != 16 {
		t.Fatalf("windowBits = %d, want 16 (no explicit field needed)", hdr.windowBits)
	}
}

func TestDecodeStreamHeader_NoSizeExplicitWindow(t *testing.T) {
	var w bitWriter
	w.writeBits(0, 3) // k=0 -> no decoded size
	w.writeBits(1, 1) // explicit window-bits field follows
	w.writeBits(3, 3) // windowBits = 17+3 = 20

	br := bitio.NewReader(w.bytes())
	hdr, err := decodeStreamHeader(br)
	if err != nil {
		t.Fatalf("decodeStreamHeader: %v", err)
	}
	if hdr.hasSize {
		t.Fatalf("hasSize = true, want false")
	}
	if hdr.windowBits != 20 {
		t.Fatalf("windowBits = %d, want 20", hdr.windowBits)
	}
}

func TestDecodeMetaBlockLength_KnownSize(t *testing.T) {
	hdr := streamHeader{hasSize: true, decodedSize: 200}

	var w bitWriter
	w.writeBits(0, 1)  // input_end = false
	w.writeBits(49, 8) // metaLen - 1 = 49, totalBits = sizeBits(200) = 8, already byte-aligned

	br := bitio.NewReader(w.bytes())
	mh, err := decodeMetaBlockLength(br, hdr, 0)
	if err != nil {
		t.Fatalf("decodeMetaBlockLength: %v", err)
	}
	if mh.inputEnd {
		t.Fatalf("inputEnd = true, want false")
	}
	if mh.metaLen != 50 {
		t.Fatalf("metaLen = %d, want 50", mh.metaLen)
	}
}

// TestDecodeMetaBlockLength_KnownSize_RoundsUpToByte exercises a decodedSize
// whose sizeBits isn't already a multiple of 8: the field on the wire is
// still a whole number of 8-bit chunks, so 4 significant bits plus 4 high
// zero-padding bits must be consumed, not just 4 bits.
func TestDecodeMetaBlockLength_KnownSize_RoundsUpToByte(t *testing.T) {
	hdr := streamHeader{hasSize: true, decodedSize: 10} // sizeBits(10) = bitLength(9) = 4

	var w bitWriter
	w.writeBits(0, 1)  // input_end = false
	w.writeBits(6, 8)  // metaLen - 1 = 6, read as a full byte (rounded up from 4 bits)

	br := bitio.NewReader(w.bytes())
	mh, err := decodeMetaBlockLength(br, hdr, 0)
	if err != nil {
		t.Fatalf("decodeMetaBlockLength: %v", err)
	}
	if mh.metaLen != 7 {
		t.Fatalf("metaLen = %d, want 7", mh.metaLen)
	}
}

func TestDecodeMetaBlockLength_KnownSizeFinal(t *testing.T) {
	hdr := streamHeader{hasSize: true, decodedSize: 200}

	var w bitWriter
	w.writeBits(1, 1) // input_end = true; length is inferred, not read

	br := bitio.NewReader(w.bytes())
	mh, err := decodeMetaBlockLength(br, hdr, 150)
	if err != nil {
		t.Fatalf("decodeMetaBlockLength: %v", err)
	}
	if !mh.inputEnd {
		t.Fatalf("inputEnd = false, want true")
	}
	if mh.metaLen != 50 {
		t.Fatalf("metaLen = %d, want 50 (200-150)", mh.metaLen)
	}
}

func TestDecodeMetaBlockLength_NoKnownSize(t *testing.T) {
	hdr := streamHeader{}

	var w bitWriter
	w.writeBits(0, 1)  // input_end = false
	w.writeBits(2, 3)  // nibble count = 2 -> 8 bits of length
	w.writeBits(9, 8)  // two 4-bit nibbles read as one 8-bit LE chunk: 9

	br := bitio.NewReader(w.bytes())
	mh, err := decodeMetaBlockLength(br, hdr, 0)
	if err != nil {
		t.Fatalf("decodeMetaBlockLength: %v", err)
	}
	if mh.metaLen != 10 {
		t.Fatalf("metaLen = %d, want 10 (9+1)", mh.metaLen)
	}
}

func TestBitLength(t *testing.T) {
	cases := map[uint64]int{0: 0, 1: 1, 2: 2, 3: 2, 200: 8, 256: 9, 65535: 16, 65536: 17}
	for v, want := range cases {
		if got := bitLength(v); got != want {
			t.Errorf("bitLength(%d) = %d, want %d", v, got, want)
		}
	}
}

// sizeBits is bitLength(n-1), one less than bitLength(n) at every power of
// two: a decoded size of exactly 256 needs only 8 bits, not 9.
func TestSizeBits_PowerOfTwoBoundary(t *testing.T) {
	if got := sizeBits(256); got != 8 {
		t.Fatalf("sizeBits(256) = %d, want 8", got)
	}
	if got := bitLength(256); got != 9 {
		t.Fatalf("sanity check: bitLength(256) = %d, want 9", got)
	}
	if got := sizeBits(257); got != 9 {
		t.Fatalf("sizeBits(257) = %d, want 9", got)
	}
}

func TestDecodeStreamHeader_EmptyStream(t *testing.T) {
	var w bitWriter
	w.writeBits(1, 3) // k=1 -> an 8-bit decoded size follows
	w.writeBits(0, 8) // decoded size = 0

	br := bitio.NewReader(w.bytes())
	hdr, err := decodeStreamHeader(br)
	if err != nil {
		t.Fatalf("decodeStreamHeader: %v", err)
	}
	if !hdr.empty {
		t.Fatalf("empty = false, want true for a declared decoded size of 0")
	}
	if !hdr.hasSize || hdr.decodedSize != 0 {
		t.Fatalf("got hasSize=%v decodedSize=%d, want true/0", hdr.hasSize, hdr.decodedSize)
	}
	if hdr.windowBits != 0 {
		t.Fatalf("windowBits = %d, want 0 (never read for an empty stream)", hdr.windowBits)
	}
}

func TestDecodeMetaBlockLength_KnownSize_PowerOfTwoBoundary(t *testing.T) {
	hdr := streamHeader{hasSize: true, decodedSize: 256}

	var w bitWriter
	w.writeBits(0, 1)   // input_end = false
	w.writeBits(99, 8)  // metaLen - 1 = 99, totalBits = sizeBits(256) = 8

	br := bitio.NewReader(w.bytes())
	mh, err := decodeMetaBlockLength(br, hdr, 0)
	if err != nil {
		t.Fatalf("decodeMetaBlockLength: %v", err)
	}
	if mh.metaLen != 100 {
		t.Fatalf("metaLen = %d, want 100", mh.metaLen)
	}
}
