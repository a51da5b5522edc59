package huffman

import (
	"testing"

	"github.com/deepteams/brotlidec/internal/bitio"
)

// TestReadCodeLengths_RepeatCodesDoNotChain guards against treating
// consecutive same-kind repeat codes (16/17/18) as carrying state between
// occurrences: each decode is base+extraBits on its own. Two back-to-back
// code-18 symbols each requesting the maximum span (11+127=138) must
// together advance the symbol cursor by exactly 276, not overflow it the
// way a chained running-count formula would.
func TestReadCodeLengths_RepeatCodesDoNotChain(t *testing.T) {
	clLengths := make([]int, codeLengthAlphabetSize)
	clLengths[0] = 1
	clLengths[18] = 1
	clDecoder, err := Build(lengthsTableBits, clLengths)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var w bitWriter
	w.writeBits(0, 1)   // no explicit max_symbol field
	w.writeBits(1, 1)   // code 18 (long repeat-zero)
	w.writeBits(127, 7) // extra bits -> repeat = 11+127 = 138
	w.writeBits(1, 1)   // code 18 again, independent of the first
	w.writeBits(127, 7) // extra bits -> repeat = 11+127 = 138 again

	br := bitio.NewReader(w.bytes())
	lengths, err := readCodeLengths(br, clDecoder, 276)
	if err != nil {
		t.Fatalf("readCodeLengths: %v (a chained repeat count would overrun alphabetSize and fail here)", err)
	}
	if len(lengths) != 276 {
		t.Fatalf("len(lengths) = %d, want 276", len(lengths))
	}
	for i, l := range lengths {
		if l != 0 {
			t.Fatalf("lengths[%d] = %d, want 0", i, l)
		}
	}
}

// TestReadCodeLengths_MaxSymbolOverrunFails checks that an explicit
// max_symbol field exceeding alphabetSize is rejected rather than silently
// clamped.
func TestReadCodeLengths_MaxSymbolOverrunFails(t *testing.T) {
	clLengths := make([]int, codeLengthAlphabetSize)
	clLengths[0] = 1
	clLengths[1] = 1
	clDecoder, err := Build(lengthsTableBits, clLengths)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var w bitWriter
	w.writeBits(1, 1) // explicit max_symbol field follows
	w.writeBits(0, 3) // extra3 = 0 -> nbits = 2
	w.writeBits(3, 2) // max_symbol = 2 + 3 = 5, greater than alphabetSize below

	br := bitio.NewReader(w.bytes())
	if _, err := readCodeLengths(br, clDecoder, 4); err != ErrInvalidTree {
		t.Fatalf("readCodeLengths: got err=%v, want ErrInvalidTree", err)
	}
}
