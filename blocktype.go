package brotli

import (
	"github.com/deepteams/brotlidec/internal/bitio"
	"github.com/deepteams/brotlidec/internal/huffman"
	"github.com/deepteams/brotlidec/internal/prefix"
)

// blockCategory is the per-category state machine for block-type
// switching: which Huffman trees select the current type and remaining
// run length, plus the 2-entry history needed to resolve the "toggle
// back" and "advance" type codes.
type blockCategory struct {
	numTypes int
	// switches is false when numTypes == 1: the category has no type or
	// length trees at all, and its run never needs to be refreshed.
	switches bool

	typeTree *huffman.Decoder
	lenTree  *huffman.Decoder

	curType   int
	remaining int

	typeRB  [2]int
	ringIdx int
}

func newBlockCategory(numTypes int) *blockCategory {
	return &blockCategory{
		numTypes: numTypes,
		switches: numTypes > 1,
		typeRB:   [2]int{0, 1},
	}
}

// needsSwitch reports whether the category's run has been exhausted and
// a fresh type/length must be read before the next item.
func (c *blockCategory) needsSwitch() bool {
	return c.switches && c.remaining == 0
}

// switchType decodes a fresh type_code from the category's type tree and
// resolves it into a new current block type, per §4.6.1: 0 means "the
// type from two switches ago", 1 means "one past the type from the most
// recent switch", anything else is the type directly (offset by 2).
func (c *blockCategory) switchType(br *bitio.Reader) int {
	typeCode := int(c.typeTree.DecodeSymbol(br))

	var newType int
	switch typeCode {
	case 0:
		newType = c.typeRB[c.ringIdx&1]
	case 1:
		newType = (c.typeRB[(c.ringIdx-1)&1] + 1) % c.numTypes
	default:
		newType = typeCode - 2
	}

	c.typeRB[c.ringIdx&1] = newType
	c.ringIdx++
	c.curType = newType
	return newType
}

// readBlockLength decodes a fresh run length from the category's
// block-length tree and prefix-code table.
func (c *blockCategory) readBlockLength(br *bitio.Reader) int {
	code := int(c.lenTree.DecodeSymbol(br))
	r := prefix.BlockLenPrefix[code]
	br.FillWindow()
	return int(r.Offset) + int(br.ReadBits(int(r.Nbits)))
}
