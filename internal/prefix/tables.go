// Package prefix holds the format's static, read-only lookup tables:
// range codes for insert/copy/block lengths, the range-select LUTs used to
// split an insert-and-copy symbol into separate insert and copy codes, and
// the literal context lookup table.
//
// The length range tables are produced at package init from compact
// generator expressions rather than typed out entry by entry, per the flat
// bit-width lists the format's reference encoder uses; the two 8-entry
// range-select LUTs are listed directly.
package prefix

// Range is one entry of a prefix-coded length table: the length equals
// Offset plus an Nbits-wide value read from the stream.
type Range struct {
	Offset uint32
	Nbits  uint8
}

// makeRanges expands a base offset and a list of per-code extra-bit widths
// into the cumulative range table the format actually uses: each
// successive code's offset is the previous one plus 2^nbits.
func makeRanges(base uint32, widths []uint8) []Range {
	ranges := make([]Range, len(widths))
	for i, nb := range widths {
		ranges[i] = Range{Offset: base, Nbits: nb}
		base += 1 << nb
	}
	return ranges
}

// InsertLenPrefix maps an insert-length code (0..23) to its range.
var InsertLenPrefix = makeRanges(0, []uint8{
	0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 12, 14, 24,
})

// CopyLenPrefix maps a copy-length code (0..23) to its range.
var CopyLenPrefix = makeRanges(2, []uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 24,
})

// BlockLenPrefix maps a block-length code (0..25) to its range.
var BlockLenPrefix = makeRanges(1, []uint8{
	2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6, 7, 8, 9, 10, 11, 12, 13, 24,
})

// InsertRangeLUT and CopyRangeLUT split an insert-and-copy symbol's range
// index (symbol >> 6, reduced to its low bit once it reaches 2 or more)
// into the base code added to the symbol's low bits to get the final
// insert/copy length code.
var (
	InsertRangeLUT = [8]int{0, 0, 0, 8, 0, 16, 16, 16}
	CopyRangeLUT   = [8]int{0, 8, 0, 0, 16, 0, 16, 16}
)
