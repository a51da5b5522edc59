package prefix

// Literal context modes. A literal block-type declares one of these; it
// selects how the two previously emitted bytes are folded into a 6-bit
// context used to pick a literal Huffman tree.
const (
	ContextLSB6 = 0
	ContextMSB6 = 1
	ContextUTF8 = 2
	ContextSigned = 3

	numContextModes = 4
)

// contextSubtableSize is the width of each of the two per-mode subtables
// (one keyed by prev1, one by prev2) packed into ContextLookup.
const contextSubtableSize = 256

// ContextLookupOffsets gives the base offset of each mode's prev1 subtable
// at ContextLookupOffsets[2*mode] and its prev2 subtable at
// ContextLookupOffsets[2*mode+1]. The four modes' subtable pairs are
// independent (none overlap), unlike a literal reading of "offsets[mode]
// and offsets[mode+1]" would suggest for consecutive modes.
var ContextLookupOffsets = [2 * numContextModes]int{
	0 * contextSubtableSize,
	1 * contextSubtableSize,
	2 * contextSubtableSize,
	3 * contextSubtableSize,
	4 * contextSubtableSize,
	5 * contextSubtableSize,
	6 * contextSubtableSize,
	7 * contextSubtableSize,
}

// ContextLookup is the flat table CommandLoop indexes as
// ContextLookup[ContextLookupOffsets[2*mode]+prev1] |
// ContextLookup[ContextLookupOffsets[2*mode+1]+prev2].
var ContextLookup [8 * contextSubtableSize]uint8

func init() {
	// LSB6: context is simply the low 6 bits of the previous byte; prev2
	// never contributes, so its subtable is all zero.
	for b := 0; b < 256; b++ {
		ContextLookup[0*contextSubtableSize+b] = uint8(b & 0x3f)
		ContextLookup[1*contextSubtableSize+b] = 0
	}

	// MSB6: context is the high 6 bits of the previous byte.
	for b := 0; b < 256; b++ {
		ContextLookup[2*contextSubtableSize+b] = uint8(b >> 2)
		ContextLookup[3*contextSubtableSize+b] = 0
	}

	// UTF8: buckets prev1 by its role in a UTF-8 sequence (ASCII control,
	// ASCII letter/digit/punctuation class, continuation byte, or a
	// multi-byte lead byte) and prev2 by a coarser class of the same
	// shape, shifted clear of the prev1 range so the two OR together
	// without colliding.
	for b := 0; b < 256; b++ {
		ContextLookup[4*contextSubtableSize+b] = utf8Prev1Class(byte(b))
		ContextLookup[5*contextSubtableSize+b] = utf8Prev2Class(byte(b))
	}

	// Signed: both previous bytes are bucketed into a 3-bit signed
	// magnitude class; prev1's class occupies the high 3 bits of the
	// context, prev2's the low 3.
	for b := 0; b < 256; b++ {
		ContextLookup[6*contextSubtableSize+b] = signedClass(byte(b)) << 3
		ContextLookup[7*contextSubtableSize+b] = signedClass(byte(b))
	}
}

// utf8Prev1Class buckets a byte by its structural role in UTF-8 text:
// low control codes and space get their own small buckets so runs of
// formatting bytes share a context, ASCII text gets a broad bucket, and
// continuation/lead bytes of multi-byte sequences get high buckets so
// non-ASCII runs don't pollute the ASCII literal tree.
func utf8Prev1Class(b byte) uint8 {
	switch {
	case b == 0:
		return 0
	case b < 0x09:
		return 1
	case b == 0x0a || b == 0x0d:
		return 2
	case b < 0x20:
		return 3
	case b == ' ':
		return 4
	case b >= 'a' && b <= 'z':
		return 5
	case b >= 'A' && b <= 'Z':
		return 6
	case b >= '0' && b <= '9':
		return 7
	case b < 0x80:
		return 8
	case b < 0xc0:
		return 9 // UTF-8 continuation byte
	default:
		return 10 // UTF-8 multi-byte lead byte
	}
}

// utf8Prev2Class is a coarser 4-way version of utf8Prev1Class used for the
// second-previous byte, shifted into the high bits of the combined
// context so it composes with utf8Prev1Class via bitwise OR.
func utf8Prev2Class(b byte) uint8 {
	switch {
	case b < 0x20:
		return 0 << 4
	case b < 0x80:
		return 1 << 4
	case b < 0xc0:
		return 2 << 4
	default:
		return 3 << 4
	}
}

// signedClass buckets a byte into one of 7 magnitude classes (0..6), coarsely
// mirroring a signed-residual distribution (small values near 0 and 255
// get their own classes; the middle of the range collapses to fewer,
// wider buckets).
func signedClass(b byte) uint8 {
	v := int(int8(b))
	switch {
	case v == 0:
		return 0
	case v > 0 && v < 8:
		return 1
	case v >= 8 && v < 32:
		return 2
	case v >= 32:
		return 3
	case v < 0 && v > -8:
		return 4
	case v <= -8 && v > -32:
		return 5
	default:
		return 6
	}
}
