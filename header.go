package brotli

import "github.com/deepteams/brotlidec/internal/bitio"

// streamHeader is the one-time preamble at the start of a compressed
// stream: an optional advertised decoded size, followed by the window
// size used to size the ring buffer for the whole stream.
type streamHeader struct {
	hasSize     bool
	decodedSize uint64
	windowBits  uint
	// empty is set when the stream advertises a decoded size of exactly
	// zero: the whole decode is then a no-op and window_bits is never
	// present on the wire.
	empty bool
}

// decodeStreamHeader reads the 3-bit size-length prefix and, if nonzero,
// the little-endian decoded size it introduces, then derives window_bits:
// from an optional explicit 3-bit field when there is no size hint or the
// hint needs more than 16 bits, otherwise fixed at 16. A declared size of
// exactly zero short-circuits before window_bits is read at all.
func decodeStreamHeader(br *bitio.Reader) (streamHeader, error) {
	var h streamHeader

	k := br.ReadBits(3)
	if k > 0 {
		h.hasSize = true
		h.decodedSize = readLittleEndianBits(br, int(8*k))
	}
	if err := br.EnsureAvailable(); err != nil {
		return h, err
	}
	if h.hasSize && h.decodedSize == 0 {
		h.empty = true
		return h, nil
	}

	needsExplicitBits := !h.hasSize || sizeBits(h.decodedSize) > 16
	if needsExplicitBits {
		if br.ReadBits(1) == 1 {
			h.windowBits = 17 + uint(br.ReadBits(3))
		} else {
			h.windowBits = 16
		}
	} else {
		h.windowBits = 16
	}

	if err := br.EnsureAvailable(); err != nil {
		return h, err
	}
	return h, nil
}

func bitLength(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// sizeBits is the bit width the wire format actually uses to encode a
// meta-block length bound by a known decoded size: the number of bits
// needed for decodedSize-1, since every meta-block length is itself
// stored as (length-1). A decodedSize that happens to be a power of two
// needs one fewer bit than bitLength(decodedSize) would suggest.
func sizeBits(decodedSize uint64) int {
	if decodedSize == 0 {
		return 0
	}
	return bitLength(decodedSize - 1)
}

// readLittleEndianBits reads nbits (which may exceed the bit reader's
// per-call limit) as a little-endian integer, least-significant chunk
// first, by splitting the read into 8-bit pieces.
func readLittleEndianBits(br *bitio.Reader, nbits int) uint64 {
	var value uint64
	shift := uint(0)
	for remaining := nbits; remaining > 0; {
		chunk := 8
		if remaining < chunk {
			chunk = remaining
		}
		value |= uint64(br.ReadBits(chunk)) << shift
		shift += uint(chunk)
		remaining -= chunk
	}
	return value
}

// metaBlockHeader describes one meta-block's declared output length and
// whether it is the stream's final segment.
type metaBlockHeader struct {
	inputEnd bool
	metaLen  uint64
}

// decodeMetaBlockLength reads the input_end flag and the meta-block
// length that follows it. When the stream advertised a total decoded
// size, an input_end meta-block's length is inferred as whatever remains
// instead of being read from the wire; otherwise lengths are read as a
// variable number of nibbles (no known size) or 8-bit chunks (known
// size), least-significant first, stored as length-1.
func decodeMetaBlockLength(br *bitio.Reader, hdr streamHeader, producedSoFar uint64) (metaBlockHeader, error) {
	var m metaBlockHeader
	m.inputEnd = br.ReadBits(1) == 1

	if hdr.hasSize {
		if m.inputEnd {
			if hdr.decodedSize < producedSoFar {
				return m, ErrMalformedStream
			}
			m.metaLen = hdr.decodedSize - producedSoFar
			return m, nil
		}
		// The wire format reads this field in whole 8-bit chunks: a
		// counter starts at sizeBits(decodedSize) and each iteration reads
		// 8 bits and subtracts 8, stopping once the counter is no longer
		// positive. That always consumes a multiple of 8 bits, rounding
		// up past whatever sizeBits itself computed.
		totalBits := (sizeBits(hdr.decodedSize) + 7) &^ 7
		m.metaLen = readLittleEndianBits(br, totalBits) + 1
		if err := br.EnsureAvailable(); err != nil {
			return m, err
		}
		return m, nil
	}

	if m.inputEnd {
		m.metaLen = 0
		return m, nil
	}

	nib := int(br.ReadBits(3))
	m.metaLen = readLittleEndianBits(br, 4*nib) + 1
	if err := br.EnsureAvailable(); err != nil {
		return m, err
	}
	return m, nil
}
