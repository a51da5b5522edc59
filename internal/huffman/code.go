package huffman

import (
	"math/bits"

	"github.com/deepteams/brotlidec/internal/bitio"
)

// codeLengthAlphabetSize is the number of symbols (16 literal lengths plus
// the two repeat codes 16 and 17... here extended to 18 for the long
// zero-run) in the auxiliary alphabet used to Huffman-code a tree's own
// code lengths.
const codeLengthAlphabetSize = 19

// codeLengthOrder lists the codeLengthAlphabetSize symbols in the order
// their own code lengths appear on the wire: the symbols that show up most
// often in practice (single-length repeats, short runs) come first so a
// truncated prefix still covers the common case.
var codeLengthOrder = [codeLengthAlphabetSize]int{
	1, 2, 3, 4, 0, 17, 18, 5, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// ReadHuffmanCode reads one Huffman code definition for an alphabet of the
// given size from br and builds a decoder for it. It implements both wire
// encodings: a "simple" form listing 1-4 symbols directly, and a "complex"
// form that Huffman-codes a vector of per-symbol code lengths (itself using
// a small auxiliary code over codeLengthOrder).
func ReadHuffmanCode(br *bitio.Reader, alphabetSize int) (*Decoder, error) {
	br.FillWindow()
	simple := br.ReadBits(1) == 1
	if simple {
		return readSimpleCode(br, alphabetSize)
	}
	return readComplexCode(br, alphabetSize)
}

// readSimpleCode decodes the "simple" encoding: 1 to 4 symbols listed
// explicitly, with code lengths assigned by a fixed table rather than
// coded on the wire.
func readSimpleCode(br *bitio.Reader, alphabetSize int) (*Decoder, error) {
	numSymbols := int(br.ReadBits(2)) + 1
	symbolBits := symbolBitWidth(alphabetSize)

	var symbols [4]int
	for i := 0; i < numSymbols; i++ {
		br.FillWindow()
		s := int(br.ReadBits(symbolBits))
		if s >= alphabetSize {
			return nil, ErrInvalidTree
		}
		symbols[i] = s
	}

	lengths := make([]int, alphabetSize)
	switch numSymbols {
	case 1:
		lengths[symbols[0]] = 1
		// A single-symbol alphabet decodes for free; still route it
		// through Build so callers get a uniform Decoder.
		return Build(RootTableBits, lengths)
	case 2:
		lengths[symbols[0]] = 1
		lengths[symbols[1]] = 1
	case 3:
		lengths[symbols[0]] = 1
		lengths[symbols[1]] = 2
		lengths[symbols[2]] = 2
	case 4:
		br.FillWindow()
		treeSelect := br.ReadBits(1)
		if treeSelect == 0 {
			lengths[symbols[0]] = 2
			lengths[symbols[1]] = 2
			lengths[symbols[2]] = 2
			lengths[symbols[3]] = 2
		} else {
			lengths[symbols[0]] = 1
			lengths[symbols[1]] = 2
			lengths[symbols[2]] = 3
			lengths[symbols[3]] = 3
		}
	}
	return Build(RootTableBits, lengths)
}

// symbolBitWidth returns the number of bits needed to index any value in
// [0, alphabetSize), matching the reference decoder's counting loop.
func symbolBitWidth(alphabetSize int) int {
	if alphabetSize <= 1 {
		return 0
	}
	return bits.Len(uint(alphabetSize - 1))
}

// readComplexCode decodes the "complex" encoding: code lengths for
// codeLengthAlphabetSize auxiliary symbols are read directly (2-4 bits
// each, via a short prefix), a Huffman tree is built over them, and that
// tree is then used to read the real alphabet's code lengths via
// readCodeLengths.
func readComplexCode(br *bitio.Reader, alphabetSize int) (*Decoder, error) {
	var clLengths [codeLengthAlphabetSize]int

	br.FillWindow()
	numCodes := int(br.ReadBits(4)) + 4
	start := int(br.ReadBits(1)) * 2

	for i := start; i < numCodes; i++ {
		br.FillWindow()
		v := int(br.ReadBits(2))
		switch v {
		case 1:
			v = 3
		case 2:
			v = 4
		case 3:
			if br.ReadBits(1) == 0 {
				v = 2
			} else if br.ReadBits(1) == 0 {
				v = 1
			} else {
				v = 5
			}
		}
		clLengths[codeLengthOrder[i]] = v
	}

	clDecoder, err := Build(lengthsTableBits, clLengths[:])
	if err != nil {
		return nil, err
	}

	lengths, err := readCodeLengths(br, clDecoder, alphabetSize)
	if err != nil {
		return nil, err
	}
	return Build(RootTableBits, lengths)
}

// lengthsTableBits sizes the table for the auxiliary code-length alphabet.
// Its code lengths are bounded by 5 (see readComplexCode), so a root table
// this wide never needs a second level.
const lengthsTableBits = 5

// repeat symbols in the auxiliary alphabet.
const (
	repeatPrevious = 16
	repeatZerosA   = 17
	repeatZerosB   = 18
)

// readCodeLengths decodes alphabetSize code lengths using clDecoder, the
// Huffman tree built over the auxiliary (codeLengthAlphabetSize-symbol)
// alphabet. Symbols 0-15 are literal lengths; 16 repeats the previous
// nonzero length, 17 and 18 insert runs of zero of different maximum
// spans. A leading flag may cap how many code-length symbols (literal
// lengths and repeat codes alike) are decoded; entries not reached by then
// stay zero.
func readCodeLengths(br *bitio.Reader, clDecoder *Decoder, alphabetSize int) ([]int, error) {
	lengths := make([]int, alphabetSize)

	maxSymbol := alphabetSize
	br.FillWindow()
	if br.ReadBits(1) == 1 {
		nbits := 2 + 2*int(br.ReadBits(3))
		br.FillWindow()
		maxSymbol = 2 + int(br.ReadBits(nbits))
		if maxSymbol > alphabetSize {
			return nil, ErrInvalidTree
		}
	}

	symbol := 0
	prevCodeLen := 8

	for symbol < alphabetSize {
		if maxSymbol == 0 {
			break
		}
		maxSymbol--

		code := int(clDecoder.DecodeSymbol(br))
		if code < repeatPrevious {
			lengths[symbol] = code
			symbol++
			if code != 0 {
				prevCodeLen = code
			}
			continue
		}

		// 16/17/18 repeat a length across a run whose span is base plus
		// extraBits freshly-read bits; each occurrence is independent, with
		// no state carried from a prior repeat symbol.
		var repeatCodeLen, extraBits, base int
		switch code {
		case repeatPrevious:
			repeatCodeLen, extraBits, base = prevCodeLen, 2, 3
		case repeatZerosA:
			repeatCodeLen, extraBits, base = 0, 3, 3
		default: // repeatZerosB
			repeatCodeLen, extraBits, base = 0, 7, 11
		}

		br.FillWindow()
		repeat := base + int(br.ReadBits(extraBits))
		if symbol+repeat > alphabetSize {
			return nil, ErrInvalidTree
		}
		for i := 0; i < repeat; i++ {
			lengths[symbol] = repeatCodeLen
			symbol++
		}
	}

	return lengths, nil
}
