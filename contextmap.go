package brotli

import (
	"github.com/deepteams/brotlidec/internal/bitio"
	"github.com/deepteams/brotlidec/internal/huffman"
)

// decodeContextMap reads a per-meta-block context map of the given size:
// a flat array assigning each (block-type, local-context) pair a Huffman
// tree index within its group. The wire encoding optionally run-length
// encodes zero runs and optionally applies an inverse move-to-front
// permutation over the whole result.
func decodeContextMap(br *bitio.Reader, size int) (numHTrees int, out []byte, err error) {
	br.FillWindow()
	numHTrees = int(br.ReadBits(8)) + 1
	out = make([]byte, size)
	if numHTrees == 1 {
		return numHTrees, out, nil
	}

	br.FillWindow()
	maxRunPrefix := 0
	if br.ReadBits(1) == 1 {
		maxRunPrefix = int(br.ReadBits(4)) + 1
	}

	dec, err := huffman.ReadHuffmanCode(br, numHTrees+maxRunPrefix)
	if err != nil {
		return 0, nil, err
	}

	i := 0
	for i < size {
		s := int(dec.DecodeSymbol(br))
		switch {
		case s == 0:
			out[i] = 0
			i++
		case s <= maxRunPrefix:
			br.FillWindow()
			extra := int(br.ReadBits(s))
			count := (1 << uint(s)) + extra
			if i+count > size {
				return 0, nil, ErrMalformedStream
			}
			for j := 0; j < count; j++ {
				out[i] = 0
				i++
			}
		default:
			v := s - maxRunPrefix
			if v > numHTrees {
				return 0, nil, ErrMalformedStream
			}
			out[i] = byte(v)
			i++
		}
	}
	if i != size {
		return 0, nil, ErrMalformedStream
	}

	br.FillWindow()
	if br.ReadBits(1) == 1 {
		inverseMoveToFront(out)
	}

	for _, v := range out {
		if int(v) >= numHTrees {
			return 0, nil, ErrMalformedStream
		}
	}
	return numHTrees, out, nil
}

// inverseMoveToFront undoes a move-to-front encoding in place: each entry
// names a position in a 256-entry, initially-identity permutation; that
// entry's value replaces the input, and the named position is then moved
// to the front of the permutation so the next repeat of the same symbol
// encodes as 0.
func inverseMoveToFront(data []byte) {
	var mtf [256]byte
	for i := range mtf {
		mtf[i] = byte(i)
	}
	for i, idx := range data {
		v := mtf[idx]
		data[i] = v
		if idx != 0 {
			copy(mtf[1:idx+1], mtf[0:idx])
			mtf[0] = v
		}
	}
}
