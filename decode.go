package brotli

import (
	"github.com/deepteams/brotlidec/internal/bitio"
	"github.com/deepteams/brotlidec/internal/huffman"
)

const (
	numLiteralSymbols    = 256
	numInsertCopySymbols = 704
)

// huffmanGroup is a parallel array of Huffman trees for one alphabet,
// selected per use by a context map.
type huffmanGroup []*huffman.Decoder

// decoder holds everything needed to decode one complete compressed
// stream. Per-meta-block state (block categories, context maps, Huffman
// groups) is owned by metaBlock and rebuilt fresh for every meta-block;
// only window size, ring buffer, distance ring, and running byte count
// persist across meta-blocks.
type decoder struct {
	br  *bitio.Reader
	out Output
	hdr streamHeader

	ring   *ringBuffer
	distRB distanceRing

	produced uint64
}

func newDecoder(data []byte, out Output) *decoder {
	return &decoder{
		br:     bitio.NewReader(data),
		out:    out,
		distRB: newDistanceRing(),
	}
}

// run decodes the stream header and every meta-block in turn until an
// input_end meta-block of length zero terminates the stream.
func (d *decoder) run() error {
	hdr, err := decodeStreamHeader(d.br)
	if err != nil {
		return err
	}
	d.hdr = hdr
	if hdr.empty {
		return nil
	}
	d.ring = newRingBuffer(hdr.windowBits, d.out)
	defer d.ring.release()

	for {
		mh, err := decodeMetaBlockLength(d.br, d.hdr, d.produced)
		if err != nil {
			return err
		}
		if mh.metaLen == 0 {
			if mh.inputEnd {
				break
			}
			// An empty, non-terminal meta-block still exists on the wire
			// in principle but carries no header or commands.
			continue
		}

		mb, err := decodeMetaBlockHeader(d.br, mh.metaLen)
		if err != nil {
			return err
		}
		if err := d.runCommandLoop(mb); err != nil {
			return err
		}

		if mh.inputEnd {
			break
		}
	}

	return d.ring.flush(d.ring.pos & d.ring.mask)
}
