package brotli

import "github.com/deepteams/brotlidec/internal/prefix"

// runCommandLoop executes mb's command stream: a sequence of (insert,
// copy, distance) commands that together must produce exactly mb.metaLen
// bytes, handling block-type switches and literal-context selection as
// it goes.
func (d *decoder) runCommandLoop(mb *metaBlock) error {
	end := d.produced + mb.metaLen

	litCat := mb.cats[catLiteral]
	icCat := mb.cats[catInsertCopy]
	distCat := mb.cats[catDistance]

	contextMode := mb.contextModes[litCat.curType]
	lut1Base := prefix.ContextLookupOffsets[2*contextMode]
	lut2Base := prefix.ContextLookupOffsets[2*contextMode+1]
	litMapSlice := mb.contextMapLit[litCat.curType<<6 : (litCat.curType<<6)+64]
	distMapSlice := mb.contextMapDist[distCat.curType<<2 : (distCat.curType<<2)+4]

	maxBackward := (uint64(1) << d.hdr.windowBits) - 16

	for d.produced < end {
		if icCat.needsSwitch() {
			icCat.switchType(d.br)
			icCat.remaining = icCat.readBlockLength(d.br)
		}
		if icCat.switches {
			icCat.remaining--
		}

		c := int(mb.insertCopyGroup[icCat.curType].DecodeSymbol(d.br))

		rangeIdx := c >> 6
		distanceCode := 0
		rangeUsed := rangeIdx
		if rangeIdx >= 2 {
			distanceCode = -1
			rangeUsed = rangeIdx & 1
		}

		insertCode := prefix.InsertRangeLUT[rangeUsed] + ((c >> 3) & 7)
		copyCode := prefix.CopyRangeLUT[rangeUsed] + (c & 7)

		ir := prefix.InsertLenPrefix[insertCode]
		d.br.FillWindow()
		insertLen := int(ir.Offset) + int(d.br.ReadBits(int(ir.Nbits)))

		cr := prefix.CopyLenPrefix[copyCode]
		d.br.FillWindow()
		copyLen := int(cr.Offset) + int(d.br.ReadBits(int(cr.Nbits)))

		for i := 0; i < insertLen; i++ {
			if litCat.needsSwitch() {
				litCat.switchType(d.br)
				litCat.remaining = litCat.readBlockLength(d.br)
				contextMode = mb.contextModes[litCat.curType]
				lut1Base = prefix.ContextLookupOffsets[2*contextMode]
				lut2Base = prefix.ContextLookupOffsets[2*contextMode+1]
				litMapSlice = mb.contextMapLit[litCat.curType<<6 : (litCat.curType<<6)+64]
			}

			ctx := prefix.ContextLookup[lut1Base+int(d.ring.prev1)] | prefix.ContextLookup[lut2Base+int(d.ring.prev2)]
			htreeIdx := litMapSlice[ctx]
			b := byte(mb.literalGroup[htreeIdx].DecodeSymbol(d.br))

			if err := d.ring.put(b); err != nil {
				return err
			}
			if litCat.switches {
				litCat.remaining--
			}
			d.produced++
		}

		if d.produced == end {
			break
		}
		if d.produced > end {
			return ErrMalformedStream
		}

		if distanceCode < 0 {
			if distCat.needsSwitch() {
				distCat.switchType(d.br)
				distCat.remaining = distCat.readBlockLength(d.br)
				distMapSlice = mb.contextMapDist[distCat.curType<<2 : (distCat.curType<<2)+4]
			}

			dctx := copyLen - 2
			if dctx > 3 {
				dctx = 3
			}
			if dctx < 0 {
				dctx = 0
			}
			dhtree := distMapSlice[dctx]
			s := int(mb.distanceGroup[dhtree].DecodeSymbol(d.br))

			if s < mb.numDirect {
				distanceCode = s
			} else {
				t := s - mb.numDirect
				postfixMask := (1 << mb.postfixBits) - 1
				postfixVal := t & postfixMask
				tprime := t >> mb.postfixBits
				nbits := (tprime >> 1) + 1
				offset := ((2 + (tprime & 1)) << uint(nbits)) - 4
				d.br.FillWindow()
				extra := int(d.br.ReadBits(nbits))
				distanceCode = mb.numDirect + ((offset+extra)<<mb.postfixBits) + postfixVal
			}
			if distCat.switches {
				distCat.remaining--
			}
		}

		distance, err := resolveDistance(distanceCode, &d.distRB)
		if err != nil {
			return err
		}
		if distanceCode > 0 {
			d.distRB.push(distance)
		}

		maxDist := d.produced
		if maxBackward < maxDist {
			maxDist = maxBackward
		}
		if uint64(distance) > maxDist || d.produced+uint64(copyLen) > end {
			return ErrInvalidBackref
		}

		if err := d.ring.selfCopy(distance, copyLen); err != nil {
			return err
		}
		d.produced += uint64(copyLen)
	}

	return nil
}
