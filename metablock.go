package brotli

import (
	"github.com/deepteams/brotlidec/internal/bitio"
	"github.com/deepteams/brotlidec/internal/huffman"
)

// category indices, matching the wire order block types/lengths appear
// in for each meta-block.
const (
	catLiteral = 0
	catInsertCopy = 1
	catDistance = 2
)

// metaBlock bundles everything decoded from one meta-block's header: the
// three block-type/length state machines, the literal context mode per
// literal block-type, both context maps, and the three Huffman tree
// groups. It is discarded once the command loop for this meta-block
// finishes.
type metaBlock struct {
	metaLen uint64

	cats [3]*blockCategory

	postfixBits  uint
	numDirect    int
	numDistCodes int

	contextModes []int
	contextMapLit  []byte
	contextMapDist []byte
	numLitHTrees  int
	numDistHTrees int

	literalGroup    huffmanGroup
	insertCopyGroup huffmanGroup
	distanceGroup   huffmanGroup
}

// decodeMetaBlockHeader reads everything a meta-block needs before its
// command stream can run: block-type/length trees for all three
// categories, the postfix/direct-distance parameters, one context mode
// per literal block-type, both context maps, and the three Huffman tree
// groups.
func decodeMetaBlockHeader(br *bitio.Reader, metaLen uint64) (*metaBlock, error) {
	mb := &metaBlock{metaLen: metaLen}

	for k := 0; k < 3; k++ {
		cat, err := decodeBlockCategoryHeader(br)
		if err != nil {
			return nil, err
		}
		mb.cats[k] = cat
	}

	br.FillWindow()
	mb.postfixBits = uint(br.ReadBits(2))
	nibble := int(br.ReadBits(4))
	mb.numDirect = 16 + (nibble << mb.postfixBits)
	mb.numDistCodes = mb.numDirect + (48 << mb.postfixBits)

	mb.contextModes = make([]int, mb.cats[catLiteral].numTypes)
	for i := range mb.contextModes {
		br.FillWindow()
		mb.contextModes[i] = int(br.ReadBits(2))
	}

	numLitHTrees, litMap, err := decodeContextMap(br, mb.cats[catLiteral].numTypes<<6)
	if err != nil {
		return nil, err
	}
	mb.numLitHTrees, mb.contextMapLit = numLitHTrees, litMap

	numDistHTrees, distMap, err := decodeContextMap(br, mb.cats[catDistance].numTypes<<2)
	if err != nil {
		return nil, err
	}
	mb.numDistHTrees, mb.contextMapDist = numDistHTrees, distMap

	mb.literalGroup, err = decodeHuffmanGroup(br, numLiteralSymbols, mb.numLitHTrees)
	if err != nil {
		return nil, err
	}
	mb.insertCopyGroup, err = decodeHuffmanGroup(br, numInsertCopySymbols, mb.cats[catInsertCopy].numTypes)
	if err != nil {
		return nil, err
	}
	mb.distanceGroup, err = decodeHuffmanGroup(br, mb.numDistCodes, mb.numDistHTrees)
	if err != nil {
		return nil, err
	}

	return mb, nil
}

// decodeBlockCategoryHeader reads one category's has_types flag and,
// when set, its type count, block-type tree, block-length tree, and
// initial block length.
func decodeBlockCategoryHeader(br *bitio.Reader) (*blockCategory, error) {
	br.FillWindow()
	if br.ReadBits(1) == 0 {
		return newBlockCategory(1), nil
	}

	br.FillWindow()
	numTypes := int(br.ReadBits(8)) + 1
	cat := newBlockCategory(numTypes)

	typeTree, err := huffman.ReadHuffmanCode(br, numTypes+2)
	if err != nil {
		return nil, err
	}
	lenTree, err := huffman.ReadHuffmanCode(br, 26)
	if err != nil {
		return nil, err
	}
	cat.typeTree = typeTree
	cat.lenTree = lenTree
	cat.remaining = cat.readBlockLength(br)

	return cat, nil
}

// decodeHuffmanGroup reads numTrees independent Huffman code definitions
// over the given alphabet size.
func decodeHuffmanGroup(br *bitio.Reader, alphabetSize, numTrees int) (huffmanGroup, error) {
	group := make(huffmanGroup, numTrees)
	for i := range group {
		dec, err := huffman.ReadHuffmanCode(br, alphabetSize)
		if err != nil {
			return nil, err
		}
		group[i] = dec
	}
	return group, nil
}
