package brotli

import (
	"testing"

	"github.com/deepteams/brotlidec/internal/bitio"
)

func TestDecodeContextMap_SingleTree(t *testing.T) {
	var w bitWriter
	w.writeBits(0, 8) // num_htrees - 1 = 0 -> numHTrees = 1, no tree on the wire

	br := bitio.NewReader(w.bytes())
	n, out, err := decodeContextMap(br, 4)
	if err != nil {
		t.Fatalf("decodeContextMap: %v", err)
	}
	if n != 1 {
		t.Fatalf("numHTrees = %d, want 1", n)
	}
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %d, want 0", i, v)
		}
	}
}

func TestDecodeContextMap_DirectSymbols(t *testing.T) {
	var w bitWriter
	w.writeBits(1, 8) // num_htrees - 1 = 1 -> numHTrees = 2
	w.writeBits(0, 1) // no run-length-prefix codes

	// A 2-symbol simple Huffman code over {0,1}, each 1 bit.
	w.writeBits(1, 1) // simple code flag
	w.writeBits(1, 2) // num_symbols - 1 = 1 -> 2 symbols
	w.writeBits(0, 1) // symbols[0] = 0
	w.writeBits(1, 1) // symbols[1] = 1

	// Three context-map entries: 0, 1, 0 (direct values, no run lengths).
	w.writeBits(0, 1)
	w.writeBits(1, 1)
	w.writeBits(0, 1)

	w.writeBits(0, 1) // no inverse-move-to-front pass

	br := bitio.NewReader(w.bytes())
	n, out, err := decodeContextMap(br, 3)
	if err != nil {
		t.Fatalf("decodeContextMap: %v", err)
	}
	if n != 2 {
		t.Fatalf("numHTrees = %d, want 2", n)
	}
	want := []byte{0, 1, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}

func TestInverseMoveToFront(t *testing.T) {
	// Index 2 decodes to 2 and moves it to the front, so the next 0
	// decodes to 2 again; index 1 then names the slot now holding 0, which
	// moves to the front, so the final 0 decodes to 0.
	data := []byte{2, 0, 1, 0}
	inverseMoveToFront(data)
	want := []byte{2, 2, 0, 0}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("inverseMoveToFront = %v, want %v", data, want)
		}
	}
}
