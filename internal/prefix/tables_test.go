package prefix

import "testing"

func TestInsertLenPrefix_KnownOffsets(t *testing.T) {
	cases := []struct {
		code         int
		offset       uint32
		nbits        uint8
	}{
		{0, 0, 0},
		{6, 6, 1},
		{16, 130, 6},
		{23, 22594, 24},
	}
	for _, c := range cases {
		r := InsertLenPrefix[c.code]
		if r.Offset != c.offset || r.Nbits != c.nbits {
			t.Errorf("InsertLenPrefix[%d] = {%d,%d}, want {%d,%d}", c.code, r.Offset, r.Nbits, c.offset, c.nbits)
		}
	}
}

func TestCopyLenPrefix_KnownOffsets(t *testing.T) {
	cases := []struct {
		code   int
		offset uint32
		nbits  uint8
	}{
		{0, 2, 0},
		{8, 10, 1},
		{23, 2118, 24},
	}
	for _, c := range cases {
		r := CopyLenPrefix[c.code]
		if r.Offset != c.offset || r.Nbits != c.nbits {
			t.Errorf("CopyLenPrefix[%d] = {%d,%d}, want {%d,%d}", c.code, r.Offset, r.Nbits, c.offset, c.nbits)
		}
	}
}

func TestBlockLenPrefix_KnownOffsets(t *testing.T) {
	cases := []struct {
		code   int
		offset uint32
		nbits  uint8
	}{
		{0, 1, 2},
		{16, 241, 6},
		{25, 16625, 24},
	}
	for _, c := range cases {
		r := BlockLenPrefix[c.code]
		if r.Offset != c.offset || r.Nbits != c.nbits {
			t.Errorf("BlockLenPrefix[%d] = {%d,%d}, want {%d,%d}", c.code, r.Offset, r.Nbits, c.offset, c.nbits)
		}
	}
}

func TestContextLookup_LSB6(t *testing.T) {
	for b := 0; b < 256; b++ {
		got := ContextLookup[ContextLookupOffsets[2*ContextLSB6]+b]
		want := uint8(b & 0x3f)
		if got != want {
			t.Fatalf("LSB6 prev1[%d] = %d, want %d", b, got, want)
		}
	}
}

func TestContextLookup_MSB6(t *testing.T) {
	for b := 0; b < 256; b++ {
		got := ContextLookup[ContextLookupOffsets[2*ContextMSB6]+b]
		want := uint8(b >> 2)
		if got != want {
			t.Fatalf("MSB6 prev1[%d] = %d, want %d", b, got, want)
		}
	}
}
