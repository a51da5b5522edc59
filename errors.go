package brotli

import (
	"errors"

	"github.com/deepteams/brotlidec/internal/bitio"
)

// Sentinel errors matching the decoder's error taxonomy. Callers that need
// to distinguish failure kinds should use errors.Is against these rather
// than string-matching error text.
var (
	// ErrUnexpectedEOF means the bit reader ran out of input before a
	// required read was satisfied. It is the bit reader's own error value,
	// so the errors the reader reports match it directly.
	ErrUnexpectedEOF = bitio.ErrUnexpectedEOF

	// ErrMalformedStream covers header values out of range, invalid
	// Huffman code-length sets, context-map overruns, and block lengths
	// exhausted without the stream making progress.
	ErrMalformedStream = errors.New("brotli: malformed stream")

	// ErrInvalidBackref means a backward copy referenced a distance that
	// was zero, negative, beyond the window, or extended past the
	// meta-block's declared length.
	ErrInvalidBackref = errors.New("brotli: invalid backward reference")

	// ErrOutput means the output sink reported a write failure.
	ErrOutput = errors.New("brotli: output write failed")
)
