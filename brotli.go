// Package brotli decodes a general-purpose LZ77+Huffman compressed byte
// stream: a self-describing header declares Huffman alphabets, context
// mappings, and block partitioning, followed by an interleaved stream of
// literal insertions and backward copies. Encoding is out of scope; this
// package only reverses it.
package brotli

import (
	"bytes"
	"io"

	"github.com/deepteams/brotlidec/internal/bitio"
)

// Input is a pull-based source of compressed bytes. io.Reader satisfies
// it directly.
type Input interface {
	Read(p []byte) (n int, err error)
}

// Output is a push-based sink for decoded bytes. io.Writer satisfies it
// directly.
type Output interface {
	Write(p []byte) (n int, err error)
}

// MemInput adapts an in-memory buffer holding the full compressed payload
// to Input.
func MemInput(buf []byte) Input {
	return bytes.NewReader(buf)
}

// MemOutput adapts an in-memory, growable buffer to Output. Bytes()
// returns everything written so far.
type memOutput struct {
	bytes.Buffer
}

// MemOutput returns an Output collaborator backed by memory, with no
// fixed capacity beyond what the caller is willing to let it grow to.
func MemOutput() *memOutput {
	return &memOutput{}
}

// DecompressedSize reads only the stream header of encoded and reports
// the advertised decoded size, if the stream declares one.
func DecompressedSize(encoded []byte) (size uint64, ok bool) {
	br := bitio.NewReader(encoded)
	hdr, err := decodeStreamHeader(br)
	if err != nil || !hdr.hasSize {
		return 0, false
	}
	return hdr.decodedSize, true
}

// DecompressBuffer decodes encoded entirely in memory, returning the
// decoded bytes.
func DecompressBuffer(encoded []byte) ([]byte, error) {
	out := MemOutput()
	if err := Decompress(MemInput(encoded), out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decompress reads a complete compressed stream from input and writes
// the decoded bytes to output. It runs to completion synchronously and
// returns a non-nil error on any malformed input or output failure.
func Decompress(input Input, output Output) error {
	data, err := io.ReadAll(toReader(input))
	if err != nil {
		return err
	}
	d := newDecoder(data, output)
	return d.run()
}

func toReader(in Input) io.Reader {
	if r, ok := in.(io.Reader); ok {
		return r
	}
	return readerFunc(in.Read)
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
