// Package lz4block is a pure in-memory codec for the LZ4 block format: a
// single-pass compressor built around a 4-byte rolling fingerprint and a
// single-slot hash table, and a decompressor with a dynamically growing
// output buffer and overlap-safe match copying.
//
// It implements the LZ4 block format only: no frame headers, no
// checksums, no block linking, no dictionaries, no HC search, and no
// streaming. See package block for the core algorithm and package
// matcher for an independent oracle matcher used by this repository's
// tests.
package lz4block

import "github.com/gozlib/lz4block/block"

// CompressBuffer is the buffer-level compressor described by the LZ4 block
// format: it reads length bytes of src starting at start and returns a
// freshly allocated block. acceleration defaults to 1 when omitted.
func CompressBuffer(src []byte, start, length int, acceleration ...int) ([]byte, error) {
	return block.Compress(src, start, length, resolveAcceleration(acceleration))
}

// DecompressBuffer is the buffer-level decompressor: it reads length bytes
// of src starting at start and reconstructs the original bytes.
// decompressedLen defaults to 0 (omitted) when not given; see
// block.Decompress for its three-way growth policy.
func DecompressBuffer(src []byte, start, length int, decompressedLen ...int) ([]byte, error) {
	return block.Decompress(src, start, length, resolveDecompressedLen(decompressedLen))
}

// CompressBlock compresses an entire blob, wrapping it in a region that
// starts at 0 and spans its full length. It is a pure delegation to
// CompressBuffer.
func CompressBlock(src []byte, acceleration ...int) ([]byte, error) {
	return CompressBuffer(src, 0, len(src), acceleration...)
}

// DecompressBlock decompresses an entire blob produced by CompressBlock (or
// any conforming LZ4 block encoder), wrapping it in a region that starts at
// 0 and spans its full length. It is a pure delegation to DecompressBuffer,
// forwarding decompressedLen unchanged.
func DecompressBlock(src []byte, decompressedLen ...int) ([]byte, error) {
	return DecompressBuffer(src, 0, len(src), decompressedLen...)
}

func resolveAcceleration(acceleration []int) int {
	if len(acceleration) == 0 {
		return 1
	}
	return acceleration[0]
}

func resolveDecompressedLen(decompressedLen []int) int {
	if len(decompressedLen) == 0 {
		return 0
	}
	return decompressedLen[0]
}
