// Package block implements the LZ4 block format: a single-pass compressor
// built around a 4-byte rolling fingerprint and a single-slot hash table,
// and a decompressor with a dynamically growing output buffer.
//
// The frame format (magic numbers, checksums, block linking), dictionary
// compression, HC search, and streaming are out of scope; see package
// matcher for a chain-table match finder and encoder that the tests use
// as an independent "oracle" for the decoder.
package block

const (
	// minMatch is the implicit minimum match length; encoded lengths are
	// always this much shorter than the actual match.
	minMatch = 4
	// lastLiterals is the number of trailing input bytes that must always
	// land in the final literal run, never inside a match.
	lastLiterals = 5
	// minCompressibleLen is the smallest input for which the main loop is
	// worth entering at all (4-byte match + 5 trailing literals + 4-byte
	// lookahead margin).
	minCompressibleLen = 13

	// maxDistance is the largest representable match offset.
	maxDistance = 1<<16 - 1

	// hashLog is the width of the fingerprint, matching the hash table's
	// 65536 slots exactly.
	hashLog = 16
	hashTableSize = 1 << hashLog

	// hashMultiplier is Knuth's multiplicative hash constant, used to
	// spread 4-byte windows across the table.
	hashMultiplier = 2654435761
)

// noMatch marks a hash slot that has never been written in this call.
const noMatch = -1
