package block

import "encoding/binary"

// fingerprint hashes the 4-byte window at src[pos:pos+4] down to a value in
// [0, hashTableSize), suitable as a direct index into the hash table. It
// need not be cryptographic; it only has to spread common byte patterns.
func fingerprint(src []byte, pos int) uint32 {
	v := binary.LittleEndian.Uint32(src[pos : pos+4])
	return (v * hashMultiplier) >> (32 - hashLog)
}
