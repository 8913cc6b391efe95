package block

// Compress reads length bytes of src starting at start and returns a
// freshly allocated block containing the LZ4-encoded sequences, sized for
// the worst case up front. acceleration must be a positive integer; it
// controls how aggressively the scan skips ahead through incompressible
// regions (larger values trade ratio for speed).
func Compress(src []byte, start, length, acceleration int) ([]byte, error) {
	if start < 0 {
		return nil, ErrNegativeStart
	}
	if length < 0 {
		return nil, ErrNegativeLength
	}
	if start+length > len(src) {
		return nil, ErrRangeOutOfBounds
	}
	if acceleration < 1 {
		return nil, ErrInvalidAcceleration
	}

	dst := make([]byte, worstCaseSize(length))
	n := compressInto(src, start, length, acceleration, dst)
	return dst[:n], nil
}

// compressInto runs the single-pass LZ4 encoder over src[start:start+length]
// and writes sequences into dst, returning the number of bytes written.
// dst must already be sized for the worst case; the encoder never grows it.
func compressInto(src []byte, start, length, acceleration int, dst []byte) int {
	end := start + length
	pos := start
	anchor := start
	dstPos := 0

	if length >= minCompressibleLen {
		hashTable := make([]int32, hashTableSize)
		for i := range hashTable {
			hashTable[i] = noMatch
		}

		// skipCounter packs the adaptive step (high bits) and a 6-bit miss
		// counter (low bits); every 64 consecutive misses grows the step.
		skipCounter := acceleration << 6

		for pos+minMatch < end-lastLiterals {
			h := fingerprint(src, pos)
			m := hashTable[h]
			hashTable[h] = int32(pos)

			if m != noMatch && pos-int(m) <= maxDistance && sequenceEqual(src, int(m), pos) {
				offset := pos - int(m)

				// Backward extension: literals already emitted never get
				// pulled back into the match; matchStart/refStart walk
				// back together so offset stays invariant.
				matchStart := pos
				refStart := int(m)
				for matchStart > anchor && refStart > start && src[matchStart-1] == src[refStart-1] {
					matchStart--
					refStart--
				}

				// Forward extension past the 4 already-verified bytes.
				fwdPos := pos + minMatch
				fwdRef := int(m) + minMatch
				for fwdPos < end-lastLiterals && src[fwdPos] == src[fwdRef] {
					fwdPos++
					fwdRef++
				}

				matchLen := (fwdPos - matchStart) - minMatch

				dstPos = emitSequence(dst, dstPos, src, anchor, matchStart, offset, matchLen)

				anchor = fwdPos
				pos = fwdPos
				skipCounter = acceleration << 6
				continue
			}

			pos += skipCounter >> 6
			skipCounter++
		}
	}

	return emitTail(dst, dstPos, src, anchor, end)
}

// sequenceEqual reports whether the 4-byte windows at a and b are identical.
func sequenceEqual(src []byte, a, b int) bool {
	return src[a] == src[b] && src[a+1] == src[b+1] &&
		src[a+2] == src[b+2] && src[a+3] == src[b+3]
}

// emitSequence writes one non-final LZ4 sequence: token, literal-length
// extension, literals, little-endian offset, and match-length extension.
// literalEnd is the (possibly backward-extended) start of the match.
func emitSequence(dst []byte, dstPos int, src []byte, anchor, literalEnd, offset, matchLen int) int {
	literalCount := literalEnd - anchor

	litCode := literalCount
	if litCode > 15 {
		litCode = 15
	}
	matchCode := matchLen
	if matchCode > 15 {
		matchCode = 15
	}

	dst[dstPos] = byte(litCode<<4 | matchCode)
	dstPos++

	dstPos = emitLengthExtension(dst, dstPos, literalCount)

	dstPos += copy(dst[dstPos:], src[anchor:literalEnd])

	dst[dstPos] = byte(offset)
	dst[dstPos+1] = byte(offset >> 8)
	dstPos += 2

	dstPos = emitLengthExtension(dst, dstPos, matchLen)

	return dstPos
}

// emitTail writes the final, truncated sequence: a token and literal run
// with no offset and no match-length bytes.
func emitTail(dst []byte, dstPos int, src []byte, anchor, end int) int {
	literalCount := end - anchor

	litCode := literalCount
	if litCode > 15 {
		litCode = 15
	}

	dst[dstPos] = byte(litCode << 4)
	dstPos++

	dstPos = emitLengthExtension(dst, dstPos, literalCount)

	dstPos += copy(dst[dstPos:], src[anchor:end])

	return dstPos
}

// emitLengthExtension writes the varint-like extension bytes for a length
// whose 4-bit hint already equals 15. If count is exactly 15, a single
// 0x00 byte is written; otherwise as many 0xFF bytes as needed followed by
// the final remainder byte.
func emitLengthExtension(dst []byte, dstPos, count int) int {
	if count < 15 {
		return dstPos
	}
	remaining := count - 15
	for remaining >= 255 {
		dst[dstPos] = 0xFF
		dstPos++
		remaining -= 255
	}
	dst[dstPos] = byte(remaining)
	dstPos++
	return dstPos
}
