package block

import "fmt"

// Decompress reads length bytes of src starting at start and reconstructs
// the original bytes into a freshly allocated, possibly-grown buffer.
//
// decompressedLen selects the growth policy:
//   - > 0: the exact expected output size; growth is disabled. Producing
//     more is an ErrMaxDecompressedLenExceeded error and producing less is
//     a malformed-block error.
//   - < 0: abs(decompressedLen) is an upper bound; the buffer grows
//     geometrically up to that cap.
//   - == 0: omitted; a conservative 2^31 cap is used with a 512KiB initial
//     allocation.
func Decompress(src []byte, start, length, decompressedLen int) ([]byte, error) {
	if start < 0 {
		return nil, ErrNegativeStart
	}
	if length < 0 {
		return nil, ErrNegativeLength
	}
	if start+length > len(src) {
		return nil, ErrRangeOutOfBounds
	}

	var dst []byte
	capLimit := defaultDecompressCap
	exact := false

	switch {
	case decompressedLen > 0:
		capLimit = decompressedLen
		exact = true
		dst = make([]byte, decompressedLen)
	case decompressedLen < 0:
		capLimit = -decompressedLen
		initial := initialDecompressCapacity
		if initial > capLimit {
			initial = capLimit
		}
		dst = make([]byte, initial)
	default:
		dst = make([]byte, initialDecompressCapacity)
	}

	dst, n, err := decompressInto(src, start, length, dst, capLimit, exact)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// ensureCapacity grows dst (doubling, capped at capLimit, preserving the
// first out valid bytes) until it can hold needed bytes, or reports that
// capLimit has been exceeded.
func ensureCapacity(dst []byte, out, needed, capLimit int, exact bool) ([]byte, error) {
	if needed <= len(dst) {
		return dst, nil
	}
	if exact {
		return nil, fmt.Errorf("%w: exact size given but block decodes to more", ErrMaxDecompressedLenExceeded)
	}
	for len(dst) < needed {
		if len(dst) >= capLimit {
			return nil, ErrMaxDecompressedLenExceeded
		}
		dst = growBuffer(dst, out, capLimit)
	}
	return dst, nil
}

// decompressInto runs the LZ4 decode loop over src[start:start+length],
// reconstructing bytes into dst (growing it via ensureCapacity as needed),
// and returns the possibly-grown buffer and the number of bytes actually
// decoded into it.
func decompressInto(src []byte, start, length int, dst []byte, capLimit int, exact bool) ([]byte, int, error) {
	end := start + length
	in := start
	out := 0

	for {
		if in >= end {
			return nil, 0, fmt.Errorf("%w: block ends before a token", ErrMalformedBlock)
		}
		token := src[in]
		in++

		literalCount := int(token >> 4)
		if literalCount == 15 {
			var err error
			literalCount, in, err = readLengthExtension(src, in, end, literalCount)
			if err != nil {
				return nil, 0, err
			}
		}

		if in+literalCount > end {
			return nil, 0, fmt.Errorf("%w: truncated literal run", ErrMalformedBlock)
		}

		var err error
		dst, err = ensureCapacity(dst, out, out+literalCount, capLimit, exact)
		if err != nil {
			return nil, 0, err
		}
		out += copy(dst[out:], src[in:in+literalCount])
		in += literalCount

		if in >= end {
			// This was the last (truncated) sequence: no offset, no match.
			break
		}

		if in+2 > end {
			return nil, 0, fmt.Errorf("%w: truncated match offset", ErrMalformedBlock)
		}
		offset := int(src[in]) | int(src[in+1])<<8
		in += 2
		if offset < 1 || offset > out {
			return nil, 0, fmt.Errorf("%w: match offset %d out of range", ErrMalformedBlock, offset)
		}

		matchCode := int(token & 0x0F)
		matchLen := matchCode
		if matchCode == 15 {
			matchLen, in, err = readLengthExtension(src, in, end, matchCode)
			if err != nil {
				return nil, 0, err
			}
		}
		matchLen += minMatch

		dst, err = ensureCapacity(dst, out, out+matchLen, capLimit, exact)
		if err != nil {
			return nil, 0, err
		}
		out = copyMatch(dst, out, offset, matchLen)
	}

	if exact && out != len(dst) {
		return nil, 0, fmt.Errorf("%w: exact size given but block decoded to %d bytes, want %d", ErrMalformedBlock, out, len(dst))
	}

	return dst, out, nil
}

// readLengthExtension reads the varint-like extension bytes following a
// 4-bit hint of 15, accumulating onto count until a byte < 255 is read.
func readLengthExtension(src []byte, in, end, count int) (int, int, error) {
	for {
		if in >= end {
			return 0, 0, fmt.Errorf("%w: truncated length extension", ErrMalformedBlock)
		}
		b := src[in]
		in++
		count += int(b)
		if b != 0xFF {
			break
		}
	}
	return count, in, nil
}

// copyMatch appends a match of matchLen bytes at the given backward offset
// to dst[:out], handling the overlapping case (matchLen > offset) by
// copying in offset-sized slices instead of a single bulk copy.
func copyMatch(dst []byte, out, offset, matchLen int) int {
	srcStart := out - offset
	for matchLen > offset {
		copy(dst[out:out+offset], dst[srcStart:srcStart+offset])
		out += offset
		srcStart += offset
		matchLen -= offset
	}
	copy(dst[out:out+matchLen], dst[srcStart:srcStart+matchLen])
	out += matchLen
	return out
}
