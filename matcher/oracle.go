package matcher

const lastLiterals = 5
const minCompressibleLen = 13

// Encode is an independently implemented LZ4 block encoder built on
// ChainMatcher instead of package block's single-slot hash table. It
// exists purely as a test oracle: anything it emits must still decode
// correctly with package block's decompressor, which cross-checks that
// the wire format (not just the fast encoder's specific match choices)
// is what the tests actually pin down.
func Encode(src []byte) []byte {
	dst := make([]byte, 0, len(src)+len(src)/255+16)

	if len(src) < minCompressibleLen {
		return appendTail(dst, src, 0, len(src))
	}

	m := New(DefaultConfig())
	m.Reset(src)

	anchor := 0
	end := len(src)

	for m.Pos()+minMatch < end-lastLiterals {
		offset, length := m.FindBestMatch()
		if length < minMatch {
			m.InsertHash()
			m.Advance(1)
			continue
		}

		matchStart := m.Pos()
		// Never let a match eat into the mandatory trailing literal zone.
		if matchStart+length > end-lastLiterals {
			length = end - lastLiterals - matchStart
		}
		if length < minMatch {
			m.InsertHash()
			m.Advance(1)
			continue
		}

		dst = appendSequence(dst, src, anchor, matchStart, offset, length-minMatch)

		m.InsertHash()
		m.Advance(length)
		anchor = matchStart + length
	}

	return appendTail(dst, src, anchor, end)
}

func appendSequence(dst []byte, src []byte, anchor, matchStart, offset, matchLen int) []byte {
	literalCount := matchStart - anchor

	litCode, matchCode := literalCount, matchLen
	if litCode > 15 {
		litCode = 15
	}
	if matchCode > 15 {
		matchCode = 15
	}

	dst = append(dst, byte(litCode<<4|matchCode))
	dst = appendLengthExtension(dst, literalCount)
	dst = append(dst, src[anchor:matchStart]...)
	dst = append(dst, byte(offset), byte(offset>>8))
	dst = appendLengthExtension(dst, matchLen)

	return dst
}

func appendTail(dst []byte, src []byte, anchor, end int) []byte {
	literalCount := end - anchor
	litCode := literalCount
	if litCode > 15 {
		litCode = 15
	}

	dst = append(dst, byte(litCode<<4))
	dst = appendLengthExtension(dst, literalCount)
	dst = append(dst, src[anchor:end]...)

	return dst
}

func appendLengthExtension(dst []byte, count int) []byte {
	if count < 15 {
		return dst
	}
	remaining := count - 15
	for remaining >= 255 {
		dst = append(dst, 0xFF)
		remaining -= 255
	}
	return append(dst, byte(remaining))
}
