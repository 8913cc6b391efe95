package block

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecompressValidation(t *testing.T) {
	src := []byte{0x00}

	tests := []struct {
		name          string
		start, length int
		wantErr       error
	}{
		{"negative start", -1, 1, ErrNegativeStart},
		{"negative length", 0, -1, ErrNegativeLength},
		{"range out of bounds", 0, len(src) + 1, ErrRangeOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(src, tt.start, tt.length, 0)
			if err != tt.wantErr {
				t.Fatalf("Decompress() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecompressConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty block", []byte{0x00}, []byte{}},
		{"single literal", []byte{0x10, 0x41}, []byte("A")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.in, 0, len(tt.in), 0)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("Decompress() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecompressRejectsTruncatedLiteralRun(t *testing.T) {
	// Token claims 2 literal bytes but the block ends immediately after it.
	_, err := Decompress([]byte{0x20}, 0, 1, 0)
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decompress() error = %v, want ErrMalformedBlock", err)
	}
}

func TestDecompressRejectsTruncatedOffset(t *testing.T) {
	// One literal byte, then only a single offset byte instead of two.
	_, err := Decompress([]byte{0x10, 0x41, 0x01}, 0, 3, 0)
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decompress() error = %v, want ErrMalformedBlock", err)
	}
}

func TestDecompressRejectsOffsetOutOfRange(t *testing.T) {
	// One literal byte then an offset of 2, but only one byte has been
	// produced so far: the match would have to reach before the start.
	_, err := Decompress([]byte{0x11, 0x41, 0x02, 0x00}, 0, 4, 0)
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decompress() error = %v, want ErrMalformedBlock", err)
	}
}

func TestDecompressRejectsTruncatedLengthExtension(t *testing.T) {
	// Literal hint 15 but the block ends before a terminating (<0xFF) byte.
	_, err := Decompress([]byte{0xF0, 0xFF, 0xFF}, 0, 3, 0)
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decompress() error = %v, want ErrMalformedBlock", err)
	}
}

func TestDecompressOverlappingMatch(t *testing.T) {
	in := []byte("ABABABABAB")
	compressed, err := Compress(in, 0, len(in), 1)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	got, err := Decompress(compressed, 0, len(compressed), len(in))
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("Decompress() = %q, want %q", got, in)
	}
}

func TestDecompressBoundedGrowth(t *testing.T) {
	in := bytes.Repeat([]byte("the quick brown fox "), 50)
	compressed, err := Compress(in, 0, len(in), 1)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	// An upper bound exactly matching the real size succeeds.
	got, err := Decompress(compressed, 0, len(compressed), -len(in))
	if err != nil {
		t.Fatalf("Decompress() with exact bound error = %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch under bounded growth")
	}

	// A bound one byte too small must fail, not silently truncate.
	_, err = Decompress(compressed, 0, len(compressed), -(len(in) - 1))
	if !errors.Is(err, ErrMaxDecompressedLenExceeded) {
		t.Fatalf("Decompress() error = %v, want ErrMaxDecompressedLenExceeded", err)
	}
}

func TestDecompressExactSizeMismatch(t *testing.T) {
	in := []byte("hello world, this is a test string for exact sizing")
	compressed, err := Compress(in, 0, len(in), 1)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	// Exact mode with the wrong size must fail rather than return a
	// truncated or overflowing buffer.
	_, err = Decompress(compressed, 0, len(compressed), len(in)-1)
	if err == nil {
		t.Fatalf("Decompress() with wrong exact size succeeded, want error")
	}
}

func TestDecompressOmittedLenUsesDefaultCap(t *testing.T) {
	in := bytes.Repeat([]byte{0x7A}, 10)
	compressed, err := Compress(in, 0, len(in), 1)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	got, err := Decompress(compressed, 0, len(compressed), 0)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch with omitted decompressedLen")
	}
}

func TestDecompressGrowsPastInitialCapacity(t *testing.T) {
	// Bigger than the 512KiB initial allocation, forcing at least one grow.
	in := bytes.Repeat([]byte("0123456789"), 100000)
	compressed, err := Compress(in, 0, len(in), 1)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	got, err := Decompress(compressed, 0, len(compressed), 0)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch for large input")
	}
}
