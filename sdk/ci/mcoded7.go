package ci

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgryski/go-bitstream"
)

// Mcoded7 carries 8-bit Property Exchange bodies over 7-bit SysEx. Each group
// of up to seven bytes is preceded by a byte holding their top bits, the
// first byte's in bit 6.

// Mcoded7EncodedLen returns the encoded size of n bytes.
func Mcoded7EncodedLen(n int) int { return n + (n+6)/7 }

// Mcoded7DecodedLen returns the decoded size of n encoded bytes.
func Mcoded7DecodedLen(n int) int { return n - (n+7)/8 }

// EncodeMcoded7 appends the Mcoded7 encoding of src to dst.
func EncodeMcoded7(dst, src []byte) []byte {
	buf := bytes.NewBuffer(dst)
	buf.Grow(Mcoded7EncodedLen(len(src)))
	// bytes.Buffer writes never fail.
	_ = WriteMcoded7(buf, src)
	return buf.Bytes()
}

// WriteMcoded7 writes the Mcoded7 encoding of src to w and returns the first
// write error.
func WriteMcoded7(w io.Writer, src []byte) error {
	bw := bitstream.NewWriter(w)

	for len(src) > 0 {
		group := src[:min(len(src), 7)]
		src = src[len(group):]

		if err := bw.WriteBit(bitstream.Zero); err != nil {
			return err
		}
		for i := 0; i < 7; i++ {
			if err := bw.WriteBit(bitstream.Bit(i < len(group) && group[i]&0x80 != 0)); err != nil {
				return err
			}
		}
		for _, b := range group {
			if err := bw.WriteByte(b & 0x7F); err != nil {
				return err
			}
		}
	}
	return bw.Flush(bitstream.Zero)
}

// DecodeMcoded7 appends the bytes encoded in src to dst.
func DecodeMcoded7(dst, src []byte) ([]byte, error) {
	r := bitstream.NewReader(bytes.NewReader(src))
	remaining := len(src)

	for remaining > 0 {
		var msbs [8]bitstream.Bit
		for i := range msbs {
			bit, err := r.ReadBit()
			if err != nil {
				return dst, fmt.Errorf("%w: %v", ErrInvalidMcoded7, err)
			}
			msbs[i] = bit
		}
		if msbs[0] {
			return dst, fmt.Errorf("%w: header byte has bit 7 set", ErrInvalidMcoded7)
		}
		remaining--

		n := min(remaining, 7)
		for i := 0; i < n; i++ {
			b, err := r.ReadByte()
			if err != nil {
				return dst, fmt.Errorf("%w: %v", ErrInvalidMcoded7, err)
			}
			if b&0x80 != 0 {
				return dst, fmt.Errorf("%w: data byte 0x%02X", ErrInvalidMcoded7, b)
			}
			if msbs[i+1] {
				b |= 0x80
			}
			dst = append(dst, b)
		}
		remaining -= n
	}
	return dst, nil
}
