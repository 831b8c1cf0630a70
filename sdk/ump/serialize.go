package ump

import (
	"encoding/binary"
	"iter"

	"github.com/leandrodaf/midi2/internal/byteorder"
)

// WordsToBytes serializes words into dst using the given endianness and returns
// the number of bytes written. ErrNoSpace means dst was untouched.
func WordsToBytes(dst []byte, words []uint32, e byteorder.Endianness) (int, error) {
	if len(dst) < len(words)*4 {
		return 0, ErrNoSpace
	}
	order := e.Resolve()
	for i, w := range words {
		order.PutUint32(dst[i*4:], w)
	}
	return len(words) * 4, nil
}

// BytesToWords reads serialized UMP bytes into dst and returns the number of
// words read. A trailing partial word is ignored.
func BytesToWords(dst []uint32, src []byte, e byteorder.Endianness) (int, error) {
	n := len(src) / 4
	if len(dst) < n {
		return 0, ErrNoSpace
	}
	order := e.Resolve()
	for i := 0; i < n; i++ {
		dst[i] = order.Uint32(src[i*4:])
	}
	return n, nil
}

// BytePackets iterates over packets in a serialized byte buffer, yielding the
// byte offset of each packet.
func BytePackets(b []byte, order binary.ByteOrder) iter.Seq2[int, Packet] {
	return func(yield func(int, Packet) bool) {
		for off := 0; off+4 <= len(b); {
			var p Packet
			p.words[0] = order.Uint32(b[off:])
			p.n = GetMessageSizeWords(p.words[0])
			if off+p.n*4 > len(b) {
				return
			}
			for i := 1; i < p.n; i++ {
				p.words[i] = order.Uint32(b[off+i*4:])
			}
			if !yield(off, p) {
				return
			}
			off += p.n * 4
		}
	}
}
