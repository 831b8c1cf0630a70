package ump

import "github.com/leandrodaf/midi2/internal/byteorder"

// ChunkStatus tells where a packet sits in a chunked message. The same four
// positions are used by SysEx7/SysEx8 (status nibble), Flex Data (format) and
// UMP Stream text messages (format).
type ChunkStatus byte

const (
	ChunkComplete ChunkStatus = iota // the whole message fits in one packet
	ChunkStart
	ChunkContinue
	ChunkEnd
)

// SysEx status bytes (high nibble of the second packet byte).
const (
	SysExInOneUMP    byte = 0x00
	SysExStart       byte = 0x10
	SysExContinue    byte = 0x20
	SysExEnd         byte = 0x30
	MDSHeaderStatus  byte = 0x80
	MDSPayloadStatus byte = 0x90
)

func (s ChunkStatus) String() string {
	switch s {
	case ChunkComplete:
		return "complete"
	case ChunkStart:
		return "start"
	case ChunkContinue:
		return "continue"
	case ChunkEnd:
		return "end"
	default:
		return "invalid"
	}
}

// SysExStatus returns the status byte SysEx packets use for s.
func (s ChunkStatus) SysExStatus() byte { return byte(s&3) << 4 }

// NumPackets returns how many packets of radix payload bytes carry numBytes.
// Anything up to radix bytes, including nothing, takes exactly one packet.
func NumPackets(numBytes, radix int) int {
	if numBytes <= radix {
		return 1
	}
	return (numBytes + radix - 1) / radix
}

// PacketInfo classifies packet index of a numBytes message chunked by radix
// and returns the payload slice bounds it carries.
func PacketInfo(numBytes, radix, index int) (status ChunkStatus, offset, size int) {
	n := NumPackets(numBytes, radix)
	switch {
	case index < 0 || index >= n:
		return ChunkEnd, numBytes, 0
	case n == 1:
		return ChunkComplete, 0, numBytes
	case index == 0:
		return ChunkStart, 0, radix
	case index < n-1:
		return ChunkContinue, index * radix, radix
	default:
		offset = index * radix
		return ChunkEnd, offset, numBytes - offset
	}
}

// words128 reads a 16-byte scratch buffer back as four big-endian words.
func words128(buf *[16]byte) [4]uint32 {
	return [4]uint32{
		byteorder.ReadUint32BE(buf[0:]),
		byteorder.ReadUint32BE(buf[4:]),
		byteorder.ReadUint32BE(buf[8:]),
		byteorder.ReadUint32BE(buf[12:]),
	}
}

// packetByte returns byte i of a packet in wire order.
func packetByte(words []uint32, i int) byte {
	return byte(words[i/4] >> (24 - 8*(i%4)))
}
