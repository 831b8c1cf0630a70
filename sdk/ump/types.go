// Package ump builds, parses and chunks Universal MIDI Packets.
//
// A packet is one, two or four 32-bit words; the message type in the top nibble
// of the first word decides which. Constructors return uint32 for one-word
// packets, uint64 (first word in the high half) for two-word packets and
// [4]uint32 for four-word packets. Nothing in this package allocates on the
// packet paths; all output goes to caller-provided buffers.
package ump

import (
	"errors"
	"fmt"
)

// MessageType is the UMP message type nibble.
type MessageType byte

const (
	MTUtility   MessageType = 0x0
	MTSystem    MessageType = 0x1
	MTMIDI1     MessageType = 0x2
	MTSysEx7    MessageType = 0x3
	MTMIDI2     MessageType = 0x4
	MTSysEx8MDS MessageType = 0x5
	MTFlexData  MessageType = 0xD
	MTUMPStream MessageType = 0xF
)

// messageTypeSizes is the size in bytes of each message type, reserved types included.
var messageTypeSizes = [16]int{
	4, 4, 4, 8, 8, 16, 4, 4,
	8, 8, 8, 12, 12, 16, 16, 16,
}

var messageTypeNames = map[MessageType]string{
	MTUtility:   "Utility",
	MTSystem:    "System",
	MTMIDI1:     "MIDI1",
	MTSysEx7:    "SysEx7",
	MTMIDI2:     "MIDI2",
	MTSysEx8MDS: "SysEx8/MDS",
	MTFlexData:  "FlexData",
	MTUMPStream: "UMPStream",
}

func (t MessageType) String() string {
	if s, ok := messageTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Reserved(0x%X)", byte(t))
}

// SizeBytes returns the packet size in bytes for t.
func (t MessageType) SizeBytes() int { return messageTypeSizes[t&0xF] }

// SizeWords returns the packet size in 32-bit words for t.
func (t MessageType) SizeWords() int { return messageTypeSizes[t&0xF] / 4 }

var (
	// ErrTruncatedPacket is returned when a buffer ends in the middle of a packet.
	ErrTruncatedPacket = errors.New("truncated UMP packet")
	// ErrNoSpace is returned when a destination buffer cannot hold the output.
	ErrNoSpace = errors.New("not enough space in UMP buffer")
	// ErrWrongPacketSize is returned by the sized packet accessors.
	ErrWrongPacketSize = errors.New("UMP packet has a different size")
)

// GetMessageType returns the message type of the packet starting with word0.
func GetMessageType(word0 uint32) MessageType { return MessageType(word0 >> 28) }

// GetMessageSizeBytes returns the size in bytes of the packet starting with word0.
func GetMessageSizeBytes(word0 uint32) int { return GetMessageType(word0).SizeBytes() }

// GetMessageSizeWords returns the size in words of the packet starting with word0.
func GetMessageSizeWords(word0 uint32) int { return GetMessageType(word0).SizeWords() }

// GetGroup returns the group nibble.
func GetGroup(word0 uint32) byte { return byte(word0>>24) & 0xF }

// GetStatusCode returns the status byte with the channel nibble cleared.
func GetStatusCode(word0 uint32) byte { return byte(word0>>16) & 0xF0 }

// GetStatusByte returns the whole second byte of the packet.
func GetStatusByte(word0 uint32) byte { return byte(word0 >> 16) }

// GetChannel returns the channel nibble.
func GetChannel(word0 uint32) byte { return byte(word0>>16) & 0xF }

// Packet is one UMP message. The size class comes from the message type of
// its first word, so a Packet is always internally consistent.
type Packet struct {
	words [4]uint32
	n     int
}

// ParsePacket reads the packet at the start of words.
func ParsePacket(words []uint32) (Packet, error) {
	if len(words) == 0 {
		return Packet{}, ErrTruncatedPacket
	}
	n := GetMessageSizeWords(words[0])
	if n > len(words) {
		return Packet{}, fmt.Errorf("%w: %s needs %d words, have %d",
			ErrTruncatedPacket, GetMessageType(words[0]), n, len(words))
	}
	var p Packet
	p.n = copy(p.words[:], words[:n])
	return p, nil
}

// Packet32 wraps a one-word message.
func Packet32(w uint32) Packet {
	return Packet{words: [4]uint32{w}, n: 1}
}

// Packet64 wraps a two-word message.
func Packet64(v uint64) Packet {
	return Packet{words: [4]uint32{uint32(v >> 32), uint32(v)}, n: 2}
}

// Packet128 wraps a four-word message.
func Packet128(w [4]uint32) Packet {
	return Packet{words: w, n: 4}
}

// Type returns the message type.
func (p Packet) Type() MessageType { return GetMessageType(p.words[0]) }

// SizeBytes returns the packet size in bytes.
func (p Packet) SizeBytes() int { return p.n * 4 }

// SizeWords returns the packet size in words.
func (p Packet) SizeWords() int { return p.n }

// Word returns word i, or 0 past the end of the packet.
func (p Packet) Word(i int) uint32 {
	if i < 0 || i >= p.n {
		return 0
	}
	return p.words[i]
}

// AppendTo appends the packet words to dst.
func (p Packet) AppendTo(dst []uint32) []uint32 { return append(dst, p.words[:p.n]...) }

// Uint32 returns the packet as a single word if it is a 32-bit packet.
func (p Packet) Uint32() (uint32, bool) {
	if p.n != 1 {
		return 0, false
	}
	return p.words[0], true
}

// Uint64 returns the packet as a 64-bit value if it is a two-word packet.
func (p Packet) Uint64() (uint64, bool) {
	if p.n != 2 {
		return 0, false
	}
	return uint64(p.words[0])<<32 | uint64(p.words[1]), true
}

// Uint128 returns the four words if it is a 128-bit packet.
func (p Packet) Uint128() ([4]uint32, bool) {
	if p.n != 4 {
		return [4]uint32{}, false
	}
	return p.words, true
}

// ByteAt returns byte i of the packet in wire order (byte 0 holds the message type).
func (p Packet) ByteAt(i int) byte {
	if i < 0 || i >= p.n*4 {
		return 0
	}
	return byte(p.words[i/4] >> (24 - 8*(i%4)))
}

// Group returns the group nibble.
func (p Packet) Group() byte { return GetGroup(p.words[0]) }

// StatusCode returns the status with the channel nibble cleared.
func (p Packet) StatusCode() byte { return GetStatusCode(p.words[0]) }

// Channel returns the channel nibble.
func (p Packet) Channel() byte { return GetChannel(p.words[0]) }

func (p Packet) String() string {
	switch p.n {
	case 1:
		return fmt.Sprintf("%s[%08X]", p.Type(), p.words[0])
	case 2:
		return fmt.Sprintf("%s[%08X %08X]", p.Type(), p.words[0], p.words[1])
	case 3:
		return fmt.Sprintf("%s[%08X %08X %08X]", p.Type(), p.words[0], p.words[1], p.words[2])
	default:
		return fmt.Sprintf("%s[%08X %08X %08X %08X]", p.Type(), p.words[0], p.words[1], p.words[2], p.words[3])
	}
}
