// Package ci builds and parses MIDI Capability Inquiry messages.
//
// Builders append the SysEx body (from the 0x7E universal SysEx ID up to, but
// not including, the closing 0xF7) to a caller buffer and return the extended
// slice; with enough capacity they do not allocate. The body can be framed with
// F0/F7 for a MIDI 1.0 stream or chunked with ump.SysEx7Process.
//
// Every message starts with the same 13-byte header:
//
//	0x7E, device ID, 0x0D, sub-ID#2, CI version, source MUID (4), destination MUID (4)
//
// MUIDs are written as little-endian 32-bit values; 14- and 28-bit counts are
// split into 7-bit groups, least significant first.
package ci

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	UniversalSysEx byte = 0x7E
	SubIDCI        byte = 0x0D
)

// CI message format versions.
const (
	Version1_1 byte = 0x01
	Version1_2 byte = 0x02
)

// Device IDs addressing a channel (0-15), the whole group or the function block.
const (
	DeviceGroup         byte = 0x7E
	DeviceFunctionBlock byte = 0x7F
)

// Sub-ID#2 values.
const (
	SubProtocolNegotiation      byte = 0x10
	SubProtocolNegotiationReply byte = 0x11
	SubSetNewProtocol           byte = 0x12
	SubTestNewProtocolIToR      byte = 0x13
	SubTestNewProtocolRToI      byte = 0x14
	SubConfirmNewProtocol       byte = 0x15

	SubProfileInquiry        byte = 0x20
	SubProfileInquiryReply   byte = 0x21
	SubSetProfileOn          byte = 0x22
	SubSetProfileOff         byte = 0x23
	SubProfileEnabledReport  byte = 0x24
	SubProfileDisabledReport byte = 0x25
	SubProfileSpecificData   byte = 0x2F

	SubPropertyCapabilities      byte = 0x30
	SubPropertyCapabilitiesReply byte = 0x31
	SubPropertyGetData           byte = 0x34
	SubPropertyGetDataReply      byte = 0x35
	SubPropertySetData           byte = 0x36
	SubPropertySetDataReply      byte = 0x37
	SubPropertySubscribe         byte = 0x38
	SubPropertySubscribeReply    byte = 0x39
	SubPropertyNotify            byte = 0x3F

	SubProcessInquiryCapabilities      byte = 0x40
	SubProcessInquiryCapabilitiesReply byte = 0x41
	SubMIDIMessageReport               byte = 0x42
	SubMIDIMessageReportReply          byte = 0x43
	SubMIDIMessageReportEnd            byte = 0x44

	SubDiscovery       byte = 0x70
	SubDiscoveryReply  byte = 0x71
	SubEndpointMessage byte = 0x72
	SubEndpointReply   byte = 0x73
	SubACK             byte = 0x7D
	SubInvalidateMUID  byte = 0x7E
	SubNAK             byte = 0x7F
)

// HeaderSize is the length of the common header.
const HeaderSize = 13

var (
	ErrShortMessage   = errors.New("MIDI-CI message too short")
	ErrNotCI          = errors.New("not a MIDI-CI message")
	ErrWrongSubID     = errors.New("unexpected MIDI-CI sub-ID#2")
	ErrInvalidMcoded7 = errors.New("invalid Mcoded7 data")
	ErrChunkSize      = errors.New("property exchange chunk size out of range")
)

// MUID identifies a MIDI-CI device. Each of its four bytes is 7-bit.
type MUID uint32

// BroadcastMUID addresses every device.
const BroadcastMUID MUID = 0x7F7F7F7F

// NewMUID returns a random MUID outside the reserved 0x7F7F7Fxx range.
func NewMUID() MUID {
	for {
		m := MUID(rand.Uint32() & 0x7F7F7F7F)
		if m&0x7F7F7F00 != 0x7F7F7F00 {
			return m
		}
	}
}

// Valid reports whether every byte of m fits in 7 bits.
func (m MUID) Valid() bool { return m&0x80808080 == 0 }

func (m MUID) String() string { return fmt.Sprintf("%08X", uint32(m)) }

// Common is the header shared by every MIDI-CI message.
type Common struct {
	DeviceID    byte
	SubID2      byte
	Version     byte
	Source      MUID
	Destination MUID
}

// NewCommon returns a version 1.2 header addressed to the function block.
func NewCommon(source, destination MUID) Common {
	return Common{
		DeviceID:    DeviceFunctionBlock,
		Version:     Version1_2,
		Source:      source,
		Destination: destination,
	}
}

func appendHeader(dst []byte, c Common, subID2 byte) []byte {
	dst = append(dst, UniversalSysEx, c.DeviceID, SubIDCI, subID2, c.Version)
	dst = appendMUID(dst, c.Source)
	return appendMUID(dst, c.Destination)
}

func appendMUID(dst []byte, m MUID) []byte {
	return append(dst, byte(m), byte(m>>8), byte(m>>16), byte(m>>24))
}

func append14(dst []byte, v uint16) []byte {
	return append(dst, byte(v)&0x7F, byte(v>>7)&0x7F)
}

func append28(dst []byte, v uint32) []byte {
	return append(dst, byte(v)&0x7F, byte(v>>7)&0x7F, byte(v>>14)&0x7F, byte(v>>21)&0x7F)
}

// ParseCommon reads the header of a MIDI-CI message. A leading 0xF0 is skipped.
// It returns the header and the payload that follows it.
func ParseCommon(b []byte) (Common, []byte, error) {
	if len(b) > 0 && b[0] == 0xF0 {
		b = b[1:]
	}
	if len(b) < HeaderSize {
		return Common{}, nil, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(b))
	}
	if b[0] != UniversalSysEx || b[2] != SubIDCI {
		return Common{}, nil, fmt.Errorf("%w: % X", ErrNotCI, b[:3])
	}
	c := Common{
		DeviceID:    b[1],
		SubID2:      b[3],
		Version:     b[4],
		Source:      readMUID(b[5:]),
		Destination: readMUID(b[9:]),
	}
	payload := b[HeaderSize:]
	if n := len(payload); n > 0 && payload[n-1] == 0xF7 {
		payload = payload[:n-1]
	}
	return c, payload, nil
}

func readMUID(b []byte) MUID {
	return MUID(b[0]) | MUID(b[1])<<8 | MUID(b[2])<<16 | MUID(b[3])<<24
}

// parser walks a payload; the first short read latches an error and every
// later read returns zero values.
type parser struct {
	b   []byte
	err error
}

func (p *parser) take(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n > len(p.b) {
		p.err = fmt.Errorf("%w: need %d bytes, have %d", ErrShortMessage, n, len(p.b))
		return nil
	}
	v := p.b[:n]
	p.b = p.b[n:]
	return v
}

func (p *parser) u8() byte {
	if v := p.take(1); v != nil {
		return v[0]
	}
	return 0
}

func (p *parser) u14() uint16 {
	if v := p.take(2); v != nil {
		return uint16(v[0]&0x7F) | uint16(v[1]&0x7F)<<7
	}
	return 0
}

func (p *parser) u28() uint32 {
	if v := p.take(4); v != nil {
		return uint32(v[0]&0x7F) | uint32(v[1]&0x7F)<<7 | uint32(v[2]&0x7F)<<14 | uint32(v[3]&0x7F)<<21
	}
	return 0
}

func (p *parser) muid() MUID {
	if v := p.take(4); v != nil {
		return readMUID(v)
	}
	return 0
}

// parse reads the header of b, checks its sub-ID#2 and returns a parser over
// the payload.
func parse(b []byte, subIDs ...byte) (Common, *parser, error) {
	c, payload, err := ParseCommon(b)
	if err != nil {
		return c, nil, err
	}
	for _, id := range subIDs {
		if c.SubID2 == id {
			return c, &parser{b: payload}, nil
		}
	}
	return c, nil, fmt.Errorf("%w: 0x%02X", ErrWrongSubID, c.SubID2)
}
