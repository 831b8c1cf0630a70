// Package midi1 holds the MIDI 1.0 byte-stream vocabulary used by the UMP
// translator: status bytes, controller numbers, message sizing and the 7-bit
// encoded integers used for delta times and meta-event lengths.
package midi1

import (
	"errors"
	"fmt"
)

// Channel voice status nibbles (channel bits cleared).
const (
	StatusNoteOff     byte = 0x80
	StatusNoteOn      byte = 0x90
	StatusPAF         byte = 0xA0
	StatusCC          byte = 0xB0
	StatusProgram     byte = 0xC0
	StatusCAF         byte = 0xD0
	StatusPitchBend   byte = 0xE0
	StatusSysEx       byte = 0xF0
	StatusMTC         byte = 0xF1
	StatusSongPos     byte = 0xF2
	StatusSongSelect  byte = 0xF3
	StatusTuneRequest byte = 0xF6
	StatusEndSysEx    byte = 0xF7
	StatusTimingClock byte = 0xF8
	StatusStart       byte = 0xFA
	StatusContinue    byte = 0xFB
	StatusStop        byte = 0xFC
	StatusActiveSense byte = 0xFE
	StatusReset       byte = 0xFF
	// StatusMeta shares 0xFF with StatusReset; it only means meta inside SMF-style streams.
	StatusMeta byte = 0xFF
)

// Controller numbers that the MIDI 2.0 translator treats specially.
const (
	CCBankSelect     byte = 0
	CCDTEMSB         byte = 6
	CCBankSelectLSB  byte = 32
	CCDTELSB         byte = 38
	CCNRPNLSB        byte = 98
	CCNRPNMSB        byte = 99
	CCRPNLSB         byte = 100
	CCRPNMSB         byte = 101
	MetaTempo        byte = 0x51
	MetaTempoLength  byte = 3
)

// DefaultTempoUSPQ is the SMF default tempo, 120 BPM in microseconds per quarter note.
const DefaultTempoUSPQ = 500000

var (
	// ErrUnterminatedSysEx is returned when an F0 message has no F7.
	ErrUnterminatedSysEx = errors.New("sysex without terminating 0xF7")
	// ErrTruncated is returned when a message runs past the end of the buffer.
	ErrTruncated = errors.New("truncated MIDI 1.0 message")
	// ErrNotStatus is returned when a message does not start with a status byte.
	ErrNotStatus = errors.New("not a MIDI 1.0 status byte")
)

// IsStatus reports whether b has its top bit set.
func IsStatus(b byte) bool { return b&0x80 != 0 }

// FixedMessageSize returns the length of a message led by status, or 0 when the
// length depends on the payload (SysEx, meta events).
func FixedMessageSize(status byte) int {
	switch status & 0xF0 {
	case StatusProgram, StatusCAF:
		return 2
	case 0xF0:
		switch status {
		case StatusSysEx, StatusMeta:
			return 0
		case StatusMTC, StatusSongSelect:
			return 2
		case StatusSongPos:
			return 3
		default:
			return 1
		}
	default:
		if status < 0x80 {
			return 0
		}
		return 3
	}
}

// MessageSize returns the length of the message at the start of b.
//
// meta selects how 0xFF is read: as an SMF meta event (0xFF, type, 7-bit encoded
// length, payload) when true, or as a one-byte System Reset otherwise. SysEx
// sizes include both the 0xF0 and 0xF7 bytes.
func MessageSize(b []byte, meta bool) (int, error) {
	if len(b) == 0 {
		return 0, ErrTruncated
	}
	status := b[0]
	if !IsStatus(status) {
		return 0, fmt.Errorf("%w: 0x%02X", ErrNotStatus, status)
	}

	switch {
	case status == StatusSysEx:
		for i := 1; i < len(b); i++ {
			if b[i] == StatusEndSysEx {
				return i + 1, nil
			}
		}
		return 0, ErrUnterminatedSysEx
	case status == StatusMeta && meta:
		if len(b) < 3 {
			return 0, ErrTruncated
		}
		length, n, err := Read7BitEncodedInt(b[2:])
		if err != nil {
			return 0, err
		}
		size := 2 + n + int(length)
		if size > len(b) {
			return 0, ErrTruncated
		}
		return size, nil
	}

	size := FixedMessageSize(status)
	if status == StatusMeta {
		size = 1
	}
	if size > len(b) {
		return 0, ErrTruncated
	}
	return size, nil
}
