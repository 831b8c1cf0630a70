package ump

import "github.com/leandrodaf/midi2/internal/byteorder"

// Flex Data addressing.
const (
	FlexAddressChannel byte = 0
	FlexAddressGroup   byte = 1
)

// Flex Data status banks.
const (
	FlexBankSetup           byte = 0
	FlexBankMetadataText    byte = 1
	FlexBankPerformanceText byte = 2
)

// Setup and performance event statuses (bank 0).
const (
	FlexStatusSetTempo      byte = 0x00
	FlexStatusTimeSignature byte = 0x01
	FlexStatusMetronome     byte = 0x02
	FlexStatusKeySignature  byte = 0x05
	FlexStatusChordName     byte = 0x06
)

// Metadata text statuses (bank 1).
const (
	FlexTextUnknown             byte = 0x00
	FlexTextProjectName         byte = 0x01
	FlexTextSongName            byte = 0x02
	FlexTextClipName            byte = 0x03
	FlexTextCopyright           byte = 0x04
	FlexTextComposer            byte = 0x05
	FlexTextLyricist            byte = 0x06
	FlexTextArranger            byte = 0x07
	FlexTextPublisher           byte = 0x08
	FlexTextPrimaryPerformer    byte = 0x09
	FlexTextAccompanyPerformer  byte = 0x0A
	FlexTextRecordingDate       byte = 0x0B
	FlexTextRecordingLocation   byte = 0x0C
	FlexPerformanceTextLyrics   byte = 0x01
	FlexPerformanceTextLanguage byte = 0x02
	FlexPerformanceTextRuby     byte = 0x03
	FlexPerformanceRubyLanguage byte = 0x04
)

// FlexTextRadix is the number of text bytes per Flex Data packet.
const FlexTextRadix = 12

func flexHead(group byte, form ChunkStatus, address, channel, bank, status byte) uint32 {
	return uint32(MTFlexData)<<28 | uint32(group&0xF)<<24 | uint32(form&3)<<22 |
		uint32(address&3)<<20 | uint32(channel&0xF)<<16 | uint32(bank)<<8 | uint32(status)
}

// TempoFromUSPQ converts microseconds per quarter note to the 10 ns units Set
// Tempo uses.
func TempoFromUSPQ(uspq uint32) uint32 { return uspq * 100 }

// TempoToUSPQ converts a Set Tempo value back to microseconds per quarter note.
func TempoToUSPQ(tempo uint32) uint32 { return tempo / 100 }

// FlexSetTempo returns a group-wide Set Tempo; tempo is in 10 ns per quarter note.
func FlexSetTempo(group byte, tempo uint32) [4]uint32 {
	return [4]uint32{flexHead(group, ChunkComplete, FlexAddressGroup, 0, FlexBankSetup, FlexStatusSetTempo), tempo}
}

// FlexTimeSignature returns a Set Time Signature; denominator is a power of two exponent.
func FlexTimeSignature(group, address, channel, numerator, denominator, num32ndNotes byte) [4]uint32 {
	return [4]uint32{
		flexHead(group, ChunkComplete, address, channel, FlexBankSetup, FlexStatusTimeSignature),
		uint32(numerator)<<24 | uint32(denominator)<<16 | uint32(num32ndNotes)<<8,
	}
}

// FlexMetronome returns a Set Metronome.
func FlexMetronome(group, address, channel, clocksPerClick, bar1, bar2, bar3, subdiv1, subdiv2 byte) [4]uint32 {
	return [4]uint32{
		flexHead(group, ChunkComplete, address, channel, FlexBankSetup, FlexStatusMetronome),
		uint32(clocksPerClick)<<24 | uint32(bar1)<<16 | uint32(bar2)<<8 | uint32(bar3),
		uint32(subdiv1)<<24 | uint32(subdiv2)<<16,
	}
}

// FlexKeySignature returns a Set Key Signature. sharpsFlats is -8..7; tonic is
// the note letter (1=A .. 7=G, 0 unknown).
func FlexKeySignature(group, address, channel byte, sharpsFlats int8, tonic byte) [4]uint32 {
	return [4]uint32{
		flexHead(group, ChunkComplete, address, channel, FlexBankSetup, FlexStatusKeySignature),
		uint32(byte(sharpsFlats)&0xF)<<28 | uint32(tonic&0xF)<<24,
	}
}

// ChordName is the payload of a Set Chord Name message. Alterations pack the
// alteration type in the high nibble and the degree in the low nibble.
type ChordName struct {
	TonicSharpsFlats int8
	ChordTonic       byte
	ChordType        byte
	Alter1           byte
	Alter2           byte
	Alter3           byte
	Alter4           byte
	BassSharpsFlats  int8
	BassNote         byte
	BassChordType    byte
	BassAlter1       byte
	BassAlter2       byte
}

// FlexChordName returns a Set Chord Name.
func FlexChordName(group, address, channel byte, c ChordName) [4]uint32 {
	return [4]uint32{
		flexHead(group, ChunkComplete, address, channel, FlexBankSetup, FlexStatusChordName),
		uint32(byte(c.TonicSharpsFlats)&0xF)<<28 | uint32(c.ChordTonic&0xF)<<24 | uint32(c.ChordType)<<16 |
			uint32(c.Alter1)<<8 | uint32(c.Alter2),
		uint32(c.Alter3)<<24 | uint32(c.Alter4)<<16,
		uint32(byte(c.BassSharpsFlats)&0xF)<<28 | uint32(c.BassNote&0xF)<<24 | uint32(c.BassChordType)<<16 |
			uint32(c.BassAlter1)<<8 | uint32(c.BassAlter2),
	}
}

// ParseChordName reads a Set Chord Name payload.
func ParseChordName(w [4]uint32) ChordName {
	nibble := func(v uint32) int8 { return int8(byte(v)<<4) >> 4 }
	return ChordName{
		TonicSharpsFlats: nibble(w[1] >> 28),
		ChordTonic:       byte(w[1]>>24) & 0xF,
		ChordType:        byte(w[1] >> 16),
		Alter1:           byte(w[1] >> 8),
		Alter2:           byte(w[1]),
		Alter3:           byte(w[2] >> 24),
		Alter4:           byte(w[2] >> 16),
		BassSharpsFlats:  nibble(w[3] >> 28),
		BassNote:         byte(w[3]>>24) & 0xF,
		BassChordType:    byte(w[3] >> 16),
		BassAlter1:       byte(w[3] >> 8),
		BassAlter2:       byte(w[3]),
	}
}

// textPacket lays head over bytes 0-3 and text from byte start onwards.
func textPacket(head uint32, start int, text []byte) [4]uint32 {
	var buf [16]byte
	byteorder.PutUint32BE(buf[:], head)
	copy(buf[start:], text)
	return words128(&buf)
}

// FlexText returns one text packet with up to 12 bytes.
func FlexText(group byte, form ChunkStatus, address, channel, bank, status byte, text []byte) [4]uint32 {
	return textPacket(flexHead(group, form, address, channel, bank, status), 4, text[:min(len(text), FlexTextRadix)])
}

// FlexTextProcess chunks text into Flex Data packets and passes each to fn.
func FlexTextProcess(group, address, channel, bank, status byte, text []byte, fn func(packet [4]uint32) error) error {
	n := NumPackets(len(text), FlexTextRadix)
	for i := 0; i < n; i++ {
		form, off, size := PacketInfo(len(text), FlexTextRadix, i)
		if err := fn(FlexText(group, form, address, channel, bank, status, text[off:off+size])); err != nil {
			return err
		}
	}
	return nil
}

// GetFlexForm returns the chunk position of a Flex Data packet.
func GetFlexForm(word0 uint32) ChunkStatus { return ChunkStatus(word0>>22) & 3 }

// GetFlexAddress returns FlexAddressChannel or FlexAddressGroup.
func GetFlexAddress(word0 uint32) byte { return byte(word0>>20) & 3 }

// GetFlexStatusBank returns the status bank.
func GetFlexStatusBank(word0 uint32) byte { return byte(word0 >> 8) }

// GetFlexStatus returns the status within the bank.
func GetFlexStatus(word0 uint32) byte { return byte(word0) }

// GetFlexTempo returns the Set Tempo value in 10 ns units.
func GetFlexTempo(w [4]uint32) uint32 { return w[1] }

// appendText appends the non-padding bytes of packet bytes [start:16) to dst.
func appendText(dst []byte, w [4]uint32, start int) []byte {
	for i := start; i < 16; i++ {
		if b := packetByte(w[:], i); b != 0 {
			dst = append(dst, b)
		}
	}
	return dst
}

// AppendFlexText appends the text carried by a Flex Data text packet to dst.
func AppendFlexText(dst []byte, w [4]uint32) []byte { return appendText(dst, w, 4) }
