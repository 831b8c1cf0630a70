package ump

// MIDI 2.0 Channel Voice status nibbles.
const (
	MIDI2PerNoteRCCStatus        byte = 0x00
	MIDI2PerNoteACCStatus        byte = 0x10
	MIDI2RPNStatus               byte = 0x20
	MIDI2NRPNStatus              byte = 0x30
	MIDI2RelativeRPNStatus       byte = 0x40
	MIDI2RelativeNRPNStatus      byte = 0x50
	MIDI2PerNotePitchBendStatus  byte = 0x60
	MIDI2NoteOffStatus           byte = 0x80
	MIDI2NoteOnStatus            byte = 0x90
	MIDI2PAFStatus               byte = 0xA0
	MIDI2CCStatus                byte = 0xB0
	MIDI2ProgramStatus           byte = 0xC0
	MIDI2CAFStatus               byte = 0xD0
	MIDI2PitchBendStatus         byte = 0xE0
	MIDI2PerNoteManagementStatus byte = 0xF0
)

// Note attribute types carried in the last byte of note on/off messages.
const (
	AttributeNone                 byte = 0
	AttributeManufacturerSpecific byte = 1
	AttributeProfileSpecific      byte = 2
	AttributePitch7_9             byte = 3
)

// ProgramBankValid is the option flag telling that bank MSB/LSB are meaningful.
const ProgramBankValid byte = 1

// Per-note management option flags.
const (
	PerNoteManagementReset  byte = 1
	PerNoteManagementDetach byte = 2
)

// PitchBendCenter32 is the centre value of a 32-bit pitch bend.
const PitchBendCenter32 uint32 = 0x80000000

// Width conversions between MIDI 1.0 and MIDI 2.0 values. Widening shifts
// left, narrowing shifts right by the same amount, so a widened value always
// narrows back to the original.

func Widen7To16(v byte) uint16 { return uint16(v&0x7F) << 9 }
func Widen7To32(v byte) uint32 { return uint32(v&0x7F) << 25 }
func Widen14To32(v uint16) uint32 { return uint32(v&0x3FFF) << 18 }
func Narrow16To7(v uint16) byte { return byte(v >> 9) }
func Narrow32To7(v uint32) byte { return byte(v >> 25) }
func Narrow32To14(v uint32) uint16 { return uint16(v >> 18) }

func midi2Head(group, code, channel, b3, b4 byte) uint32 {
	return uint32(MTMIDI2)<<28 | uint32(group&0xF)<<24 |
		uint32(code&0xF0|channel&0xF)<<16 | uint32(b3)<<8 | uint32(b4)
}

// MIDI2Message8x8x16x16 packs two 8-bit and two 16-bit fields.
func MIDI2Message8x8x16x16(group, code, channel, b3, b4 byte, s1, s2 uint16) uint64 {
	return uint64(midi2Head(group, code, channel, b3, b4))<<32 | uint64(s1)<<16 | uint64(s2)
}

// MIDI2Message8x8x32 packs two 8-bit fields and one 32-bit field.
func MIDI2Message8x8x32(group, code, channel, b3, b4 byte, data uint32) uint64 {
	return uint64(midi2Head(group, code, channel, b3, b4))<<32 | uint64(data)
}

func MIDI2NoteOff(group, channel, note, attrType byte, velocity, attrData uint16) uint64 {
	return MIDI2Message8x8x16x16(group, MIDI2NoteOffStatus, channel, note&0x7F, attrType, velocity, attrData)
}

func MIDI2NoteOn(group, channel, note, attrType byte, velocity, attrData uint16) uint64 {
	return MIDI2Message8x8x16x16(group, MIDI2NoteOnStatus, channel, note&0x7F, attrType, velocity, attrData)
}

func MIDI2PAF(group, channel, note byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PAFStatus, channel, note&0x7F, 0, data)
}

func MIDI2PerNoteRCC(group, channel, note, index byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PerNoteRCCStatus, channel, note&0x7F, index, data)
}

func MIDI2PerNoteACC(group, channel, note, index byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PerNoteACCStatus, channel, note&0x7F, index, data)
}

func MIDI2PerNoteManagement(group, channel, note, optionFlags byte) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PerNoteManagementStatus, channel, note&0x7F, optionFlags&3, 0)
}

func MIDI2CC(group, channel, index byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2CCStatus, channel, index&0x7F, 0, data)
}

// MIDI2RPN addresses registered controller bank/index (MIDI 1.0 CC 101/100).
func MIDI2RPN(group, channel, bank, index byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2RPNStatus, channel, bank&0x7F, index&0x7F, data)
}

// MIDI2NRPN addresses assignable controller bank/index (MIDI 1.0 CC 99/98).
func MIDI2NRPN(group, channel, bank, index byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2NRPNStatus, channel, bank&0x7F, index&0x7F, data)
}

func MIDI2RelativeRPN(group, channel, bank, index byte, data int32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2RelativeRPNStatus, channel, bank&0x7F, index&0x7F, uint32(data))
}

func MIDI2RelativeNRPN(group, channel, bank, index byte, data int32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2RelativeNRPNStatus, channel, bank&0x7F, index&0x7F, uint32(data))
}

// MIDI2Program returns a program change. Bank bytes are only meaningful when
// optionFlags has ProgramBankValid set.
func MIDI2Program(group, channel, optionFlags, program, bankMSB, bankLSB byte) uint64 {
	head := midi2Head(group, MIDI2ProgramStatus, channel, 0, optionFlags&1)
	return uint64(head)<<32 | uint64(program&0x7F)<<24 | uint64(bankMSB&0x7F)<<8 | uint64(bankLSB&0x7F)
}

func MIDI2CAF(group, channel byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2CAFStatus, channel, 0, 0, data)
}

// MIDI2PitchBendDirect takes the unsigned 32-bit value (PitchBendCenter32 is centre).
func MIDI2PitchBendDirect(group, channel byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PitchBendStatus, channel, 0, 0, data)
}

// MIDI2PitchBend takes a signed offset from centre.
func MIDI2PitchBend(group, channel byte, offset int32) uint64 {
	return MIDI2PitchBendDirect(group, channel, uint32(offset)+PitchBendCenter32)
}

func MIDI2PerNotePitchBend(group, channel, note byte, data uint32) uint64 {
	return MIDI2Message8x8x32(group, MIDI2PerNotePitchBendStatus, channel, note&0x7F, 0, data)
}

// Accessors for two-word channel messages. Byte offsets count from the most
// significant byte of the first word.

func getByteAt(v uint64, at int) byte { return byte(v >> (56 - 8*at)) }

// GetNote returns the note number (also the MIDI 1.0 CC index position).
func GetNote(v uint64) byte { return getByteAt(v, 2) & 0x7F }

// GetAttributeType returns the note attribute type of a note on/off.
func GetAttributeType(v uint64) byte { return getByteAt(v, 3) }

// GetVelocity16 returns the 16-bit velocity of a note on/off.
func GetVelocity16(v uint64) uint16 { return uint16(v >> 16) }

// GetAttributeData returns the attribute data of a note on/off.
func GetAttributeData(v uint64) uint16 { return uint16(v) }

// GetIndex returns the controller index of a CC or per-note controller.
func GetIndex(v uint64) byte { return getByteAt(v, 3) }

// GetCCIndex returns the controller index of a CC message.
func GetCCIndex(v uint64) byte { return getByteAt(v, 2) & 0x7F }

// GetData32 returns the 32-bit payload word.
func GetData32(v uint64) uint32 { return uint32(v) }

// GetRPNBank returns the bank (MSB) of an RPN/NRPN message.
func GetRPNBank(v uint64) byte { return getByteAt(v, 2) & 0x7F }

// GetRPNIndex returns the index (LSB) of an RPN/NRPN message.
func GetRPNIndex(v uint64) byte { return getByteAt(v, 3) & 0x7F }

// GetProgramOptions returns the option flags of a program change.
func GetProgramOptions(v uint64) byte { return getByteAt(v, 3) }

// GetProgram returns the program number of a program change.
func GetProgram(v uint64) byte { return getByteAt(v, 4) & 0x7F }

// GetBankMSB returns the bank MSB of a program change.
func GetBankMSB(v uint64) byte { return getByteAt(v, 6) & 0x7F }

// GetBankLSB returns the bank LSB of a program change.
func GetBankLSB(v uint64) byte { return getByteAt(v, 7) & 0x7F }

// GetPerNoteManagementOptions returns the detach/reset flags.
func GetPerNoteManagementOptions(v uint64) byte { return getByteAt(v, 3) & 3 }
