package ump

// MIDI1Message returns a MIDI 1.0 Channel Voice message. code is the status
// nibble (0x80-0xE0); b1 and b2 are masked to 7 bits.
func MIDI1Message(group, code, channel, b1, b2 byte) uint32 {
	return uint32(MTMIDI1)<<28 | uint32(group&0xF)<<24 |
		uint32(code&0xF0|channel&0xF)<<16 | uint32(b1&0x7F)<<8 | uint32(b2&0x7F)
}

func MIDI1NoteOff(group, channel, note, velocity byte) uint32 {
	return MIDI1Message(group, 0x80, channel, note, velocity)
}

func MIDI1NoteOn(group, channel, note, velocity byte) uint32 {
	return MIDI1Message(group, 0x90, channel, note, velocity)
}

func MIDI1PAF(group, channel, note, data byte) uint32 {
	return MIDI1Message(group, 0xA0, channel, note, data)
}

func MIDI1CC(group, channel, index, data byte) uint32 {
	return MIDI1Message(group, 0xB0, channel, index, data)
}

func MIDI1Program(group, channel, program byte) uint32 {
	return MIDI1Message(group, 0xC0, channel, program, 0)
}

func MIDI1CAF(group, channel, data byte) uint32 {
	return MIDI1Message(group, 0xD0, channel, data, 0)
}

// MIDI1PitchBendDirect takes the unsigned 14-bit value (0x2000 is centre).
func MIDI1PitchBendDirect(group, channel byte, value uint16) uint32 {
	return MIDI1Message(group, 0xE0, channel, byte(value&0x7F), byte(value>>7))
}

// MIDI1PitchBend takes a signed offset from centre in -8192..8191.
func MIDI1PitchBend(group, channel byte, offset int16) uint32 {
	return MIDI1PitchBendDirect(group, channel, uint16(int32(offset)+0x2000))
}

// GetMIDI1Bytes returns the two data bytes of a MIDI 1.0 Channel Voice message.
func GetMIDI1Bytes(word0 uint32) (b1, b2 byte) {
	return byte(word0>>8) & 0x7F, byte(word0) & 0x7F
}

// GetMIDI1PitchBend returns the 14-bit pitch bend value.
func GetMIDI1PitchBend(word0 uint32) uint16 {
	lsb, msb := GetMIDI1Bytes(word0)
	return uint16(msb)<<7 | uint16(lsb)
}
