package ump

// System returns a System Common or System Real Time message. status is the
// MIDI 1.0 status byte (0xF1-0xFF); b1 and b2 are masked to 7 bits.
func System(group, status, b1, b2 byte) uint32 {
	return uint32(MTSystem)<<28 | uint32(group&0xF)<<24 | uint32(status)<<16 |
		uint32(b1&0x7F)<<8 | uint32(b2&0x7F)
}

func MTC(group, code byte) uint32 { return System(group, 0xF1, code, 0) }
func SongSelect(group, song byte) uint32 { return System(group, 0xF3, song, 0) }
func TuneRequest(group byte) uint32 { return System(group, 0xF6, 0, 0) }
func TimingClock(group byte) uint32 { return System(group, 0xF8, 0, 0) }
func SystemStart(group byte) uint32 { return System(group, 0xFA, 0, 0) }
func SystemContinue(group byte) uint32 { return System(group, 0xFB, 0, 0) }
func SystemStop(group byte) uint32 { return System(group, 0xFC, 0, 0) }
func ActiveSensing(group byte) uint32 { return System(group, 0xFE, 0, 0) }
func SystemReset(group byte) uint32 { return System(group, 0xFF, 0, 0) }
func SongPosition(group byte, pos uint16) uint32 { return System(group, 0xF2, byte(pos), byte(pos>>7)) }

// GetSystemBytes returns the two data bytes of a System message.
func GetSystemBytes(word0 uint32) (b1, b2 byte) {
	return byte(word0>>8) & 0x7F, byte(word0) & 0x7F
}
