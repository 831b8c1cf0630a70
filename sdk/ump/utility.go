package ump

// Utility message statuses.
const (
	UtilityNOOP            byte = 0x00
	UtilityJRClock         byte = 0x10
	UtilityJRTimestamp     byte = 0x20
	UtilityDCTPQ           byte = 0x30
	UtilityDeltaClockstamp byte = 0x40
)

// JRTicksPerSecond is the resolution of JR Clock and JR Timestamp values.
const JRTicksPerSecond = 31250

// MaxJRTimestamp is the largest delta one JR Timestamp message carries.
const MaxJRTimestamp = 0xFFFF

func utility(group, status byte, payload uint32) uint32 {
	return uint32(MTUtility)<<28 | uint32(group&0xF)<<24 | uint32(status)<<16 | payload&0xFFFF
}

// NOOP returns a no-operation message.
func NOOP(group byte) uint32 { return utility(group, UtilityNOOP, 0) }

// JRClock returns a JR Clock message carrying the sender clock time.
func JRClock(group byte, senderClockTime uint16) uint32 {
	return utility(group, UtilityJRClock, uint32(senderClockTime))
}

// JRTimestamp returns a JR Timestamp message carrying a delta in 1/31250 s units.
func JRTimestamp(group byte, senderClockTimestamp uint16) uint32 {
	return utility(group, UtilityJRTimestamp, uint32(senderClockTimestamp))
}

// SecondsToJRTicks converts seconds to JR clock ticks.
func SecondsToJRTicks(seconds float64) uint32 {
	return uint32(seconds * JRTicksPerSecond)
}

// DCTPQ returns a Delta Clockstamp Ticks Per Quarter Note message.
func DCTPQ(group byte, ticksPerQuarterNote uint16) uint32 {
	return utility(group, UtilityDCTPQ, uint32(ticksPerQuarterNote))
}

// DeltaClockstamp returns a Delta Clockstamp message; ticks is a 20-bit value.
func DeltaClockstamp(group byte, ticks uint32) uint32 {
	return uint32(MTUtility)<<28 | uint32(group&0xF)<<24 | uint32(UtilityDeltaClockstamp)<<16 | ticks&0xFFFFF
}

// IsJRTimestamp reports whether word0 is a JR Timestamp message.
func IsJRTimestamp(word0 uint32) bool {
	return GetMessageType(word0) == MTUtility && GetStatusByte(word0)&0xF0 == UtilityJRTimestamp
}

// GetJRTimestamp returns the timestamp carried by a JR Clock or JR Timestamp message.
func GetJRTimestamp(word0 uint32) uint16 { return uint16(word0) }

// GetDeltaClockstamp returns the 20-bit tick count of a Delta Clockstamp message.
func GetDeltaClockstamp(word0 uint32) uint32 { return word0 & 0xFFFFF }
