package ump

// SysEx8Radix is the number of data bytes carried per SysEx8 packet.
const SysEx8Radix = 13

// SysEx8Direct returns one SysEx8 packet with status and stream ID carrying up
// to 13 bytes of data. The size nibble counts the stream ID byte too.
func SysEx8Direct(group, status, streamID byte, data []byte) [4]uint32 {
	var buf [16]byte
	n := copy(buf[3:], data)
	buf[0] = byte(MTSysEx8MDS)<<4 | group&0xF
	buf[1] = status&0xF0 | byte(n+1)
	buf[2] = streamID
	return words128(&buf)
}

// SysEx8NumPackets returns the packet count for numBytes of SysEx8 data.
func SysEx8NumPackets(numBytes int) int { return NumPackets(numBytes, SysEx8Radix) }

// SysEx8PacketOf returns packet index of data.
func SysEx8PacketOf(group, streamID byte, data []byte, index int) [4]uint32 {
	status, off, size := PacketInfo(len(data), SysEx8Radix, index)
	return SysEx8Direct(group, status.SysExStatus(), streamID, data[off:off+size])
}

// SysEx8Process calls fn with every packet of data in order, stopping at the
// first error.
func SysEx8Process(group, streamID byte, data []byte, fn func(packet [4]uint32) error) error {
	n := SysEx8NumPackets(len(data))
	for i := 0; i < n; i++ {
		if err := fn(SysEx8PacketOf(group, streamID, data, i)); err != nil {
			return err
		}
	}
	return nil
}

// GetSysEx8NumBytes returns the size nibble, which includes the stream ID byte.
func GetSysEx8NumBytes(word0 uint32) int { return int(word0>>16) & 0xF }

// GetSysEx8Status returns the status byte of a SysEx8 or MDS packet.
func GetSysEx8Status(word0 uint32) byte { return byte(word0>>16) & 0xF0 }

// GetSysEx8StreamID returns the stream ID.
func GetSysEx8StreamID(word0 uint32) byte { return byte(word0 >> 8) }
