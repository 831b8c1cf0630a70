package ump

import "github.com/leandrodaf/midi2/internal/byteorder"

// SysEx7Radix is the number of SysEx bytes carried per SysEx7 packet.
const SysEx7Radix = 6

// SysEx7Direct returns one SysEx7 packet with status (SysExInOneUMP..SysExEnd)
// carrying up to six bytes of data. Extra bytes are ignored.
func SysEx7Direct(group, status byte, data []byte) uint64 {
	var buf [8]byte
	n := copy(buf[2:], data)
	buf[0] = byte(MTSysEx7)<<4 | group&0xF
	buf[1] = status&0xF0 | byte(n)
	return byteorder.ReadUint64BE(buf[:])
}

// SysEx7NumPackets returns the packet count for a SysEx body of numBytes
// (without the F0 and F7 bytes).
func SysEx7NumPackets(numBytes int) int { return NumPackets(numBytes, SysEx7Radix) }

// SysEx7PacketOf returns packet index of the SysEx body data.
func SysEx7PacketOf(group byte, data []byte, index int) uint64 {
	status, off, size := PacketInfo(len(data), SysEx7Radix, index)
	return SysEx7Direct(group, status.SysExStatus(), data[off:off+size])
}

// SysEx7Process calls fn with every packet of data in order. It stops at the
// first error fn returns and hands it back.
func SysEx7Process(group byte, data []byte, fn func(packet uint64) error) error {
	n := SysEx7NumPackets(len(data))
	for i := 0; i < n; i++ {
		if err := fn(SysEx7PacketOf(group, data, i)); err != nil {
			return err
		}
	}
	return nil
}

// GetSysEx7NumBytes returns the number of valid data bytes in a SysEx7 packet.
func GetSysEx7NumBytes(v uint64) int {
	n := int(v>>48) & 0xF
	if n > SysEx7Radix {
		return SysEx7Radix
	}
	return n
}

// GetSysEx7Status returns the status byte (SysExInOneUMP..SysExEnd).
func GetSysEx7Status(v uint64) byte { return byte(v>>48) & 0xF0 }

// GetSysEx7Data copies the payload bytes of a SysEx7 packet into dst and
// returns how many were copied.
func GetSysEx7Data(v uint64, dst []byte) int {
	n := GetSysEx7NumBytes(v)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = getByteAt(v, 2+i)
	}
	return n
}
