// Package byteorder provides alignment-free reads and writes of 32 and 64-bit
// fields, plus the platform endianness probe used to pick a default UMP
// serialization order.
package byteorder

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// Endianness selects the byte order used when UMP words are serialized to bytes.
type Endianness int

const (
	// Native uses the byte order of the running platform.
	Native Endianness = iota
	// BigEndian uses network byte order. UMP payloads are defined in this order.
	BigEndian
	// LittleEndian uses x86/ARM byte order.
	LittleEndian
)

// String returns a human-readable endianness name.
func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return "native"
	}
}

// IsBigEndianPlatform reports whether the running platform is big-endian.
func IsBigEndianPlatform() bool {
	return cpu.IsBigEndian
}

// NativeOrder returns the byte order of the running platform.
func NativeOrder() binary.ByteOrder {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Resolve maps e to a concrete byte order, replacing Native with the platform order.
func (e Endianness) Resolve() binary.ByteOrder {
	switch e {
	case BigEndian:
		return binary.BigEndian
	case LittleEndian:
		return binary.LittleEndian
	default:
		return NativeOrder()
	}
}

// IsNative reports whether e serializes words the same way the platform stores them.
func (e Endianness) IsNative() bool {
	switch e {
	case BigEndian:
		return cpu.IsBigEndian
	case LittleEndian:
		return !cpu.IsBigEndian
	default:
		return true
	}
}

// ReadUint32BE reads 4 bytes at b[0:4] as a big-endian value.
func ReadUint32BE(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// ReadUint32LE reads 4 bytes at b[0:4] as a little-endian value.
func ReadUint32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// ReadUint64BE reads 8 bytes at b[0:8] as a big-endian value.
func ReadUint64BE(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// ReadUint64LE reads 8 bytes at b[0:8] as a little-endian value.
func ReadUint64LE(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// ReadUint32 reads 4 bytes in platform order.
func ReadUint32(b []byte) uint32 { return NativeOrder().Uint32(b) }

// ReadUint64 reads 8 bytes in platform order.
func ReadUint64(b []byte) uint64 { return NativeOrder().Uint64(b) }

// PutUint32BE writes v into b[0:4] in big-endian order.
func PutUint32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// PutUint32LE writes v into b[0:4] in little-endian order.
func PutUint32LE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// Swap32 reverses the byte order of v.
func Swap32(v uint32) uint32 {
	return v>>24 | (v>>8)&0xFF00 | (v<<8)&0xFF0000 | v<<24
}
