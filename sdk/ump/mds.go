package ump

import "github.com/leandrodaf/midi2/internal/byteorder"

// MDSPayloadRadix is the number of bytes carried per Mixed Data Set payload packet.
const MDSPayloadRadix = 14

// MDSMaxPayloadsPerChunk keeps a chunk's byte count inside the 16-bit header field.
const MDSMaxPayloadsPerChunk = 0xFFFF / MDSPayloadRadix

// MDSChunkCapacity is the number of data bytes in a full chunk.
const MDSChunkCapacity = MDSPayloadRadix * MDSMaxPayloadsPerChunk

// MDSHeaderInfo describes the header packet that leads every chunk.
type MDSHeaderInfo struct {
	NumValidBytes  uint16
	NumChunks      uint16
	ChunkNumber    uint16 // starts at 1
	ManufacturerID uint16
	DeviceID       uint16
	SubID1         uint16
	SubID2         uint16
}

// MDSNumChunks returns how many chunks carry numBytes. An empty data set
// still takes one chunk: a header with no payload packets.
func MDSNumChunks(numBytes int) int {
	if numBytes <= 0 {
		return 1
	}
	return (numBytes + MDSChunkCapacity - 1) / MDSChunkCapacity
}

// MDSChunkSize returns the number of data bytes in chunk index (0-based). The
// last chunk holds the remainder, or a full chunk when numBytes divides evenly.
func MDSChunkSize(numBytes, index int) int {
	rest := numBytes - index*MDSChunkCapacity
	switch {
	case rest <= 0:
		return 0
	case rest > MDSChunkCapacity:
		return MDSChunkCapacity
	default:
		return rest
	}
}

// MDSHeader returns the header packet of one chunk.
func MDSHeader(group, mdsID byte, h MDSHeaderInfo) [4]uint32 {
	return [4]uint32{
		uint32(MTSysEx8MDS)<<28 | uint32(group&0xF)<<24 | uint32(MDSHeaderStatus|mdsID&0xF)<<16 | uint32(h.NumValidBytes),
		uint32(h.NumChunks)<<16 | uint32(h.ChunkNumber),
		uint32(h.ManufacturerID)<<16 | uint32(h.DeviceID),
		uint32(h.SubID1)<<16 | uint32(h.SubID2),
	}
}

// MDSPayload returns a payload packet carrying up to 14 bytes of data.
func MDSPayload(group, mdsID byte, data []byte) [4]uint32 {
	var buf [16]byte
	copy(buf[2:], data)
	buf[0] = byte(MTSysEx8MDS)<<4 | group&0xF
	buf[1] = MDSPayloadStatus | mdsID&0xF
	return words128(&buf)
}

// ParseMDSHeader reads the header fields of an MDS header packet.
func ParseMDSHeader(w [4]uint32) MDSHeaderInfo {
	return MDSHeaderInfo{
		NumValidBytes:  uint16(w[0]),
		NumChunks:      uint16(w[1] >> 16),
		ChunkNumber:    uint16(w[1]),
		ManufacturerID: uint16(w[2] >> 16),
		DeviceID:       uint16(w[2]),
		SubID1:         uint16(w[3] >> 16),
		SubID2:         uint16(w[3]),
	}
}

// GetMDSID returns the MDS ID of a header or payload packet.
func GetMDSID(word0 uint32) byte { return byte(word0>>16) & 0xF }

// MDSProcess chunks data into header and payload packets and passes each to
// fn. NumValidBytes, NumChunks and ChunkNumber in h are filled per chunk.
func MDSProcess(group, mdsID byte, data []byte, h MDSHeaderInfo, fn func(packet [4]uint32) error) error {
	numChunks := MDSNumChunks(len(data))
	h.NumChunks = uint16(numChunks)
	for c := 0; c < numChunks; c++ {
		size := MDSChunkSize(len(data), c)
		chunk := data[c*MDSChunkCapacity : c*MDSChunkCapacity+size]
		h.NumValidBytes = uint16(size)
		h.ChunkNumber = uint16(c + 1)
		if err := fn(MDSHeader(group, mdsID, h)); err != nil {
			return err
		}
		for off := 0; off < size; off += MDSPayloadRadix {
			end := min(off+MDSPayloadRadix, size)
			if err := fn(MDSPayload(group, mdsID, chunk[off:end])); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetMDSPayload copies the 14 payload bytes of a payload packet into dst;
// the matching header says how many of them are valid.
func GetMDSPayload(w [4]uint32, dst []byte) int {
	var buf [16]byte
	for i, word := range w {
		byteorder.PutUint32BE(buf[i*4:], word)
	}
	return copy(dst, buf[2:])
}
