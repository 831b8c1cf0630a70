package ci

import (
	"fmt"

	"github.com/leandrodaf/midi2/sdk/ump"
)

// PropertyCapabilities is the payload of the Property Exchange capabilities
// inquiry and its reply.
type PropertyCapabilities struct {
	MaxSimultaneousRequests byte
	MajorVersion            byte
	MinorVersion            byte
}

// AppendPropertyCapabilities appends Inquiry: Property Exchange Capabilities.
func AppendPropertyCapabilities(dst []byte, c Common, pc PropertyCapabilities) []byte {
	return append(appendHeader(dst, c, SubPropertyCapabilities), pc.MaxSimultaneousRequests, pc.MajorVersion, pc.MinorVersion)
}

// AppendPropertyCapabilitiesReply appends the capabilities reply.
func AppendPropertyCapabilitiesReply(dst []byte, c Common, pc PropertyCapabilities) []byte {
	return append(appendHeader(dst, c, SubPropertyCapabilitiesReply), pc.MaxSimultaneousRequests, pc.MajorVersion, pc.MinorVersion)
}

// ParsePropertyCapabilities reads the inquiry or its reply. The version bytes
// are absent from version 1.1 messages and parse as zero.
func ParsePropertyCapabilities(b []byte) (Common, PropertyCapabilities, error) {
	c, p, err := parse(b, SubPropertyCapabilities, SubPropertyCapabilitiesReply)
	if err != nil {
		return c, PropertyCapabilities{}, err
	}
	pc := PropertyCapabilities{MaxSimultaneousRequests: p.u8()}
	if len(p.b) >= 2 {
		pc.MajorVersion, pc.MinorVersion = p.u8(), p.u8()
	}
	return c, pc, p.err
}

// PropertyChunk is one chunk of a Property Exchange transaction. Header is
// JSON and is sent in the first chunk only; Data is the property body slice
// this chunk carries. ChunkIndex starts at 1.
type PropertyChunk struct {
	RequestID  byte
	Header     []byte
	NumChunks  uint16
	ChunkIndex uint16
	Data       []byte
}

// AppendPropertyExchange appends one Property Exchange data message. subID2 is
// one of the SubProperty* get/set/subscribe/notify values.
func AppendPropertyExchange(dst []byte, c Common, subID2 byte, pc PropertyChunk) []byte {
	dst = append(appendHeader(dst, c, subID2), pc.RequestID)
	dst = append14(dst, uint16(len(pc.Header)))
	dst = append(dst, pc.Header...)
	dst = append14(dst, pc.NumChunks)
	dst = append14(dst, pc.ChunkIndex)
	dst = append14(dst, uint16(len(pc.Data)))
	return append(dst, pc.Data...)
}

// AppendPropertyGetData appends a single-chunk Get Property Data inquiry.
func AppendPropertyGetData(dst []byte, c Common, requestID byte, header []byte) []byte {
	return AppendPropertyExchange(dst, c, SubPropertyGetData, PropertyChunk{
		RequestID:  requestID,
		Header:     header,
		NumChunks:  1,
		ChunkIndex: 1,
	})
}

// ParsePropertyExchange reads any Property Exchange data message and returns
// its sub-ID#2 in Common.
func ParsePropertyExchange(b []byte) (Common, PropertyChunk, error) {
	c, p, err := parse(b,
		SubPropertyGetData, SubPropertyGetDataReply,
		SubPropertySetData, SubPropertySetDataReply,
		SubPropertySubscribe, SubPropertySubscribeReply,
		SubPropertyNotify)
	if err != nil {
		return c, PropertyChunk{}, err
	}
	pc := PropertyChunk{RequestID: p.u8()}
	pc.Header = p.take(int(p.u14()))
	pc.NumChunks = p.u14()
	pc.ChunkIndex = p.u14()
	pc.Data = p.take(int(p.u14()))
	if p.err != nil {
		return c, PropertyChunk{}, p.err
	}
	return c, pc, nil
}

// PropertyProcess splits body into chunks of at most maxChunkSize bytes and
// passes each to fn in order, the header riding on the first. An empty body
// still produces one chunk.
func PropertyProcess(requestID byte, header, body []byte, maxChunkSize int, fn func(PropertyChunk) error) error {
	if maxChunkSize <= 0 || maxChunkSize > 0x3FFF {
		return fmt.Errorf("%w: %d", ErrChunkSize, maxChunkSize)
	}
	n := ump.NumPackets(len(body), maxChunkSize)
	if n > 0x3FFF {
		return fmt.Errorf("%w: body of %d bytes needs %d chunks", ErrChunkSize, len(body), n)
	}
	for i := 0; i < n; i++ {
		_, off, size := ump.PacketInfo(len(body), maxChunkSize, i)
		pc := PropertyChunk{
			RequestID:  requestID,
			NumChunks:  uint16(n),
			ChunkIndex: uint16(i + 1),
			Data:       body[off : off+size],
		}
		if i == 0 {
			pc.Header = header
		}
		if err := fn(pc); err != nil {
			return err
		}
	}
	return nil
}
