package ump

// UMP Stream statuses.
const (
	StreamEndpointDiscovery      uint16 = 0x000
	StreamEndpointInfo           uint16 = 0x001
	StreamDeviceIdentity         uint16 = 0x002
	StreamEndpointName           uint16 = 0x003
	StreamProductInstanceID      uint16 = 0x004
	StreamConfigRequest          uint16 = 0x005
	StreamConfigNotification     uint16 = 0x006
	StreamFunctionBlockDiscovery uint16 = 0x010
	StreamFunctionBlockInfo      uint16 = 0x011
	StreamFunctionBlockName      uint16 = 0x012
	StreamStartOfClip            uint16 = 0x020
	StreamEndOfClip              uint16 = 0x021
)

// Endpoint discovery filter bits.
const (
	DiscoveryEndpointInfo      byte = 1 << 0
	DiscoveryDeviceIdentity    byte = 1 << 1
	DiscoveryEndpointName      byte = 1 << 2
	DiscoveryProductInstanceID byte = 1 << 3
	DiscoveryStreamConfig      byte = 1 << 4
)

// Function block discovery filter bits.
const (
	DiscoveryFunctionBlockInfo byte = 1 << 0
	DiscoveryFunctionBlockName byte = 1 << 1
)

// Protocols negotiated by stream configuration messages.
const (
	StreamProtocolMIDI1 byte = 1
	StreamProtocolMIDI2 byte = 2
)

// AllFunctionBlocks addresses every function block in a discovery request.
const AllFunctionBlocks byte = 0xFF

// Text radixes of stream messages.
const (
	StreamTextRadix            = 14
	FunctionBlockNameTextRadix = 13
)

func streamHead(form ChunkStatus, status uint16) uint32 {
	return uint32(MTUMPStream)<<28 | uint32(form&3)<<26 | uint32(status&0x3FF)<<16
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// GetStreamStatus returns the 10-bit status of a UMP Stream packet.
func GetStreamStatus(word0 uint32) uint16 { return uint16(word0>>16) & 0x3FF }

// GetStreamForm returns the chunk position of a UMP Stream packet.
func GetStreamForm(word0 uint32) ChunkStatus { return ChunkStatus(word0>>26) & 3 }

// EndpointDiscovery asks an endpoint for the notifications selected by filter.
func EndpointDiscovery(versionMajor, versionMinor, filter byte) [4]uint32 {
	return [4]uint32{
		streamHead(ChunkComplete, StreamEndpointDiscovery) | uint32(versionMajor)<<8 | uint32(versionMinor),
		uint32(filter),
	}
}

// EndpointInfo is the payload of an Endpoint Info Notification.
type EndpointInfo struct {
	VersionMajor         byte
	VersionMinor         byte
	StaticFunctionBlocks bool
	NumFunctionBlocks    byte
	MIDI2                bool
	MIDI1                bool
	RxJR                 bool
	TxJR                 bool
}

// EndpointInfoNotification returns the packet describing info.
func EndpointInfoNotification(info EndpointInfo) [4]uint32 {
	return [4]uint32{
		streamHead(ChunkComplete, StreamEndpointInfo) | uint32(info.VersionMajor)<<8 | uint32(info.VersionMinor),
		boolBit(info.StaticFunctionBlocks)<<31 | uint32(info.NumFunctionBlocks&0x7F)<<24 |
			boolBit(info.MIDI2)<<9 | boolBit(info.MIDI1)<<8 | boolBit(info.RxJR)<<1 | boolBit(info.TxJR),
	}
}

// ParseEndpointInfo reads an Endpoint Info Notification.
func ParseEndpointInfo(w [4]uint32) EndpointInfo {
	return EndpointInfo{
		VersionMajor:         byte(w[0] >> 8),
		VersionMinor:         byte(w[0]),
		StaticFunctionBlocks: w[1]>>31 != 0,
		NumFunctionBlocks:    byte(w[1]>>24) & 0x7F,
		MIDI2:                w[1]>>9&1 != 0,
		MIDI1:                w[1]>>8&1 != 0,
		RxJR:                 w[1]>>1&1 != 0,
		TxJR:                 w[1]&1 != 0,
	}
}

// DeviceIdentity is the payload of a Device Identity Notification. Family and
// Model are 14-bit values sent LSB first.
type DeviceIdentity struct {
	Manufacturer [3]byte
	Family       uint16
	Model        uint16
	Revision     [4]byte
}

// DeviceIdentityNotification returns the packet describing id.
func DeviceIdentityNotification(id DeviceIdentity) [4]uint32 {
	return [4]uint32{
		streamHead(ChunkComplete, StreamDeviceIdentity),
		uint32(id.Manufacturer[0]&0x7F)<<16 | uint32(id.Manufacturer[1]&0x7F)<<8 | uint32(id.Manufacturer[2]&0x7F),
		uint32(id.Family&0x7F)<<24 | uint32(id.Family>>7&0x7F)<<16 | uint32(id.Model&0x7F)<<8 | uint32(id.Model>>7&0x7F),
		uint32(id.Revision[0]&0x7F)<<24 | uint32(id.Revision[1]&0x7F)<<16 | uint32(id.Revision[2]&0x7F)<<8 | uint32(id.Revision[3]&0x7F),
	}
}

// ParseDeviceIdentity reads a Device Identity Notification.
func ParseDeviceIdentity(w [4]uint32) DeviceIdentity {
	return DeviceIdentity{
		Manufacturer: [3]byte{byte(w[1] >> 16), byte(w[1] >> 8), byte(w[1])},
		Family:       uint16(w[2]>>24&0x7F) | uint16(w[2]>>16&0x7F)<<7,
		Model:        uint16(w[2]>>8&0x7F) | uint16(w[2]&0x7F)<<7,
		Revision:     [4]byte{byte(w[3] >> 24), byte(w[3] >> 16), byte(w[3] >> 8), byte(w[3])},
	}
}

func streamTextProcess(status uint16, text []byte, fn func(packet [4]uint32) error) error {
	n := NumPackets(len(text), StreamTextRadix)
	for i := 0; i < n; i++ {
		form, off, size := PacketInfo(len(text), StreamTextRadix, i)
		if err := fn(textPacket(streamHead(form, status), 2, text[off:off+size])); err != nil {
			return err
		}
	}
	return nil
}

// EndpointNameProcess chunks an endpoint name into notification packets.
func EndpointNameProcess(name []byte, fn func(packet [4]uint32) error) error {
	return streamTextProcess(StreamEndpointName, name, fn)
}

// ProductInstanceIDProcess chunks a product instance ID into notification packets.
func ProductInstanceIDProcess(id []byte, fn func(packet [4]uint32) error) error {
	return streamTextProcess(StreamProductInstanceID, id, fn)
}

// FunctionBlockNameProcess chunks a function block name into notification packets.
func FunctionBlockNameProcess(blockNumber byte, name []byte, fn func(packet [4]uint32) error) error {
	n := NumPackets(len(name), FunctionBlockNameTextRadix)
	for i := 0; i < n; i++ {
		form, off, size := PacketInfo(len(name), FunctionBlockNameTextRadix, i)
		head := streamHead(form, StreamFunctionBlockName) | uint32(blockNumber&0x7F)<<8
		if err := fn(textPacket(head, 3, name[off:off+size])); err != nil {
			return err
		}
	}
	return nil
}

// AppendStreamText appends the text of an endpoint name, product instance ID
// or function block name packet to dst.
func AppendStreamText(dst []byte, w [4]uint32) []byte {
	if GetStreamStatus(w[0]) == StreamFunctionBlockName {
		return appendText(dst, w, 3)
	}
	return appendText(dst, w, 2)
}

// StreamConfigurationRequest asks the endpoint to switch protocol and JR settings.
func StreamConfigurationRequest(protocol byte, rxJR, txJR bool) [4]uint32 {
	return [4]uint32{streamHead(ChunkComplete, StreamConfigRequest) | uint32(protocol)<<8 | boolBit(rxJR)<<1 | boolBit(txJR)}
}

// StreamConfigurationNotification reports the active protocol and JR settings.
func StreamConfigurationNotification(protocol byte, rxJR, txJR bool) [4]uint32 {
	return [4]uint32{streamHead(ChunkComplete, StreamConfigNotification) | uint32(protocol)<<8 | boolBit(rxJR)<<1 | boolBit(txJR)}
}

// GetStreamConfiguration reads a stream configuration request or notification.
func GetStreamConfiguration(word0 uint32) (protocol byte, rxJR, txJR bool) {
	return byte(word0 >> 8), word0>>1&1 != 0, word0&1 != 0
}

// FunctionBlockDiscovery asks for one block (or AllFunctionBlocks).
func FunctionBlockDiscovery(blockNumber, filter byte) [4]uint32 {
	return [4]uint32{streamHead(ChunkComplete, StreamFunctionBlockDiscovery) | uint32(blockNumber)<<8 | uint32(filter)}
}

// Function block directions.
const (
	FunctionBlockInput         byte = 1
	FunctionBlockOutput        byte = 2
	FunctionBlockBidirectional byte = 3
)

// FunctionBlockInfo is the payload of a Function Block Info Notification.
type FunctionBlockInfo struct {
	Active           bool
	Number           byte
	UIHint           byte
	MIDI1            byte
	Direction        byte
	FirstGroup       byte
	NumGroups        byte
	MIDICIVersion    byte
	MaxSysEx8Streams byte
}

// FunctionBlockInfoNotification returns the packet describing fb.
func FunctionBlockInfoNotification(fb FunctionBlockInfo) [4]uint32 {
	return [4]uint32{
		streamHead(ChunkComplete, StreamFunctionBlockInfo) | boolBit(fb.Active)<<15 | uint32(fb.Number&0x7F)<<8 |
			uint32(fb.UIHint&3)<<4 | uint32(fb.MIDI1&3)<<2 | uint32(fb.Direction&3),
		uint32(fb.FirstGroup)<<24 | uint32(fb.NumGroups)<<16 | uint32(fb.MIDICIVersion)<<8 | uint32(fb.MaxSysEx8Streams),
	}
}

// ParseFunctionBlockInfo reads a Function Block Info Notification.
func ParseFunctionBlockInfo(w [4]uint32) FunctionBlockInfo {
	return FunctionBlockInfo{
		Active:           w[0]>>15&1 != 0,
		Number:           byte(w[0]>>8) & 0x7F,
		UIHint:           byte(w[0]>>4) & 3,
		MIDI1:            byte(w[0]>>2) & 3,
		Direction:        byte(w[0]) & 3,
		FirstGroup:       byte(w[1] >> 24),
		NumGroups:        byte(w[1] >> 16),
		MIDICIVersion:    byte(w[1] >> 8),
		MaxSysEx8Streams: byte(w[1]),
	}
}

// StartOfClip marks the beginning of a clip sequence.
func StartOfClip() [4]uint32 { return [4]uint32{streamHead(ChunkComplete, StreamStartOfClip)} }

// EndOfClip marks the end of a clip sequence.
func EndOfClip() [4]uint32 { return [4]uint32{streamHead(ChunkComplete, StreamEndOfClip)} }
