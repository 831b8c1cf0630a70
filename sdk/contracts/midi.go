package contracts

import (
	"time"

	"github.com/leandrodaf/midi2/sdk/ump"
)

// UMPEvent is one Universal MIDI Packet produced from captured MIDI 1.0 input.
type UMPEvent struct {
	Timestamp time.Time  // Time the source data arrived.
	Source    string     // Name of the source device.
	Packet    ump.Packet // The converted packet.
}

// Type returns the message type of the packet.
func (e UMPEvent) Type() ump.MessageType { return e.Packet.Type() }

// Group returns the UMP group of the packet.
func (e UMPEvent) Group() byte { return e.Packet.Group() }

// ClientMIDI captures MIDI 1.0 input and delivers it as UMP.
type ClientMIDI interface {
	Stop() error                             // Stops capturing and releases the device.
	ListDevices() ([]DeviceInfo, error)      // Lists the available input sources.
	SelectDevice(deviceID int) error         // Connects to a source by index.
	StartCapture(eventChannel chan UMPEvent) // Starts delivering converted packets to eventChannel.
}
