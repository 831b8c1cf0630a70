package contracts

import (
	"slices"

	"github.com/leandrodaf/midi2/sdk/convert"
	"github.com/leandrodaf/midi2/sdk/ump"
)

// MIDICommand is a channel voice status code used for event filtering. The
// codes are shared by MIDI 1.0 and MIDI 2.0 channel voice packets.
type MIDICommand byte

const (
	NoteOff       MIDICommand = 0x80
	NoteOn        MIDICommand = 0x90
	PolyPressure  MIDICommand = 0xA0
	ControlChange MIDICommand = 0xB0
	ProgramChange MIDICommand = 0xC0
	ChanPressure  MIDICommand = 0xD0
	PitchBend     MIDICommand = 0xE0
)

// UMPEventFilter selects which packets reach the event channel. Empty lists
// accept everything; Commands only applies to channel voice packets.
type UMPEventFilter struct {
	Types    []ump.MessageType // Message types to deliver.
	Commands []MIDICommand     // Channel voice status codes to deliver.
}

// Allows reports whether p passes the filter.
func (f *UMPEventFilter) Allows(p ump.Packet) bool {
	if f == nil {
		return true
	}
	t := p.Type()
	if len(f.Types) > 0 && !slices.Contains(f.Types, t) {
		return false
	}
	if len(f.Commands) > 0 && (t == ump.MTMIDI1 || t == ump.MTMIDI2) {
		return slices.Contains(f.Commands, MIDICommand(p.StatusCode()))
	}
	return true
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger         Logger           // Logger for capture events and errors.
	LogLevel       LogLevel         // Level of logging to use.
	LogFilePath    string           // File path for logging if file logging is enabled.
	EventFilter    *UMPEventFilter  // Optional filter for delivered packets.
	CoreMIDIConfig *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	Group          byte             // UMP group assigned to captured input.
	Protocol       convert.Protocol // Protocol of produced channel voice packets.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to path.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithEventFilter sets the packet filter for the MIDI client.
func WithEventFilter(filter UMPEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.EventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithGroup sets the UMP group of captured input.
func WithGroup(group byte) Option {
	return func(opts *ClientOptions) {
		opts.Group = group & 0xF
	}
}

// WithProtocol sets whether channel voice input becomes MIDI 1.0 or MIDI 2.0 packets.
func WithProtocol(p convert.Protocol) Option {
	return func(opts *ClientOptions) {
		opts.Protocol = p
	}
}
