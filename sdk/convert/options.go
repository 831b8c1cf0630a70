package convert

import "github.com/leandrodaf/midi2/internal/byteorder"

// Protocol selects what kind of channel voice messages MIDI1ToUMP produces.
type Protocol int

const (
	// ProtocolMIDI1 wraps MIDI 1.0 channel messages verbatim (message type 2).
	ProtocolMIDI1 Protocol = 1
	// ProtocolMIDI2 translates to MIDI 2.0 channel messages (message type 4).
	ProtocolMIDI2 Protocol = 2
)

// Options configures a conversion Context.
type Options struct {
	Group             byte                 // UMP group for every produced packet.
	Protocol          Protocol             // Target protocol of MIDI1ToUMP.
	UseSysEx8         bool                 // Emit SysEx8 instead of SysEx7.
	SysEx8StreamID    byte                 // Stream ID used when UseSysEx8 is set.
	Endianness        byteorder.Endianness // Byte order of serialized UMP.
	SkipDeltaTime     bool                 // Input/output has no SMF-style delta times.
	AllowReorderedDTE bool                 // Accept data entry LSB before MSB.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithGroup sets the UMP group.
func WithGroup(group byte) Option {
	return func(o *Options) {
		o.Group = group & 0xF
	}
}

// WithProtocol sets the MIDI1ToUMP target protocol.
func WithProtocol(p Protocol) Option {
	return func(o *Options) {
		o.Protocol = p
	}
}

// WithSysEx8 makes MIDI1ToUMP chunk SysEx as SysEx8 on the given stream.
func WithSysEx8(streamID byte) Option {
	return func(o *Options) {
		o.UseSysEx8 = true
		o.SysEx8StreamID = streamID
	}
}

// WithEndianness sets the byte order of serialized UMP.
func WithEndianness(e byteorder.Endianness) Option {
	return func(o *Options) {
		o.Endianness = e
	}
}

// WithDeltaTime makes the MIDI 1.0 side a sequence of delta-time/event pairs.
// Deltas map to JR Timestamps and 0xFF starts a meta event.
func WithDeltaTime() Option {
	return func(o *Options) {
		o.SkipDeltaTime = false
	}
}

// WithAllowReorderedDTE accepts data entry LSB before MSB.
func WithAllowReorderedDTE() Option {
	return func(o *Options) {
		o.AllowReorderedDTE = true
	}
}

// applyDefaultOptions sets defaults and applies opts on top.
func applyDefaultOptions(opts ...Option) Options {
	options := Options{
		Protocol:      ProtocolMIDI2,
		Endianness:    byteorder.Native,
		SkipDeltaTime: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Protocol != ProtocolMIDI1 {
		options.Protocol = ProtocolMIDI2
	}
	return options
}
