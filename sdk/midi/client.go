// Package midi is the entry point for capturing MIDI 1.0 input as Universal
// MIDI Packets on the host platform.
package midi

import (
	"github.com/leandrodaf/midi2/sdk/contracts"
)

// NewMIDIClient creates a capture client for the current platform. Options
// not given fall back to a zap logger at info level, MIDI 2.0 protocol output
// on group 0 and the CoreMIDI client name "GO MIDI2 Client".
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return NewClient(&options)
}
