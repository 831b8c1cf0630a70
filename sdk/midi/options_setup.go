package midi

import (
	"errors"

	"github.com/leandrodaf/midi2/internal/logger"
	"github.com/leandrodaf/midi2/sdk/contracts"
	"github.com/leandrodaf/midi2/sdk/convert"
)

// DefaultClientName names the CoreMIDI client when none is configured.
const DefaultClientName = "GO MIDI2 Client"

// ErrInvalidProtocol is returned for a protocol other than MIDI 1.0 or MIDI 2.0.
var ErrInvalidProtocol = errors.New("protocol must be MIDI 1.0 or MIDI 2.0")

// applyDefaultOptions applies opts over the defaults and configures the logger.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	switch options.Protocol {
	case 0:
		options.Protocol = convert.ProtocolMIDI2
	case convert.ProtocolMIDI1, convert.ProtocolMIDI2:
	default:
		return contracts.ClientOptions{}, ErrInvalidProtocol
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.CoreMIDIConfig == nil || options.CoreMIDIConfig.ClientName == "" {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.Destination(options.LogFilePath), options.LogFilePath)
	}
	return *options, nil
}
