package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midi2/internal/midi/mididarwin"
	"github.com/leandrodaf/midi2/internal/midi/midiwindows"
	"github.com/leandrodaf/midi2/sdk/contracts"
)

// ErrUnsupportedOS is returned when no capture backend exists for the host.
var ErrUnsupportedOS = errors.New("unsupported operating system")

var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,
	"windows": midiwindows.NewMIDIClient,
}

// NewClient picks the backend for runtime.GOOS.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return newClientFor(runtime.GOOS, opts)
}

func newClientFor(goos string, opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[goos]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
