//go:build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/midi2/sdk/contracts"
)

// ErrUnsupportedPlatform is returned by every operation of the dummy client.
var ErrUnsupportedPlatform = errors.New("winmm MIDI input is not available on this platform")

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a client whose operations fail with ErrUnsupportedPlatform.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Windows system")
	return &dummyMIDIClient{logger: options.Logger}, nil
}

func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, ErrUnsupportedPlatform
}

func (m *dummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI client", m.logger.Field().Int("deviceID", deviceID))
	return ErrUnsupportedPlatform
}

func (m *dummyMIDIClient) StartCapture(chan contracts.UMPEvent) {
	m.logger.Warn("StartCapture called on dummy MIDI client")
}

func (m *dummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
