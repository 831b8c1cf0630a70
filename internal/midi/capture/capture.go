// Package capture turns raw MIDI 1.0 input from a platform backend into
// filtered UMP events. Backends call HandleMIDI1 from their driver callback.
package capture

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midi2/sdk/contracts"
	"github.com/leandrodaf/midi2/sdk/convert"
	"github.com/leandrodaf/midi2/sdk/midi1"
	"github.com/leandrodaf/midi2/sdk/ump"
)

// maxPendingSysEx caps a SysEx message reassembled across driver callbacks.
const maxPendingSysEx = 64 * 1024

// Handler converts captured MIDI 1.0 bytes and delivers the packets to the
// channel given to Start. HandleMIDI1 may be called from any goroutine.
type Handler struct {
	logger contracts.Logger
	filter *contracts.UMPEventFilter

	// events is only stored under mu; Active reads it without locking.
	events atomic.Pointer[chan contracts.UMPEvent]

	mu      sync.Mutex
	conv    *convert.Context
	pending []byte
	words   []uint32
}

// New returns a Handler configured from the client options.
func New(options *contracts.ClientOptions) *Handler {
	return &Handler{
		logger: options.Logger,
		filter: options.EventFilter,
		conv: convert.New(
			convert.WithGroup(options.Group),
			convert.WithProtocol(options.Protocol),
		),
	}
}

// Start begins delivering events to ch.
func (h *Handler) Start(ch chan contracts.UMPEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events.Store(&ch)
}

// Stop detaches the event channel. A delivery in progress finishes first, and
// none starts after Stop returns. The conversion state is reset so a later
// Start begins cleanly.
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events.Store(nil)
	h.conv.Reset()
	h.pending = h.pending[:0]
}

// Active reports whether an event channel is attached.
func (h *Handler) Active() bool { return h.events.Load() != nil }

// HandleMIDI1 converts data received from source at ts and sends the
// resulting packets. It returns the number of events delivered. Events are
// dropped with a warning when the channel is full.
func (h *Handler) HandleMIDI1(source string, ts time.Time, data []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	chp := h.events.Load()
	if chp == nil {
		return 0
	}
	ch := *chp

	delivered := 0
	for _, p := range ump.Packets(h.convert(data)) {
		if !h.filter.Allows(p) {
			continue
		}
		select {
		case ch <- contracts.UMPEvent{Timestamp: ts, Source: source, Packet: p}:
			delivered++
		default:
			h.logger.Warn("Event buffer full; dropping UMP event",
				h.logger.Field().Stringer("type", p.Type()),
				h.logger.Field().String("source", source))
		}
	}
	return delivered
}

// convert runs data through the conversion context and returns the produced
// words. The returned slice is only valid until the next call. A SysEx that
// is not yet terminated is held back until a later call completes it.
func (h *Handler) convert(data []byte) []uint32 {
	src := data
	if len(h.pending) > 0 {
		h.pending = append(h.pending, data...)
		src = h.pending
	}

	// Each input byte produces at most one word.
	if need := len(src) + 4; cap(h.words) < need {
		h.words = make([]uint32, need)
	}
	words := h.words[:cap(h.words)]

	out := 0
	for len(src) > 0 {
		read, written, r := h.conv.MIDI1ToUMPWords(words[out:], src)
		out += written
		src = src[read:]

		switch r {
		case convert.OK:
			src = nil
		case convert.InvalidDTESequence:
			if len(src) == 0 && h.conv.PendingParameter() {
				// Parameter number received, value still to come.
				break
			}
			h.logger.Debug("Dropping invalid parameter sequence", h.logger.Field().Stringer("result", r))
			h.conv.Reset()
			src = skipMessage(src)
		case convert.InvalidSysEx:
			if len(src) <= maxPendingSysEx && src[0] == midi1.StatusSysEx && bytes.IndexByte(src, midi1.StatusEndSysEx) < 0 {
				h.pending = append(h.pending[:0], src...)
				return words[:out]
			}
			h.logger.Warn("Dropping oversized or malformed SysEx", h.logger.Field().Int("size", len(src)))
			src = nil
		default:
			h.logger.Debug("Skipping unconvertible MIDI data",
				h.logger.Field().Stringer("result", r),
				h.logger.Field().Uint8("status", src[0]))
			src = skipMessage(src)
		}
	}
	h.pending = h.pending[:0]
	return words[:out]
}

// skipMessage drops the message at the front of src so conversion can resume
// at the next status byte.
func skipMessage(src []byte) []byte {
	if len(src) == 0 {
		return src
	}
	for i := 1; i < len(src); i++ {
		if src[i]&0x80 != 0 {
			return src[i:]
		}
	}
	return nil
}
