// Package convert translates between MIDI 1.0 byte streams and Universal MIDI
// Packets. A Context carries the session state that spans messages: pending
// RPN/NRPN/data entry and bank select controllers, a partially received SysEx7
// message and accumulated JR Timestamp deltas.
package convert

import (
	"encoding/binary"
	"math"

	"github.com/leandrodaf/midi2/sdk/ump"
)

// sysEx7BufferSize bounds a SysEx7 message reassembled by UMPToMIDI1.
const sysEx7BufferSize = 1024

// maxDeltaTime caps accumulated JR Timestamps so the delta fits a 7-bit
// encoded 32-bit integer.
const maxDeltaTime = math.MaxUint32

// parameter holds the MSB and LSB of a controller pair that has been only
// partly received. The zero value means nothing is pending.
type parameter struct {
	msb, lsb       byte
	hasMSB, hasLSB bool
}

func (p *parameter) setMSB(v byte) { p.msb, p.hasMSB = v, true }
func (p *parameter) setLSB(v byte) { p.lsb, p.hasLSB = v, true }
func (p *parameter) pending() bool { return p.hasMSB || p.hasLSB }
func (p *parameter) clear()        { *p = parameter{} }

// Context converts in both directions. It is not safe for concurrent use; keep
// one per stream.
type Context struct {
	opts Options

	rpn  parameter
	nrpn parameter
	dte  parameter
	bank parameter

	sysex7     [sysEx7BufferSize]byte
	sysex7Size int
	inSysEx7   bool
	dropSysEx7 bool // skipping the rest of an oversized SysEx7
	delta      uint64
}

// New returns a Context configured by opts.
func New(opts ...Option) *Context {
	return &Context{opts: applyDefaultOptions(opts...)}
}

// Options returns the configuration in effect.
func (c *Context) Options() Options { return c.opts }

// Reset drops every piece of session state, keeping the configuration.
func (c *Context) Reset() {
	c.rpn.clear()
	c.nrpn.clear()
	c.dte.clear()
	c.bank.clear()
	c.sysex7Size = 0
	c.inSysEx7 = false
	c.dropSysEx7 = false
	c.delta = 0
}

// PendingParameter reports whether an RPN/NRPN/data entry sequence is in progress.
func (c *Context) PendingParameter() bool {
	return c.rpn.pending() || c.nrpn.pending() || c.dte.pending()
}

// PendingBank reports whether a bank select waits for its program change.
func (c *Context) PendingBank() bool { return c.bank.pending() }

// PendingSysEx7 reports whether UMPToMIDI1 holds a partial SysEx7 message.
func (c *Context) PendingSysEx7() bool { return c.inSysEx7 }

// umpSink writes words either to a word slice or, serialized, to a byte slice.
type umpSink struct {
	words []uint32
	bytes []byte
	order binary.ByteOrder
	n     int
}

func (s *umpSink) capacity() int {
	if s.bytes != nil {
		return len(s.bytes) / 4
	}
	return len(s.words)
}

func (s *umpSink) room(words int) bool { return s.n+words <= s.capacity() }

func (s *umpSink) put32(w uint32) {
	if s.bytes != nil {
		s.order.PutUint32(s.bytes[s.n*4:], w)
	} else {
		s.words[s.n] = w
	}
	s.n++
}

func (s *umpSink) put64(v uint64) {
	s.put32(uint32(v >> 32))
	s.put32(uint32(v))
}

func (s *umpSink) put128(w [4]uint32) {
	for _, word := range w {
		s.put32(word)
	}
}

// umpSource reads words either from a word slice or from serialized bytes.
type umpSource struct {
	words []uint32
	bytes []byte
	order binary.ByteOrder
}

func (s *umpSource) len() int {
	if s.bytes != nil {
		return len(s.bytes) / 4
	}
	return len(s.words)
}

func (s *umpSource) at(i int) uint32 {
	if s.bytes != nil {
		return s.order.Uint32(s.bytes[i*4:])
	}
	return s.words[i]
}

func (s *umpSource) uint64At(i int) uint64 {
	return uint64(s.at(i))<<32 | uint64(s.at(i+1))
}

// packetSize returns the word count of the packet at i, or 0 if it is truncated.
func (s *umpSource) packetSize(i int) int {
	n := ump.GetMessageSizeWords(s.at(i))
	if i+n > s.len() {
		return 0
	}
	return n
}
