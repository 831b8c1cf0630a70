package convert

import (
	"github.com/leandrodaf/midi2/sdk/midi1"
	"github.com/leandrodaf/midi2/sdk/ump"
)

// MIDI1ToUMP converts the MIDI 1.0 stream in src into serialized UMP in dst,
// using the configured endianness. It returns the source bytes consumed and
// the UMP bytes written. Each MIDI 1.0 event is written whole or not at all,
// so on OutOfSpace read and written point just past the last event that fit.
func (c *Context) MIDI1ToUMP(dst, src []byte) (read, written int, r Result) {
	sink := umpSink{bytes: dst, order: c.opts.Endianness.Resolve()}
	read, r = c.midi1ToUMP(&sink, src)
	return read, sink.n * 4, r
}

// MIDI1ToUMPWords is MIDI1ToUMP writing native words; written counts words.
func (c *Context) MIDI1ToUMPWords(dst []uint32, src []byte) (read, written int, r Result) {
	sink := umpSink{words: dst}
	read, r = c.midi1ToUMP(&sink, src)
	return read, sink.n, r
}

func (c *Context) midi1ToUMP(sink *umpSink, src []byte) (int, Result) {
	pos := 0
	for pos < len(src) {
		eventStart, committed := pos, sink.n

		if !c.opts.SkipDeltaTime {
			delta, n, err := midi1.Read7BitEncodedInt(src[pos:])
			if err != nil {
				return eventStart, InvalidStatus
			}
			if !c.putDelta(sink, uint64(delta)) {
				return eventStart, OutOfSpace
			}
			pos += n
			if pos >= len(src) {
				sink.n = committed
				return eventStart, InvalidStatus
			}
		}

		var size int
		var r Result
		switch status := src[pos]; {
		case status == midi1.StatusSysEx:
			size, r = c.convertSysEx(sink, src[pos:])
		case status == midi1.StatusMeta && !c.opts.SkipDeltaTime:
			size, r = c.convertMeta(sink, src[pos:])
		default:
			size, r = c.convertMessage(sink, src[pos:])
		}
		if r != OK {
			sink.n = committed
			return eventStart, r
		}
		pos += size
	}

	if c.PendingParameter() {
		return pos, InvalidDTESequence
	}
	return pos, OK
}

// putDelta writes delta as a chain of JR Timestamps.
func (c *Context) putDelta(sink *umpSink, delta uint64) bool {
	n := int((delta + ump.MaxJRTimestamp - 1) / ump.MaxJRTimestamp)
	if !sink.room(n) {
		return false
	}
	for delta > 0 {
		step := min(delta, ump.MaxJRTimestamp)
		sink.put32(ump.JRTimestamp(c.opts.Group, uint16(step)))
		delta -= step
	}
	return true
}

func (c *Context) convertSysEx(sink *umpSink, msg []byte) (int, Result) {
	end := -1
	for i := 1; i < len(msg); i++ {
		if msg[i] == midi1.StatusEndSysEx {
			end = i
			break
		}
	}
	if end < 0 {
		return 0, InvalidSysEx
	}
	body := msg[1:end]

	if c.opts.UseSysEx8 {
		if !sink.room(ump.SysEx8NumPackets(len(body)) * 4) {
			return 0, OutOfSpace
		}
		_ = ump.SysEx8Process(c.opts.Group, c.opts.SysEx8StreamID, body, func(p [4]uint32) error {
			sink.put128(p)
			return nil
		})
	} else {
		if !sink.room(ump.SysEx7NumPackets(len(body)) * 2) {
			return 0, OutOfSpace
		}
		_ = ump.SysEx7Process(c.opts.Group, body, func(p uint64) error {
			sink.put64(p)
			return nil
		})
	}
	return end + 1, OK
}

// convertMeta turns Set Tempo into a Flex Data tempo and drops other meta events.
func (c *Context) convertMeta(sink *umpSink, msg []byte) (int, Result) {
	size, err := midi1.MessageSize(msg, true)
	if err != nil {
		return 0, InvalidStatus
	}
	if msg[1] == midi1.MetaTempo && size == 6 && msg[2] == midi1.MetaTempoLength {
		if !sink.room(4) {
			return 0, OutOfSpace
		}
		uspq := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
		sink.put128(ump.FlexSetTempo(c.opts.Group, ump.TempoFromUSPQ(uspq)))
	}
	return size, OK
}

func (c *Context) convertMessage(sink *umpSink, msg []byte) (int, Result) {
	size, err := midi1.MessageSize(msg, false)
	if err != nil {
		return 0, InvalidStatus
	}
	status := msg[0]
	var b1, b2 byte
	if size > 1 {
		b1 = msg[1]
	}
	if size > 2 {
		b2 = msg[2]
	}

	if status >= midi1.StatusMTC {
		switch status {
		case 0xF4, 0xF5, 0xF9, 0xFD, midi1.StatusEndSysEx:
			return 0, InvalidStatus
		}
		if !sink.room(1) {
			return 0, OutOfSpace
		}
		sink.put32(ump.System(c.opts.Group, status, b1, b2))
		return size, OK
	}

	if c.opts.Protocol == ProtocolMIDI1 {
		if !sink.room(1) {
			return 0, OutOfSpace
		}
		sink.put32(ump.MIDI1Message(c.opts.Group, status, status&0xF, b1, b2))
		return size, OK
	}
	return size, c.convertToMIDI2(sink, status&0xF0, status&0xF, b1, b2)
}

func (c *Context) convertToMIDI2(sink *umpSink, code, channel, b1, b2 byte) Result {
	g := c.opts.Group
	var packet uint64

	switch code {
	case midi1.StatusNoteOff:
		packet = ump.MIDI2NoteOff(g, channel, b1, ump.AttributeNone, ump.Widen7To16(b2), 0)
	case midi1.StatusNoteOn:
		packet = ump.MIDI2NoteOn(g, channel, b1, ump.AttributeNone, ump.Widen7To16(b2), 0)
	case midi1.StatusPAF:
		packet = ump.MIDI2PAF(g, channel, b1, ump.Widen7To32(b2))
	case midi1.StatusCAF:
		packet = ump.MIDI2CAF(g, channel, ump.Widen7To32(b1))
	case midi1.StatusPitchBend:
		packet = ump.MIDI2PitchBendDirect(g, channel, ump.Widen14To32(uint16(b2&0x7F)<<7|uint16(b1&0x7F)))
	case midi1.StatusProgram:
		var options, msb, lsb byte
		if c.bank.pending() {
			options, msb, lsb = ump.ProgramBankValid, c.bank.msb, c.bank.lsb
		}
		if !sink.room(2) {
			return OutOfSpace
		}
		sink.put64(ump.MIDI2Program(g, channel, options, b1, msb, lsb))
		c.bank.clear()
		return OK
	case midi1.StatusCC:
		return c.convertCC(sink, channel, b1, b2)
	default:
		return InvalidStatus
	}

	if !sink.room(2) {
		return OutOfSpace
	}
	sink.put64(packet)
	return OK
}

// convertCC buffers the controllers that make up RPN/NRPN and bank select
// sequences and emits everything else as a MIDI 2.0 CC.
func (c *Context) convertCC(sink *umpSink, channel, index, value byte) Result {
	switch index {
	case midi1.CCRPNMSB:
		c.rpn.setMSB(value)
	case midi1.CCRPNLSB:
		c.rpn.setLSB(value)
	case midi1.CCNRPNMSB:
		c.nrpn.setMSB(value)
	case midi1.CCNRPNLSB:
		c.nrpn.setLSB(value)
	case midi1.CCBankSelect:
		c.bank.setMSB(value)
	case midi1.CCBankSelectLSB:
		c.bank.setLSB(value)
	case midi1.CCDTEMSB:
		hadLSB := c.dte.hasLSB
		c.dte.setMSB(value)
		if hadLSB && c.opts.AllowReorderedDTE {
			return c.emitParameter(sink, channel)
		}
	case midi1.CCDTELSB:
		if !c.dte.hasMSB && !c.opts.AllowReorderedDTE {
			return InvalidDTESequence
		}
		c.dte.setLSB(value)
		if c.dte.hasMSB {
			return c.emitParameter(sink, channel)
		}
	default:
		if !sink.room(2) {
			return OutOfSpace
		}
		sink.put64(ump.MIDI2CC(c.opts.Group, channel, index, ump.Widen7To32(value)))
	}
	return OK
}

// emitParameter writes the completed RPN or NRPN and clears the sequence state.
// Exactly one of RPN and NRPN must be pending.
func (c *Context) emitParameter(sink *umpSink, channel byte) Result {
	isRPN, isNRPN := c.rpn.pending(), c.nrpn.pending()
	if isRPN == isNRPN {
		c.dte.clear()
		return InvalidDTESequence
	}
	if !sink.room(2) {
		return OutOfSpace
	}

	data := ump.Widen7To32(c.dte.msb) | uint32(c.dte.lsb&0x7F)<<18
	if isRPN {
		sink.put64(ump.MIDI2RPN(c.opts.Group, channel, c.rpn.msb, c.rpn.lsb, data))
	} else {
		sink.put64(ump.MIDI2NRPN(c.opts.Group, channel, c.nrpn.msb, c.nrpn.lsb, data))
	}
	c.rpn.clear()
	c.nrpn.clear()
	c.dte.clear()
	return OK
}
