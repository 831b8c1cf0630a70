package convert

import (
	"github.com/leandrodaf/midi2/sdk/midi1"
	"github.com/leandrodaf/midi2/sdk/ump"
)

// maxEventBytes fits the longest translation of one packet: an RPN as four
// controller messages, each led by a delta time of up to five bytes.
const maxEventBytes = 4 * (5 + 3)

// UMPToMIDI1 translates serialized UMP in src (configured endianness) to a
// MIDI 1.0 stream in dst following the MIDI 2.0 default translation. It returns
// the UMP bytes consumed and the MIDI 1.0 bytes written.
//
// JR Timestamps add up into the delta time written before the next event,
// unless SkipDeltaTime is set. SysEx8, Mixed Data Set, Flex Data and UMP
// Stream messages have no MIDI 1.0 form and are dropped, as are MIDI 2.0
// per-note and relative controllers.
//
// A SysEx7 message longer than the 1024-byte reassembly buffer returns
// SysEx7TooLong with read just past the packet that overflowed; the rest of
// that message is skipped when conversion resumes.
func (c *Context) UMPToMIDI1(dst, src []byte) (read, written int, r Result) {
	source := umpSource{bytes: src, order: c.opts.Endianness.Resolve()}
	readWords, written, r := c.umpToMIDI1(dst, &source)
	return readWords * 4, written, r
}

// UMPWordsToMIDI1 is UMPToMIDI1 reading native words; read counts words.
func (c *Context) UMPWordsToMIDI1(dst []byte, src []uint32) (read, written int, r Result) {
	source := umpSource{words: src}
	return c.umpToMIDI1(dst, &source)
}

func (c *Context) umpToMIDI1(dst []byte, src *umpSource) (int, int, Result) {
	i, out := 0, 0
	for i < src.len() {
		size := src.packetSize(i)
		if size == 0 {
			break
		}
		w0 := src.at(i)

		switch ump.GetMessageType(w0) {
		case ump.MTUtility:
			if ump.IsJRTimestamp(w0) && !c.opts.SkipDeltaTime {
				c.delta = min(c.delta+uint64(ump.GetJRTimestamp(w0)), maxDeltaTime)
			}
		case ump.MTSysEx7:
			n, r := c.translateSysEx7(dst[out:], src.uint64At(i))
			if r == SysEx7TooLong {
				return i + size, out, r
			}
			if r != OK {
				return i, out, r
			}
			out += n
		case ump.MTSystem, ump.MTMIDI1, ump.MTMIDI2:
			var ev [maxEventBytes]byte
			n := c.translateMessage(ev[:], src, i)
			if out+n > len(dst) {
				return i, out, OutOfSpace
			}
			out += copy(dst[out:], ev[:n])
			if n > 0 {
				c.delta = 0
			}
		}
		i += size
	}

	if c.inSysEx7 {
		return i, out, IncompleteSysEx7
	}
	return i, out, OK
}

// eventWriter lays out MIDI 1.0 events, each led by a delta time when delta
// times are enabled. Only the first event carries the accumulated delta.
type eventWriter struct {
	buf   []byte
	n     int
	delta uint64
	smf   bool
}

func (w *eventWriter) event(b ...byte) {
	if w.smf {
		w.n += midi1.Write7BitEncodedInt(w.buf[w.n:], uint32(w.delta))
		w.delta = 0
	}
	w.n += copy(w.buf[w.n:], b)
}

func (c *Context) translateMessage(buf []byte, src *umpSource, i int) int {
	w := eventWriter{buf: buf, delta: c.delta, smf: !c.opts.SkipDeltaTime}
	w0 := src.at(i)

	switch ump.GetMessageType(w0) {
	case ump.MTSystem:
		status := ump.GetStatusByte(w0)
		b1, b2 := ump.GetSystemBytes(w0)
		size := midi1.FixedMessageSize(status)
		if status == midi1.StatusReset {
			size = 1
		}
		switch size {
		case 1:
			w.event(status)
		case 2:
			w.event(status, b1)
		case 3:
			w.event(status, b1, b2)
		}
	case ump.MTMIDI1:
		status := ump.GetStatusByte(w0)
		b1, b2 := ump.GetMIDI1Bytes(w0)
		if midi1.FixedMessageSize(status) == 2 {
			w.event(status, b1)
		} else {
			w.event(status, b1, b2)
		}
	case ump.MTMIDI2:
		c.translateMIDI2(&w, src.uint64At(i))
	}
	return w.n
}

func (c *Context) translateMIDI2(w *eventWriter, v uint64) {
	w0 := uint32(v >> 32)
	code, channel := ump.GetStatusCode(w0), ump.GetChannel(w0)
	data := ump.GetData32(v)
	cc := midi1.StatusCC | channel

	switch code {
	case ump.MIDI2NoteOffStatus, ump.MIDI2NoteOnStatus:
		w.event(code|channel, ump.GetNote(v), ump.Narrow16To7(ump.GetVelocity16(v)))
	case ump.MIDI2PAFStatus:
		w.event(code|channel, ump.GetNote(v), ump.Narrow32To7(data))
	case ump.MIDI2CCStatus:
		w.event(cc, ump.GetCCIndex(v), ump.Narrow32To7(data))
	case ump.MIDI2CAFStatus:
		w.event(code|channel, ump.Narrow32To7(data))
	case ump.MIDI2PitchBendStatus:
		bend := ump.Narrow32To14(data)
		w.event(code|channel, byte(bend&0x7F), byte(bend>>7))
	case ump.MIDI2ProgramStatus:
		if ump.GetProgramOptions(v)&ump.ProgramBankValid != 0 {
			w.event(cc, midi1.CCBankSelect, ump.GetBankMSB(v))
			w.event(cc, midi1.CCBankSelectLSB, ump.GetBankLSB(v))
		}
		w.event(code|channel, ump.GetProgram(v))
	case ump.MIDI2RPNStatus, ump.MIDI2NRPNStatus:
		msbCC, lsbCC := midi1.CCRPNMSB, midi1.CCRPNLSB
		if code == ump.MIDI2NRPNStatus {
			msbCC, lsbCC = midi1.CCNRPNMSB, midi1.CCNRPNLSB
		}
		w.event(cc, msbCC, ump.GetRPNBank(v))
		w.event(cc, lsbCC, ump.GetRPNIndex(v))
		w.event(cc, midi1.CCDTEMSB, ump.Narrow32To7(data))
		w.event(cc, midi1.CCDTELSB, byte(data>>18)&0x7F)
	}
}

// translateSysEx7 buffers one SysEx7 packet and, on its last packet, writes
// the whole F0..F7 message to dst.
func (c *Context) translateSysEx7(dst []byte, v uint64) (int, Result) {
	status := ump.GetSysEx7Status(v)
	var payload [ump.SysEx7Radix]byte
	n := ump.GetSysEx7Data(v, payload[:])

	size := c.sysex7Size
	if status == ump.SysExStart || status == ump.SysExInOneUMP {
		size = 0
		c.dropSysEx7 = false
	} else if c.dropSysEx7 {
		if status == ump.SysExEnd {
			c.dropSysEx7 = false
		}
		return 0, OK
	}
	if size+n > len(c.sysex7) {
		// No destination size can help; drop the message and skip the
		// packets still to come.
		c.sysex7Size = 0
		c.inSysEx7 = false
		c.dropSysEx7 = status != ump.SysExEnd
		return 0, SysEx7TooLong
	}

	if status == ump.SysExEnd || status == ump.SysExInOneUMP {
		need := size + n + 2
		deltaLen := 0
		if !c.opts.SkipDeltaTime {
			deltaLen = midi1.Get7BitEncodedIntLength(uint32(c.delta))
		}
		if deltaLen+need > len(dst) {
			return 0, OutOfSpace
		}

		out := 0
		if !c.opts.SkipDeltaTime {
			out += midi1.Write7BitEncodedInt(dst, uint32(c.delta))
		}
		dst[out] = midi1.StatusSysEx
		out++
		out += copy(dst[out:], c.sysex7[:size])
		out += copy(dst[out:], payload[:n])
		dst[out] = midi1.StatusEndSysEx
		out++

		c.sysex7Size = 0
		c.inSysEx7 = false
		c.delta = 0
		return out, OK
	}

	copy(c.sysex7[size:], payload[:n])
	c.sysex7Size = size + n
	c.inSysEx7 = true
	return 0, OK
}
