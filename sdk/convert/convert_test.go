package convert

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/leandrodaf/midi2/internal/byteorder"
	"github.com/leandrodaf/midi2/sdk/midi1"
	"github.com/leandrodaf/midi2/sdk/ump"
	"gitlab.com/gomidi/midi/v2"
)

// stream concatenates MIDI 1.0 messages into one byte stream.
func stream(msgs ...midi.Message) []byte {
	var b []byte
	for _, m := range msgs {
		b = append(b, m...)
	}
	return b
}

func toWords(t *testing.T, c *Context, src []byte) []uint32 {
	t.Helper()
	dst := make([]uint32, 64)
	read, written, r := c.MIDI1ToUMPWords(dst, src)
	if r != OK {
		t.Fatalf("MIDI1ToUMPWords: %v", r)
	}
	if read != len(src) {
		t.Fatalf("read %d bytes, want %d", read, len(src))
	}
	return dst[:written]
}

func equalWords(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d words %08X, want %d words %08X", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = 0x%08X, want 0x%08X", i, got[i], want[i])
		}
	}
}

func split64(v uint64) []uint32 { return []uint32{uint32(v >> 32), uint32(v)} }

func TestMIDI1ToUMP_MIDI2ChannelMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  midi.Message
		want uint64
	}{
		{"note on", midi.NoteOn(0, 60, 100), 0x40903C00_C8000000},
		{"note off", midi.NoteOffVelocity(1, 60, 64), 0x40813C00_80000000},
		{"poly pressure", midi.PolyAfterTouch(2, 61, 127), 0x40A23D00_FE000000},
		{"control change", midi.ControlChange(3, 7, 1), 0x40B30700_02000000},
		{"channel pressure", midi.AfterTouch(4, 64), 0x40D40000_80000000},
		{"pitch bend centre", midi.Pitchbend(5, 0), 0x40E50000_80000000},
		{"program", midi.ProgramChange(6, 9), 0x40C60000_09000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			equalWords(t, toWords(t, c, tt.msg), split64(tt.want))
		})
	}
}

func TestMIDI1ToUMP_MIDI1Protocol(t *testing.T) {
	c := New(WithProtocol(ProtocolMIDI1), WithGroup(3))
	src := stream(midi.NoteOn(0, 60, 100), midi.ControlChange(1, 101, 0), midi.ProgramChange(2, 5))

	equalWords(t, toWords(t, c, src), []uint32{0x23903C64, 0x23B16500, 0x23C20500})
}

func TestMIDI1ToUMP_SystemMessages(t *testing.T) {
	c := New()
	src := []byte{0xF8, 0xF2, 0x10, 0x20, 0xF1, 0x35, 0xFF}

	equalWords(t, toWords(t, c, src), []uint32{0x10F80000, 0x10F21020, 0x10F13500, 0x10FF0000})
}

func TestMIDI1ToUMP_RPNSequence(t *testing.T) {
	c := New()
	first := stream(
		midi.ControlChange(2, 101, 0),
		midi.ControlChange(2, 100, 1),
		midi.ControlChange(2, 6, 0x40),
		midi.ControlChange(2, 38, 0x10),
	)
	equalWords(t, toWords(t, c, first), split64(ump.MIDI2RPN(0, 2, 0, 1, 0x80400000)))

	if c.PendingParameter() {
		t.Fatal("parameter state not cleared after a complete sequence")
	}

	second := stream(
		midi.ControlChange(2, 101, 0x7F),
		midi.ControlChange(2, 100, 0x7F),
		midi.ControlChange(2, 6, 0),
		midi.ControlChange(2, 38, 0),
	)
	equalWords(t, toWords(t, c, second), split64(ump.MIDI2RPN(0, 2, 0x7F, 0x7F, 0)))
}

func TestMIDI1ToUMP_NRPNSequence(t *testing.T) {
	c := New()
	src := stream(
		midi.ControlChange(0, 99, 3),
		midi.ControlChange(0, 98, 4),
		midi.ControlChange(0, 6, 0x7F),
		midi.ControlChange(0, 38, 0x7F),
	)

	words := toWords(t, c, src)
	v := uint64(words[0])<<32 | uint64(words[1])
	if ump.GetStatusCode(words[0]) != ump.MIDI2NRPNStatus {
		t.Fatalf("status = 0x%02X, want NRPN", ump.GetStatusCode(words[0]))
	}
	if ump.GetRPNBank(v) != 3 || ump.GetRPNIndex(v) != 4 {
		t.Errorf("bank/index = %d/%d, want 3/4", ump.GetRPNBank(v), ump.GetRPNIndex(v))
	}
	if ump.GetData32(v) != 0xFFFC0000 {
		t.Errorf("data = 0x%08X, want 0xFFFC0000", ump.GetData32(v))
	}
}

func TestMIDI1ToUMP_DTESequenceErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		opts     []Option
		wantRead int
		want     Result
	}{
		{
			name: "lsb before msb",
			src: stream(
				midi.ControlChange(0, 101, 0),
				midi.ControlChange(0, 100, 0),
				midi.ControlChange(0, 38, 1),
				midi.ControlChange(0, 6, 1),
			),
			wantRead: 6,
			want:     InvalidDTESequence,
		},
		{
			name: "rpn and nrpn both set",
			src: stream(
				midi.ControlChange(0, 101, 0),
				midi.ControlChange(0, 99, 0),
				midi.ControlChange(0, 6, 1),
				midi.ControlChange(0, 38, 1),
			),
			wantRead: 9,
			want:     InvalidDTESequence,
		},
		{
			name:     "no parameter selected",
			src:      stream(midi.ControlChange(0, 6, 1), midi.ControlChange(0, 38, 1)),
			wantRead: 3,
			want:     InvalidDTESequence,
		},
		{
			name:     "unfinished sequence",
			src:      stream(midi.ControlChange(0, 101, 0), midi.ControlChange(0, 100, 0)),
			wantRead: 6,
			want:     InvalidDTESequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts...)
			dst := make([]uint32, 16)
			read, _, r := c.MIDI1ToUMPWords(dst, tt.src)
			if r != tt.want {
				t.Fatalf("result = %v, want %v", r, tt.want)
			}
			if read != tt.wantRead {
				t.Errorf("read = %d, want %d", read, tt.wantRead)
			}
			if !errors.Is(r.Err(), ErrInvalidDTESequence) {
				t.Errorf("Err() = %v", r.Err())
			}
		})
	}
}

func TestMIDI1ToUMP_ReorderedDTE(t *testing.T) {
	c := New(WithAllowReorderedDTE())
	src := stream(
		midi.ControlChange(0, 101, 0),
		midi.ControlChange(0, 100, 2),
		midi.ControlChange(0, 38, 0x10),
		midi.ControlChange(0, 6, 0x40),
	)

	equalWords(t, toWords(t, c, src), split64(ump.MIDI2RPN(0, 0, 0, 2, 0x80400000)))
}

func TestMIDI1ToUMP_BankSelect(t *testing.T) {
	c := New()
	src := stream(
		midi.ControlChange(1, 0, 5),
		midi.ControlChange(1, 32, 6),
		midi.ProgramChange(1, 7),
		midi.ProgramChange(1, 8),
	)

	want := append(split64(ump.MIDI2Program(0, 1, ump.ProgramBankValid, 7, 5, 6)),
		split64(ump.MIDI2Program(0, 1, 0, 8, 0, 0))...)
	equalWords(t, toWords(t, c, src), want)
	if c.PendingBank() {
		t.Error("bank state not cleared by program change")
	}
}

func TestMIDI1ToUMP_BankSelectMSBOnly(t *testing.T) {
	c := New()
	words := toWords(t, c, stream(midi.ControlChange(0, 0, 9), midi.ProgramChange(0, 1)))
	v := uint64(words[0])<<32 | uint64(words[1])

	if ump.GetProgramOptions(v)&ump.ProgramBankValid == 0 {
		t.Fatal("bank valid flag not set")
	}
	if ump.GetBankMSB(v) != 9 || ump.GetBankLSB(v) != 0 {
		t.Errorf("bank = %d/%d, want 9/0", ump.GetBankMSB(v), ump.GetBankLSB(v))
	}
}

func TestMIDI1ToUMP_SysEx7(t *testing.T) {
	c := New()
	src := []byte{0xF0, 1, 2, 3, 4, 5, 6, 7, 0xF7}

	equalWords(t, toWords(t, c, src), []uint32{0x30160102, 0x03040506, 0x30310700, 0x00000000})
}

func TestMIDI1ToUMP_SysEx8(t *testing.T) {
	c := New(WithSysEx8(5))
	src := []byte{0xF0, 1, 2, 3, 4, 5, 6, 7, 0xF7}

	equalWords(t, toWords(t, c, src), []uint32{0x50080501, 0x02030405, 0x06070000, 0})
}

func TestMIDI1ToUMP_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want Result
	}{
		{"unterminated sysex", []byte{0x90, 60, 100, 0xF0, 1, 2}, InvalidSysEx},
		{"undefined system status", []byte{0xF4}, InvalidStatus},
		{"running status", []byte{0x90, 60, 100, 61, 100}, InvalidStatus},
		{"truncated message", []byte{0x90, 60}, InvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			dst := make([]uint32, 16)
			_, _, r := c.MIDI1ToUMPWords(dst, tt.src)
			if r != tt.want {
				t.Errorf("result = %v, want %v", r, tt.want)
			}
		})
	}
}

func TestMIDI1ToUMP_OutOfSpace(t *testing.T) {
	backing := make([]byte, 24)
	for i := 16; i < len(backing); i++ {
		backing[i] = 0xAA
	}
	src := stream(midi.NoteOn(0, 60, 100), midi.NoteOn(0, 61, 100), midi.NoteOn(0, 62, 100))

	c := New()
	read, written, r := c.MIDI1ToUMP(backing[:16], src)
	if r != OutOfSpace {
		t.Fatalf("result = %v, want OutOfSpace", r)
	}
	if read != 6 || written != 16 {
		t.Errorf("read/written = %d/%d, want 6/16", read, written)
	}
	for i := 16; i < len(backing); i++ {
		if backing[i] != 0xAA {
			t.Fatalf("canary byte %d overwritten: 0x%02X", i, backing[i])
		}
	}
}

func TestMIDI1ToUMP_SysExOutOfSpaceLeavesCursor(t *testing.T) {
	c := New()
	dst := make([]uint32, 3)
	src := stream(midi.NoteOn(0, 60, 100), []byte{0xF0, 1, 2, 3, 4, 5, 6, 7, 0xF7})

	read, written, r := c.MIDI1ToUMPWords(dst, src)
	if r != OutOfSpace || read != 3 || written != 2 {
		t.Errorf("got (%d, %d, %v), want (3, 2, OutOfSpace)", read, written, r)
	}
}

func TestMIDI1ToUMP_Endianness(t *testing.T) {
	tests := []struct {
		e    byteorder.Endianness
		want []byte
	}{
		{byteorder.BigEndian, []byte{0x40, 0x90, 0x3C, 0x00, 0xC8, 0x00, 0x00, 0x00}},
		{byteorder.LittleEndian, []byte{0x00, 0x3C, 0x90, 0x40, 0x00, 0x00, 0x00, 0xC8}},
	}

	for _, tt := range tests {
		t.Run(tt.e.String(), func(t *testing.T) {
			c := New(WithEndianness(tt.e))
			dst := make([]byte, 8)
			_, written, r := c.MIDI1ToUMP(dst, midi.NoteOn(0, 60, 100))
			if r != OK || written != 8 {
				t.Fatalf("got (%d, %v)", written, r)
			}
			if !bytes.Equal(dst, tt.want) {
				t.Errorf("bytes = % X, want % X", dst, tt.want)
			}
		})
	}
}

func TestRoundTrip_MIDI2(t *testing.T) {
	msgs := []midi.Message{
		midi.NoteOn(0, 60, 100),
		midi.NoteOn(15, 0, 1),
		midi.NoteOffVelocity(3, 127, 127),
		midi.ControlChange(4, 7, 127),
		midi.ControlChange(4, 64, 0),
		midi.Pitchbend(5, -8192),
		midi.Pitchbend(5, 8191),
		midi.Pitchbend(5, 1234),
		midi.PolyAfterTouch(6, 60, 33),
		midi.AfterTouch(7, 99),
		midi.ProgramChange(8, 42),
		midi.SysEx([]byte{0x7E, 0x7F, 0x06, 0x01}),
	}

	for _, m := range msgs {
		t.Run(m.String(), func(t *testing.T) {
			c := New()
			words := toWords(t, c, m)

			out := make([]byte, 64)
			read, written, r := c.UMPWordsToMIDI1(out, words)
			if r != OK || read != len(words) {
				t.Fatalf("UMPWordsToMIDI1 = (%d, %d, %v)", read, written, r)
			}
			if !bytes.Equal(out[:written], m) {
				t.Errorf("round trip = % X, want % X", out[:written], []byte(m))
			}
		})
	}
}

func TestRoundTrip_RPNAndBank(t *testing.T) {
	src := stream(
		midi.ControlChange(0, 101, 0),
		midi.ControlChange(0, 100, 0),
		midi.ControlChange(0, 6, 2),
		midi.ControlChange(0, 38, 0x7F),
		midi.ControlChange(1, 0, 1),
		midi.ControlChange(1, 32, 2),
		midi.ProgramChange(1, 3),
	)

	c := New()
	words := toWords(t, c, src)
	out := make([]byte, 64)
	_, written, r := c.UMPWordsToMIDI1(out, words)
	if r != OK {
		t.Fatalf("UMPWordsToMIDI1: %v", r)
	}
	if !bytes.Equal(out[:written], src) {
		t.Errorf("round trip = % X, want % X", out[:written], src)
	}
}

func TestUMPToMIDI1_SysEx7AcrossCalls(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	var words []uint32
	_ = ump.SysEx7Process(0, body, func(p uint64) error {
		words = append(words, split64(p)...)
		return nil
	})

	c := New()
	out := make([]byte, 32)
	_, written, r := c.UMPWordsToMIDI1(out, words[:2])
	if r != IncompleteSysEx7 || written != 0 {
		t.Fatalf("first call = (%d, %v), want (0, IncompleteSysEx7)", written, r)
	}
	if !c.PendingSysEx7() {
		t.Fatal("expected pending SysEx7")
	}

	_, written, r = c.UMPWordsToMIDI1(out, words[2:])
	if r != OK {
		t.Fatalf("second call: %v", r)
	}
	want := append(append([]byte{0xF0}, body...), 0xF7)
	if !bytes.Equal(out[:written], want) {
		t.Errorf("sysex = % X, want % X", out[:written], want)
	}
}

func sysEx7Words(body []byte) []uint32 {
	var words []uint32
	_ = ump.SysEx7Process(0, body, func(p uint64) error {
		words = append(words, split64(p)...)
		return nil
	})
	return words
}

func TestUMPToMIDI1_SysEx7AtBufferLimit(t *testing.T) {
	body := bytes.Repeat([]byte{0x55}, sysEx7BufferSize)

	c := New()
	out := make([]byte, sysEx7BufferSize+2)
	_, written, r := c.UMPWordsToMIDI1(out, sysEx7Words(body))
	if r != OK || written != len(out) {
		t.Fatalf("got (%d, %v), want (%d, OK)", written, r, len(out))
	}
}

func TestUMPToMIDI1_SysEx7TooLong(t *testing.T) {
	words := sysEx7Words(bytes.Repeat([]byte{0x55}, 1100))
	words = append(words, split64(ump.MIDI2NoteOn(0, 0, 60, 0, 100<<9, 0))...)

	c := New()
	out := make([]byte, 1<<20)
	read, written, r := c.UMPWordsToMIDI1(out, words)
	if r != SysEx7TooLong || !errors.Is(r.Err(), ErrSysEx7TooLong) {
		t.Fatalf("result = %v, want SysEx7TooLong", r)
	}
	// 170 full packets fit; the 171st overflows and is consumed.
	if read != 171*2 || written != 0 {
		t.Fatalf("got (%d, %d), want (342, 0)", read, written)
	}
	if c.PendingSysEx7() {
		t.Error("oversized SysEx7 still pending")
	}

	_, written, r = c.UMPWordsToMIDI1(out, words[read:])
	if r != OK {
		t.Fatalf("resume: %v", r)
	}
	if want := []byte{0x90, 60, 100}; !bytes.Equal(out[:written], want) {
		t.Errorf("resume = % X, want % X", out[:written], want)
	}
}

func TestUMPToMIDI1_DropsUntranslatable(t *testing.T) {
	var words []uint32
	words = append(words, split64(ump.MIDI2PerNoteRCC(0, 0, 60, 1, 5))...)
	sx8 := ump.SysEx8Direct(0, ump.SysExInOneUMP, 1, []byte{1, 2, 3})
	words = append(words, sx8[:]...)
	tempo := ump.FlexSetTempo(0, 50000000)
	words = append(words, tempo[:]...)
	words = append(words, ump.MIDI1NoteOn(0, 0, 60, 100))

	c := New()
	out := make([]byte, 32)
	_, written, r := c.UMPWordsToMIDI1(out, words)
	if r != OK {
		t.Fatalf("result: %v", r)
	}
	if !bytes.Equal(out[:written], []byte{0x90, 60, 100}) {
		t.Errorf("output = % X, want 90 3C 64", out[:written])
	}
}

func TestUMPToMIDI1_OutOfSpace(t *testing.T) {
	words := split64(ump.MIDI2RPN(0, 0, 0, 0, 0))
	c := New()
	out := make([]byte, 11)

	read, written, r := c.UMPWordsToMIDI1(out, words)
	if r != OutOfSpace || read != 0 || written != 0 {
		t.Errorf("got (%d, %d, %v), want (0, 0, OutOfSpace)", read, written, r)
	}
}

func TestDeltaTime_RoundTrip(t *testing.T) {
	// 200 ticks encodes as C8 01 (least significant group first).
	src := []byte{
		0x00, 0x90, 60, 100,
		0xC8, 0x01, 0x80, 60, 0,
	}

	c := New(WithDeltaTime())
	words := toWords(t, c, src)
	want := append(split64(ump.MIDI2NoteOn(0, 0, 60, 0, 100<<9, 0)), ump.JRTimestamp(0, 200))
	want = append(want, split64(ump.MIDI2NoteOff(0, 0, 60, 0, 0, 0))...)
	equalWords(t, words, want)

	out := make([]byte, 32)
	_, written, r := c.UMPWordsToMIDI1(out, words)
	if r != OK {
		t.Fatalf("UMPWordsToMIDI1: %v", r)
	}
	if !bytes.Equal(out[:written], src) {
		t.Errorf("round trip = % X, want % X", out[:written], src)
	}
}

func TestDeltaTime_LongDeltaChainsTimestamps(t *testing.T) {
	buf := make([]byte, 8)
	n := midi1.Write7BitEncodedInt(buf, 0x1FFFF)
	src := append(buf[:n], 0xF8)

	c := New(WithDeltaTime())
	words := toWords(t, c, src)
	equalWords(t, words, []uint32{
		ump.JRTimestamp(0, 0xFFFF),
		ump.JRTimestamp(0, 0xFFFF),
		ump.JRTimestamp(0, 1),
		ump.TimingClock(0),
	})
}

func TestDeltaTime_ClampsAccumulatedTimestamps(t *testing.T) {
	// 65538 * 0xFFFF ticks is past what a 32-bit delta can carry.
	words := make([]uint32, 0, 65539)
	for i := 0; i < 65538; i++ {
		words = append(words, ump.JRTimestamp(0, 0xFFFF))
	}
	words = append(words, ump.TimingClock(0))

	c := New(WithDeltaTime())
	out := make([]byte, 16)
	_, written, r := c.UMPWordsToMIDI1(out, words)
	if r != OK {
		t.Fatalf("UMPWordsToMIDI1: %v", r)
	}

	want := make([]byte, 8)
	n := midi1.Write7BitEncodedInt(want, math.MaxUint32)
	want = append(want[:n], 0xF8)
	if !bytes.Equal(out[:written], want) {
		t.Errorf("got % X, want % X", out[:written], want)
	}
}

func TestDeltaTime_TempoMeta(t *testing.T) {
	src := []byte{0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20, 0x00, 0xFF, 0x03, 0x01, 'x'}

	c := New(WithDeltaTime())
	words := toWords(t, c, src)
	equalWords(t, words, []uint32{0xD0100000, 50000000, 0, 0})
}

func TestContext_Reset(t *testing.T) {
	c := New()
	dst := make([]uint32, 4)
	c.MIDI1ToUMPWords(dst, stream(midi.ControlChange(0, 101, 0), midi.ControlChange(0, 0, 1)))
	if !c.PendingParameter() || !c.PendingBank() {
		t.Fatal("expected pending state")
	}

	c.Reset()
	if c.PendingParameter() || c.PendingBank() || c.PendingSysEx7() {
		t.Error("Reset left pending state")
	}
}

func TestResult_Err(t *testing.T) {
	if OK.Err() != nil {
		t.Errorf("OK.Err() = %v", OK.Err())
	}
	if !errors.Is(OutOfSpace.Err(), ErrOutOfSpace) {
		t.Errorf("OutOfSpace.Err() = %v", OutOfSpace.Err())
	}
	if InvalidSysEx.String() != ErrInvalidSysEx.Error() {
		t.Errorf("String() = %q", InvalidSysEx.String())
	}
}
