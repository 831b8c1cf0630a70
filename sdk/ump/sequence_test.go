package ump

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leandrodaf/midi2/internal/byteorder"
)

func TestPackets(t *testing.T) {
	note := MIDI2NoteOn(0, 0, 60, 0, 0x8000, 0)
	words := []uint32{JRTimestamp(0, 10), uint32(note >> 32), uint32(note), MIDI1NoteOn(0, 0, 60, 1), 0x40000000}

	var offsets []int
	var types []MessageType
	for off, p := range Packets(words) {
		offsets = append(offsets, off)
		types = append(types, p.Type())
	}

	wantOffsets := []int{0, 1, 3}
	if len(offsets) != len(wantOffsets) {
		t.Fatalf("offsets = %v, want %v", offsets, wantOffsets)
	}
	for i := range wantOffsets {
		if offsets[i] != wantOffsets[i] {
			t.Errorf("offset %d = %d, want %d", i, offsets[i], wantOffsets[i])
		}
	}
	if types[1] != MTMIDI2 || types[2] != MTMIDI1 {
		t.Errorf("types = %v", types)
	}
}

func TestPacketsEarlyBreak(t *testing.T) {
	words := []uint32{NOOP(0), NOOP(0), NOOP(0)}
	n := 0
	for range Packets(words) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d times after break", n)
	}
}

func TestParsePacket(t *testing.T) {
	_, err := ParsePacket([]uint32{0x40903C00})
	if !errors.Is(err, ErrTruncatedPacket) {
		t.Fatalf("err = %v, want ErrTruncatedPacket", err)
	}

	p, err := ParsePacket([]uint32{0x40903C00, 0xC8000000, 0xFFFFFFFF})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := p.Uint64()
	if !ok || v != 0x40903C00_C8000000 {
		t.Errorf("Uint64 = %016X, %v", v, ok)
	}
	if _, ok := p.Uint32(); ok {
		t.Error("two-word packet reported as one word")
	}
	if p.ByteAt(2) != 0x3C || p.ByteAt(8) != 0 || p.Word(2) != 0 {
		t.Errorf("byte/word access out of shape")
	}
	if got := p.AppendTo(nil); len(got) != 2 {
		t.Errorf("AppendTo wrote %d words", len(got))
	}
}

func TestSequenceNext(t *testing.T) {
	tests := []struct {
		words []uint32
		want  int
	}{
		{nil, 0},
		{[]uint32{0x20903C64}, 1},
		{[]uint32{0x40903C00}, 0},
		{[]uint32{0x50000000, 0, 0, 0}, 4},
	}
	for _, tt := range tests {
		if got := SequenceNext(tt.words); got != tt.want {
			t.Errorf("SequenceNext(%08X) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestMergeSequences(t *testing.T) {
	a0, a1 := MIDI1NoteOn(0, 0, 60, 100), MIDI1NoteOff(0, 0, 60, 0)
	b0 := MIDI1CC(0, 1, 7, 100)
	seqA := []uint32{a0, JRTimestamp(0, 100), a1}
	seqB := []uint32{JRTimestamp(0, 50), b0}

	dst := make([]uint32, 16)
	n, err := MergeSequences(dst, seqA, seqB)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint32{a0, JRTimestamp(0, 50), b0, JRTimestamp(0, 50), a1}
	if n != len(want) {
		t.Fatalf("wrote %d words %08X, want %08X", n, dst[:n], want)
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("word %d = %08X, want %08X", i, dst[i], want[i])
		}
	}
}

func TestMergeSequencesTiesPreferFirst(t *testing.T) {
	a, b := MIDI1NoteOn(0, 0, 1, 1), MIDI1NoteOn(0, 1, 2, 2)
	dst := make([]uint32, 4)
	n, err := MergeSequences(dst, []uint32{a}, []uint32{b})
	if err != nil || n != 2 || dst[0] != a || dst[1] != b {
		t.Errorf("got %08X, %v", dst[:n], err)
	}
}

func TestMergeSequencesLongGap(t *testing.T) {
	a := MIDI1NoteOn(0, 0, 1, 1)
	seqB := []uint32{JRTimestamp(0, 0xFFFF), JRTimestamp(0, 0xFFFF), JRTimestamp(0, 2), MIDI1NoteOn(0, 1, 2, 2)}
	dst := make([]uint32, 8)

	n, err := MergeSequences(dst, []uint32{a}, seqB)
	if err != nil {
		t.Fatal(err)
	}
	var total uint64
	for _, w := range dst[:n] {
		if IsJRTimestamp(w) {
			total += uint64(GetJRTimestamp(w))
		}
	}
	if total != 2*0xFFFF+2 {
		t.Errorf("total delta = %d", total)
	}
}

func TestMergeSequencesNoSpace(t *testing.T) {
	dst := make([]uint32, 1)
	n, err := MergeSequences(dst, []uint32{NOOP(0)}, []uint32{JRTimestamp(0, 5), NOOP(1)})
	if !errors.Is(err, ErrNoSpace) || n != 1 {
		t.Errorf("got n=%d err=%v", n, err)
	}
}

func TestForge(t *testing.T) {
	f := NewForge(make([]uint32, 4))

	if !f.Add32(NOOP(0)) || !f.Add64(MIDI2CC(0, 0, 1, 2)) {
		t.Fatal("adds within capacity failed")
	}
	if f.Add128(StartOfClip()) {
		t.Fatal("Add128 wrote past capacity")
	}
	if f.Offset() != 3 || f.Remaining() != 1 {
		t.Errorf("offset %d, remaining %d", f.Offset(), f.Remaining())
	}
	if f.Add64(0) {
		t.Error("Add64 wrote into a single free word")
	}
	if !f.AddPacket(Packet32(TimingClock(0))) || f.Remaining() != 0 {
		t.Error("AddPacket failed to fill the last word")
	}
	if len(f.Words()) != 4 {
		t.Errorf("Words() = %d words", len(f.Words()))
	}

	f.Reset()
	if f.Offset() != 0 || f.Capacity() != 4 {
		t.Errorf("after reset: offset %d, capacity %d", f.Offset(), f.Capacity())
	}
}

func TestWordsToBytes(t *testing.T) {
	words := []uint32{0x40903C00, 0xC8000000}

	be := make([]byte, 8)
	if n, err := WordsToBytes(be, words, byteorder.BigEndian); err != nil || n != 8 {
		t.Fatalf("big endian: %d, %v", n, err)
	}
	if !bytes.Equal(be, []byte{0x40, 0x90, 0x3C, 0x00, 0xC8, 0, 0, 0}) {
		t.Errorf("big endian bytes = % X", be)
	}

	le := make([]byte, 8)
	if _, err := WordsToBytes(le, words, byteorder.LittleEndian); err != nil {
		t.Fatal(err)
	}
	back := make([]uint32, 2)
	if n, err := BytesToWords(back, le, byteorder.LittleEndian); err != nil || n != 2 || back[0] != words[0] || back[1] != words[1] {
		t.Errorf("little endian round trip = %08X (%d, %v)", back, n, err)
	}

	if _, err := WordsToBytes(make([]byte, 7), words, byteorder.BigEndian); !errors.Is(err, ErrNoSpace) {
		t.Errorf("short buffer err = %v", err)
	}
}

func TestBytePackets(t *testing.T) {
	buf := make([]byte, 16)
	words := []uint32{MIDI1NoteOn(0, 0, 60, 1), 0x40903C00, 0xC8000000, 0x40903C00}
	if _, err := WordsToBytes(buf, words, byteorder.BigEndian); err != nil {
		t.Fatal(err)
	}

	var offsets []int
	for off := range BytePackets(buf, byteorder.BigEndian.Resolve()) {
		offsets = append(offsets, off)
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 4 {
		t.Errorf("offsets = %v, want [0 4]", offsets)
	}
}
