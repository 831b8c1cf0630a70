package ump

import "iter"

// SequenceNext returns the size in words of the packet at the start of words,
// or 0 if words is empty or ends inside that packet.
func SequenceNext(words []uint32) int {
	if len(words) == 0 {
		return 0
	}
	n := GetMessageSizeWords(words[0])
	if n > len(words) {
		return 0
	}
	return n
}

// Packets iterates over the packets in words, yielding each word offset and
// packet. Iteration ends at the end of the buffer or at a truncated packet.
func Packets(words []uint32) iter.Seq2[int, Packet] {
	return func(yield func(int, Packet) bool) {
		for off := 0; off < len(words); {
			n := SequenceNext(words[off:])
			if n == 0 {
				return
			}
			var p Packet
			p.n = copy(p.words[:], words[off:off+n])
			if !yield(off, p) {
				return
			}
			off += n
		}
	}
}

// accumulateTimestamps adds up the JR Timestamps at seq[i:] and returns the
// index of the next other packet with the new running time.
func accumulateTimestamps(seq []uint32, i int, t uint64) (int, uint64) {
	for i < len(seq) && IsJRTimestamp(seq[i]) {
		t += uint64(GetJRTimestamp(seq[i]))
		i++
	}
	return i, t
}

// MergeSequences merges two JR-Timestamped sequences into dst in time order
// and returns the number of words written. Each sequence's timestamps are
// relative deltas; the output carries deltas relative to the previous output
// message, split into MaxJRTimestamp steps. On equal times seq1 goes first.
// Once either sequence runs out, the rest of the other is copied unchanged
// after one delta bringing it up to its pending time.
//
// ErrNoSpace is returned when dst is too small; dst[:n] is still valid up to
// the last complete write.
func MergeSequences(dst, seq1, seq2 []uint32) (int, error) {
	f := NewForge(dst)
	var i1, i2 int
	var t1, t2, last uint64

	emitDelta := func(t uint64) bool {
		for last < t {
			step := min(t-last, MaxJRTimestamp)
			if !f.Add32(JRTimestamp(0, uint16(step))) {
				return false
			}
			last += step
		}
		return true
	}
	emitPacket := func(seq []uint32, i int) (int, bool) {
		n := SequenceNext(seq[i:])
		if n == 0 {
			return len(seq), true
		}
		return i + n, f.AddWords(seq[i : i+n])
	}

	for {
		i1, t1 = accumulateTimestamps(seq1, i1, t1)
		i2, t2 = accumulateTimestamps(seq2, i2, t2)
		if i1 >= len(seq1) || i2 >= len(seq2) {
			break
		}

		var ok bool
		if t1 <= t2 {
			ok = emitDelta(t1)
			if ok {
				i1, ok = emitPacket(seq1, i1)
			}
		} else {
			ok = emitDelta(t2)
			if ok {
				i2, ok = emitPacket(seq2, i2)
			}
		}
		if !ok {
			return f.Offset(), ErrNoSpace
		}
	}

	for _, rest := range []struct {
		seq []uint32
		t   uint64
	}{{seq1[i1:], t1}, {seq2[i2:], t2}} {
		if len(rest.seq) == 0 {
			continue
		}
		if !emitDelta(rest.t) || !f.AddWords(rest.seq) {
			return f.Offset(), ErrNoSpace
		}
	}
	return f.Offset(), nil
}
