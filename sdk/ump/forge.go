package ump

// Forge appends packets to a fixed-capacity caller buffer. Every Add is
// bounds-checked; a packet that does not fit is not written at all.
type Forge struct {
	buf    []uint32
	offset int
}

// NewForge returns a Forge writing into buf from offset 0.
func NewForge(buf []uint32) *Forge {
	return &Forge{buf: buf}
}

// Offset returns the number of words written.
func (f *Forge) Offset() int { return f.offset }

// Capacity returns the size of the underlying buffer in words.
func (f *Forge) Capacity() int { return len(f.buf) }

// Remaining returns the free space in words.
func (f *Forge) Remaining() int { return len(f.buf) - f.offset }

// Words returns the written part of the buffer.
func (f *Forge) Words() []uint32 { return f.buf[:f.offset] }

// Reset rewinds the forge to the start of the buffer.
func (f *Forge) Reset() { f.offset = 0 }

// Add32 appends a one-word packet.
func (f *Forge) Add32(w uint32) bool {
	if f.Remaining() < 1 {
		return false
	}
	f.buf[f.offset] = w
	f.offset++
	return true
}

// Add64 appends a two-word packet, high word first.
func (f *Forge) Add64(v uint64) bool {
	if f.Remaining() < 2 {
		return false
	}
	f.buf[f.offset] = uint32(v >> 32)
	f.buf[f.offset+1] = uint32(v)
	f.offset += 2
	return true
}

// Add128 appends a four-word packet.
func (f *Forge) Add128(w [4]uint32) bool {
	if f.Remaining() < 4 {
		return false
	}
	copy(f.buf[f.offset:], w[:])
	f.offset += 4
	return true
}

// AddPacket appends p.
func (f *Forge) AddPacket(p Packet) bool {
	if f.Remaining() < p.n {
		return false
	}
	copy(f.buf[f.offset:], p.words[:p.n])
	f.offset += p.n
	return true
}

// AddWords appends raw words as one unit.
func (f *Forge) AddWords(words []uint32) bool {
	if f.Remaining() < len(words) {
		return false
	}
	f.offset += copy(f.buf[f.offset:], words)
	return true
}
