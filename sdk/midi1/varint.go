package midi1

// The 7-bit encoded integer stores the least significant 7-bit group first and
// sets the top bit on every byte except the last. This is not the SMF
// variable-length quantity (which stores the most significant group first); the
// encoder and decoder here only round-trip with each other.

// Get7BitEncodedIntLength returns how many bytes Write7BitEncodedInt uses for v.
func Get7BitEncodedIntLength(v uint32) int {
	n := 1
	for ; v >= 0x80; v >>= 7 {
		n++
	}
	return n
}

// Write7BitEncodedInt writes v into buf and returns the number of bytes written.
// buf must hold at least Get7BitEncodedIntLength(v) bytes.
func Write7BitEncodedInt(buf []byte, v uint32) int {
	i := 0
	for ; v >= 0x80; v >>= 7 {
		buf[i] = byte(v&0x7F) | 0x80
		i++
	}
	buf[i] = byte(v)
	return i + 1
}

// Read7BitEncodedInt decodes a value from the start of b and returns it with the
// number of bytes consumed.
func Read7BitEncodedInt(b []byte) (uint32, int, error) {
	var v uint32
	for i, shift := 0, 0; i < len(b) && shift < 35; i, shift = i+1, shift+7 {
		v |= uint32(b[i]&0x7F) << shift
		if b[i] < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}
