package ump

// BinaryReadResult is the state of one SysEx8 stream being reassembled.
type BinaryReadResult int

const (
	BinaryReadIncomplete BinaryReadResult = iota
	BinaryReadComplete
	BinaryReadNoSpace
)

func (r BinaryReadResult) String() string {
	switch r {
	case BinaryReadComplete:
		return "complete"
	case BinaryReadNoSpace:
		return "no space"
	default:
		return "incomplete"
	}
}

// BinaryReadState accumulates the payload of one logical SysEx8 stream into a
// caller-owned buffer. The reader never grows Data.
type BinaryReadState struct {
	Data                 []byte
	Size                 int
	ContinueOnCompletion bool
	Result               BinaryReadResult
	LastStatus           byte
}

// NewBinaryReadState returns a state accumulating into buf.
func NewBinaryReadState(buf []byte) *BinaryReadState {
	return &BinaryReadState{Data: buf}
}

// Bytes returns the reassembled payload so far.
func (s *BinaryReadState) Bytes() []byte { return s.Data[:s.Size] }

// Reset discards the accumulated payload.
func (s *BinaryReadState) Reset() {
	s.Size = 0
	s.Result = BinaryReadIncomplete
	s.LastStatus = 0
}

// StreamSelector returns the state for a stream ID, or nil to skip the packet.
type StreamSelector func(streamID byte) *BinaryReadState

// ContinuityChecker is consulted after each copied packet; returning false
// stops GetSysEx8Data.
type ContinuityChecker func(state *BinaryReadState, status byte) bool

// SingleStream routes every stream ID to state.
func SingleStream(state *BinaryReadState) StreamSelector {
	return func(byte) *BinaryReadState { return state }
}

// DefaultContinuity stops once a stream completes, unless that stream asked to
// continue on completion.
func DefaultContinuity(state *BinaryReadState, status byte) bool {
	if status == SysExInOneUMP || status == SysExEnd {
		return state.ContinueOnCompletion
	}
	return true
}

// GetSysEx8Data walks words packet by packet and appends every SysEx8 payload
// to the state selectStream returns for its stream ID. Other message types,
// MDS packets and malformed SysEx8 sizes are skipped.
//
// It returns the word offset where parsing stopped: the offending packet when
// a state runs out of space (its Result becomes BinaryReadNoSpace), the packet
// after the one where keepGoing said stop, the start of a truncated trailing
// packet, or len(words). A nil keepGoing means DefaultContinuity.
func GetSysEx8Data(words []uint32, selectStream StreamSelector, keepGoing ContinuityChecker) int {
	if keepGoing == nil {
		keepGoing = DefaultContinuity
	}

	i := 0
	for i < len(words) {
		w0 := words[i]
		size := GetMessageSizeWords(w0)
		if i+size > len(words) {
			return i
		}
		if GetMessageType(w0) != MTSysEx8MDS {
			i += size
			continue
		}

		status := GetSysEx8Status(w0)
		numBytes := GetSysEx8NumBytes(w0)
		if status > SysExEnd || numBytes == 0 || numBytes > SysEx8Radix+1 {
			i += size
			continue
		}

		state := selectStream(GetSysEx8StreamID(w0))
		if state == nil {
			i += size
			continue
		}
		if (status == SysExStart || status == SysExInOneUMP) && state.Result == BinaryReadComplete {
			state.Size = 0
		}

		n := numBytes - 1
		if state.Size+n > len(state.Data) {
			state.Result = BinaryReadNoSpace
			return i
		}
		packet := words[i : i+size]
		for j := 0; j < n; j++ {
			state.Data[state.Size+j] = packetByte(packet, 3+j)
		}
		state.Size += n
		state.LastStatus = status
		if status == SysExInOneUMP || status == SysExEnd {
			state.Result = BinaryReadComplete
		} else {
			state.Result = BinaryReadIncomplete
		}

		i += size
		if !keepGoing(state, status) {
			return i
		}
	}
	return len(words)
}
