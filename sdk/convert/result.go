package convert

import "errors"

// Result is the outcome of a conversion call. Conversions never panic or log;
// every failure comes back as one of these values with the cursors showing
// how far the call got.
type Result int

const (
	OK Result = iota
	OutOfSpace
	InvalidSysEx
	InvalidDTESequence
	InvalidStatus
	IncompleteSysEx7
	SysEx7TooLong
)

// Error definitions matching each non-OK Result, for errors.Is checks.
var (
	ErrOutOfSpace         = errors.New("destination buffer too small")
	ErrInvalidSysEx       = errors.New("sysex without terminating 0xF7")
	ErrInvalidDTESequence = errors.New("invalid RPN/NRPN data entry sequence")
	ErrInvalidStatus      = errors.New("unsupported status byte")
	ErrIncompleteSysEx7   = errors.New("stream ended inside a SysEx7 message")
	ErrSysEx7TooLong      = errors.New("SysEx7 message exceeds the reassembly buffer")
)

var resultErrors = map[Result]error{
	OutOfSpace:         ErrOutOfSpace,
	InvalidSysEx:       ErrInvalidSysEx,
	InvalidDTESequence: ErrInvalidDTESequence,
	InvalidStatus:      ErrInvalidStatus,
	IncompleteSysEx7:   ErrIncompleteSysEx7,
	SysEx7TooLong:      ErrSysEx7TooLong,
}

// Err returns nil for OK and the matching sentinel error otherwise.
func (r Result) Err() error { return resultErrors[r] }

func (r Result) String() string {
	if r == OK {
		return "ok"
	}
	if err, ok := resultErrors[r]; ok {
		return err.Error()
	}
	return "unknown result"
}
