package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/leandrodaf/midi2/internal/byteorder"
	"github.com/leandrodaf/midi2/sdk/convert"
	"github.com/leandrodaf/midi2/sdk/midi1"
	"github.com/leandrodaf/midi2/sdk/ump"
	"gitlab.com/gomidi/midi/v2"
)

// Conversion directions accepted by -to.
const (
	toUMP   = "ump"
	toMIDI1 = "midi1"
)

var (
	ErrDirection = errors.New("-to must be ump or midi1")
	ErrProtocol  = errors.New("-protocol must be 1 or 2")
	ErrEndian    = errors.New("-endian must be native, be or le")
	ErrNoInput   = errors.New("no input files")
	ErrStalled   = errors.New("conversion made no progress")
)

// config is the parsed command line.
type config struct {
	to        string
	protocol  int
	group     uint
	sysex8    bool
	stream    uint
	endian    string
	delta     bool
	reordered bool
	print     bool
	outDir    string
	jobs      int
	logLevel  string
	logFile   string
}

func (c config) validate() error {
	if c.to != toUMP && c.to != toMIDI1 {
		return ErrDirection
	}
	if c.protocol != 1 && c.protocol != 2 {
		return ErrProtocol
	}
	if _, err := c.endianness(); err != nil {
		return err
	}
	return nil
}

func (c config) endianness() (byteorder.Endianness, error) {
	switch c.endian {
	case "", "native":
		return byteorder.Native, nil
	case "be":
		return byteorder.BigEndian, nil
	case "le":
		return byteorder.LittleEndian, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrEndian, c.endian)
}

// options maps the flags onto a conversion context configuration.
func (c config) options() []convert.Option {
	e, _ := c.endianness()
	opts := []convert.Option{
		convert.WithGroup(byte(c.group)),
		convert.WithProtocol(convert.Protocol(c.protocol)),
		convert.WithEndianness(e),
	}
	if c.sysex8 {
		opts = append(opts, convert.WithSysEx8(byte(c.stream)))
	}
	if c.delta {
		opts = append(opts, convert.WithDeltaTime())
	}
	if c.reordered {
		opts = append(opts, convert.WithAllowReorderedDTE())
	}
	return opts
}

// extension is the suffix of written output files.
func (c config) extension() string {
	if c.to == toUMP {
		return ".ump"
	}
	return ".midi1"
}

// convertBytes runs src through a fresh conversion context, growing the
// output until it fits.
func convertBytes(cfg config, src []byte) ([]byte, error) {
	ctx := convert.New(cfg.options()...)
	step := ctx.MIDI1ToUMP
	if cfg.to == toMIDI1 {
		step = ctx.UMPToMIDI1
	}

	out := make([]byte, 0, 2*len(src)+64)
	offset := 0
	for {
		read, written, r := step(out[len(out):cap(out)], src[offset:])
		out = out[:len(out)+written]
		offset += read

		switch r {
		case convert.OK:
			return out, nil
		case convert.OutOfSpace:
			// Every event expands at most eightfold; more room than that
			// will not help.
			if read == 0 && written == 0 && cap(out)-len(out) > 8*len(src[offset:])+64 {
				return out, fmt.Errorf("%w at byte %d", ErrStalled, offset)
			}
			out = slices.Grow(out, cap(out))
		default:
			return out, fmt.Errorf("%w at byte %d", r.Err(), offset)
		}
	}
}

// dump writes one line per UMP packet or MIDI 1.0 message of data.
func dump(w io.Writer, cfg config, data []byte) error {
	if cfg.to == toUMP {
		e, _ := cfg.endianness()
		for off, p := range ump.BytePackets(data, e.Resolve()) {
			if _, err := fmt.Fprintf(w, "%06x %v\n", off, p); err != nil {
				return err
			}
		}
		return nil
	}

	for pos := 0; pos < len(data); {
		var delta uint32
		if cfg.delta {
			d, n, err := midi1.Read7BitEncodedInt(data[pos:])
			if err != nil {
				return fmt.Errorf("delta time at byte %d: %w", pos, err)
			}
			delta = d
			pos += n
		}
		size, err := midi1.MessageSize(data[pos:], cfg.delta)
		if err != nil {
			return fmt.Errorf("message at byte %d: %w", pos, err)
		}
		line := midi.Message(data[pos : pos+size]).String()
		if cfg.delta {
			line = fmt.Sprintf("+%d %s", delta, line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		pos += size
	}
	return nil
}
