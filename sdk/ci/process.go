package ci

// Process Inquiry supported feature bits.
const ProcessInquiryMIDIMessageReport byte = 1 << 0

// Message data control values of a MIDI Message Report inquiry.
const (
	ReportNoData         byte = 0x00
	ReportOnlyNonDefault byte = 0x01
	ReportFull           byte = 0x7F
)

// MIDIMessageReport selects (inquiry) or announces (reply) the message kinds
// of a MIDI Message Report. Each field is a bitmap as defined by MIDI-CI.
type MIDIMessageReport struct {
	DataControl        byte // inquiry only
	SystemMessages     byte
	ChannelControllers byte
	NoteData           byte
}

// AppendProcessInquiryCapabilities appends Inquiry: Process Inquiry Capabilities.
func AppendProcessInquiryCapabilities(dst []byte, c Common) []byte {
	return appendHeader(dst, c, SubProcessInquiryCapabilities)
}

// AppendProcessInquiryCapabilitiesReply appends the supported feature bitmap.
func AppendProcessInquiryCapabilitiesReply(dst []byte, c Common, features byte) []byte {
	return append(appendHeader(dst, c, SubProcessInquiryCapabilitiesReply), features)
}

// ParseProcessInquiryCapabilitiesReply returns the supported feature bitmap.
func ParseProcessInquiryCapabilitiesReply(b []byte) (Common, byte, error) {
	c, p, err := parse(b, SubProcessInquiryCapabilitiesReply)
	if err != nil {
		return c, 0, err
	}
	f := p.u8()
	return c, f, p.err
}

// AppendMIDIMessageReport appends Inquiry: MIDI Message Report.
func AppendMIDIMessageReport(dst []byte, c Common, r MIDIMessageReport) []byte {
	return append(appendHeader(dst, c, SubMIDIMessageReport),
		r.DataControl, r.SystemMessages, 0, r.ChannelControllers, r.NoteData)
}

// AppendMIDIMessageReportReply appends the reply listing what will be reported.
func AppendMIDIMessageReportReply(dst []byte, c Common, r MIDIMessageReport) []byte {
	return append(appendHeader(dst, c, SubMIDIMessageReportReply),
		r.SystemMessages, 0, r.ChannelControllers, r.NoteData)
}

// AppendMIDIMessageReportEnd appends End of MIDI Message Report.
func AppendMIDIMessageReportEnd(dst []byte, c Common) []byte {
	return appendHeader(dst, c, SubMIDIMessageReportEnd)
}

// ParseMIDIMessageReport reads the inquiry or its reply.
func ParseMIDIMessageReport(b []byte) (Common, MIDIMessageReport, error) {
	c, p, err := parse(b, SubMIDIMessageReport, SubMIDIMessageReportReply)
	if err != nil {
		return c, MIDIMessageReport{}, err
	}
	var r MIDIMessageReport
	if c.SubID2 == SubMIDIMessageReport {
		r.DataControl = p.u8()
	}
	r.SystemMessages = p.u8()
	p.u8()
	r.ChannelControllers = p.u8()
	r.NoteData = p.u8()
	if p.err != nil {
		return c, MIDIMessageReport{}, p.err
	}
	return c, r, nil
}
