package ci

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leandrodaf/midi2/sdk/ump"
)

var (
	initiator = MUID(0x01020304)
	responder = MUID(0x05060708)
)

func TestHeaderLayout(t *testing.T) {
	b := AppendProfileInquiry(nil, Common{DeviceID: 3, Version: Version1_2, Source: initiator, Destination: responder})
	want := []byte{0x7E, 0x03, 0x0D, 0x20, 0x02, 0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06, 0x05}
	if !bytes.Equal(b, want) {
		t.Fatalf("header = % X, want % X", b, want)
	}

	c, payload, err := ParseCommon(append(append([]byte{0xF0}, b...), 0xF7))
	if err != nil {
		t.Fatal(err)
	}
	if c.DeviceID != 3 || c.SubID2 != SubProfileInquiry || c.Source != initiator || c.Destination != responder || len(payload) != 0 {
		t.Errorf("parsed %+v with %d payload bytes", c, len(payload))
	}
}

func TestParseCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		err  error
	}{
		{"short", []byte{0x7E, 0x7F, 0x0D}, ErrShortMessage},
		{"not universal", append([]byte{0x7D, 0x7F, 0x0D}, make([]byte, 10)...), ErrNotCI},
		{"not ci", append([]byte{0x7E, 0x7F, 0x06}, make([]byte, 10)...), ErrNotCI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseCommon(tt.b); !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestAppendReusesCapacity(t *testing.T) {
	buf := make([]byte, 0, 64)
	b := AppendDiscovery(buf, NewCommon(initiator, 0), DeviceDetails{})
	if &b[0] != &buf[:1][0] {
		t.Error("builder reallocated a buffer with enough capacity")
	}
}

func TestDiscovery(t *testing.T) {
	d := DeviceDetails{
		Manufacturer:     [3]byte{0x00, 0x21, 0x09},
		Family:           0x0102,
		Model:            0x3FFF,
		SoftwareRevision: [4]byte{1, 0, 0, 2},
		Categories:       CategoryProfileConfig | CategoryPropertyExchange,
		MaxSysExSize:     4096,
		OutputPathID:     1,
	}
	b := AppendDiscovery(nil, NewCommon(initiator, responder), d)
	if len(b) != 30 {
		t.Fatalf("discovery is %d bytes, want 30", len(b))
	}

	c, got, err := ParseDiscovery(b)
	if err != nil {
		t.Fatal(err)
	}
	if c.Destination != BroadcastMUID {
		t.Errorf("destination = %v, want broadcast", c.Destination)
	}
	if got != d {
		t.Errorf("details = %+v, want %+v", got, d)
	}

	d.FunctionBlock = 2
	reply := AppendDiscoveryReply(nil, NewCommon(responder, initiator), d)
	if len(reply) != 31 {
		t.Fatalf("reply is %d bytes, want 31", len(reply))
	}
	c, got, err = ParseDiscovery(reply)
	if err != nil || c.Destination != initiator || got != d {
		t.Errorf("reply = %+v (%v), dest %v", got, err, c.Destination)
	}
}

func TestInvalidateMUID(t *testing.T) {
	b := AppendInvalidateMUID(nil, NewCommon(initiator, responder), 0x0A0B0C0D)
	c, target, err := ParseInvalidateMUID(b)
	if err != nil || target != 0x0A0B0C0D || c.Destination != BroadcastMUID {
		t.Errorf("got %v, %v (%v)", target, c.Destination, err)
	}
}

func TestEndpointMessage(t *testing.T) {
	b := AppendEndpointMessage(nil, NewCommon(initiator, responder), EndpointProductInstanceID)
	if len(b) != HeaderSize+1 || b[3] != SubEndpointMessage {
		t.Errorf("inquiry = % X", b)
	}

	reply := AppendEndpointReply(nil, NewCommon(responder, initiator), EndpointProductInstanceID, []byte("SN-42"))
	_, status, data, err := ParseEndpointReply(reply)
	if err != nil || status != EndpointProductInstanceID || string(data) != "SN-42" {
		t.Errorf("reply = %d %q (%v)", status, data, err)
	}
}

func TestAckNak(t *testing.T) {
	a := Ack{OriginalSubID2: SubPropertyGetData, StatusCode: NAKMalformed, Details: [5]byte{1, 2, 3, 4, 5}, Message: []byte("bad header")}
	_, got, err := ParseAck(AppendNAK(nil, NewCommon(initiator, responder), a))
	if err != nil {
		t.Fatal(err)
	}
	if got.OriginalSubID2 != a.OriginalSubID2 || got.StatusCode != a.StatusCode || got.Details != a.Details || string(got.Message) != "bad header" {
		t.Errorf("nak = %+v", got)
	}

	old := Common{DeviceID: DeviceFunctionBlock, Version: Version1_1, Source: initiator, Destination: responder}
	b := AppendNAK(nil, old, a)
	if len(b) != HeaderSize {
		t.Errorf("v1.1 NAK is %d bytes", len(b))
	}
	if _, got, err := ParseAck(b); err != nil || got.StatusCode != 0 {
		t.Errorf("v1.1 NAK parsed as %+v (%v)", got, err)
	}

	_, got, err = ParseAck(AppendACK(nil, NewCommon(initiator, responder), Ack{OriginalSubID2: SubSetProfileOn}))
	if err != nil || got.OriginalSubID2 != SubSetProfileOn {
		t.Errorf("ack = %+v (%v)", got, err)
	}
}

func TestWrongSubID(t *testing.T) {
	b := AppendProfileInquiry(nil, NewCommon(initiator, responder))
	if _, _, err := ParseDiscovery(b); !errors.Is(err, ErrWrongSubID) {
		t.Errorf("err = %v, want ErrWrongSubID", err)
	}
}

func TestTruncatedPayload(t *testing.T) {
	b := AppendDiscovery(nil, NewCommon(initiator, responder), DeviceDetails{})
	if _, _, err := ParseDiscovery(b[:HeaderSize+5]); !errors.Is(err, ErrShortMessage) {
		t.Errorf("err = %v, want ErrShortMessage", err)
	}
}

func TestNewMUID(t *testing.T) {
	for i := 0; i < 100; i++ {
		m := NewMUID()
		if !m.Valid() || m>>8 == BroadcastMUID>>8 {
			t.Fatalf("invalid MUID %v", m)
		}
	}
	if MUID(0x80000000).Valid() {
		t.Error("MUID with bit 7 set reported valid")
	}
}

func TestProtocolNegotiation(t *testing.T) {
	n := Negotiation{
		AuthorityLevel: 0x10,
		Protocols: []Protocol{
			{Type: ProtocolMIDI2, Extensions: ExtensionJitterReduction},
			{Type: ProtocolMIDI1, Extensions: ExtensionMIDI1SizeOfPacket},
		},
	}
	b := AppendProtocolNegotiation(nil, NewCommon(initiator, responder), n)
	if len(b) != HeaderSize+2+2*ProtocolSize {
		t.Fatalf("negotiation is %d bytes", len(b))
	}
	_, got, err := ParseProtocolNegotiation(b)
	if err != nil || got.AuthorityLevel != 0x10 || len(got.Protocols) != 2 || got.Protocols[0] != n.Protocols[0] || got.Protocols[1] != n.Protocols[1] {
		t.Errorf("negotiation = %+v (%v)", got, err)
	}

	reply := AppendProtocolNegotiationReply(nil, NewCommon(responder, initiator), Negotiation{AuthorityLevel: 0x20, Protocols: n.Protocols[:1]})
	if c, got, err := ParseProtocolNegotiation(reply); err != nil || c.SubID2 != SubProtocolNegotiationReply || len(got.Protocols) != 1 {
		t.Errorf("reply = %+v (%v)", got, err)
	}

	_, level, proto, err := ParseSetNewProtocol(AppendSetNewProtocol(nil, NewCommon(initiator, responder), 0x10, n.Protocols[0]))
	if err != nil || level != 0x10 || proto != n.Protocols[0] {
		t.Errorf("set new protocol = %d %+v (%v)", level, proto, err)
	}

	for _, toResponder := range []bool{true, false} {
		test := AppendTestNewProtocol(nil, NewCommon(initiator, responder), toResponder, 0x10)
		if len(test) != HeaderSize+1+TestDataSize || !ValidTestData(test) {
			t.Errorf("test new protocol (%v) = % X", toResponder, test)
		}
	}
	bad := AppendTestNewProtocol(nil, NewCommon(initiator, responder), true, 0x10)
	bad[len(bad)-1] = 0
	if ValidTestData(bad) {
		t.Error("corrupted test data accepted")
	}

	confirm := AppendConfirmNewProtocol(nil, NewCommon(initiator, responder), 0x10)
	if len(confirm) != HeaderSize+1 || confirm[3] != SubConfirmNewProtocol {
		t.Errorf("confirm = % X", confirm)
	}
}

func TestProfiles(t *testing.T) {
	gm := ProfileID{0x7E, 0x00, 0x01, 0x01, 0x00}
	drawbar := ProfileID{0x7E, 0x21, 0x00, 0x01, 0x00}

	b := AppendProfileInquiryReply(nil, NewCommon(responder, initiator), ProfileList{Enabled: []ProfileID{gm}, Disabled: []ProfileID{drawbar, gm}})
	if len(b) != HeaderSize+2+5+2+10 {
		t.Fatalf("reply is %d bytes", len(b))
	}
	_, l, err := ParseProfileInquiryReply(b)
	if err != nil || len(l.Enabled) != 1 || l.Enabled[0] != gm || len(l.Disabled) != 2 || l.Disabled[0] != drawbar {
		t.Errorf("list = %+v (%v)", l, err)
	}

	builders := []struct {
		sub      byte
		b        []byte
		channels uint16
	}{
		{SubSetProfileOn, AppendSetProfileOn(nil, NewCommon(initiator, responder), gm, 1), 1},
		{SubSetProfileOff, AppendSetProfileOff(nil, NewCommon(initiator, responder), gm), 0},
		{SubProfileEnabledReport, AppendProfileEnabledReport(nil, NewCommon(initiator, responder), gm, 16), 16},
		{SubProfileDisabledReport, AppendProfileDisabledReport(nil, NewCommon(initiator, responder), gm, 2), 2},
	}
	for _, tt := range builders {
		c, id, channels, err := ParseProfileState(tt.b)
		if err != nil || c.SubID2 != tt.sub || id != gm || channels != tt.channels {
			t.Errorf("sub 0x%02X: %v %d (%v)", tt.sub, id, channels, err)
		}
	}

	_, id, data, err := ParseProfileSpecificData(AppendProfileSpecificData(nil, NewCommon(initiator, responder), drawbar, []byte{1, 2, 3}))
	if err != nil || id != drawbar || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("specific data = %v % X (%v)", id, data, err)
	}
}

func TestPropertyCapabilities(t *testing.T) {
	pc := PropertyCapabilities{MaxSimultaneousRequests: 4, MajorVersion: 0, MinorVersion: 0}
	_, got, err := ParsePropertyCapabilities(AppendPropertyCapabilities(nil, NewCommon(initiator, responder), pc))
	if err != nil || got != pc {
		t.Errorf("capabilities = %+v (%v)", got, err)
	}
	c, got, err := ParsePropertyCapabilities(AppendPropertyCapabilitiesReply(nil, NewCommon(responder, initiator), pc))
	if err != nil || c.SubID2 != SubPropertyCapabilitiesReply || got != pc {
		t.Errorf("reply = %+v (%v)", got, err)
	}
}

func TestPropertyGetData(t *testing.T) {
	header := []byte(`{"resource":"DeviceInfo"}`)
	b := AppendPropertyGetData(nil, NewCommon(initiator, responder), 1, header)
	if len(b) != HeaderSize+1+2+len(header)+6 {
		t.Fatalf("get data is %d bytes", len(b))
	}
	c, pc, err := ParsePropertyExchange(b)
	if err != nil {
		t.Fatal(err)
	}
	if c.SubID2 != SubPropertyGetData || pc.RequestID != 1 || string(pc.Header) != string(header) ||
		pc.NumChunks != 1 || pc.ChunkIndex != 1 || len(pc.Data) != 0 {
		t.Errorf("chunk = %+v", pc)
	}
}

func TestPropertyProcess(t *testing.T) {
	header := []byte(`{"status":200}`)
	body := bytes.Repeat([]byte("0123456789"), 5)

	var got []byte
	var chunks []PropertyChunk
	err := PropertyProcess(7, header, body, 16, func(pc PropertyChunk) error {
		b := AppendPropertyExchange(nil, NewCommon(responder, initiator), SubPropertyGetDataReply, pc)
		_, parsed, err := ParsePropertyExchange(b)
		if err != nil {
			return err
		}
		chunks = append(chunks, parsed)
		got = append(got, parsed.Data...)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	for i, pc := range chunks {
		if pc.NumChunks != 4 || pc.ChunkIndex != uint16(i+1) || pc.RequestID != 7 {
			t.Errorf("chunk %d = %+v", i, pc)
		}
		if (i == 0) != (len(pc.Header) > 0) {
			t.Errorf("chunk %d header = %q", i, pc.Header)
		}
	}
	if !bytes.Equal(got, body) {
		t.Errorf("reassembled body = %q", got)
	}

	if err := PropertyProcess(0, nil, body, 0, nil); !errors.Is(err, ErrChunkSize) {
		t.Errorf("zero chunk size err = %v", err)
	}
}

func TestProcessInquiry(t *testing.T) {
	b := AppendProcessInquiryCapabilities(nil, NewCommon(initiator, responder))
	if len(b) != HeaderSize || b[3] != SubProcessInquiryCapabilities {
		t.Errorf("inquiry = % X", b)
	}

	_, f, err := ParseProcessInquiryCapabilitiesReply(AppendProcessInquiryCapabilitiesReply(nil, NewCommon(responder, initiator), ProcessInquiryMIDIMessageReport))
	if err != nil || f != ProcessInquiryMIDIMessageReport {
		t.Errorf("features = %d (%v)", f, err)
	}

	r := MIDIMessageReport{DataControl: ReportFull, SystemMessages: 0x07, ChannelControllers: 0x3F, NoteData: 0x1F}
	report := AppendMIDIMessageReport(nil, NewCommon(initiator, responder), r)
	if len(report) != HeaderSize+5 {
		t.Fatalf("report inquiry is %d bytes", len(report))
	}
	if _, got, err := ParseMIDIMessageReport(report); err != nil || got != r {
		t.Errorf("report = %+v (%v)", got, err)
	}

	r.DataControl = 0
	reply := AppendMIDIMessageReportReply(nil, NewCommon(responder, initiator), r)
	if _, got, err := ParseMIDIMessageReport(reply); err != nil || got != r {
		t.Errorf("reply = %+v (%v)", got, err)
	}

	end := AppendMIDIMessageReportEnd(nil, NewCommon(responder, initiator))
	if len(end) != HeaderSize || end[3] != SubMIDIMessageReportEnd {
		t.Errorf("end = % X", end)
	}
}

func TestSysEx7Transport(t *testing.T) {
	b := AppendDiscovery(nil, NewCommon(initiator, responder), DeviceDetails{MaxSysExSize: 512})

	var packets []uint64
	_ = ump.SysEx7Process(0, b, func(p uint64) error {
		packets = append(packets, p)
		return nil
	})
	if len(packets) != ump.SysEx7NumPackets(len(b)) {
		t.Fatalf("got %d packets", len(packets))
	}

	var out []byte
	for _, p := range packets {
		var buf [ump.SysEx7Radix]byte
		n := ump.GetSysEx7Data(p, buf[:])
		out = append(out, buf[:n]...)
	}
	if !bytes.Equal(out, b) {
		t.Errorf("reassembled = % X", out)
	}
}

func TestMcoded7(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty", nil, nil},
		{"ascii", []byte("abc"), []byte{0x00, 'a', 'b', 'c'}},
		{"high bits", []byte{0x80, 0x01, 0xFF}, []byte{0x50, 0x00, 0x01, 0x7F}},
		{
			"two groups",
			[]byte{0, 0, 0, 0, 0, 0, 0x80, 0x81},
			[]byte{0x01, 0, 0, 0, 0, 0, 0, 0x00, 0x40, 0x01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := EncodeMcoded7(nil, tt.in)
			if !bytes.Equal(enc, tt.want) {
				t.Fatalf("encoded = % X, want % X", enc, tt.want)
			}
			if len(enc) != Mcoded7EncodedLen(len(tt.in)) {
				t.Errorf("encoded length %d, predicted %d", len(enc), Mcoded7EncodedLen(len(tt.in)))
			}
			dec, err := DecodeMcoded7(nil, enc)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(dec, tt.in) {
				t.Errorf("decoded = % X, want % X", dec, tt.in)
			}
			if len(dec) != Mcoded7DecodedLen(len(enc)) {
				t.Errorf("decoded length %d, predicted %d", len(dec), Mcoded7DecodedLen(len(enc)))
			}
		})
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errWriteFailed
	}
	w.after--
	return len(p), nil
}

var errWriteFailed = errors.New("write failed")

func TestWriteMcoded7(t *testing.T) {
	in := []byte{0x80, 0x01, 0xFF, 0x10, 0x20, 0x30, 0x40, 0x50}

	var buf bytes.Buffer
	if err := WriteMcoded7(&buf, in); err != nil {
		t.Fatalf("WriteMcoded7: %v", err)
	}
	if want := EncodeMcoded7(nil, in); !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("written = % X, want % X", buf.Bytes(), want)
	}

	for _, after := range []int{0, 3, 9} {
		if err := WriteMcoded7(&failingWriter{after: after}, in); !errors.Is(err, errWriteFailed) {
			t.Errorf("failing after %d writes: err = %v", after, err)
		}
	}
}

func TestMcoded7Invalid(t *testing.T) {
	for _, in := range [][]byte{{0x80, 0x01}, {0x00, 0x81}} {
		if _, err := DecodeMcoded7(nil, in); !errors.Is(err, ErrInvalidMcoded7) {
			t.Errorf("DecodeMcoded7(% X) err = %v", in, err)
		}
	}
}
