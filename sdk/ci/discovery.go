package ci

// CI category bits advertised in Discovery.
const (
	CategoryProtocolNegotiation byte = 1 << 1
	CategoryProfileConfig       byte = 1 << 2
	CategoryPropertyExchange    byte = 1 << 3
	CategoryProcessInquiry      byte = 1 << 4
)

// DeviceDetails is the identity a device announces in Discovery and its reply.
type DeviceDetails struct {
	Manufacturer     [3]byte
	Family           uint16
	Model            uint16
	SoftwareRevision [4]byte
	Categories       byte
	MaxSysExSize     uint32
	OutputPathID     byte
	// FunctionBlock is only carried by Discovery Reply.
	FunctionBlock byte
}

func appendDetails(dst []byte, d DeviceDetails) []byte {
	dst = append(dst, d.Manufacturer[:]...)
	dst = append14(dst, d.Family)
	dst = append14(dst, d.Model)
	dst = append(dst, d.SoftwareRevision[:]...)
	dst = append(dst, d.Categories)
	dst = append28(dst, d.MaxSysExSize)
	return append(dst, d.OutputPathID)
}

// AppendDiscovery appends a Discovery inquiry. The destination is always
// BroadcastMUID.
func AppendDiscovery(dst []byte, c Common, d DeviceDetails) []byte {
	c.Destination = BroadcastMUID
	return appendDetails(appendHeader(dst, c, SubDiscovery), d)
}

// AppendDiscoveryReply appends a Reply to Discovery.
func AppendDiscoveryReply(dst []byte, c Common, d DeviceDetails) []byte {
	dst = appendDetails(appendHeader(dst, c, SubDiscoveryReply), d)
	return append(dst, d.FunctionBlock)
}

// ParseDiscovery reads a Discovery or Reply to Discovery. Version 1.1 messages
// without the output path and function block fields are accepted.
func ParseDiscovery(b []byte) (Common, DeviceDetails, error) {
	c, p, err := parse(b, SubDiscovery, SubDiscoveryReply)
	if err != nil {
		return c, DeviceDetails{}, err
	}
	var d DeviceDetails
	copy(d.Manufacturer[:], p.take(3))
	d.Family = p.u14()
	d.Model = p.u14()
	copy(d.SoftwareRevision[:], p.take(4))
	d.Categories = p.u8()
	d.MaxSysExSize = p.u28()
	if p.err != nil {
		return c, d, p.err
	}
	if len(p.b) > 0 {
		d.OutputPathID = p.u8()
	}
	if c.SubID2 == SubDiscoveryReply && len(p.b) > 0 {
		d.FunctionBlock = p.u8()
	}
	return c, d, nil
}

// AppendInvalidateMUID appends an Invalidate MUID broadcast naming target.
func AppendInvalidateMUID(dst []byte, c Common, target MUID) []byte {
	c.Destination = BroadcastMUID
	return appendMUID(appendHeader(dst, c, SubInvalidateMUID), target)
}

// ParseInvalidateMUID returns the MUID being invalidated.
func ParseInvalidateMUID(b []byte) (Common, MUID, error) {
	c, p, err := parse(b, SubInvalidateMUID)
	if err != nil {
		return c, 0, err
	}
	m := p.muid()
	return c, m, p.err
}

// Endpoint message statuses.
const (
	EndpointProductInstanceID byte = 0x00
)

// AppendEndpointMessage appends an Inquiry: Endpoint Message for status.
func AppendEndpointMessage(dst []byte, c Common, status byte) []byte {
	return append(appendHeader(dst, c, SubEndpointMessage), status)
}

// AppendEndpointReply appends the reply carrying data for status.
func AppendEndpointReply(dst []byte, c Common, status byte, data []byte) []byte {
	dst = append(appendHeader(dst, c, SubEndpointReply), status)
	dst = append14(dst, uint16(len(data)))
	return append(dst, data...)
}

// ParseEndpointReply returns the status and data of an endpoint reply.
func ParseEndpointReply(b []byte) (Common, byte, []byte, error) {
	c, p, err := parse(b, SubEndpointReply)
	if err != nil {
		return c, 0, nil, err
	}
	status := p.u8()
	data := p.take(int(p.u14()))
	return c, status, data, p.err
}

// Ack carries the fields shared by ACK and NAK.
type Ack struct {
	OriginalSubID2 byte
	StatusCode     byte
	StatusData     byte
	Details        [5]byte
	Message        []byte
}

// NAK status codes.
const (
	NAKGeneric        byte = 0x00
	NAKUnsupported    byte = 0x01
	NAKVersion        byte = 0x02
	NAKTargetNotInUse byte = 0x03
	NAKProfileOff     byte = 0x04
	NAKTerminateInfo  byte = 0x20
	NAKTooManyRequest byte = 0x40
	NAKMalformed      byte = 0x41
)

func appendAck(dst []byte, c Common, subID2 byte, a Ack) []byte {
	dst = appendHeader(dst, c, subID2)
	dst = append(dst, a.OriginalSubID2, a.StatusCode, a.StatusData)
	dst = append(dst, a.Details[:]...)
	dst = append14(dst, uint16(len(a.Message)))
	return append(dst, a.Message...)
}

// AppendACK appends an ACK.
func AppendACK(dst []byte, c Common, a Ack) []byte { return appendAck(dst, c, SubACK, a) }

// AppendNAK appends a NAK. Version 1.1 NAKs have no payload; a zero Ack with
// c.Version set to Version1_1 produces one.
func AppendNAK(dst []byte, c Common, a Ack) []byte {
	if c.Version == Version1_1 {
		return appendHeader(dst, c, SubNAK)
	}
	return appendAck(dst, c, SubNAK, a)
}

// ParseAck reads an ACK or NAK. A NAK without payload yields a zero Ack.
func ParseAck(b []byte) (Common, Ack, error) {
	c, p, err := parse(b, SubACK, SubNAK)
	if err != nil || len(p.b) == 0 {
		return c, Ack{}, err
	}
	var a Ack
	a.OriginalSubID2 = p.u8()
	a.StatusCode = p.u8()
	a.StatusData = p.u8()
	copy(a.Details[:], p.take(5))
	a.Message = p.take(int(p.u14()))
	return c, a, p.err
}
