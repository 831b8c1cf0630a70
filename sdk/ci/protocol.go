package ci

// Protocol types used in protocol negotiation.
const (
	ProtocolMIDI1 byte = 0x01
	ProtocolMIDI2 byte = 0x02
)

// Protocol extension bits.
const (
	ExtensionMIDI1SizeOfPacket byte = 1 << 0
	ExtensionJitterReduction   byte = 1 << 1
)

// ProtocolSize is the encoded size of one protocol entry.
const ProtocolSize = 5

// TestDataSize is the length of the Test New Protocol pattern.
const TestDataSize = 48

// Protocol is one entry of a protocol list.
type Protocol struct {
	Type       byte
	Version    byte
	Extensions byte
}

func appendProtocol(dst []byte, p Protocol) []byte {
	return append(dst, p.Type, p.Version, p.Extensions, 0, 0)
}

func (p *parser) protocol() Protocol {
	b := p.take(ProtocolSize)
	if b == nil {
		return Protocol{}
	}
	return Protocol{Type: b[0], Version: b[1], Extensions: b[2]}
}

// Negotiation is the payload of Initiate Protocol Negotiation and its reply.
type Negotiation struct {
	AuthorityLevel byte
	Protocols      []Protocol
}

func appendNegotiation(dst []byte, c Common, subID2 byte, n Negotiation) []byte {
	dst = append(appendHeader(dst, c, subID2), n.AuthorityLevel, byte(len(n.Protocols)))
	for _, p := range n.Protocols {
		dst = appendProtocol(dst, p)
	}
	return dst
}

// AppendProtocolNegotiation appends Initiate Protocol Negotiation listing the
// supported protocols in order of preference.
func AppendProtocolNegotiation(dst []byte, c Common, n Negotiation) []byte {
	return appendNegotiation(dst, c, SubProtocolNegotiation, n)
}

// AppendProtocolNegotiationReply appends the responder's protocol list.
func AppendProtocolNegotiationReply(dst []byte, c Common, n Negotiation) []byte {
	return appendNegotiation(dst, c, SubProtocolNegotiationReply, n)
}

// ParseProtocolNegotiation reads a negotiation or its reply.
func ParseProtocolNegotiation(b []byte) (Common, Negotiation, error) {
	c, p, err := parse(b, SubProtocolNegotiation, SubProtocolNegotiationReply)
	if err != nil {
		return c, Negotiation{}, err
	}
	n := Negotiation{AuthorityLevel: p.u8()}
	count := int(p.u8())
	for i := 0; i < count && p.err == nil; i++ {
		n.Protocols = append(n.Protocols, p.protocol())
	}
	if p.err != nil {
		return c, Negotiation{}, p.err
	}
	return c, n, nil
}

// AppendSetNewProtocol appends Set New Protocol.
func AppendSetNewProtocol(dst []byte, c Common, authorityLevel byte, p Protocol) []byte {
	return appendProtocol(append(appendHeader(dst, c, SubSetNewProtocol), authorityLevel), p)
}

// ParseSetNewProtocol returns the authority level and the requested protocol.
func ParseSetNewProtocol(b []byte) (Common, byte, Protocol, error) {
	c, p, err := parse(b, SubSetNewProtocol)
	if err != nil {
		return c, 0, Protocol{}, err
	}
	level := p.u8()
	proto := p.protocol()
	return c, level, proto, p.err
}

func appendTestData(dst []byte) []byte {
	for i := 0; i < TestDataSize; i++ {
		dst = append(dst, byte(i))
	}
	return dst
}

// AppendTestNewProtocol appends Test New Protocol. initiatorToResponder picks
// the direction (sub-ID#2 0x13 or 0x14).
func AppendTestNewProtocol(dst []byte, c Common, initiatorToResponder bool, authorityLevel byte) []byte {
	sub := SubTestNewProtocolRToI
	if initiatorToResponder {
		sub = SubTestNewProtocolIToR
	}
	return appendTestData(append(appendHeader(dst, c, sub), authorityLevel))
}

// ValidTestData reports whether a Test New Protocol message carries the
// expected 0..47 pattern.
func ValidTestData(b []byte) bool {
	_, p, err := parse(b, SubTestNewProtocolIToR, SubTestNewProtocolRToI)
	if err != nil {
		return false
	}
	p.u8()
	data := p.take(TestDataSize)
	if p.err != nil {
		return false
	}
	for i, v := range data {
		if v != byte(i) {
			return false
		}
	}
	return true
}

// AppendConfirmNewProtocol appends Confirmation New Protocol Established.
func AppendConfirmNewProtocol(dst []byte, c Common, authorityLevel byte) []byte {
	return append(appendHeader(dst, c, SubConfirmNewProtocol), authorityLevel)
}
