package ci

// ProfileID is the five-byte identifier of a profile.
type ProfileID [5]byte

// ProfileList is the payload of a Profile Inquiry Reply.
type ProfileList struct {
	Enabled  []ProfileID
	Disabled []ProfileID
}

// AppendProfileInquiry appends a Profile Inquiry.
func AppendProfileInquiry(dst []byte, c Common) []byte {
	return appendHeader(dst, c, SubProfileInquiry)
}

func appendProfiles(dst []byte, ids []ProfileID) []byte {
	dst = append14(dst, uint16(len(ids)))
	for _, id := range ids {
		dst = append(dst, id[:]...)
	}
	return dst
}

// AppendProfileInquiryReply appends the enabled and disabled profiles.
func AppendProfileInquiryReply(dst []byte, c Common, l ProfileList) []byte {
	dst = appendProfiles(appendHeader(dst, c, SubProfileInquiryReply), l.Enabled)
	return appendProfiles(dst, l.Disabled)
}

func (p *parser) profiles() []ProfileID {
	n := int(p.u14())
	var ids []ProfileID
	for i := 0; i < n && p.err == nil; i++ {
		var id ProfileID
		copy(id[:], p.take(len(id)))
		ids = append(ids, id)
	}
	return ids
}

// ParseProfileInquiryReply reads a Profile Inquiry Reply.
func ParseProfileInquiryReply(b []byte) (Common, ProfileList, error) {
	c, p, err := parse(b, SubProfileInquiryReply)
	if err != nil {
		return c, ProfileList{}, err
	}
	l := ProfileList{Enabled: p.profiles()}
	l.Disabled = p.profiles()
	if p.err != nil {
		return c, ProfileList{}, p.err
	}
	return c, l, nil
}

func appendProfileChannels(dst []byte, c Common, subID2 byte, id ProfileID, channels uint16) []byte {
	dst = append(appendHeader(dst, c, subID2), id[:]...)
	return append14(dst, channels)
}

// AppendSetProfileOn asks the responder to enable a profile on channels
// channels (0 for a single-channel or group profile).
func AppendSetProfileOn(dst []byte, c Common, id ProfileID, channels uint16) []byte {
	return appendProfileChannels(dst, c, SubSetProfileOn, id, channels)
}

// AppendSetProfileOff asks the responder to disable a profile.
func AppendSetProfileOff(dst []byte, c Common, id ProfileID) []byte {
	return appendProfileChannels(dst, c, SubSetProfileOff, id, 0)
}

// AppendProfileEnabledReport reports a profile as enabled.
func AppendProfileEnabledReport(dst []byte, c Common, id ProfileID, channels uint16) []byte {
	return appendProfileChannels(dst, c, SubProfileEnabledReport, id, channels)
}

// AppendProfileDisabledReport reports a profile as disabled.
func AppendProfileDisabledReport(dst []byte, c Common, id ProfileID, channels uint16) []byte {
	return appendProfileChannels(dst, c, SubProfileDisabledReport, id, channels)
}

// ParseProfileState reads Set Profile On/Off or an enabled/disabled report.
func ParseProfileState(b []byte) (Common, ProfileID, uint16, error) {
	c, p, err := parse(b, SubSetProfileOn, SubSetProfileOff, SubProfileEnabledReport, SubProfileDisabledReport)
	if err != nil {
		return c, ProfileID{}, 0, err
	}
	var id ProfileID
	copy(id[:], p.take(len(id)))
	channels := p.u14()
	return c, id, channels, p.err
}

// AppendProfileSpecificData appends Profile Specific Data.
func AppendProfileSpecificData(dst []byte, c Common, id ProfileID, data []byte) []byte {
	dst = append(appendHeader(dst, c, SubProfileSpecificData), id[:]...)
	dst = append28(dst, uint32(len(data)))
	return append(dst, data...)
}

// ParseProfileSpecificData returns the profile and its data.
func ParseProfileSpecificData(b []byte) (Common, ProfileID, []byte, error) {
	c, p, err := parse(b, SubProfileSpecificData)
	if err != nil {
		return c, ProfileID{}, nil, err
	}
	var id ProfileID
	copy(id[:], p.take(len(id)))
	data := p.take(int(p.u28()))
	return c, id, data, p.err
}
