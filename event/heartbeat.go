package event

import "github.com/att-ves/vesagent/jsonbuf"

const (
	heartbeatMajorVersion = 1
	heartbeatMinorVersion = 1
)

// Heartbeat is just the common header plus an interval (spec §3.4);
// "the heartbeat is just a naked commonEventHeader" per the original
// library's evel_event.c.
type Heartbeat struct {
	hdr              Header
	IntervalSeconds  OptInt
	AdditionalFields NameValuePairs
}

var _ Event = (*Heartbeat)(nil)

// NewHeartbeat constructs a heartbeat event (spec §4.3). eventName/eventID
// are mandatory.
func NewHeartbeat(eventName, eventID string) *Heartbeat {
	hb := &Heartbeat{hdr: NewHeader(DomainHeartbeat, eventName, eventID)}
	hb.hdr.Priority = PriorityNormal
	hb.IntervalSeconds.Init("heartbeatInterval")
	return hb
}

func (hb *Heartbeat) Domain() Domain  { return DomainHeartbeat }
func (hb *Heartbeat) Header() *Header { return &hb.hdr }

// SetIntervalSeconds is a single-shot setter (spec §4.3).
func (hb *Heartbeat) SetIntervalSeconds(v int) { hb.IntervalSeconds.Set(v) }

// AddAdditionalField appends an additional name/value pair.
func (hb *Heartbeat) AddAdditionalField(name, value string) {
	hb.AdditionalFields.Add(name, value)
}

func (hb *Heartbeat) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &hb.hdr, func() {
		// A bare heartbeat is just the common header; the fields object
		// appears only once the caller has put something in it.
		if !hb.IntervalSeconds.IsSet && len(hb.AdditionalFields) == 0 {
			return
		}
		if buf.OpenOptNamedObject("heartbeatFields") {
			buf.EncVersion("heartbeatFieldsVersion", heartbeatMajorVersion, heartbeatMinorVersion)
			buf.EncKVOptInt("heartbeatInterval", hb.IntervalSeconds.IsSet, hb.IntervalSeconds.Value)
			hb.AdditionalFields.EncodeOpt(buf, "additionalFields")
			buf.CloseOpt()
		}
	})
}

// HeartbeatField is the standalone "extra heartbeat fields" domain
// (spec §3.3/§3.4): a mandatory interval plus additional name/value
// pairs, serialized under the heartbeatField object rather than as a
// naked header.
type HeartbeatField struct {
	hdr              Header
	IntervalSeconds  int
	AdditionalFields NameValuePairs
}

var _ Event = (*HeartbeatField)(nil)

func NewHeartbeatField(eventName, eventID string, intervalSeconds int) *HeartbeatField {
	hb := &HeartbeatField{
		hdr:             NewHeader(DomainHeartbeatField, eventName, eventID),
		IntervalSeconds: intervalSeconds,
	}
	hb.hdr.Priority = PriorityNormal
	return hb
}

func (hb *HeartbeatField) Domain() Domain  { return DomainHeartbeatField }
func (hb *HeartbeatField) Header() *Header { return &hb.hdr }

func (hb *HeartbeatField) AddAdditionalField(name, value string) {
	hb.AdditionalFields.Add(name, value)
}

func (hb *HeartbeatField) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &hb.hdr, func() {
		buf.OpenNamedObject("heartbeatField")
		buf.EncVersion("heartbeatFieldsVersion", heartbeatMajorVersion, heartbeatMinorVersion)
		buf.EncKVInt("heartbeatInterval", hb.IntervalSeconds)
		hb.AdditionalFields.EncodeOpt(buf, "additionalFields")
		buf.CloseObject()
	})
}
