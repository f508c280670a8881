package event

import "github.com/att-ves/vesagent/jsonbuf"

// Event is implemented by every domain's event record. Domain tags the
// concrete type for throttle-table lookups and dispatcher routing
// without needing a type switch (spec §3.3, §4.3); Encode writes the
// full `{"event":{"commonEventHeader":{...},"<domainFields>":{...}}}`
// document (spec §6.2).
type Event interface {
	Domain() Domain
	Header() *Header
	// Encode writes this event's full wire document (the "event"
	// envelope, common header, and domain-specific section) to buf,
	// consulting throttle for any suppressed fields/name-value pairs.
	Encode(buf *jsonbuf.Buffer)
}

// NameValuePair is the generic {"name":"...","value":"..."} shape used
// by heartbeat additional fields, signaling additional info, fault
// alarm additional info, and measurement custom groups (spec §3.4).
type NameValuePair struct {
	Name  string
	Value string
}

// NameValuePairs is an ordered, append-only list preserving insertion
// order in JSON output (spec §3.4 "Nested repeated groups").
type NameValuePairs []NameValuePair

func (l *NameValuePairs) Add(name, value string) {
	*l = append(*l, NameValuePair{Name: name, Value: value})
}

// EncodeOpt writes the list under key as an opt-named list, dropping
// any pair whose name is suppressed and omitting the key entirely if
// every pair ends up dropped (spec §4.2, §4.6 test property 6).
func (l NameValuePairs) EncodeOpt(buf *jsonbuf.Buffer, key string) {
	if len(l) == 0 {
		return
	}
	if !buf.OpenOptNamedList(key) {
		return
	}
	for _, nv := range l {
		if buf.SuppressNVPair(key, nv.Name) {
			continue
		}
		buf.OpenObject()
		buf.EncKVString("name", nv.Name)
		buf.EncKVString("value", nv.Value)
		buf.CloseObject()
	}
	buf.CloseOpt()
}

// encodeEnvelope wraps a domain body-writer in the
// `{"event":{"commonEventHeader":{...}, <bodyWriter>}}` shape common to
// every domain's wire document (spec §6.2).
func encodeEnvelope(buf *jsonbuf.Buffer, hdr *Header, body func()) {
	buf.OpenObject()
	buf.OpenNamedObject("event")
	buf.OpenNamedObject("commonEventHeader")
	hdr.Encode(buf)
	buf.CloseObject()
	body()
	buf.CloseObject()
	buf.CloseObject()
}
