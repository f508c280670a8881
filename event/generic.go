package event

import "github.com/att-ves/vesagent/jsonbuf"

// This file holds the domains the spec names but does not give a
// dedicated schema to (§3.4 lists detailed payloads only for the
// higher-traffic domains). Each carries its mandatory identity fields
// plus a free-form additional-fields list, following the same shape the
// original library uses for its "other"-style domains.

const genericFieldsMinorVersion = 0

type genericPayload struct {
	fieldsKey        string
	versionKey       string
	majorVersion     int
	EventSourceType  OptString
	Name             OptString
	AdditionalFields NameValuePairs
}

func newGenericPayload(fieldsKey, versionKey string, major int) genericPayload {
	g := genericPayload{fieldsKey: fieldsKey, versionKey: versionKey, majorVersion: major}
	g.EventSourceType.Init("eventSourceType")
	g.Name.Init("name")
	return g
}

func (g *genericPayload) encode(buf *jsonbuf.Buffer) {
	buf.OpenNamedObject(g.fieldsKey)
	buf.EncVersion(g.versionKey, g.majorVersion, genericFieldsMinorVersion)
	buf.EncKVOptString("eventSourceType", g.EventSourceType.IsSet, g.EventSourceType.Value)
	buf.EncKVOptString("name", g.Name.IsSet, g.Name.Value)
	g.AdditionalFields.EncodeOpt(buf, "additionalFields")
	buf.CloseObject()
}

// MobileFlow reports mobility-network flow statistics (spec §3.2, §3.4).
type MobileFlow struct {
	hdr     Header
	payload genericPayload
}

var _ Event = (*MobileFlow)(nil)

func NewMobileFlow(eventName, eventID string) *MobileFlow {
	m := &MobileFlow{
		hdr:     NewHeader(DomainMobileFlow, eventName, eventID),
		payload: newGenericPayload("mobileFlowFields", "mobileFlowFieldsVersion", 1),
	}
	m.hdr.Priority = PriorityNormal
	return m
}

func (m *MobileFlow) Domain() Domain         { return DomainMobileFlow }
func (m *MobileFlow) Header() *Header        { return &m.hdr }
func (m *MobileFlow) SetSourceType(v string) { m.payload.EventSourceType.Set(v) }
func (m *MobileFlow) AddAdditionalField(name, value string) {
	m.payload.AdditionalFields.Add(name, value)
}
func (m *MobileFlow) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &m.hdr, func() { m.payload.encode(buf) })
}

// Report carries a service-level summary event (spec §3.2, §3.4). Its
// wire domain string is "serviceEvents" per the original library, not
// "report" (spec §6.3 leaves this out of the explicit domain-string
// list; followed here for parity with serviceEvents.py / evel_reporting_event.c).
type Report struct {
	hdr     Header
	payload genericPayload
}

var _ Event = (*Report)(nil)

func NewReport(eventName, eventID string) *Report {
	r := &Report{
		hdr:     NewHeader(DomainReport, eventName, eventID),
		payload: newGenericPayload("reportingEntityFields", "reportingEntityFieldsVersion", 1),
	}
	r.hdr.Priority = PriorityNormal
	return r
}

func (r *Report) Domain() Domain  { return DomainReport }
func (r *Report) Header() *Header { return &r.hdr }
func (r *Report) AddAdditionalField(name, value string) {
	r.payload.AdditionalFields.Add(name, value)
}
func (r *Report) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &r.hdr, func() { r.payload.encode(buf) })
}

// Other is the catch-all domain for events with no dedicated schema
// (spec §3.2).
type Other struct {
	hdr     Header
	payload genericPayload
}

var _ Event = (*Other)(nil)

func NewOther(eventName, eventID string) *Other {
	o := &Other{
		hdr:     NewHeader(DomainOther, eventName, eventID),
		payload: newGenericPayload("otherFields", "otherFieldsVersion", 1),
	}
	o.hdr.Priority = PriorityNormal
	return o
}

func (o *Other) Domain() Domain  { return DomainOther }
func (o *Other) Header() *Header { return &o.hdr }
func (o *Other) AddAdditionalField(name, value string) {
	o.payload.AdditionalFields.Add(name, value)
}
func (o *Other) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &o.hdr, func() { o.payload.encode(buf) })
}

// ThresholdCross reports a measurement threshold-crossing alert
// (spec §3.2).
type ThresholdCross struct {
	hdr     Header
	payload genericPayload

	AdditionalParameters OptString
}

var _ Event = (*ThresholdCross)(nil)

func NewThresholdCross(eventName, eventID string) *ThresholdCross {
	t := &ThresholdCross{
		hdr:     NewHeader(DomainThresholdCross, eventName, eventID),
		payload: newGenericPayload("thresholdCrossingAlertFields", "thresholdCrossingFieldsVersion", 2),
	}
	t.hdr.Priority = PriorityHigh
	t.AdditionalParameters.Init("additionalParameters")
	return t
}

func (t *ThresholdCross) Domain() Domain  { return DomainThresholdCross }
func (t *ThresholdCross) Header() *Header { return &t.hdr }
func (t *ThresholdCross) AddAdditionalField(name, value string) {
	t.payload.AdditionalFields.Add(name, value)
}
func (t *ThresholdCross) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &t.hdr, func() {
		buf.OpenNamedObject(t.payload.fieldsKey)
		buf.EncVersion(t.payload.versionKey, t.payload.majorVersion, genericFieldsMinorVersion)
		buf.EncKVOptString("eventSourceType", t.payload.EventSourceType.IsSet, t.payload.EventSourceType.Value)
		buf.EncKVOptString("additionalParameters", t.AdditionalParameters.IsSet, t.AdditionalParameters.Value)
		t.payload.AdditionalFields.EncodeOpt(buf, "additionalFields")
		buf.CloseObject()
	})
}

// Batch is the multi-event envelope domain (spec §3.2); the batch
// transport envelope itself (the collector-facing "eventList" wrapper)
// is not implemented by this module, but individual Batch-tagged events
// still carry a header and generic fields like any other domain.
type Batch struct {
	hdr     Header
	payload genericPayload
}

var _ Event = (*Batch)(nil)

func NewBatch(eventName, eventID string) *Batch {
	b := &Batch{
		hdr:     NewHeader(DomainBatch, eventName, eventID),
		payload: newGenericPayload("batchFields", "batchFieldsVersion", 1),
	}
	b.hdr.Priority = PriorityNormal
	return b
}

func (b *Batch) Domain() Domain  { return DomainBatch }
func (b *Batch) Header() *Header { return &b.hdr }
func (b *Batch) AddAdditionalField(name, value string) {
	b.payload.AdditionalFields.Add(name, value)
}
func (b *Batch) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &b.hdr, func() { b.payload.encode(buf) })
}
