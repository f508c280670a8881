package event

import (
	"sync/atomic"
	"time"

	"github.com/att-ves/vesagent/jsonbuf"
)

// Priority is the event header's priority field (spec §3.2).
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// HeaderMajorVersion/HeaderMinorVersion are the commonEventHeader's own
// schema version (spec §6.3 "version"), fixed across every domain —
// distinct from each domain's own `<domain>FieldsVersion` constant
// (e.g. faultMajorVersion, heartbeatMajorVersion), which only versions
// that domain's fields block. The original library sets this from a
// single EVEL_HEADER_MAJOR_VERSION/EVEL_HEADER_MINOR_VERSION pair for
// every domain (evel_event.c), never from the domain's own version
// constants; spec scenario S1 pins the value to "3.0".
const (
	HeaderMajorVersion = 3
	HeaderMinorVersion = 0
)

var globalSequence atomic.Int64

// SetNextSequence overrides the next sequence number to be handed out,
// mirroring evel_set_next_event_sequence in the original library. Tests
// use this to get deterministic sequence numbers.
func SetNextSequence(n int) {
	globalSequence.Store(int64(n) - 1)
}

func nextSequence() int {
	return int(globalSequence.Add(1))
}

func init() {
	// sequence starts at 1 (spec §3.2)
	globalSequence.Store(0)
}

// NowEpochMicros returns the current time as microseconds since the
// Unix epoch, the header's native timestamp unit (spec §3.2, §6.3).
func NowEpochMicros() int64 {
	return time.Now().UnixMicro()
}

// Header is the common event header present on every event (spec §3.2).
// ReportingEntityName/SourceName/ReportingEntityID/SourceID default to
// the identity source's VM name/UUID (spec §3.2's explicit invariant)
// via ApplyIdentityDefaults, called by Agent.PostEvent/PostPriorityEvent
// just before queuing — kept out of NewHeader so this package stays
// free of the identity dependency (the agent facade owns that wiring).
type Header struct {
	Domain              Domain
	EventID             string
	EventName           string
	Sequence            int
	Priority            Priority
	StartEpochMicrosec  int64
	LastEpochMicrosec   int64
	ReportingEntityName string
	SourceName          string
	MajorVersion        int
	MinorVersion        int

	reportingEntityNameSet bool
	sourceNameSet          bool

	EventType         OptString
	ReportingEntityID OptString
	SourceID          OptString
	NfcNamingCode     OptString
	NfNamingCode      OptString
}

// NewHeader initializes a header for the given domain, assigning the
// next sequence number and defaulting both epoch timestamps to "now"
// (spec §4.3 steps 2-5). The header's own version is always
// HeaderMajorVersion/HeaderMinorVersion, independent of the domain;
// callers no longer pass a per-domain version here (see
// HeaderMajorVersion doc comment above).
func NewHeader(domain Domain, eventName, eventID string) Header {
	now := NowEpochMicros()
	h := Header{
		Domain:             domain,
		EventID:            eventID,
		EventName:          eventName,
		Sequence:           nextSequence(),
		Priority:           PriorityNormal,
		StartEpochMicrosec: now,
		LastEpochMicrosec:  now,
		MajorVersion:       HeaderMajorVersion,
		MinorVersion:       HeaderMinorVersion,
	}
	h.EventType.Init("eventType")
	h.ReportingEntityID.Init("reportingEntityId")
	h.SourceID.Init("sourceId")
	h.NfcNamingCode.Init("nfcNamingCode")
	h.NfNamingCode.Init("nfNamingCode")
	return h
}

// Touch updates LastEpochMicrosec to now. The header setters below call
// it so a mutated event's last-epoch reflects the mutation time rather
// than construction time; ApplyIdentityDefaults deliberately does not,
// since filling defaults at PostEvent is not a caller mutation.
func (h *Header) Touch() {
	h.LastEpochMicrosec = NowEpochMicros()
}

// SetReportingEntityName overrides the mandatory reportingEntityName
// field, mirroring the original library's evel_reporting_entity_name_set
// (an unconditional free+strdup, not the single-shot-with-warning
// discipline used by the Option[T] fields, since this field always
// carries a value rather than being absent-by-default).
func (h *Header) SetReportingEntityName(v string) {
	h.ReportingEntityName = v
	h.reportingEntityNameSet = true
	h.Touch()
}

// SetSourceName overrides the mandatory sourceName field, same shape as
// SetReportingEntityName.
func (h *Header) SetSourceName(v string) {
	h.SourceName = v
	h.sourceNameSet = true
	h.Touch()
}

// ApplyIdentityDefaults fills reportingEntityName/sourceName from vmName
// and reportingEntityId/sourceId from vmUUID for every field the caller
// never explicitly set (spec §3.2: "reporting_entity_name defaults to
// identity-source VM name if not explicitly set; source_id and
// reporting_entity_id default to identity-source VM UUID"), matching
// the original library's evel_new_<domain> constructors which seed these
// same four fields from openstack_vm_name()/openstack_vm_uuid() at
// creation time. Idempotent: calling it twice never clobbers a value
// set by an explicit setter in between.
func (h *Header) ApplyIdentityDefaults(vmName, vmUUID string) {
	if !h.reportingEntityNameSet {
		h.ReportingEntityName = vmName
	}
	if !h.sourceNameSet {
		h.SourceName = vmName
	}
	if !h.ReportingEntityID.IsSet {
		h.ReportingEntityID.ForceSet(vmUUID)
	}
	if !h.SourceID.IsSet {
		h.SourceID.ForceSet(vmUUID)
	}
}

// Encode writes the commonEventHeader object (spec §6.3's exact key
// list) into buf. Callers open the surrounding
// `"commonEventHeader":{...}` object/keys themselves.
func (h *Header) Encode(enc *jsonbuf.Buffer) {
	enc.EncKVString("domain", h.Domain.String())
	enc.EncKVString("eventId", h.EventID)
	enc.EncKVString("eventName", h.EventName)
	enc.EncKVInt64("lastEpochMicrosec", h.LastEpochMicrosec)
	enc.EncKVString("priority", string(h.Priority))
	enc.EncKVString("reportingEntityName", h.ReportingEntityName)
	enc.EncKVInt("sequence", h.Sequence)
	enc.EncKVString("sourceName", h.SourceName)
	enc.EncKVInt64("startEpochMicrosec", h.StartEpochMicrosec)
	enc.EncVersion("version", h.MajorVersion, h.MinorVersion)

	enc.EncKVOptString("eventType", h.EventType.IsSet, h.EventType.Value)
	enc.EncKVOptString("reportingEntityId", h.ReportingEntityID.IsSet, h.ReportingEntityID.Value)
	enc.EncKVOptString("sourceId", h.SourceID.IsSet, h.SourceID.Value)
	enc.EncKVOptString("nfcNamingCode", h.NfcNamingCode.IsSet, h.NfcNamingCode.Value)
	enc.EncKVOptString("nfNamingCode", h.NfNamingCode.IsSet, h.NfNamingCode.Value)
}
