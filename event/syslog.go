package event

import "github.com/att-ves/vesagent/jsonbuf"

const (
	syslogMajorVersion = 3
	syslogMinorVersion = 0
)

// SyslogSeverity is the syslog event's severity enum (spec §3.4, §6.3).
type SyslogSeverity string

const (
	SyslogSeverityEmergency SyslogSeverity = "Emergency"
	SyslogSeverityAlert     SyslogSeverity = "Alert"
	SyslogSeverityCritical  SyslogSeverity = "Critical"
	SyslogSeverityError     SyslogSeverity = "Error"
	SyslogSeverityWarning   SyslogSeverity = "Warning"
	SyslogSeverityNotice    SyslogSeverity = "Notice"
	SyslogSeverityInfo      SyslogSeverity = "Info"
	SyslogSeverityDebug     SyslogSeverity = "Debug"
)

// SyslogFacility is the RFC-5424-ordered facility enum (spec §6.3:
// 0..23, with local0..local7 at 16..23).
type SyslogFacility int

const (
	FacilityKern SyslogFacility = iota
	FacilityUser
	FacilityMail
	FacilityDaemon
	FacilitySecurity
	FacilitySyslog
	FacilityLpr
	FacilityNews
	FacilityUucp
	FacilityClock
	FacilitySecurity2
	FacilityFtp
	FacilityNtp
	FacilityLogAudit
	FacilityLogAlert
	FacilityClock2
	FacilityLocal0
	FacilityLocal1
	FacilityLocal2
	FacilityLocal3
	FacilityLocal4
	FacilityLocal5
	FacilityLocal6
	FacilityLocal7
)

// Syslog carries a single syslog/journal entry (spec §3.4).
type Syslog struct {
	hdr Header

	EventSourceType string
	SyslogMsg       string
	SyslogTag       string

	// AdditionalFilters is the syslog additionalFields value: a single
	// delimited name=value filter string rather than a name/value-pair
	// list, matching the wire schema for this domain.
	AdditionalFilters OptString

	EventSourceHost OptString
	SyslogFacility  OptInt
	SyslogPriority  OptInt
	SyslogProc      OptString
	SyslogProcID    OptInt
	SyslogVersion   OptInt
	SyslogSData     OptString
	SyslogSdID      OptString
	SyslogSeverity  OptString
}

var _ Event = (*Syslog)(nil)

func NewSyslog(eventName, eventID, sourceType, msg, tag string) *Syslog {
	s := &Syslog{
		hdr:             NewHeader(DomainSyslog, eventName, eventID),
		EventSourceType: sourceType,
		SyslogMsg:       msg,
		SyslogTag:       tag,
	}
	s.hdr.Priority = PriorityNormal
	s.AdditionalFilters.Init("additionalFields")
	s.EventSourceHost.Init("eventSourceHost")
	s.SyslogFacility.Init("syslogFacility")
	s.SyslogPriority.Init("syslogPri")
	s.SyslogProc.Init("syslogProc")
	s.SyslogProcID.Init("syslogProcId")
	s.SyslogVersion.Init("syslogVer")
	s.SyslogSData.Init("syslogSData")
	s.SyslogSdID.Init("syslogSdId")
	s.SyslogSeverity.Init("syslogSev")
	return s
}

func (s *Syslog) Domain() Domain  { return DomainSyslog }
func (s *Syslog) Header() *Header { return &s.hdr }

func (s *Syslog) SetAdditionalFilters(v string) { s.AdditionalFilters.Set(v) }
func (s *Syslog) SetEventSourceHost(v string)   { s.EventSourceHost.Set(v) }
func (s *Syslog) SetFacility(f SyslogFacility)  { s.SyslogFacility.Set(int(f)) }
func (s *Syslog) SetPriority(v int)             { s.SyslogPriority.Set(v) }
func (s *Syslog) SetProc(v string)              { s.SyslogProc.Set(v) }
func (s *Syslog) SetProcID(v int)               { s.SyslogProcID.Set(v) }
func (s *Syslog) SetVersion(v int)              { s.SyslogVersion.Set(v) }
func (s *Syslog) SetStructuredData(v string)    { s.SyslogSData.Set(v) }
func (s *Syslog) SetSdID(v string)              { s.SyslogSdID.Set(v) }
func (s *Syslog) SetSeverity(v SyslogSeverity)  { s.SyslogSeverity.Set(string(v)) }

func (s *Syslog) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &s.hdr, func() {
		buf.OpenNamedObject("syslogFields")
		buf.EncKVOptString("additionalFields", s.AdditionalFilters.IsSet, s.AdditionalFilters.Value)
		buf.EncKVString("eventSourceType", s.EventSourceType)
		buf.EncKVString("syslogMsg", s.SyslogMsg)
		buf.EncKVString("syslogTag", s.SyslogTag)
		buf.EncVersion("syslogFieldsVersion", syslogMajorVersion, syslogMinorVersion)

		buf.EncKVOptString("eventSourceHost", s.EventSourceHost.IsSet, s.EventSourceHost.Value)
		buf.EncKVOptInt("syslogFacility", s.SyslogFacility.IsSet, s.SyslogFacility.Value)
		buf.EncKVOptInt("syslogPri", s.SyslogPriority.IsSet, s.SyslogPriority.Value)
		buf.EncKVOptString("syslogProc", s.SyslogProc.IsSet, s.SyslogProc.Value)
		buf.EncKVOptInt("syslogProcId", s.SyslogProcID.IsSet, s.SyslogProcID.Value)
		buf.EncKVOptString("syslogSData", s.SyslogSData.IsSet, s.SyslogSData.Value)
		buf.EncKVOptString("syslogSdId", s.SyslogSdID.IsSet, s.SyslogSdID.Value)
		buf.EncKVOptString("syslogSev", s.SyslogSeverity.IsSet, s.SyslogSeverity.Value)
		buf.EncKVOptInt("syslogVer", s.SyslogVersion.IsSet, s.SyslogVersion.Value)
		buf.CloseObject()
	})
}
