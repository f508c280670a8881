package event

import "github.com/att-ves/vesagent/jsonbuf"

const (
	faultMajorVersion = 4
	faultMinorVersion = 0
)

// Severity is the fault event's alarm severity (spec §3.4).
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
	SeverityWarning  Severity = "Warning"
	SeverityNormal   Severity = "Normal"
)

// SourceType enumerates the fault event's reporting source type
// (spec §3.4, wire strings per spec §6.3).
type SourceType string

const (
	SourceTypeOther                  SourceType = "other"
	SourceTypeRouter                 SourceType = "router"
	SourceTypeSwitch                 SourceType = "switch"
	SourceTypeHost                   SourceType = "host"
	SourceTypeCard                   SourceType = "card"
	SourceTypePort                   SourceType = "port"
	SourceTypeSlotThreshold          SourceType = "slotThreshold"
	SourceTypePortThreshold          SourceType = "portThreshold"
	SourceTypeVirtualMachine         SourceType = "virtualMachine"
	SourceTypeVirtualNetworkFunction SourceType = "virtualNetworkFunction"
)

// VFStatus is the fault event's VF-status field (spec §3.4).
type VFStatus string

const (
	VFStatusActive         VFStatus = "Active"
	VFStatusIdle           VFStatus = "Idle"
	VFStatusPrepTerminate  VFStatus = "Preparing to terminate"
	VFStatusReadyTerminate VFStatus = "Ready to terminate"
	VFStatusReqTerminate   VFStatus = "Requesting termination"
)

// Fault is a fault/alarm event (spec §3.4).
type Fault struct {
	hdr Header

	AlarmCondition  string
	SpecificProblem string
	EventSeverity   Severity
	VfStatus        VFStatus
	SourceType      SourceType

	Category            OptString
	AlarmInterfaceA     OptString
	AlarmAdditionalInfo NameValuePairs
}

var _ Event = (*Fault)(nil)

// NewFault constructs a fault event. alarmCondition and specificProblem
// are mandatory (spec §3.4); severity, sourceType and vfStatus are
// required arguments too, and have no setters.
func NewFault(eventName, eventID, alarmCondition, specificProblem string, severity Severity, sourceType SourceType, vfStatus VFStatus) *Fault {
	f := &Fault{
		hdr:             NewHeader(DomainFault, eventName, eventID),
		AlarmCondition:  alarmCondition,
		SpecificProblem: specificProblem,
		EventSeverity:   severity,
		SourceType:      sourceType,
		VfStatus:        vfStatus,
	}
	f.hdr.Priority = PriorityHigh
	f.Category.Init("category")
	f.AlarmInterfaceA.Init("alarmInterfaceA")
	return f
}

func (f *Fault) Domain() Domain  { return DomainFault }
func (f *Fault) Header() *Header { return &f.hdr }

func (f *Fault) SetCategory(v string)      { f.Category.Set(v) }
func (f *Fault) SetInterfaceName(v string) { f.AlarmInterfaceA.Set(v) }
func (f *Fault) AddAlarmAdditionalInfo(name, value string) {
	f.AlarmAdditionalInfo.Add(name, value)
}

func (f *Fault) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &f.hdr, func() {
		buf.OpenNamedObject("faultFields")
		buf.EncVersion("faultFieldsVersion", faultMajorVersion, faultMinorVersion)
		buf.EncKVString("alarmCondition", f.AlarmCondition)
		buf.EncKVString("specificProblem", f.SpecificProblem)
		buf.EncKVString("eventSeverity", string(f.EventSeverity))
		buf.EncKVString("eventSourceType", string(f.SourceType))
		buf.EncKVString("vfStatus", string(f.VfStatus))
		buf.EncKVOptString("category", f.Category.IsSet, f.Category.Value)
		buf.EncKVOptString("alarmInterfaceA", f.AlarmInterfaceA.IsSet, f.AlarmInterfaceA.Value)
		f.AlarmAdditionalInfo.EncodeOpt(buf, "alarmAdditionalInformation")
		buf.CloseObject()
	})
}
