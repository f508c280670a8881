package event

import "fmt"

// Domain tags the event family an Event belongs to (spec §3.3). It is
// immutable after construction and selects both the JSON encoder and
// the throttle-spec table entry used for that event.
type Domain int

const (
	DomainInternal Domain = iota // in-band dispatcher control only, never serialized
	DomainHeartbeat
	DomainHeartbeatField
	DomainFault
	DomainMeasurement
	DomainMobileFlow
	DomainReport
	DomainSignaling
	DomainStateChange
	DomainSyslog
	DomainOther
	DomainVoiceQuality
	DomainThresholdCross
	DomainBatch

	domainCount
)

// domainWireNames is the wire name of each Domain, used both for the "domain" key in
// the common event header and for the eventDomain value in throttle
// commands (spec §6.3, supplemented per SPEC_FULL.md §C.1).
var domainWireNames = [domainCount]string{
	DomainInternal:       "internal",
	DomainHeartbeat:      "heartbeat",
	DomainHeartbeatField: "heartbeatField",
	DomainFault:          "fault",
	DomainMeasurement:    "measurementsForVfScaling",
	DomainMobileFlow:     "mobileFlow",
	DomainReport:         "serviceEvents",
	DomainSignaling:      "signaling",
	DomainStateChange:    "stateChange",
	DomainSyslog:         "syslog",
	DomainOther:          "other",
	DomainVoiceQuality:   "voiceQuality",
	DomainThresholdCross: "thresholdCrossingAlert",
	DomainBatch:          "batch",
}

func (d Domain) String() string {
	if d < 0 || d >= domainCount {
		return "unknown"
	}
	return domainWireNames[d]
}

// ParseDomain maps a collector-supplied eventDomain string back onto a
// Domain tag. Unknown strings return an error so the command parser can
// log and ignore the offending throttleSpecification (spec §4.7).
func ParseDomain(s string) (Domain, error) {
	for d, name := range domainWireNames {
		if name == s {
			return Domain(d), nil
		}
	}
	return 0, fmt.Errorf("unrecognized event domain %q", s)
}
