package event

import (
	"encoding/base64"

	"github.com/att-ves/vesagent/jsonbuf"
)

const (
	voiceQualityMajorVersion = 1
	voiceQualityMinorVersion = 1
)

// EndOfCallVqmSummaries carries the voice-quality metrics attached once
// a call ends (spec §3.4): adjacency identity, the per-endpoint and
// local RTP jitter/octet/packet/discard counters, MOS-CQE in [1,5],
// packet-loss counters, R-factor in [0,100] and round-trip delay.
type EndOfCallVqmSummaries struct {
	AdjacencyName       string
	EndpointDescription string

	EndpointJitter              OptInt
	EndpointRtpOctetsDiscarded  OptInt
	EndpointRtpOctetsReceived   OptInt
	EndpointRtpOctetsSent       OptInt
	EndpointRtpPacketsDiscarded OptInt
	EndpointRtpPacketsReceived  OptInt
	EndpointRtpPacketsSent      OptInt

	LocalJitter              OptInt
	LocalRtpOctetsDiscarded  OptInt
	LocalRtpOctetsReceived   OptInt
	LocalRtpOctetsSent       OptInt
	LocalRtpPacketsDiscarded OptInt
	LocalRtpPacketsReceived  OptInt
	LocalRtpPacketsSent      OptInt

	MOSCQE            OptDouble
	PacketsLost       OptInt
	PacketLossPercent OptDouble
	RFactor           OptInt
	RoundTripDelay    OptInt
}

// VoiceQuality reports a single leg of an RTP/RTCP-monitored voice call
// (spec §3.4).
type VoiceQuality struct {
	hdr Header

	Correlator      string
	CalleeSideCodec string
	CallerSideCodec string
	Vendor          VendorVNFNameFields

	MidCallRTCP OptString // base64-encoded opaque RTCP payload
	PhoneNumber OptString

	EndOfCallSet bool
	EndOfCall    EndOfCallVqmSummaries

	AdditionalFields NameValuePairs
}

var _ Event = (*VoiceQuality)(nil)

func NewVoiceQuality(eventName, eventID, correlator, calleeCodec, callerCodec, vendorName string) *VoiceQuality {
	v := &VoiceQuality{
		hdr:             NewHeader(DomainVoiceQuality, eventName, eventID),
		Correlator:      correlator,
		CalleeSideCodec: calleeCodec,
		CallerSideCodec: callerCodec,
	}
	v.hdr.Priority = PriorityNormal
	v.Vendor.VendorName = vendorName
	v.Vendor.VNFName.Init("vnfName")
	v.Vendor.VfModuleName.Init("vfModuleName")
	v.MidCallRTCP.Init("midCallRtcp")
	v.PhoneNumber.Init("phoneNumber")
	return v
}

func (v *VoiceQuality) Domain() Domain  { return DomainVoiceQuality }
func (v *VoiceQuality) Header() *Header { return &v.hdr }

// SetMidCallRTCP stores a raw mid-call RTCP report, base64-encoding it at
// the boundary the way the wire format requires (spec §3.4).
func (v *VoiceQuality) SetMidCallRTCP(raw []byte) {
	v.MidCallRTCP.Set(base64.StdEncoding.EncodeToString(raw))
}

func (v *VoiceQuality) SetPhoneNumber(number string) { v.PhoneNumber.Set(number) }
func (v *VoiceQuality) SetVNFName(name string)       { v.Vendor.VNFName.Set(name) }
func (v *VoiceQuality) SetVfModuleName(name string)  { v.Vendor.VfModuleName.Set(name) }

// SetEndOfCallMetrics attaches the end-of-call summary. mosCQE must be in
// [1,5] and rFactor in [0,100]; out-of-range values are clamped rather
// than rejected, since this is a best-effort telemetry path.
func (v *VoiceQuality) SetEndOfCallMetrics(adjacencyName, endpointDescription string, mosCQE float64, rFactor int) {
	if mosCQE < 1 {
		mosCQE = 1
	} else if mosCQE > 5 {
		mosCQE = 5
	}
	if rFactor < 0 {
		rFactor = 0
	} else if rFactor > 100 {
		rFactor = 100
	}
	v.EndOfCallSet = true
	v.EndOfCall.AdjacencyName = adjacencyName
	v.EndOfCall.EndpointDescription = endpointDescription
	v.EndOfCall.MOSCQE.Set(mosCQE)
	v.EndOfCall.RFactor.Set(rFactor)
}

func (v *VoiceQuality) SetPacketLoss(packetsLost int, percent float64) {
	v.EndOfCall.PacketsLost.Set(packetsLost)
	v.EndOfCall.PacketLossPercent.Set(percent)
}

func (v *VoiceQuality) SetJitterAndDelay(endpointJitter, localJitter, roundTripDelay int) {
	v.EndOfCall.EndpointJitter.Set(endpointJitter)
	v.EndOfCall.LocalJitter.Set(localJitter)
	v.EndOfCall.RoundTripDelay.Set(roundTripDelay)
}

// SetEndpointRtpCounters fills the far-end RTP octet/packet counters of
// the end-of-call summary.
func (v *VoiceQuality) SetEndpointRtpCounters(octetsSent, octetsReceived, octetsDiscarded, packetsSent, packetsReceived, packetsDiscarded int) {
	v.EndOfCall.EndpointRtpOctetsSent.Set(octetsSent)
	v.EndOfCall.EndpointRtpOctetsReceived.Set(octetsReceived)
	v.EndOfCall.EndpointRtpOctetsDiscarded.Set(octetsDiscarded)
	v.EndOfCall.EndpointRtpPacketsSent.Set(packetsSent)
	v.EndOfCall.EndpointRtpPacketsReceived.Set(packetsReceived)
	v.EndOfCall.EndpointRtpPacketsDiscarded.Set(packetsDiscarded)
}

// SetLocalRtpCounters fills the local-side RTP octet/packet counters of
// the end-of-call summary.
func (v *VoiceQuality) SetLocalRtpCounters(octetsSent, octetsReceived, octetsDiscarded, packetsSent, packetsReceived, packetsDiscarded int) {
	v.EndOfCall.LocalRtpOctetsSent.Set(octetsSent)
	v.EndOfCall.LocalRtpOctetsReceived.Set(octetsReceived)
	v.EndOfCall.LocalRtpOctetsDiscarded.Set(octetsDiscarded)
	v.EndOfCall.LocalRtpPacketsSent.Set(packetsSent)
	v.EndOfCall.LocalRtpPacketsReceived.Set(packetsReceived)
	v.EndOfCall.LocalRtpPacketsDiscarded.Set(packetsDiscarded)
}

func (v *VoiceQuality) AddAdditionalField(name, value string) {
	v.AdditionalFields.Add(name, value)
}

func (v *VoiceQuality) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &v.hdr, func() {
		buf.OpenNamedObject("voiceQualityFields")
		buf.EncKVString("calleeSideCodec", v.CalleeSideCodec)
		buf.EncKVString("callerSideCodec", v.CallerSideCodec)
		buf.EncKVString("correlator", v.Correlator)
		buf.EncKVOptString("midCallRtcp", v.MidCallRTCP.IsSet, v.MidCallRTCP.Value)
		v.Vendor.encode(buf)
		buf.EncVersion("voiceQualityFieldsVersion", voiceQualityMajorVersion, voiceQualityMinorVersion)

		buf.EncKVOptString("phoneNumber", v.PhoneNumber.IsSet, v.PhoneNumber.Value)

		v.AdditionalFields.EncodeOpt(buf, "additionalInformation")

		if v.EndOfCallSet && buf.OpenOptNamedObject("endOfCallVqmSummaries") {
			eoc := &v.EndOfCall
			buf.EncKVString("adjacencyName", eoc.AdjacencyName)
			buf.EncKVString("endpointDescription", eoc.EndpointDescription)
			buf.EncKVOptInt("endpointJitter", eoc.EndpointJitter.IsSet, eoc.EndpointJitter.Value)
			buf.EncKVOptInt("endpointRtpOctetsDiscarded", eoc.EndpointRtpOctetsDiscarded.IsSet, eoc.EndpointRtpOctetsDiscarded.Value)
			buf.EncKVOptInt("endpointRtpOctetsReceived", eoc.EndpointRtpOctetsReceived.IsSet, eoc.EndpointRtpOctetsReceived.Value)
			buf.EncKVOptInt("endpointRtpOctetsSent", eoc.EndpointRtpOctetsSent.IsSet, eoc.EndpointRtpOctetsSent.Value)
			buf.EncKVOptInt("endpointRtpPacketsDiscarded", eoc.EndpointRtpPacketsDiscarded.IsSet, eoc.EndpointRtpPacketsDiscarded.Value)
			buf.EncKVOptInt("endpointRtpPacketsReceived", eoc.EndpointRtpPacketsReceived.IsSet, eoc.EndpointRtpPacketsReceived.Value)
			buf.EncKVOptInt("endpointRtpPacketsSent", eoc.EndpointRtpPacketsSent.IsSet, eoc.EndpointRtpPacketsSent.Value)
			buf.EncKVOptInt("localJitter", eoc.LocalJitter.IsSet, eoc.LocalJitter.Value)
			buf.EncKVOptInt("localRtpOctetsDiscarded", eoc.LocalRtpOctetsDiscarded.IsSet, eoc.LocalRtpOctetsDiscarded.Value)
			buf.EncKVOptInt("localRtpOctetsReceived", eoc.LocalRtpOctetsReceived.IsSet, eoc.LocalRtpOctetsReceived.Value)
			buf.EncKVOptInt("localRtpOctetsSent", eoc.LocalRtpOctetsSent.IsSet, eoc.LocalRtpOctetsSent.Value)
			buf.EncKVOptInt("localRtpPacketsDiscarded", eoc.LocalRtpPacketsDiscarded.IsSet, eoc.LocalRtpPacketsDiscarded.Value)
			buf.EncKVOptInt("localRtpPacketsReceived", eoc.LocalRtpPacketsReceived.IsSet, eoc.LocalRtpPacketsReceived.Value)
			buf.EncKVOptInt("localRtpPacketsSent", eoc.LocalRtpPacketsSent.IsSet, eoc.LocalRtpPacketsSent.Value)
			buf.EncKVOptDouble("mosCqe", eoc.MOSCQE.IsSet, eoc.MOSCQE.Value)
			buf.EncKVOptInt("packetsLost", eoc.PacketsLost.IsSet, eoc.PacketsLost.Value)
			buf.EncKVOptDouble("packetLossPercent", eoc.PacketLossPercent.IsSet, eoc.PacketLossPercent.Value)
			buf.EncKVOptInt("rFactor", eoc.RFactor.IsSet, eoc.RFactor.Value)
			buf.EncKVOptInt("roundTripDelay", eoc.RoundTripDelay.IsSet, eoc.RoundTripDelay.Value)
			buf.CloseOpt()
		}

		buf.CloseObject()
	})
}
