package event

import "github.com/att-ves/vesagent/jsonbuf"

const (
	signalingMajorVersion = 3
	signalingMinorVersion = 0
)

// Signaling reports a single call/session signaling transaction (spec
// §3.4).
type Signaling struct {
	hdr Header

	Correlator string

	LocalIPAddress      OptString
	LocalPort           OptString
	RemoteIPAddress     OptString
	RemotePort          OptString
	VendorVNFNameFields VendorVNFNameFields

	AdditionalFields NameValuePairs
}

// VendorVNFNameFields groups the vendor/VNF/vf-module identity fields
// signaling and voice-quality events carry (spec §3.4).
type VendorVNFNameFields struct {
	VendorName   string
	VNFName      OptString
	VfModuleName OptString
}

func (vf *VendorVNFNameFields) encode(buf *jsonbuf.Buffer) {
	if !buf.OpenOptNamedObject("vendorVnfNameFields") {
		return
	}
	buf.EncKVString("vendorName", vf.VendorName)
	buf.EncKVOptString("vnfName", vf.VNFName.IsSet, vf.VNFName.Value)
	buf.EncKVOptString("vfModuleName", vf.VfModuleName.IsSet, vf.VfModuleName.Value)
	buf.CloseOpt()
}

var _ Event = (*Signaling)(nil)

func NewSignaling(eventName, eventID, correlator, vendorName string) *Signaling {
	s := &Signaling{
		hdr:        NewHeader(DomainSignaling, eventName, eventID),
		Correlator: correlator,
	}
	s.hdr.Priority = PriorityNormal
	s.LocalIPAddress.Init("localIpAddress")
	s.LocalPort.Init("localPort")
	s.RemoteIPAddress.Init("remoteIpAddress")
	s.RemotePort.Init("remotePort")
	s.VendorVNFNameFields.VendorName = vendorName
	s.VendorVNFNameFields.VNFName.Init("vnfName")
	s.VendorVNFNameFields.VfModuleName.Init("vfModuleName")
	return s
}

func (s *Signaling) Domain() Domain  { return DomainSignaling }
func (s *Signaling) Header() *Header { return &s.hdr }

func (s *Signaling) SetLocalAddress(ip, port string) {
	s.LocalIPAddress.Set(ip)
	s.LocalPort.Set(port)
}

func (s *Signaling) SetRemoteAddress(ip, port string) {
	s.RemoteIPAddress.Set(ip)
	s.RemotePort.Set(port)
}

func (s *Signaling) SetVNFName(v string)      { s.VendorVNFNameFields.VNFName.Set(v) }
func (s *Signaling) SetVfModuleName(v string) { s.VendorVNFNameFields.VfModuleName.Set(v) }

func (s *Signaling) AddAdditionalField(name, value string) {
	s.AdditionalFields.Add(name, value)
}

func (s *Signaling) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &s.hdr, func() {
		buf.OpenNamedObject("signalingFields")
		buf.EncVersion("signalingFieldsVersion", signalingMajorVersion, signalingMinorVersion)
		buf.EncKVString("correlator", s.Correlator)
		buf.EncKVOptString("localIpAddress", s.LocalIPAddress.IsSet, s.LocalIPAddress.Value)
		buf.EncKVOptString("localPort", s.LocalPort.IsSet, s.LocalPort.Value)
		buf.EncKVOptString("remoteIpAddress", s.RemoteIPAddress.IsSet, s.RemoteIPAddress.Value)
		buf.EncKVOptString("remotePort", s.RemotePort.IsSet, s.RemotePort.Value)

		s.VendorVNFNameFields.encode(buf)

		s.AdditionalFields.EncodeOpt(buf, "additionalInformation")
		buf.CloseObject()
	})
}
